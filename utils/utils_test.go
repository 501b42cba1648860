package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateTransactionIDFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^TXN\d{13}[0-9A-F]{8}$`)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := GenerateTransactionID()
		assert.Regexp(t, pattern, id)
		assert.False(t, seen[id], "duplicate transaction id %s", id)
		seen[id] = true
	}
}

func TestRandomBase36(t *testing.T) {
	pattern := regexp.MustCompile(`^[0-9A-Z]{6}$`)
	for i := 0; i < 50; i++ {
		assert.Regexp(t, pattern, RandomBase36(6))
	}
}
