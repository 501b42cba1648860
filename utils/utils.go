package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	mrand "math/rand"
	"strings"
	"time"
)

const base36Chars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenerateTransactionID builds an opaque unique payment transaction ID,
// format TXN<epoch-ms><8-hex>
func GenerateTransactionID() string {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		mrand.Read(buf)
	}
	return fmt.Sprintf("TXN%d%s", time.Now().UnixMilli(), strings.ToUpper(hex.EncodeToString(buf)))
}

// RandomBase36 returns n random uppercase base36 characters
func RandomBase36(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteByte(base36Chars[mrand.Intn(len(base36Chars))])
	}
	return b.String()
}
