package services

import (
	"regexp"
	"testing"
	"time"

	"trainhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueIfCompleteCreatesOnce(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCertificateService(db)

	student := createStudent(t, db, "alice")
	course := createCourse(t, db, "go-basics", 5000)

	cert, created, err := svc.IssueIfComplete(student.ID, course.ID, nil, time.Now())
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, models.CertificateStatusActive, cert.Status)
	assert.False(t, cert.IsManual)
	assert.Equal(t, "alice", cert.StudentName)
	assert.Equal(t, course.Title, cert.CourseName)

	// Completing the course again must return the same certificate
	again, created, err := svc.IssueIfComplete(student.ID, course.ID, nil, time.Now())
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, cert.ID, again.ID)

	var total int64
	db.Model(&models.Certificate{}).Count(&total)
	assert.Equal(t, int64(1), total)
}

func TestIssueIfCompleteReissuesAfterRevocation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCertificateService(db)

	student := createStudent(t, db, "alice")
	course := createCourse(t, db, "go-basics", 5000)

	cert, _, err := svc.IssueIfComplete(student.ID, course.ID, nil, time.Now())
	require.NoError(t, err)

	require.NoError(t, db.Model(cert).Update("status", models.CertificateStatusRevoked).Error)

	replacement, created, err := svc.IssueIfComplete(student.ID, course.ID, nil, time.Now())
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEqual(t, cert.ID, replacement.ID)
}

func TestVerificationNumberFormat(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCertificateService(db)

	student := createStudent(t, db, "alice")
	course := createCourse(t, db, "go-basics", 5000)

	cert, _, err := svc.IssueIfComplete(student.ID, course.ID, nil, time.Now())
	require.NoError(t, err)

	pattern := regexp.MustCompile(`^CERT-\d{8}-[0-9A-Z]{6}$`)
	assert.Regexp(t, pattern, cert.VerificationNumber)
}

func TestAutoIssuanceCreatesDefaultTemplate(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCertificateService(db)

	student := createStudent(t, db, "alice")
	course := createCourse(t, db, "go-basics", 5000)

	var before int64
	db.Model(&models.CertificateTemplate{}).Count(&before)
	require.Equal(t, int64(0), before)

	cert, _, err := svc.IssueIfComplete(student.ID, course.ID, nil, time.Now())
	require.NoError(t, err)
	require.NotNil(t, cert.TemplateID)

	var template models.CertificateTemplate
	require.NoError(t, db.First(&template, *cert.TemplateID).Error)
	assert.True(t, template.IsDefault)
	assert.True(t, template.IsActive)
}

func TestCreateManualRequiresTemplate(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCertificateService(db)

	student := createStudent(t, db, "alice")

	_, err := svc.CreateManual(ManualCertificateRequest{
		StudentID:   student.ID,
		StudentName: "Alice",
		CourseName:  "Go Basics",
	})
	assert.ErrorIs(t, err, ErrNoTemplateConfigured)

	template := models.CertificateTemplate{Name: "Classic", IsActive: true}
	require.NoError(t, db.Create(&template).Error)

	cert, err := svc.CreateManual(ManualCertificateRequest{
		StudentID:   student.ID,
		StudentName: "Alice",
		CourseName:  "Go Basics",
	})
	require.NoError(t, err)
	assert.True(t, cert.IsManual)
	assert.Equal(t, models.CertificateStatusActive, cert.Status)
	require.NotNil(t, cert.TemplateID)
	assert.Equal(t, template.ID, *cert.TemplateID)
}

func TestCreateManualValidatesReferences(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCertificateService(db)

	template := models.CertificateTemplate{Name: "Classic", IsActive: true}
	require.NoError(t, db.Create(&template).Error)

	_, err := svc.CreateManual(ManualCertificateRequest{
		StudentID:   9999,
		StudentName: "Ghost",
		CourseName:  "Go Basics",
	})
	assert.ErrorIs(t, err, ErrStudentNotFound)

	student := createStudent(t, db, "alice")
	missingCourse := uint(9999)
	_, err = svc.CreateManual(ManualCertificateRequest{
		StudentID:   student.ID,
		CourseID:    &missingCourse,
		StudentName: "Alice",
		CourseName:  "Go Basics",
	})
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestIssuerResolutionPrefersCourseOverride(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCertificateService(db)

	student := createStudent(t, db, "alice")
	course := createCourse(t, db, "go-basics", 5000)
	require.NoError(t, db.Model(course).Updates(map[string]interface{}{
		"cert_issuer_name":  "Dr. Rahman",
		"cert_issuer_title": "Program Director",
	}).Error)

	trainer := createStudent(t, db, "trainer")
	require.NoError(t, db.Model(trainer).Updates(map[string]interface{}{
		"role":  models.RoleTrainer,
		"title": "Lead Instructor",
	}).Error)

	batch := createBatch(t, db, course.ID, 10)
	require.NoError(t, db.Model(batch).Update("trainer_id", trainer.ID).Error)

	cert, _, err := svc.IssueIfComplete(student.ID, course.ID, &batch.ID, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "Dr. Rahman", cert.IssuerName)
	assert.Equal(t, "Program Director", cert.IssuerTitle)
}

func TestIssuerResolutionFallsBackToTrainer(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCertificateService(db)

	student := createStudent(t, db, "alice")
	course := createCourse(t, db, "go-basics", 5000)

	trainer := createStudent(t, db, "trainer")
	require.NoError(t, db.Model(trainer).Updates(map[string]interface{}{
		"role":  models.RoleTrainer,
		"title": "Lead Instructor",
	}).Error)

	batch := createBatch(t, db, course.ID, 10)
	require.NoError(t, db.Model(batch).Update("trainer_id", trainer.ID).Error)

	cert, _, err := svc.IssueIfComplete(student.ID, course.ID, &batch.ID, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "trainer", cert.IssuerName)
	assert.Equal(t, "Lead Instructor", cert.IssuerTitle)
}

func TestIssuerResolutionBlankWithoutTrainer(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCertificateService(db)

	student := createStudent(t, db, "alice")
	course := createCourse(t, db, "go-basics", 5000)

	cert, _, err := svc.IssueIfComplete(student.ID, course.ID, nil, time.Now())
	require.NoError(t, err)
	assert.Empty(t, cert.IssuerName)
	assert.Empty(t, cert.IssuerTitle)
}

func TestDefaultTemplateUniqueness(t *testing.T) {
	db := setupTestDB(t)

	first := models.CertificateTemplate{Name: "One", IsDefault: true, IsActive: true}
	require.NoError(t, db.Create(&first).Error)

	second := models.CertificateTemplate{Name: "Two", IsDefault: true, IsActive: true}
	require.NoError(t, db.Create(&second).Error)

	var defaults int64
	db.Model(&models.CertificateTemplate{}).Where("is_default = ?", true).Count(&defaults)
	assert.Equal(t, int64(1), defaults)
}
