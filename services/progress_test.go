package services

import (
	"fmt"
	"testing"
	"time"

	"trainhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupPaidEnrollment(t *testing.T, db *gorm.DB, lessonCount int) (*models.User, *models.Course, *models.Batch) {
	t.Helper()

	student := createStudent(t, db, "alice")
	course := createCourse(t, db, "go-basics", 5000)
	batch := createBatch(t, db, course.ID, 10)

	for i := 0; i < lessonCount; i++ {
		lesson := models.CourseLesson{
			CourseID:   course.ID,
			Title:      fmt.Sprintf("Lesson %d", i+1),
			OrderIndex: i,
			IsActive:   true,
		}
		require.NoError(t, db.Create(&lesson).Error)
	}

	svc := NewReconciliationService(db)
	tranID := fmt.Sprintf("TXN-progress-%d", student.ID)
	_, err := svc.CreateEnrollment(student.ID, batch.ID, models.PaymentMethodSSLCommerz, tranID, 0)
	require.NoError(t, err)
	_, err = svc.ConfirmPayment(tranID, models.PaymentMethodSSLCommerz)
	require.NoError(t, err)

	return student, course, batch
}

func lessonIDs(t *testing.T, db *gorm.DB, courseID uint) []string {
	t.Helper()

	roster, err := NewProgressService(db).CourseLessonRoster(courseID)
	require.NoError(t, err)
	return roster
}

func TestCompletionPercentageMath(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProgressService(db)

	student, course, _ := setupPaidEnrollment(t, db, 4)
	roster := lessonIDs(t, db, course.ID)
	require.Len(t, roster, 4)

	var result *ProgressResult
	var err error
	for i := 0; i < 3; i++ {
		result, err = svc.MarkLessonComplete(student.ID, course.ID, roster[i], 120)
		require.NoError(t, err)
	}
	assert.Equal(t, 75, result.CompletionPercentage)
	assert.False(t, result.IsCompleted)
	assert.Nil(t, result.Progress.CompletedAt)

	result, err = svc.MarkLessonComplete(student.ID, course.ID, roster[3], 120)
	require.NoError(t, err)
	assert.Equal(t, 100, result.CompletionPercentage)
	assert.True(t, result.IsCompleted)
	assert.NotNil(t, result.Progress.CompletedAt)
	assert.True(t, result.CertificateGenerated)
}

func TestMarkLessonCompleteIdempotent(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProgressService(db)

	student, course, _ := setupPaidEnrollment(t, db, 4)
	roster := lessonIDs(t, db, course.ID)

	first, err := svc.MarkLessonComplete(student.ID, course.ID, roster[0], 60)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.CompletedLessons)
	assert.Equal(t, 25, first.CompletionPercentage)

	repeat, err := svc.MarkLessonComplete(student.ID, course.ID, roster[0], 90)
	require.NoError(t, err)
	assert.Equal(t, int64(1), repeat.CompletedLessons)
	assert.Equal(t, 25, repeat.CompletionPercentage)

	var completions int64
	db.Model(&models.LessonCompletion{}).Count(&completions)
	assert.Equal(t, int64(1), completions)
}

func TestCompletedAtStampedOnce(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProgressService(db)

	student, course, _ := setupPaidEnrollment(t, db, 2)
	roster := lessonIDs(t, db, course.ID)

	for _, id := range roster {
		_, err := svc.MarkLessonComplete(student.ID, course.ID, id, 60)
		require.NoError(t, err)
	}

	var progress models.CourseProgress
	require.NoError(t, db.Where("student_id = ? AND course_id = ?", student.ID, course.ID).First(&progress).Error)
	require.NotNil(t, progress.CompletedAt)
	stamped := *progress.CompletedAt

	time.Sleep(10 * time.Millisecond)
	_, err := svc.MarkLessonComplete(student.ID, course.ID, roster[0], 60)
	require.NoError(t, err)

	require.NoError(t, db.Where("student_id = ? AND course_id = ?", student.ID, course.ID).First(&progress).Error)
	require.NotNil(t, progress.CompletedAt)
	assert.Equal(t, stamped.Unix(), progress.CompletedAt.Unix())
}

func TestCompletionIssuesCertificateOnce(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProgressService(db)

	student, course, _ := setupPaidEnrollment(t, db, 2)
	roster := lessonIDs(t, db, course.ID)

	for _, id := range roster {
		_, err := svc.MarkLessonComplete(student.ID, course.ID, id, 60)
		require.NoError(t, err)
	}

	// Re-completing the final lesson must not mint a second certificate
	result, err := svc.MarkLessonComplete(student.ID, course.ID, roster[1], 60)
	require.NoError(t, err)
	assert.False(t, result.CertificateGenerated)

	var total int64
	db.Model(&models.Certificate{}).
		Where("student_id = ? AND course_id = ? AND status = ?",
			student.ID, course.ID, models.CertificateStatusActive).
		Count(&total)
	assert.Equal(t, int64(1), total)
}

func TestProgressRequiresPaidEnrollment(t *testing.T) {
	db := setupTestDB(t)
	progressSvc := NewProgressService(db)
	reconSvc := NewReconciliationService(db)

	student := createStudent(t, db, "alice")
	course := createCourse(t, db, "go-basics", 5000)
	batch := createBatch(t, db, course.ID, 10)

	lesson := models.CourseLesson{CourseID: course.ID, Title: "Lesson 1", IsActive: true}
	require.NoError(t, db.Create(&lesson).Error)

	// Pending enrollment is not enough
	_, err := reconSvc.CreateEnrollment(student.ID, batch.ID, models.PaymentMethodPayLater, "", 0)
	require.NoError(t, err)

	_, err = progressSvc.MarkLessonComplete(student.ID, course.ID, fmtUint(lesson.ID), 60)
	assert.ErrorIs(t, err, ErrNotEnrolled)

	_, err = progressSvc.GetProgress(student.ID, course.ID)
	assert.ErrorIs(t, err, ErrNotEnrolled)
}

func TestGetProgressUnknownCourse(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProgressService(db)

	student := createStudent(t, db, "alice")
	_, err := svc.GetProgress(student.ID, 9999)
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestEmptyRosterIsZeroPercent(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProgressService(db)

	student, course, _ := setupPaidEnrollment(t, db, 0)

	result, err := svc.GetProgress(student.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, result.CompletionPercentage)
	assert.False(t, result.IsCompleted)
}

func TestEmbeddedCurriculumFallback(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProgressService(db)

	student, course, _ := setupPaidEnrollment(t, db, 0)

	for i := 0; i < 2; i++ {
		module := models.CourseModule{CourseID: course.ID, Title: fmt.Sprintf("Module %d", i+1), OrderIndex: i}
		require.NoError(t, db.Create(&module).Error)
		for j := 0; j < 2; j++ {
			lesson := models.CourseModuleLesson{ModuleID: module.ID, Title: fmt.Sprintf("Lesson %d", j+1), OrderIndex: j}
			require.NoError(t, db.Create(&lesson).Error)
		}
	}

	roster := lessonIDs(t, db, course.ID)
	require.Equal(t, []string{
		"module-0-lesson-0", "module-0-lesson-1",
		"module-1-lesson-0", "module-1-lesson-1",
	}, roster)

	result, err := svc.MarkLessonComplete(student.ID, course.ID, roster[0], 60)
	require.NoError(t, err)
	assert.Equal(t, 25, result.CompletionPercentage)
}
