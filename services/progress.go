package services

import (
	"fmt"
	"log"
	"math"
	"strconv"
	"time"

	"trainhub/models"

	"gorm.io/gorm"
)

// ProgressService recomputes course completion whenever a lesson is marked
// complete, and hands fully completed courses to the certificate service.
type ProgressService struct {
	Db           *gorm.DB
	Certificates *CertificateService
}

func NewProgressService(db *gorm.DB) *ProgressService {
	return &ProgressService{Db: db, Certificates: NewCertificateService(db)}
}

// ProgressResult is the outcome of a progress read or lesson completion
type ProgressResult struct {
	Progress             *models.CourseProgress
	CompletedLessons     int64
	CompletionPercentage int
	IsCompleted          bool
	CertificateGenerated bool
}

// MarkLessonComplete records a lesson completion for a student's paid
// enrollment on the course. Marking the same lesson twice is a no-op. When
// the recomputed percentage reaches 100, certificate issuance runs as a
// best-effort side effect: its failure is logged and reported through the
// CertificateGenerated flag, never as an error of this operation.
func (s *ProgressService) MarkLessonComplete(studentID, courseID uint, lessonID string, watchTime int64) (*ProgressResult, error) {
	enrollment, err := s.findPaidEnrollment(studentID, courseID)
	if err != nil {
		return nil, err
	}

	progress, err := s.getOrCreateProgress(studentID, courseID, enrollment.ID)
	if err != nil {
		return nil, err
	}

	var existing models.LessonCompletion
	err = s.Db.Where("progress_id = ? AND lesson_id = ?", progress.ID, lessonID).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		completion := models.LessonCompletion{
			ProgressID:  progress.ID,
			LessonID:    lessonID,
			CompletedAt: time.Now(),
			WatchTime:   watchTime,
		}
		if err := s.Db.Create(&completion).Error; err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	s.Db.Model(progress).Update("last_accessed_at", time.Now())

	result, err := s.recompute(progress, courseID)
	if err != nil {
		return nil, err
	}

	if result.CompletionPercentage >= 100 {
		completionDate := time.Now()
		if progress.CompletedAt != nil {
			completionDate = *progress.CompletedAt
		}
		_, generated, certErr := s.Certificates.IssueIfComplete(studentID, courseID, &enrollment.BatchID, completionDate)
		if certErr != nil {
			log.Printf("[PROGRESS] Certificate generation failed for student %d course %d: %v", studentID, courseID, certErr)
		}
		result.CertificateGenerated = generated
	}

	return result, nil
}

// GetProgress returns (creating if needed) the progress record for a
// student's paid enrollment on a course, with a fresh completion recompute
func (s *ProgressService) GetProgress(studentID, courseID uint) (*ProgressResult, error) {
	var course models.Course
	if err := s.Db.Where("id = ? AND is_deleted = false", courseID).First(&course).Error; err != nil {
		return nil, ErrCourseNotFound
	}

	enrollment, err := s.findPaidEnrollment(studentID, courseID)
	if err != nil {
		return nil, err
	}

	progress, err := s.getOrCreateProgress(studentID, courseID, enrollment.ID)
	if err != nil {
		return nil, err
	}

	return s.recompute(progress, courseID)
}

// findPaidEnrollment locates the student's enrollment whose batch belongs to
// the course and whose payment is confirmed
func (s *ProgressService) findPaidEnrollment(studentID, courseID uint) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	err := s.Db.
		Joins("JOIN batches ON batches.id = enrollments.batch_id").
		Where("enrollments.student_id = ? AND enrollments.payment_status = ? AND batches.course_id = ?",
			studentID, models.PaymentStatusPaid, courseID).
		First(&enrollment).Error
	if err != nil {
		return nil, ErrNotEnrolled
	}
	return &enrollment, nil
}

func (s *ProgressService) getOrCreateProgress(studentID, courseID, enrollmentID uint) (*models.CourseProgress, error) {
	var progress models.CourseProgress
	err := s.Db.Where("student_id = ? AND course_id = ?", studentID, courseID).First(&progress).Error
	if err == gorm.ErrRecordNotFound {
		progress = models.CourseProgress{
			StudentID:      studentID,
			CourseID:       courseID,
			EnrollmentID:   enrollmentID,
			LastAccessedAt: time.Now(),
		}
		if err := s.Db.Create(&progress).Error; err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}
	return &progress, nil
}

// recompute derives the completion percentage from the lesson roster and the
// completion rows, stamping CompletedAt the first time 100 is reached
func (s *ProgressService) recompute(progress *models.CourseProgress, courseID uint) (*ProgressResult, error) {
	totalLessons, err := s.countLessons(courseID)
	if err != nil {
		return nil, err
	}

	var completedCount int64
	if err := s.Db.Model(&models.LessonCompletion{}).
		Where("progress_id = ?", progress.ID).Count(&completedCount).Error; err != nil {
		return nil, err
	}

	percentage := 0
	if totalLessons > 0 {
		percentage = int(math.Round(float64(completedCount) / float64(totalLessons) * 100))
	}

	fields := map[string]interface{}{"completion_percentage": percentage}
	if percentage >= 100 && progress.CompletedAt == nil {
		now := time.Now()
		fields["completed_at"] = now
		progress.CompletedAt = &now
	}
	if err := s.Db.Model(progress).Updates(fields).Error; err != nil {
		return nil, err
	}
	progress.CompletionPercentage = percentage

	return &ProgressResult{
		Progress:             progress,
		CompletedLessons:     completedCount,
		CompletionPercentage: percentage,
		IsCompleted:          percentage >= 100,
	}, nil
}

// countLessons sizes the lesson roster for a course: active CourseLesson rows
// when any exist, else the flattened embedded curriculum
func (s *ProgressService) countLessons(courseID uint) (int64, error) {
	var total int64
	err := s.Db.Model(&models.CourseLesson{}).
		Where("course_id = ? AND is_active = ? AND is_deleted = false", courseID, true).
		Count(&total).Error
	if err != nil {
		return 0, err
	}
	if total > 0 {
		return total, nil
	}

	err = s.Db.Model(&models.CourseModuleLesson{}).
		Joins("JOIN course_modules ON course_modules.id = course_module_lessons.module_id").
		Where("course_modules.course_id = ? AND course_module_lessons.is_deleted = false", courseID).
		Count(&total).Error
	return total, err
}

// CourseLessonRoster lists lesson identifiers for a course in teaching order.
// Normalized lessons use their row id; the embedded-curriculum fallback gets
// synthetic "module-<i>-lesson-<j>" ids from its ordered position.
func (s *ProgressService) CourseLessonRoster(courseID uint) ([]string, error) {
	var lessons []models.CourseLesson
	err := s.Db.Where("course_id = ? AND is_active = ? AND is_deleted = false", courseID, true).
		Order("order_index asc, id asc").Find(&lessons).Error
	if err != nil {
		return nil, err
	}

	if len(lessons) > 0 {
		ids := make([]string, len(lessons))
		for i, lesson := range lessons {
			ids[i] = fmtUint(lesson.ID)
		}
		return ids, nil
	}

	var modules []models.CourseModule
	err = s.Db.Where("course_id = ? AND is_deleted = false", courseID).
		Order("order_index asc, id asc").Find(&modules).Error
	if err != nil {
		return nil, err
	}

	var ids []string
	for i, module := range modules {
		var moduleLessons []models.CourseModuleLesson
		if err := s.Db.Where("module_id = ? AND is_deleted = false", module.ID).
			Order("order_index asc, id asc").Find(&moduleLessons).Error; err != nil {
			return nil, err
		}
		for j := range moduleLessons {
			ids = append(ids, fmt.Sprintf("module-%d-lesson-%d", i, j))
		}
	}
	return ids, nil
}

func fmtUint(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}
