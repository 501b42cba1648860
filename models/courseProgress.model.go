package models

import (
	"time"

	"gorm.io/gorm"
)

// CourseProgress records a student's completion state for one course. The
// stored percentage is recomputed from lesson completions on every mutation
// and never trusted as ground truth between writes.
type CourseProgress struct {
	gorm.Model
	StudentID            uint       `json:"student_id" gorm:"index:idx_progress_student_course,unique;not null"`
	CourseID             uint       `json:"course_id" gorm:"index:idx_progress_student_course,unique;not null"`
	EnrollmentID         uint       `json:"enrollment_id" gorm:"index;not null"`
	CompletionPercentage int        `json:"completion_percentage" gorm:"default:0"`
	CompletedAt          *time.Time `json:"completed_at"`
	LastAccessedAt       time.Time  `json:"last_accessed_at"`

	Enrollment Enrollment `gorm:"foreignKey:EnrollmentID" json:"enrollment,omitempty"`
}

// LessonCompletion is one completed lesson within a CourseProgress. LessonID
// is either a CourseLesson row id or a synthetic "module-<i>-lesson-<j>" id
// from the embedded curriculum fallback.
type LessonCompletion struct {
	gorm.Model
	ProgressID  uint      `json:"progress_id" gorm:"index:idx_completion_progress_lesson,unique;not null"`
	LessonID    string    `json:"lesson_id" gorm:"index:idx_completion_progress_lesson,unique;not null"`
	CompletedAt time.Time `json:"completed_at"`
	WatchTime   int64     `json:"watch_time" gorm:"default:0"` // seconds
}
