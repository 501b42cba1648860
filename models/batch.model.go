package models

import (
	"time"

	"gorm.io/gorm"
)

// Batch status values
const (
	BatchStatusUpcoming  = "upcoming"
	BatchStatusRunning   = "running"
	BatchStatusCompleted = "completed"
)

// Batch mode values
const (
	BatchModeOnline  = "online"
	BatchModeOffline = "offline"
	BatchModeHybrid  = "hybrid"
)

// Batch is a scheduled offering of a course with a seat limit.
// EnrolledCount is maintained exclusively by the reconciliation service and
// always equals the number of paid enrollments for the batch.
type Batch struct {
	gorm.Model
	CourseID    uint      `json:"course_id" gorm:"index;not null"`
	TrainerID   *uint     `json:"trainer_id" gorm:"index"`
	BatchName   string    `json:"batch_name"`
	BatchNumber string    `json:"batch_number" gorm:"index"`
	StartDate   time.Time `json:"start_date" gorm:"index"`
	EndDate     time.Time `json:"end_date"`
	DaysOfWeek  string    `json:"days_of_week"` // comma separated, e.g. "Monday,Wednesday"
	StartTime   string    `json:"start_time"`   // e.g. "10:00 AM"
	EndTime     string    `json:"end_time"`     // e.g. "12:00 PM"
	Mode        string    `json:"mode" gorm:"type:varchar(20)"`
	SeatLimit   int       `json:"seat_limit" gorm:"not null"`
	EnrolledCount int     `json:"enrolled_count" gorm:"default:0"`
	Status      string    `json:"status" gorm:"type:varchar(20);default:'upcoming';index"`
	MeetingLink string    `json:"meeting_link"` // for online/hybrid batches
	Venue       string    `json:"venue"`        // for offline/hybrid batches
	IsDeleted   bool      `gorm:"default:false" json:"-"`

	Course  Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	Trainer *User  `gorm:"foreignKey:TrainerID" json:"trainer,omitempty"`
}

// Enrollable reports whether new enrollments are accepted for the batch
func (b *Batch) Enrollable() bool {
	return b.Status == BatchStatusUpcoming || b.Status == BatchStatusRunning
}
