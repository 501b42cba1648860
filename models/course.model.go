package models

import "gorm.io/gorm"

// Course represents a training course offered on the platform
type Course struct {
	gorm.Model
	Title            string  `json:"title"`
	Slug             string  `json:"slug" gorm:"uniqueIndex"`
	ShortDescription string  `json:"short_description"`
	ThumbnailURL     string  `json:"thumbnail_url"`
	Price            float64 `json:"price" gorm:"default:0"`
	DiscountPrice    float64 `json:"discount_price" gorm:"default:0"`
	Status           string  `json:"status" gorm:"default:'DRAFT'"` // DRAFT, ACTIVE, INACTIVE
	TrainerID        *uint   `json:"trainer_id" gorm:"index"`

	// Optional issuer override printed on certificates for this course.
	// When empty, the batch trainer's name/title is used instead.
	CertIssuerName  string `json:"cert_issuer_name"`
	CertIssuerTitle string `json:"cert_issuer_title"`

	IsDeleted bool `gorm:"default:false" json:"-"`

	Trainer *User `gorm:"foreignKey:TrainerID" json:"trainer,omitempty"`
}

// CourseModule is a section of a course's embedded curriculum. It is the
// fallback lesson source when no CourseLesson rows exist for the course.
type CourseModule struct {
	gorm.Model
	CourseID   uint   `json:"course_id" gorm:"index;not null"`
	Title      string `json:"title"`
	OrderIndex int    `json:"order_index" gorm:"default:0"`
	IsDeleted  bool   `gorm:"default:false" json:"-"`
}

// CourseModuleLesson is one lesson inside an embedded curriculum module
type CourseModuleLesson struct {
	gorm.Model
	ModuleID   uint   `json:"module_id" gorm:"index;not null"`
	Title      string `json:"title"`
	OrderIndex int    `json:"order_index" gorm:"default:0"`
	IsDeleted  bool   `gorm:"default:false" json:"-"`
}

// CourseLesson is the normalized per-lesson record, preferred over the
// embedded curriculum when present
type CourseLesson struct {
	gorm.Model
	CourseID   uint   `json:"course_id" gorm:"index;not null"`
	ModuleID   *uint  `json:"module_id" gorm:"index"`
	Title      string `json:"title"`
	VideoURL   string `json:"video_url"`
	Duration   int64  `json:"duration" gorm:"default:0"` // seconds
	OrderIndex int    `json:"order_index" gorm:"default:0"`
	IsActive   bool   `json:"is_active" gorm:"default:true"`
	IsDeleted  bool   `gorm:"default:false" json:"-"`
}
