package models

import (
	"time"

	"gorm.io/gorm"
)

// Certificate status values
const (
	CertificateStatusActive  = "active"
	CertificateStatusRevoked = "revoked"
	CertificateStatusPending = "pending"
)

// Certificate is an issued proof of course completion. At most one active
// certificate exists per (student, course) pair.
type Certificate struct {
	gorm.Model
	StudentID          uint       `json:"student_id" gorm:"index;not null"`
	CourseID           *uint      `json:"course_id" gorm:"index"`
	BatchID            *uint      `json:"batch_id" gorm:"index"`
	StudentName        string     `json:"student_name" gorm:"not null"`
	CourseName         string     `json:"course_name" gorm:"not null"`
	CompletionDate     time.Time  `json:"completion_date"`
	VerificationNumber string     `json:"verification_number" gorm:"uniqueIndex;not null"`
	Category           string     `json:"category" gorm:"default:'Course Completion'"`
	TemplateID         *uint      `json:"template_id"`
	IssuerName         string     `json:"issuer_name"`
	IssuerTitle        string     `json:"issuer_title"`
	Status             string     `json:"status" gorm:"type:varchar(20);default:'active';index"`
	IsManual           bool       `json:"is_manual" gorm:"default:false"`

	Student  User                 `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Course   *Course              `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	Batch    *Batch               `gorm:"foreignKey:BatchID" json:"batch,omitempty"`
	Template *CertificateTemplate `gorm:"foreignKey:TemplateID" json:"template,omitempty"`
}

// CertificateTemplate holds the visual settings certificates render with
type CertificateTemplate struct {
	gorm.Model
	Name            string `json:"name" gorm:"not null"`
	Description     string `json:"description"`
	BackgroundImage string `json:"background_image"`
	BackgroundColor string `json:"background_color" gorm:"default:'#ffffff'"`
	LogoURL         string `json:"logo_url"`
	IsDefault       bool   `json:"is_default" gorm:"default:false"`
	IsActive        bool   `json:"is_active" gorm:"default:true"`
}

// BeforeSave keeps at most one default template
func (t *CertificateTemplate) BeforeSave(tx *gorm.DB) error {
	if t.IsDefault {
		return tx.Model(&CertificateTemplate{}).
			Where("id <> ?", t.ID).
			Update("is_default", false).Error
	}
	return nil
}
