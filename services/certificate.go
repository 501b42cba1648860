package services

import (
	"fmt"
	"time"

	"trainhub/models"
	"trainhub/utils"

	"gorm.io/gorm"
)

// CertificateService issues completion certificates. Issuance triggered by a
// progress update is best-effort: its failure is reported, never propagated
// into the operation that triggered it.
type CertificateService struct {
	Db *gorm.DB
}

func NewCertificateService(db *gorm.DB) *CertificateService {
	return &CertificateService{Db: db}
}

// ManualCertificateRequest is the admin manual-creation payload
type ManualCertificateRequest struct {
	StudentID      uint
	CourseID       *uint
	BatchID        *uint
	StudentName    string
	CourseName     string
	CompletionDate time.Time
	IssuerName     string
	IssuerTitle    string
}

// IssueIfComplete issues one active certificate for a (student, course) that
// just reached full completion. If an active certificate already exists it is
// returned unchanged. Missing templates are silently repaired on this path:
// a minimal default template is created rather than failing the completion
// that triggered issuance.
func (s *CertificateService) IssueIfComplete(studentID, courseID uint, batchID *uint, completionDate time.Time) (*models.Certificate, bool, error) {
	var existing models.Certificate
	err := s.Db.Where("student_id = ? AND course_id = ? AND status = ?",
		studentID, courseID, models.CertificateStatusActive).First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}

	var course models.Course
	if err := s.Db.Where("id = ? AND is_deleted = false", courseID).First(&course).Error; err != nil {
		return nil, false, ErrCourseNotFound
	}

	var student models.User
	if err := s.Db.Where("id = ? AND is_deleted = false", studentID).First(&student).Error; err != nil {
		return nil, false, ErrStudentNotFound
	}

	template, err := s.resolveTemplate(true)
	if err != nil {
		return nil, false, err
	}

	issuerName, issuerTitle := s.resolveIssuer(&course, batchID)

	certificate := models.Certificate{
		StudentID:          studentID,
		CourseID:           &courseID,
		BatchID:            batchID,
		StudentName:        student.Name,
		CourseName:         course.Title,
		CompletionDate:     completionDate,
		VerificationNumber: s.generateVerificationNumber(),
		TemplateID:         &template.ID,
		IssuerName:         issuerName,
		IssuerTitle:        issuerTitle,
		Status:             models.CertificateStatusActive,
		IsManual:           false,
	}

	if err := s.Db.Create(&certificate).Error; err != nil {
		return nil, false, err
	}
	return &certificate, true, nil
}

// CreateManual is the admin-issued certificate path. Unlike the automatic
// path it refuses to run without a configured template.
func (s *CertificateService) CreateManual(req ManualCertificateRequest) (*models.Certificate, error) {
	var student models.User
	if err := s.Db.Where("id = ? AND is_deleted = false", req.StudentID).First(&student).Error; err != nil {
		return nil, ErrStudentNotFound
	}

	if req.CourseID != nil {
		var course models.Course
		if err := s.Db.Where("id = ? AND is_deleted = false", *req.CourseID).First(&course).Error; err != nil {
			return nil, ErrCourseNotFound
		}
	}
	if req.BatchID != nil {
		var batch models.Batch
		if err := s.Db.Where("id = ? AND is_deleted = false", *req.BatchID).First(&batch).Error; err != nil {
			return nil, ErrBatchNotFound
		}
	}

	template, err := s.resolveTemplate(false)
	if err != nil {
		return nil, err
	}

	completionDate := req.CompletionDate
	if completionDate.IsZero() {
		completionDate = time.Now()
	}

	certificate := models.Certificate{
		StudentID:          req.StudentID,
		CourseID:           req.CourseID,
		BatchID:            req.BatchID,
		StudentName:        req.StudentName,
		CourseName:         req.CourseName,
		CompletionDate:     completionDate,
		VerificationNumber: s.generateVerificationNumber(),
		TemplateID:         &template.ID,
		IssuerName:         req.IssuerName,
		IssuerTitle:        req.IssuerTitle,
		Status:             models.CertificateStatusActive,
		IsManual:           true,
	}

	if err := s.Db.Create(&certificate).Error; err != nil {
		return nil, err
	}
	return &certificate, nil
}

// resolveTemplate picks the default active template, then any active one.
// autoCreate controls the fallback when none exists: the automatic issuance
// path creates a minimal default, the manual path reports the misconfiguration.
func (s *CertificateService) resolveTemplate(autoCreate bool) (*models.CertificateTemplate, error) {
	var template models.CertificateTemplate
	err := s.Db.Where("is_default = ? AND is_active = ?", true, true).First(&template).Error
	if err == nil {
		return &template, nil
	}

	err = s.Db.Where("is_active = ?", true).First(&template).Error
	if err == nil {
		return &template, nil
	}

	if !autoCreate {
		return nil, ErrNoTemplateConfigured
	}

	template = models.CertificateTemplate{
		Name:            "Default Template",
		IsDefault:       true,
		IsActive:        true,
		BackgroundColor: "#ffffff",
	}
	if err := s.Db.Create(&template).Error; err != nil {
		return nil, err
	}
	return &template, nil
}

// resolveIssuer returns the display name/title printed on the certificate:
// course override first, then the batch trainer, else blank
func (s *CertificateService) resolveIssuer(course *models.Course, batchID *uint) (string, string) {
	if course.CertIssuerName != "" {
		return course.CertIssuerName, course.CertIssuerTitle
	}

	if batchID != nil {
		var batch models.Batch
		if err := s.Db.Preload("Trainer").First(&batch, *batchID).Error; err == nil {
			if batch.Trainer != nil {
				return batch.Trainer.Name, batch.Trainer.Title
			}
		}
	}

	return "", ""
}

// generateVerificationNumber builds a unique CERT-<YYYYMMDD>-<6 base36>
// number, retrying against the store; after 10 collisions it falls back to a
// timestamp form that is unique by construction.
func (s *CertificateService) generateVerificationNumber() string {
	for attempts := 0; attempts < 10; attempts++ {
		candidate := fmt.Sprintf("CERT-%s-%s", time.Now().Format("20060102"), utils.RandomBase36(6))

		var count int64
		s.Db.Model(&models.Certificate{}).Where("verification_number = ?", candidate).Count(&count)
		if count == 0 {
			return candidate
		}
	}
	return fmt.Sprintf("CERT-%d-%s", time.Now().UnixMilli(), utils.RandomBase36(6))
}
