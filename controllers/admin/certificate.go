package adminController

import (
	"errors"
	"strconv"
	"time"

	"trainhub/database"
	"trainhub/middleware"
	"trainhub/models"
	"trainhub/services"
	adminValidator "trainhub/validators/admin"

	"github.com/gofiber/fiber/v2"
)

// GetAllCertificates lists issued certificates with status/course/search filters
func GetAllCertificates(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := database.Database.Db.Model(&models.Certificate{})

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if courseID := c.Query("course_id"); courseID != "" {
		query = query.Where("course_id = ?", courseID)
	}
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("student_name LIKE ? OR course_name LIKE ? OR verification_number LIKE ?", like, like, like)
	}

	var total int64
	query.Count(&total)

	var certificates []models.Certificate
	if err := query.
		Preload("Student").
		Preload("Template").
		Order("created_at desc").
		Offset((page - 1) * limit).Limit(limit).
		Find(&certificates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", fiber.Map{
		"certificates": certificates,
		"pagination": fiber.Map{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

// CreateCertificate issues a certificate by hand. Unlike automatic issuance
// this fails when no certificate template is configured.
func CreateCertificate(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCertificate").(*adminValidator.CreateCertificateRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	completionDate := time.Now()
	if reqData.CompletionDate != "" {
		if parsed, err := time.Parse(time.RFC3339, reqData.CompletionDate); err == nil {
			completionDate = parsed
		} else if parsed, err := time.Parse("2006-01-02", reqData.CompletionDate); err == nil {
			completionDate = parsed
		}
	}

	svc := services.NewCertificateService(database.Database.Db)
	certificate, err := svc.CreateManual(services.ManualCertificateRequest{
		StudentID:      reqData.StudentID,
		CourseID:       reqData.CourseID,
		BatchID:        reqData.BatchID,
		StudentName:    reqData.StudentName,
		CourseName:     reqData.CourseName,
		CompletionDate: completionDate,
		IssuerName:     reqData.IssuerName,
		IssuerTitle:    reqData.IssuerTitle,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrStudentNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not found!", nil)
		case errors.Is(err, services.ErrCourseNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		case errors.Is(err, services.ErrBatchNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Batch not found!", nil)
		case errors.Is(err, services.ErrNoTemplateConfigured):
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No certificate template configured. Create a template first!", nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create certificate!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Certificate created successfully!", fiber.Map{
		"certificate": certificate,
	})
}

// UpdateCertificate edits an issued certificate. Re-activating is refused
// when another active certificate already covers the same student and course.
func UpdateCertificate(c *fiber.Ctx) error {
	id := c.Locals("paramID").(uint)

	reqData, ok := c.Locals("validatedCertificateUpdate").(*adminValidator.UpdateCertificateRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db
	var certificate models.Certificate
	if err := db.First(&certificate, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
	}

	fields := map[string]interface{}{}
	if reqData.Status != nil {
		if *reqData.Status == models.CertificateStatusActive &&
			certificate.Status != models.CertificateStatusActive &&
			certificate.CourseID != nil {
			var conflict int64
			db.Model(&models.Certificate{}).
				Where("student_id = ? AND course_id = ? AND status = ? AND id <> ?",
					certificate.StudentID, *certificate.CourseID, models.CertificateStatusActive, certificate.ID).
				Count(&conflict)
			if conflict > 0 {
				return middleware.JsonResponse(c, fiber.StatusConflict, false, "An active certificate already exists for this student and course!", nil)
			}
		}
		fields["status"] = *reqData.Status
	}
	if reqData.StudentName != nil {
		fields["student_name"] = *reqData.StudentName
	}
	if reqData.CourseName != nil {
		fields["course_name"] = *reqData.CourseName
	}
	if reqData.IssuerName != nil {
		fields["issuer_name"] = *reqData.IssuerName
	}
	if reqData.IssuerTitle != nil {
		fields["issuer_title"] = *reqData.IssuerTitle
	}
	if reqData.TemplateID != nil {
		fields["template_id"] = *reqData.TemplateID
	}

	if len(fields) > 0 {
		if err := db.Model(&certificate).Updates(fields).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update certificate!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate updated successfully!", fiber.Map{
		"certificate": certificate,
	})
}

// RevokeCertificate marks a certificate revoked. The row stays for audit and
// public verification reports the revoked status.
func RevokeCertificate(c *fiber.Ctx) error {
	id := c.Locals("paramID").(uint)

	db := database.Database.Db
	var certificate models.Certificate
	if err := db.First(&certificate, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
	}

	if err := db.Model(&certificate).
		Update("status", models.CertificateStatusRevoked).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to revoke certificate!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate revoked!", fiber.Map{
		"certificate": certificate,
	})
}

// GetAllTemplates lists certificate templates
func GetAllTemplates(c *fiber.Ctx) error {
	var templates []models.CertificateTemplate
	if err := database.Database.Db.
		Order("is_default desc, created_at desc").
		Find(&templates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch templates!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Templates fetched successfully!", fiber.Map{
		"templates": templates,
	})
}

// CreateTemplate adds a certificate template. Saving with isDefault set
// clears the default flag on every other template.
func CreateTemplate(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedTemplate").(*adminValidator.TemplateRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	template := models.CertificateTemplate{
		Name:            reqData.Name,
		Description:     reqData.Description,
		BackgroundImage: reqData.BackgroundImage,
		BackgroundColor: reqData.BackgroundColor,
		LogoURL:         reqData.LogoURL,
		IsDefault:       reqData.IsDefault,
		IsActive:        true,
	}
	if reqData.BackgroundColor == "" {
		template.BackgroundColor = "#ffffff"
	}
	if reqData.IsActive != nil {
		template.IsActive = *reqData.IsActive
	}

	if err := database.Database.Db.Create(&template).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create template!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Template created successfully!", fiber.Map{
		"template": template,
	})
}

// UpdateTemplate edits a certificate template
func UpdateTemplate(c *fiber.Ctx) error {
	id := c.Locals("paramID").(uint)

	reqData, ok := c.Locals("validatedTemplate").(*adminValidator.TemplateRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db
	var template models.CertificateTemplate
	if err := db.First(&template, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Template not found!", nil)
	}

	template.Name = reqData.Name
	template.Description = reqData.Description
	template.BackgroundImage = reqData.BackgroundImage
	template.LogoURL = reqData.LogoURL
	template.IsDefault = reqData.IsDefault
	if reqData.BackgroundColor != "" {
		template.BackgroundColor = reqData.BackgroundColor
	}
	if reqData.IsActive != nil {
		template.IsActive = *reqData.IsActive
	}

	if err := db.Save(&template).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update template!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Template updated successfully!", fiber.Map{
		"template": template,
	})
}

// DeleteTemplate deactivates a template. Certificates already issued with it
// keep their reference.
func DeleteTemplate(c *fiber.Ctx) error {
	id := c.Locals("paramID").(uint)

	db := database.Database.Db
	var template models.CertificateTemplate
	if err := db.First(&template, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Template not found!", nil)
	}

	template.IsActive = false
	template.IsDefault = false
	if err := db.Save(&template).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete template!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Template deleted successfully!", nil)
}
