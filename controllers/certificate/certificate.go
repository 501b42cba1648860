package certificateController

import (
	"trainhub/database"
	"trainhub/middleware"
	"trainhub/models"

	"github.com/gofiber/fiber/v2"
)

// GetMyCertificates lists the signed-in student's certificates, newest first
func GetMyCertificates(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var certificates []models.Certificate
	if err := database.Database.Db.
		Where("student_id = ?", userID).
		Preload("Course").
		Preload("Template").
		Order("created_at desc").
		Find(&certificates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", fiber.Map{
		"certificates": certificates,
	})
}

// VerifyCertificate is the public lookup by verification number. Revoked and
// pending certificates are reported by status rather than hidden.
func VerifyCertificate(c *fiber.Ctx) error {
	number := c.Params("verificationNumber")
	if number == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Verification number is required!", nil)
	}

	var certificate models.Certificate
	if err := database.Database.Db.
		Where("verification_number = ?", number).
		Preload("Course").
		First(&certificate).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
	}

	if certificate.Status != models.CertificateStatusActive {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Certificate is "+certificate.Status, nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate is valid!", fiber.Map{
		"verificationNumber": certificate.VerificationNumber,
		"studentName":        certificate.StudentName,
		"courseName":         certificate.CourseName,
		"completionDate":     certificate.CompletionDate,
		"issuedAt":           certificate.CreatedAt,
		"issuerName":         certificate.IssuerName,
		"issuerTitle":        certificate.IssuerTitle,
	})
}
