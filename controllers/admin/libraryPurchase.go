package adminController

import (
	"errors"
	"strconv"

	"trainhub/database"
	"trainhub/middleware"
	"trainhub/models"
	"trainhub/services"
	adminValidator "trainhub/validators/admin"

	"github.com/gofiber/fiber/v2"
)

// GetAllPurchases lists library purchases with status/item/search filters
func GetAllPurchases(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := database.Database.Db.Model(&models.LibraryPurchase{})

	if status := c.Query("payment_status"); status != "" {
		query = query.Where("payment_status = ?", status)
	}
	if itemID := c.Query("item_id"); itemID != "" {
		query = query.Where("item_id = ?", itemID)
	}
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Joins("JOIN users ON users.id = library_purchases.user_id").
			Where("users.name LIKE ? OR users.email LIKE ? OR library_purchases.transaction_id LIKE ?", like, like, like)
	}

	var total int64
	query.Count(&total)

	var purchases []models.LibraryPurchase
	if err := query.
		Preload("User").
		Preload("Item").
		Order("library_purchases.created_at desc").
		Offset((page - 1) * limit).Limit(limit).
		Find(&purchases).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch purchases!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Purchases fetched successfully!", fiber.Map{
		"purchases": purchases,
		"pagination": fiber.Map{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

// UpdatePurchase approves or rejects a library purchase, stamping the
// reviewing admin on approval
func UpdatePurchase(c *fiber.Ctx) error {
	adminID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	id := c.Locals("paramID").(uint)

	reqData, ok := c.Locals("validatedPurchaseUpdate").(*adminValidator.UpdatePurchaseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	svc := services.NewReconciliationService(database.Database.Db)
	purchase, err := svc.SetLibraryPurchaseStatus(id, reqData.PaymentStatus, adminID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPurchaseNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Purchase not found!", nil)
		case errors.Is(err, services.ErrInvalidStatus):
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid payment status!", nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update purchase!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Purchase updated successfully!", fiber.Map{
		"purchase": purchase,
	})
}
