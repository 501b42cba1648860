package libraryController

import (
	"errors"
	"strconv"

	"trainhub/database"
	"trainhub/middleware"
	"trainhub/models"
	"trainhub/services"
	libraryValidator "trainhub/validators/library"

	"github.com/gofiber/fiber/v2"
)

// GetAllItems lists library items with optional category/format/search filters
func GetAllItems(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := database.Database.Db.Model(&models.LibraryItem{}).Where("is_deleted = false")

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if format := c.Query("format"); format != "" {
		query = query.Where("format = ?", format)
	}
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("title LIKE ? OR author LIKE ?", like, like)
	}

	var total int64
	query.Count(&total)

	var items []models.LibraryItem
	if err := query.Order("created_at desc").
		Offset((page - 1) * limit).Limit(limit).
		Find(&items).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch library items!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Library items fetched successfully!", fiber.Map{
		"items": items,
		"pagination": fiber.Map{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

// GetItemBySlug returns one library item. When the caller is signed in the
// response also carries their purchase status for the item.
func GetItemBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")

	var item models.LibraryItem
	if err := database.Database.Db.
		Where("slug = ? AND is_deleted = false", slug).
		First(&item).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Library item not found!", nil)
	}

	data := fiber.Map{"item": item}

	if userID, ok := c.Locals("userId").(uint); ok {
		var purchase models.LibraryPurchase
		err := database.Database.Db.
			Where("user_id = ? AND item_id = ?", userID, item.ID).
			First(&purchase).Error
		if err == nil {
			data["purchaseStatus"] = purchase.PaymentStatus
		} else {
			data["purchaseStatus"] = nil
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Library item fetched successfully!", data)
}

// PurchaseItem submits a payment claim for a paid item. Re-submitting updates
// the existing purchase row and resets it to pending for review.
func PurchaseItem(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var item models.LibraryItem
	if err := database.Database.Db.
		Where("slug = ? AND is_deleted = false", c.Params("slug")).
		First(&item).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Library item not found!", nil)
	}

	reqData, ok := c.Locals("validatedPurchase").(*libraryValidator.PurchaseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	svc := services.NewReconciliationService(database.Database.Db)
	purchase, err := svc.UpsertLibraryPurchase(userID, item.ID, services.PurchaseRequest{
		PaymentMethod: reqData.PaymentMethod,
		TransactionID: reqData.TransactionID,
		PhoneNumber:   reqData.PhoneNumber,
		Note:          reqData.Note,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrItemNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Library item not found!", nil)
		case errors.Is(err, services.ErrItemFree):
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "This item is free. No purchase required!", nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit purchase!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Purchase submitted. Awaiting verification!", fiber.Map{
		"purchase": purchase,
	})
}

// GetMyPurchases lists the signed-in user's library purchases
func GetMyPurchases(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var purchases []models.LibraryPurchase
	if err := database.Database.Db.
		Where("user_id = ?", userID).
		Preload("Item").
		Order("created_at desc").
		Find(&purchases).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch purchases!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Purchases fetched successfully!", fiber.Map{
		"purchases": purchases,
	})
}
