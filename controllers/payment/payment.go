package paymentController

import (
	"errors"
	"fmt"
	"log"

	"trainhub/config"
	"trainhub/database"
	"trainhub/middleware"
	"trainhub/models"
	"trainhub/services"
	"trainhub/utils"
	paymentValidator "trainhub/validators/payment"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// getGatewaySettings loads the singleton gateway settings row, creating it
// with defaults on first read
func getGatewaySettings(db *gorm.DB) (*models.PaymentGatewaySettings, error) {
	var settings models.PaymentGatewaySettings
	err := db.First(&settings).Error
	if err == gorm.ErrRecordNotFound {
		settings = models.PaymentGatewaySettings{PayLaterEnabled: true}
		if err := db.Create(&settings).Error; err != nil {
			return nil, err
		}
		return &settings, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// sslcommerzGateway builds the SSLCommerz adapter, preferring admin-managed
// settings over environment credentials
func sslcommerzGateway(settings *models.PaymentGatewaySettings) *utils.SSLCommerzGateway {
	storeID := settings.SSLCommerzStoreID
	storePassword := settings.SSLCommerzStorePassword
	if storeID == "" {
		storeID = config.AppConfig.SSLCommerzStoreID
		storePassword = config.AppConfig.SSLCommerzStorePassword
	}
	return utils.NewSSLCommerzGateway(storeID, storePassword, settings.SSLCommerzIsLive || config.AppConfig.SSLCommerzIsLive)
}

func bkashGateway(settings *models.PaymentGatewaySettings) *utils.BkashGateway {
	appKey := settings.BkashAppKey
	if appKey == "" {
		return utils.NewBkashGateway(
			config.AppConfig.BkashAppKey, config.AppConfig.BkashAppSecret,
			config.AppConfig.BkashUsername, config.AppConfig.BkashPassword,
			config.AppConfig.BkashIsLive)
	}
	return utils.NewBkashGateway(appKey, settings.BkashAppSecret,
		settings.BkashUsername, settings.BkashPassword, settings.BkashIsLive)
}

// GetPaymentMethods lists which payment methods are currently offered
func GetPaymentMethods(c *fiber.Ctx) error {
	settings, err := getGatewaySettings(database.Database.Db)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch payment methods!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment methods fetched successfully!", fiber.Map{
		"methods": fiber.Map{
			"pay_later":  fiber.Map{"enabled": settings.PayLaterEnabled},
			"sslcommerz": fiber.Map{"enabled": settings.SSLCommerzEnabled},
			"bkash":      fiber.Map{"enabled": settings.BkashEnabled},
		},
	})
}

// InitiatePayment opens a gateway checkout session for a course batch or a
// library item and records the pending ledger row carrying the generated
// transaction ID. The gateway later reports back through the confirm
// endpoints with that same ID.
func InitiatePayment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", userID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedInitiate").(*paymentValidator.InitiateRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db
	settings, err := getGatewaySettings(db)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load gateway settings!", nil)
	}

	if reqData.PaymentMethod == models.PaymentMethodSSLCommerz && !settings.SSLCommerzEnabled {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "SSLCommerz is coming soon!", nil)
	}
	if reqData.PaymentMethod == models.PaymentMethodBkash && !settings.BkashEnabled {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "bKash is coming soon!", nil)
	}

	isBook := reqData.ProductType == "book"

	var batch models.Batch
	var item models.LibraryItem
	productName := ""
	productCategory := "Education"

	if isBook {
		query := db.Where("is_deleted = false")
		if reqData.ItemID > 0 {
			query = query.Where("id = ?", reqData.ItemID)
		} else {
			query = query.Where("slug = ?", reqData.ItemSlug)
		}
		if err := query.First(&item).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Book not found!", nil)
		}
		productName = item.Title
		productCategory = "Book"
	} else {
		if err := db.Where("id = ? AND is_deleted = false", reqData.BatchID).
			Preload("Course").First(&batch).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Batch not found!", nil)
		}
		productName = batch.Course.Title
	}

	tranID := utils.GenerateTransactionID()

	baseURL := config.AppConfig.FrontendURL
	successURL := fmt.Sprintf("%s/payments/success?tranId=%s&method=%s", baseURL, tranID, reqData.PaymentMethod)
	failURL := fmt.Sprintf("%s/payments/fail?tranId=%s&method=%s", baseURL, tranID, reqData.PaymentMethod)
	cancelURL := fmt.Sprintf("%s/checkout?course=%s&batch=%d", baseURL, reqData.CourseSlug, reqData.BatchID)
	if isBook {
		cancelURL = fmt.Sprintf("%s/checkout?type=book&slug=%s", baseURL, reqData.ItemSlug)
	}

	// Record the pending ledger row before handing the customer to the
	// gateway, so the callback always finds its transaction.
	svc := services.NewReconciliationService(db)
	if isBook {
		_, err := svc.UpsertLibraryPurchase(userID, item.ID, services.PurchaseRequest{
			PaymentMethod: reqData.PaymentMethod,
			TransactionID: tranID,
			PhoneNumber:   user.Phone,
		})
		if err != nil {
			if errors.Is(err, services.ErrItemFree) {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "This item is free. No purchase required!", nil)
			}
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record purchase!", nil)
		}
	} else {
		_, err := svc.CreateEnrollment(userID, batch.ID, reqData.PaymentMethod, tranID, 0)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrBatchNotEnrollable):
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Cannot enroll in this batch!", nil)
			case errors.Is(err, services.ErrBatchFull):
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Batch is full!", nil)
			case errors.Is(err, services.ErrDuplicateEnrollment):
				return middleware.JsonResponse(c, fiber.StatusConflict, false, "Already enrolled in this batch!", nil)
			default:
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create enrollment!", nil)
			}
		}
	}

	if reqData.PaymentMethod == models.PaymentMethodSSLCommerz {
		session := sslcommerzGateway(settings).GenerateSession(utils.SSLCommerzOrder{
			TotalAmount:     reqData.Amount,
			Currency:        "BDT",
			TranID:          tranID,
			SuccessURL:      successURL,
			FailURL:         failURL,
			CancelURL:       cancelURL,
			CustomerName:    user.Name,
			CustomerEmail:   user.Email,
			CustomerPhone:   user.Phone,
			ProductName:     productName,
			ProductCategory: productCategory,
		})

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment session created!", fiber.Map{
			"paymentUrl": session.PaymentURL,
			"tranId":     tranID,
		})
	}

	// bKash tokenized checkout
	paymentURL, err := bkashGateway(settings).CreatePayment(reqData.Amount, "BDT", tranID, successURL)
	if err != nil {
		// Sandbox credentials cannot reach the live API; fall back to the
		// hosted demo checkout page carrying the transaction ID.
		log.Printf("[PAYMENT] bKash payment create failed, using demo checkout: %v", err)
		paymentURL = fmt.Sprintf("%s/payments/bkash?tranId=%s", baseURL, tranID)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "bKash payment initiated!", fiber.Map{
		"paymentUrl": paymentURL,
		"tranId":     tranID,
	})
}

// ConfirmPayment transitions the ledger row behind a transaction to paid.
// Safe to call repeatedly: the reconciliation service guarantees a single
// seat increment per transaction.
func ConfirmPayment(c *fiber.Ctx) error {
	tranID := c.Locals("tranId").(string)
	method, _ := c.Locals("method").(string)

	if method != models.PaymentMethodSSLCommerz && method != models.PaymentMethodBkash {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid payment method!", nil)
	}

	db := database.Database.Db

	// Best-effort validator check when the redirect carries a valId. The
	// outcome is logged only; the ledger transition does not depend on it.
	if valID := c.Query("valId"); valID != "" && method == models.PaymentMethodSSLCommerz {
		if settings, err := getGatewaySettings(db); err == nil {
			status, err := sslcommerzGateway(settings).ValidatePayment(tranID, valID)
			if err != nil {
				log.Printf("[PAYMENT] SSLCommerz validation call failed for %s: %v", tranID, err)
			} else {
				log.Printf("[PAYMENT] SSLCommerz validator status for %s: %s", tranID, status)
			}
		}
	}

	svc := services.NewReconciliationService(db)
	result, err := svc.ConfirmPayment(tranID, method)
	if err != nil {
		if errors.Is(err, services.ErrTransactionNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Purchase not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Payment verification failed!", nil)
	}

	data := fiber.Map{"redirectTo": "/student/dashboard?success=payment_completed"}
	if result.Enrollment != nil {
		data["enrollmentId"] = result.Enrollment.ID
	}
	if result.Purchase != nil {
		data["libraryPurchaseId"] = result.Purchase.ID
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment confirmed!", data)
}

// ConfirmFail marks the transaction's ledger row as failed unless it has
// already been confirmed paid
func ConfirmFail(c *fiber.Ctx) error {
	tranID := c.Locals("tranId").(string)

	svc := services.NewReconciliationService(database.Database.Db)
	if _, err := svc.ConfirmFail(tranID); err != nil {
		if errors.Is(err, services.ErrTransactionNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Purchase not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to mark payment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment marked as failed!", fiber.Map{
		"redirectTo": "/student/dashboard?error=payment_failed",
	})
}
