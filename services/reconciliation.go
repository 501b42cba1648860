package services

import (
	"time"

	"trainhub/models"

	"gorm.io/gorm"
)

// MethodPolicy captures the seat-accounting rule for one payment method.
// Methods that do not count toward capacity at creation consume a seat only
// once their payment transitions to paid.
type MethodPolicy struct {
	CountsTowardCapacityAtCreation bool
}

// enrollmentMethodPolicies maps each accepted payment method to its policy.
// New methods get a row here instead of inline branches.
var enrollmentMethodPolicies = map[string]MethodPolicy{
	models.PaymentMethodPayLater:   {CountsTowardCapacityAtCreation: false},
	models.PaymentMethodSSLCommerz: {CountsTowardCapacityAtCreation: false},
	models.PaymentMethodBkash:      {CountsTowardCapacityAtCreation: false},
}

// ReconciliationService applies payment-state transitions to the enrollment
// and library-purchase ledgers while keeping Batch.EnrolledCount equal to the
// number of paid enrollments per batch. All counter mutations are atomic
// store-side updates guarded by the status transition itself, so duplicate
// gateway callbacks can never double-count a seat.
type ReconciliationService struct {
	Db *gorm.DB
}

func NewReconciliationService(db *gorm.DB) *ReconciliationService {
	return &ReconciliationService{Db: db}
}

// EnrollmentUpdate carries the optional fields of an admin enrollment update
type EnrollmentUpdate struct {
	PaymentStatus *string
	PaymentMethod *string
	TransactionID *string
	AmountPaid    *float64
}

// PurchaseRequest carries a library purchase submission
type PurchaseRequest struct {
	PaymentMethod string
	TransactionID string
	PhoneNumber   string
	Note          string
}

// ConfirmResult reports which ledger a confirmation landed on. Exactly one of
// the two fields is set.
type ConfirmResult struct {
	Enrollment *models.Enrollment
	Purchase   *models.LibraryPurchase
}

// CreateEnrollment registers a student on a batch. The row always starts
// pending regardless of method; seat accounting follows the method policy
// table.
func (s *ReconciliationService) CreateEnrollment(studentID, batchID uint, method, transactionID string, amountPaid float64) (*models.Enrollment, error) {
	var batch models.Batch
	if err := s.Db.Where("id = ? AND is_deleted = false", batchID).First(&batch).Error; err != nil {
		return nil, ErrBatchNotFound
	}

	if !batch.Enrollable() {
		return nil, ErrBatchNotEnrollable
	}

	if batch.EnrolledCount >= batch.SeatLimit {
		return nil, ErrBatchFull
	}

	var existing models.Enrollment
	if err := s.Db.Where("student_id = ? AND batch_id = ?", studentID, batchID).First(&existing).Error; err == nil {
		return nil, ErrDuplicateEnrollment
	}

	enrollment := models.Enrollment{
		StudentID:     studentID,
		BatchID:       batchID,
		PaymentStatus: models.PaymentStatusPending,
		PaymentMethod: method,
		TransactionID: transactionID,
		AmountPaid:    amountPaid,
		EnrolledAt:    time.Now(),
	}

	if err := s.Db.Create(&enrollment).Error; err != nil {
		return nil, err
	}

	if enrollmentMethodPolicies[method].CountsTowardCapacityAtCreation {
		if err := s.incrementSeat(batchID, 1); err != nil {
			return nil, err
		}
	}

	return &enrollment, nil
}

// ConfirmPayment marks the ledger row behind a gateway transaction as paid.
// A transaction ID belongs to exactly one ledger; enrollments are checked
// first. Repeated confirmations for the same transaction are no-ops: the paid
// transition and the seat increment hang off one conditional update.
func (s *ReconciliationService) ConfirmPayment(transactionID, method string) (*ConfirmResult, error) {
	var enrollment models.Enrollment
	err := s.Db.Where("transaction_id = ?", transactionID).First(&enrollment).Error
	if err == nil {
		amount := s.resolveBatchPrice(enrollment.BatchID)

		res := s.Db.Model(&models.Enrollment{}).
			Where("id = ? AND payment_status <> ?", enrollment.ID, models.PaymentStatusPaid).
			Updates(map[string]interface{}{
				"payment_status": models.PaymentStatusPaid,
				"amount_paid":    amount,
			})
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 1 {
			if err := s.incrementSeat(enrollment.BatchID, 1); err != nil {
				return nil, err
			}
		}

		if err := s.Db.First(&enrollment, enrollment.ID).Error; err != nil {
			return nil, err
		}
		return &ConfirmResult{Enrollment: &enrollment}, nil
	}

	var purchase models.LibraryPurchase
	if err := s.Db.Where("transaction_id = ?", transactionID).First(&purchase).Error; err != nil {
		return nil, ErrTransactionNotFound
	}

	res := s.Db.Model(&models.LibraryPurchase{}).
		Where("id = ? AND payment_status <> ?", purchase.ID, models.PaymentStatusPaid).
		Updates(map[string]interface{}{
			"payment_status": models.PaymentStatusPaid,
			"approved_by":    nil,
			"approved_at":    time.Now(),
		})
	if res.Error != nil {
		return nil, res.Error
	}

	if err := s.Db.First(&purchase, purchase.ID).Error; err != nil {
		return nil, err
	}
	return &ConfirmResult{Purchase: &purchase}, nil
}

// ConfirmFail marks the ledger row behind a transaction as failed. Paid is
// sticky: a late fail signal never overrides a confirmed payment.
func (s *ReconciliationService) ConfirmFail(transactionID string) (*ConfirmResult, error) {
	var enrollment models.Enrollment
	if err := s.Db.Where("transaction_id = ?", transactionID).First(&enrollment).Error; err == nil {
		s.Db.Model(&models.Enrollment{}).
			Where("id = ? AND payment_status <> ?", enrollment.ID, models.PaymentStatusPaid).
			Update("payment_status", models.PaymentStatusFailed)

		if err := s.Db.First(&enrollment, enrollment.ID).Error; err != nil {
			return nil, err
		}
		return &ConfirmResult{Enrollment: &enrollment}, nil
	}

	var purchase models.LibraryPurchase
	if err := s.Db.Where("transaction_id = ?", transactionID).First(&purchase).Error; err != nil {
		return nil, ErrTransactionNotFound
	}
	s.Db.Model(&models.LibraryPurchase{}).
		Where("id = ? AND payment_status <> ?", purchase.ID, models.PaymentStatusPaid).
		Update("payment_status", models.PaymentStatusFailed)

	if err := s.Db.First(&purchase, purchase.ID).Error; err != nil {
		return nil, err
	}
	return &ConfirmResult{Purchase: &purchase}, nil
}

// AdminUpdateEnrollment applies an admin override to an enrollment. The seat
// counter moves only across the paid boundary: entering paid increments,
// leaving paid decrements, every other transition leaves it untouched.
func (s *ReconciliationService) AdminUpdateEnrollment(enrollmentID uint, upd EnrollmentUpdate) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	if err := s.Db.First(&enrollment, enrollmentID).Error; err != nil {
		return nil, ErrEnrollmentNotFound
	}

	fields := map[string]interface{}{}
	if upd.PaymentMethod != nil {
		fields["payment_method"] = *upd.PaymentMethod
	}
	if upd.TransactionID != nil {
		fields["transaction_id"] = *upd.TransactionID
	}
	if upd.AmountPaid != nil {
		fields["amount_paid"] = *upd.AmountPaid
	}

	if upd.PaymentStatus != nil {
		newStatus := *upd.PaymentStatus
		switch newStatus {
		case models.PaymentStatusPending, models.PaymentStatusPaid,
			models.PaymentStatusFailed, models.PaymentStatusRefunded:
		default:
			return nil, ErrInvalidStatus
		}
		fields["payment_status"] = newStatus

		oldStatus := enrollment.PaymentStatus
		// Guard on the previously read status so a concurrent transition
		// cannot be double-applied to the counter.
		res := s.Db.Model(&models.Enrollment{}).
			Where("id = ? AND payment_status = ?", enrollment.ID, oldStatus).
			Updates(fields)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 1 {
			if oldStatus != models.PaymentStatusPaid && newStatus == models.PaymentStatusPaid {
				if err := s.incrementSeat(enrollment.BatchID, 1); err != nil {
					return nil, err
				}
			}
			if oldStatus == models.PaymentStatusPaid && newStatus != models.PaymentStatusPaid {
				if err := s.incrementSeat(enrollment.BatchID, -1); err != nil {
					return nil, err
				}
			}
		}
	} else if len(fields) > 0 {
		if err := s.Db.Model(&models.Enrollment{}).Where("id = ?", enrollment.ID).Updates(fields).Error; err != nil {
			return nil, err
		}
	}

	if err := s.Db.First(&enrollment, enrollment.ID).Error; err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// UpsertLibraryPurchase records a purchase attempt for a paid library item.
// The (user, item) pair is unique: a repeat attempt resets the existing row
// back to pending with the new payment details.
func (s *ReconciliationService) UpsertLibraryPurchase(userID, itemID uint, req PurchaseRequest) (*models.LibraryPurchase, error) {
	var item models.LibraryItem
	if err := s.Db.Where("id = ? AND is_deleted = false", itemID).First(&item).Error; err != nil {
		return nil, ErrItemNotFound
	}
	if item.Price <= 0 {
		return nil, ErrItemFree
	}

	transactionID := req.TransactionID
	phoneNumber := req.PhoneNumber
	if req.PaymentMethod == models.PaymentMethodPayLater {
		transactionID = ""
		phoneNumber = ""
	}

	var purchase models.LibraryPurchase
	err := s.Db.Where(models.LibraryPurchase{UserID: userID, ItemID: itemID}).
		Assign(map[string]interface{}{
			"amount":         item.Price,
			"currency":       item.Currency,
			"payment_method": req.PaymentMethod,
			"payment_status": models.PaymentStatusPending,
			"transaction_id": transactionID,
			"phone_number":   phoneNumber,
			"note":           req.Note,
			"approved_by":    nil,
			"approved_at":    nil,
		}).
		FirstOrCreate(&purchase).Error
	if err != nil {
		return nil, err
	}

	if err := s.Db.First(&purchase, purchase.ID).Error; err != nil {
		return nil, err
	}
	return &purchase, nil
}

// SetLibraryPurchaseStatus is the admin approve/reject path. Library items
// are not seat-limited, so there is no counter side effect; only the status
// and approval audit fields move.
func (s *ReconciliationService) SetLibraryPurchaseStatus(purchaseID uint, status string, adminID uint) (*models.LibraryPurchase, error) {
	switch status {
	case models.PaymentStatusPending, models.PaymentStatusPaid,
		models.PaymentStatusFailed, models.PaymentStatusRejected:
	default:
		return nil, ErrInvalidStatus
	}

	var purchase models.LibraryPurchase
	if err := s.Db.First(&purchase, purchaseID).Error; err != nil {
		return nil, ErrPurchaseNotFound
	}

	fields := map[string]interface{}{"payment_status": status}
	if status != models.PaymentStatusPending {
		fields["approved_by"] = adminID
		fields["approved_at"] = time.Now()
	}

	if err := s.Db.Model(&models.LibraryPurchase{}).Where("id = ?", purchase.ID).Updates(fields).Error; err != nil {
		return nil, err
	}

	if err := s.Db.First(&purchase, purchase.ID).Error; err != nil {
		return nil, err
	}
	return &purchase, nil
}

// RecountBatch returns the ground-truth paid enrollment count for a batch
func (s *ReconciliationService) RecountBatch(batchID uint) (int64, error) {
	var count int64
	err := s.Db.Model(&models.Enrollment{}).
		Where("batch_id = ? AND payment_status = ?", batchID, models.PaymentStatusPaid).
		Count(&count).Error
	return count, err
}

// incrementSeat applies an atomic counter delta against the store so
// concurrent confirmations for different transactions cannot lose updates
func (s *ReconciliationService) incrementSeat(batchID uint, delta int) error {
	return s.Db.Model(&models.Batch{}).
		Where("id = ?", batchID).
		UpdateColumn("enrolled_count", gorm.Expr("enrolled_count + ?", delta)).Error
}

// resolveBatchPrice returns the effective course price for a batch, preferring
// the discount price when set
func (s *ReconciliationService) resolveBatchPrice(batchID uint) float64 {
	var batch models.Batch
	if err := s.Db.Preload("Course").First(&batch, batchID).Error; err != nil {
		return 0
	}
	if batch.Course.DiscountPrice > 0 {
		return batch.Course.DiscountPrice
	}
	return batch.Course.Price
}
