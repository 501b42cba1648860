package services

import (
	"fmt"
	"math/rand"
	"testing"

	"trainhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateEnrollmentStartsPending(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReconciliationService(db)

	course := createCourse(t, db, "go-basics", 5000)
	batch := createBatch(t, db, course.ID, 10)
	student := createStudent(t, db, "alice")

	enrollment, err := svc.CreateEnrollment(student.ID, batch.ID, models.PaymentMethodPayLater, "", 0)
	require.NoError(t, err)

	assert.Equal(t, models.PaymentStatusPending, enrollment.PaymentStatus)
	assert.Equal(t, 0, batchCounter(t, db, batch.ID))
}

func TestCreateEnrollmentDuplicateRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReconciliationService(db)

	course := createCourse(t, db, "go-basics", 5000)
	batch := createBatch(t, db, course.ID, 10)
	student := createStudent(t, db, "alice")

	_, err := svc.CreateEnrollment(student.ID, batch.ID, models.PaymentMethodPayLater, "", 0)
	require.NoError(t, err)

	_, err = svc.CreateEnrollment(student.ID, batch.ID, models.PaymentMethodBkash, "TXN1", 0)
	assert.ErrorIs(t, err, ErrDuplicateEnrollment)
}

func TestCreateEnrollmentBatchStateChecks(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReconciliationService(db)

	course := createCourse(t, db, "go-basics", 5000)
	batch := createBatch(t, db, course.ID, 10)
	student := createStudent(t, db, "alice")

	_, err := svc.CreateEnrollment(student.ID, 9999, models.PaymentMethodPayLater, "", 0)
	assert.ErrorIs(t, err, ErrBatchNotFound)

	require.NoError(t, db.Model(batch).Update("status", models.BatchStatusCompleted).Error)
	_, err = svc.CreateEnrollment(student.ID, batch.ID, models.PaymentMethodPayLater, "", 0)
	assert.ErrorIs(t, err, ErrBatchNotEnrollable)
}

func TestConfirmPaymentIdempotent(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReconciliationService(db)

	course := createCourse(t, db, "go-basics", 5000)
	batch := createBatch(t, db, course.ID, 10)
	student := createStudent(t, db, "alice")

	_, err := svc.CreateEnrollment(student.ID, batch.ID, models.PaymentMethodSSLCommerz, "TXN100", 0)
	require.NoError(t, err)

	result, err := svc.ConfirmPayment("TXN100", models.PaymentMethodSSLCommerz)
	require.NoError(t, err)
	require.NotNil(t, result.Enrollment)
	assert.Equal(t, models.PaymentStatusPaid, result.Enrollment.PaymentStatus)
	assert.Equal(t, 5000.0, result.Enrollment.AmountPaid)
	assert.Equal(t, 1, batchCounter(t, db, batch.ID))

	// A duplicate gateway callback must not move the counter again
	result, err = svc.ConfirmPayment("TXN100", models.PaymentMethodSSLCommerz)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, result.Enrollment.PaymentStatus)
	assert.Equal(t, 1, batchCounter(t, db, batch.ID))
}

func TestConfirmPaymentUsesDiscountPrice(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReconciliationService(db)

	course := createCourse(t, db, "go-basics", 5000)
	require.NoError(t, db.Model(course).Update("discount_price", 3500).Error)
	batch := createBatch(t, db, course.ID, 10)
	student := createStudent(t, db, "alice")

	_, err := svc.CreateEnrollment(student.ID, batch.ID, models.PaymentMethodBkash, "TXN200", 0)
	require.NoError(t, err)

	result, err := svc.ConfirmPayment("TXN200", models.PaymentMethodBkash)
	require.NoError(t, err)
	assert.Equal(t, 3500.0, result.Enrollment.AmountPaid)
}

func TestConfirmPaymentUnknownTransaction(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReconciliationService(db)

	_, err := svc.ConfirmPayment("TXN-missing", models.PaymentMethodBkash)
	assert.ErrorIs(t, err, ErrTransactionNotFound)
}

func TestConfirmFailDoesNotOverridePaid(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReconciliationService(db)

	course := createCourse(t, db, "go-basics", 5000)
	batch := createBatch(t, db, course.ID, 10)
	student := createStudent(t, db, "alice")

	_, err := svc.CreateEnrollment(student.ID, batch.ID, models.PaymentMethodSSLCommerz, "TXN300", 0)
	require.NoError(t, err)

	_, err = svc.ConfirmPayment("TXN300", models.PaymentMethodSSLCommerz)
	require.NoError(t, err)

	// Late fail signal after a successful confirmation
	result, err := svc.ConfirmFail("TXN300")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, result.Enrollment.PaymentStatus)
	assert.Equal(t, 1, batchCounter(t, db, batch.ID))
}

func TestConfirmFailMarksPendingFailed(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReconciliationService(db)

	course := createCourse(t, db, "go-basics", 5000)
	batch := createBatch(t, db, course.ID, 10)
	student := createStudent(t, db, "alice")

	_, err := svc.CreateEnrollment(student.ID, batch.ID, models.PaymentMethodBkash, "TXN400", 0)
	require.NoError(t, err)

	result, err := svc.ConfirmFail("TXN400")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusFailed, result.Enrollment.PaymentStatus)
	assert.Equal(t, 0, batchCounter(t, db, batch.ID))
}

func TestBatchCapacityEdge(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReconciliationService(db)

	course := createCourse(t, db, "go-basics", 5000)
	batch := createBatch(t, db, course.ID, 2)

	for i := 0; i < 2; i++ {
		student := createStudent(t, db, fmt.Sprintf("student%d", i))
		tranID := fmt.Sprintf("TXN-cap-%d", i)
		_, err := svc.CreateEnrollment(student.ID, batch.ID, models.PaymentMethodSSLCommerz, tranID, 0)
		require.NoError(t, err)
		_, err = svc.ConfirmPayment(tranID, models.PaymentMethodSSLCommerz)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, batchCounter(t, db, batch.ID))

	late := createStudent(t, db, "latecomer")
	_, err := svc.CreateEnrollment(late.ID, batch.ID, models.PaymentMethodPayLater, "", 0)
	assert.ErrorIs(t, err, ErrBatchFull)
}

func TestPayLaterAdminApprovalMovesCounter(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReconciliationService(db)

	course := createCourse(t, db, "go-basics", 5000)
	batch := createBatch(t, db, course.ID, 10)
	student := createStudent(t, db, "alice")

	enrollment, err := svc.CreateEnrollment(student.ID, batch.ID, models.PaymentMethodPayLater, "", 0)
	require.NoError(t, err)
	assert.Equal(t, 0, batchCounter(t, db, batch.ID))

	paid := models.PaymentStatusPaid
	amount := 5000.0
	updated, err := svc.AdminUpdateEnrollment(enrollment.ID, EnrollmentUpdate{
		PaymentStatus: &paid,
		AmountPaid:    &amount,
	})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, updated.PaymentStatus)
	assert.Equal(t, 1, batchCounter(t, db, batch.ID))

	// Refund releases the seat
	refunded := models.PaymentStatusRefunded
	updated, err = svc.AdminUpdateEnrollment(enrollment.ID, EnrollmentUpdate{PaymentStatus: &refunded})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusRefunded, updated.PaymentStatus)
	assert.Equal(t, 0, batchCounter(t, db, batch.ID))
}

func TestAdminUpdateWithoutStatusChange(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReconciliationService(db)

	course := createCourse(t, db, "go-basics", 5000)
	batch := createBatch(t, db, course.ID, 10)
	student := createStudent(t, db, "alice")

	enrollment, err := svc.CreateEnrollment(student.ID, batch.ID, models.PaymentMethodPayLater, "", 0)
	require.NoError(t, err)

	method := models.PaymentMethodManual
	tranID := "OFFLINE-1"
	updated, err := svc.AdminUpdateEnrollment(enrollment.ID, EnrollmentUpdate{
		PaymentMethod: &method,
		TransactionID: &tranID,
	})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentMethodManual, updated.PaymentMethod)
	assert.Equal(t, "OFFLINE-1", updated.TransactionID)
	assert.Equal(t, models.PaymentStatusPending, updated.PaymentStatus)
	assert.Equal(t, 0, batchCounter(t, db, batch.ID))
}

func TestAdminUpdateInvalidStatus(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReconciliationService(db)

	course := createCourse(t, db, "go-basics", 5000)
	batch := createBatch(t, db, course.ID, 10)
	student := createStudent(t, db, "alice")

	enrollment, err := svc.CreateEnrollment(student.ID, batch.ID, models.PaymentMethodPayLater, "", 0)
	require.NoError(t, err)

	bad := "rejected"
	_, err = svc.AdminUpdateEnrollment(enrollment.ID, EnrollmentUpdate{PaymentStatus: &bad})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

// TestCounterMatchesLedgerUnderRandomSequence drives a random mix of
// confirmations, failures and admin overrides and checks that the maintained
// counter always equals the recomputed paid count.
func TestCounterMatchesLedgerUnderRandomSequence(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReconciliationService(db)

	course := createCourse(t, db, "go-basics", 5000)
	batch := createBatch(t, db, course.ID, 100)

	rng := rand.New(rand.NewSource(42))

	var enrollmentIDs []uint
	for i := 0; i < 30; i++ {
		student := createStudent(t, db, fmt.Sprintf("rand%d", i))
		tranID := fmt.Sprintf("TXN-rand-%d", i)
		enrollment, err := svc.CreateEnrollment(student.ID, batch.ID, models.PaymentMethodSSLCommerz, tranID, 0)
		require.NoError(t, err)
		enrollmentIDs = append(enrollmentIDs, enrollment.ID)
	}

	statuses := []string{
		models.PaymentStatusPending, models.PaymentStatusPaid,
		models.PaymentStatusFailed, models.PaymentStatusRefunded,
	}

	for step := 0; step < 200; step++ {
		i := rng.Intn(len(enrollmentIDs))
		tranID := fmt.Sprintf("TXN-rand-%d", i)

		switch rng.Intn(3) {
		case 0:
			_, err := svc.ConfirmPayment(tranID, models.PaymentMethodSSLCommerz)
			require.NoError(t, err)
		case 1:
			_, err := svc.ConfirmFail(tranID)
			require.NoError(t, err)
		case 2:
			status := statuses[rng.Intn(len(statuses))]
			_, err := svc.AdminUpdateEnrollment(enrollmentIDs[i], EnrollmentUpdate{PaymentStatus: &status})
			require.NoError(t, err)
		}

		paidCount, err := svc.RecountBatch(batch.ID)
		require.NoError(t, err)
		require.Equal(t, int(paidCount), batchCounter(t, db, batch.ID), "counter drifted at step %d", step)
	}
}

func TestLibraryPurchaseUpsert(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReconciliationService(db)

	student := createStudent(t, db, "alice")
	item := models.LibraryItem{Title: "Go Handbook", Slug: "go-handbook", Price: 450, Currency: "BDT"}
	require.NoError(t, db.Create(&item).Error)

	first, err := svc.UpsertLibraryPurchase(student.ID, item.ID, PurchaseRequest{
		PaymentMethod: models.PaymentMethodBkash,
		TransactionID: "BK123",
		PhoneNumber:   "01700000000",
	})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPending, first.PaymentStatus)
	assert.Equal(t, 450.0, first.Amount)
	assert.Equal(t, "BK123", first.TransactionID)

	// Re-submitting lands on the same row and resets it for review
	second, err := svc.UpsertLibraryPurchase(student.ID, item.ID, PurchaseRequest{
		PaymentMethod: models.PaymentMethodNagad,
		TransactionID: "NG456",
		PhoneNumber:   "01800000000",
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, models.PaymentMethodNagad, second.PaymentMethod)
	assert.Equal(t, "NG456", second.TransactionID)

	var total int64
	db.Model(&models.LibraryPurchase{}).Count(&total)
	assert.Equal(t, int64(1), total)
}

func TestLibraryPurchasePayLaterClearsTransaction(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReconciliationService(db)

	student := createStudent(t, db, "alice")
	item := models.LibraryItem{Title: "Go Handbook", Slug: "go-handbook", Price: 450, Currency: "BDT"}
	require.NoError(t, db.Create(&item).Error)

	purchase, err := svc.UpsertLibraryPurchase(student.ID, item.ID, PurchaseRequest{
		PaymentMethod: models.PaymentMethodPayLater,
		TransactionID: "should-be-dropped",
		PhoneNumber:   "01700000000",
	})
	require.NoError(t, err)
	assert.Empty(t, purchase.TransactionID)
	assert.Empty(t, purchase.PhoneNumber)
}

func TestLibraryPurchaseFreeItemRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReconciliationService(db)

	student := createStudent(t, db, "alice")
	item := models.LibraryItem{Title: "Free Guide", Slug: "free-guide", Price: 0}
	require.NoError(t, db.Create(&item).Error)

	_, err := svc.UpsertLibraryPurchase(student.ID, item.ID, PurchaseRequest{
		PaymentMethod: models.PaymentMethodManual,
		TransactionID: "X",
		PhoneNumber:   "0",
	})
	assert.ErrorIs(t, err, ErrItemFree)
}

func TestSetLibraryPurchaseStatusAudit(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReconciliationService(db)

	student := createStudent(t, db, "alice")
	admin := createStudent(t, db, "admin")
	item := models.LibraryItem{Title: "Go Handbook", Slug: "go-handbook", Price: 450}
	require.NoError(t, db.Create(&item).Error)

	purchase, err := svc.UpsertLibraryPurchase(student.ID, item.ID, PurchaseRequest{
		PaymentMethod: models.PaymentMethodManual,
		TransactionID: "M1",
		PhoneNumber:   "01700000000",
	})
	require.NoError(t, err)

	approved, err := svc.SetLibraryPurchaseStatus(purchase.ID, models.PaymentStatusPaid, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, approved.PaymentStatus)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, admin.ID, *approved.ApprovedBy)
	assert.NotNil(t, approved.ApprovedAt)

	_, err = svc.SetLibraryPurchaseStatus(purchase.ID, "refunded", admin.ID)
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.SetLibraryPurchaseStatus(9999, models.PaymentStatusPaid, admin.ID)
	assert.ErrorIs(t, err, ErrPurchaseNotFound)
}

func TestConfirmPaymentOnLibraryPurchase(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReconciliationService(db)

	student := createStudent(t, db, "alice")
	item := models.LibraryItem{Title: "Go Handbook", Slug: "go-handbook", Price: 450}
	require.NoError(t, db.Create(&item).Error)

	_, err := svc.UpsertLibraryPurchase(student.ID, item.ID, PurchaseRequest{
		PaymentMethod: models.PaymentMethodBkash,
		TransactionID: "TXN-lib-1",
		PhoneNumber:   "01700000000",
	})
	require.NoError(t, err)

	result, err := svc.ConfirmPayment("TXN-lib-1", models.PaymentMethodBkash)
	require.NoError(t, err)
	require.NotNil(t, result.Purchase)
	assert.Nil(t, result.Enrollment)
	assert.Equal(t, models.PaymentStatusPaid, result.Purchase.PaymentStatus)
	// Gateway approval carries no admin identity
	assert.Nil(t, result.Purchase.ApprovedBy)
	assert.NotNil(t, result.Purchase.ApprovedAt)
}
