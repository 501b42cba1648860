package services

import "errors"

// Errors surfaced by the enrollment, payment and certificate services.
// Controllers translate these to HTTP responses; anything not listed here is
// an internal failure.
var (
	ErrBatchNotFound       = errors.New("batch not found")
	ErrBatchNotEnrollable  = errors.New("cannot enroll in this batch")
	ErrBatchFull           = errors.New("batch is full")
	ErrDuplicateEnrollment = errors.New("already enrolled in this batch")

	ErrEnrollmentNotFound  = errors.New("enrollment not found")
	ErrTransactionNotFound = errors.New("purchase not found")
	ErrInvalidStatus       = errors.New("invalid payment status")

	ErrItemNotFound     = errors.New("library item not found")
	ErrItemFree         = errors.New("this item is free, no purchase required")
	ErrPurchaseNotFound = errors.New("purchase not found")

	ErrCourseNotFound = errors.New("course not found")
	ErrNotEnrolled    = errors.New("enrollment with confirmed payment required")

	ErrNoTemplateConfigured = errors.New("no certificate template found")
	ErrStudentNotFound      = errors.New("student not found")
)
