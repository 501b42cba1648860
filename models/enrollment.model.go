package models

import (
	"time"

	"gorm.io/gorm"
)

// Payment status values shared by Enrollment and LibraryPurchase
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
	PaymentStatusRejected = "rejected" // library purchases only
)

// Payment method values
const (
	PaymentMethodPayLater   = "pay_later"
	PaymentMethodManual     = "manual"
	PaymentMethodSSLCommerz = "sslcommerz"
	PaymentMethodBkash      = "bkash"
	PaymentMethodNagad      = "nagad"
	PaymentMethodRocket     = "rocket"
	PaymentMethodOther      = "other"
)

// Enrollment tracks one student's claim on one batch seat together with its
// payment record. Rows are never hard-deleted.
type Enrollment struct {
	gorm.Model
	StudentID     uint      `json:"student_id" gorm:"index:idx_enroll_student_batch,unique;not null"`
	BatchID       uint      `json:"batch_id" gorm:"index:idx_enroll_student_batch,unique;not null"`
	PaymentStatus string    `json:"payment_status" gorm:"type:varchar(20);default:'pending';index"`
	PaymentMethod string    `json:"payment_method" gorm:"type:varchar(20)"`
	TransactionID string    `json:"transaction_id" gorm:"index"`
	AmountPaid    float64   `json:"amount_paid" gorm:"default:0"`
	EnrolledAt    time.Time `json:"enrolled_at"`

	Student User  `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Batch   Batch `gorm:"foreignKey:BatchID" json:"batch,omitempty"`
}
