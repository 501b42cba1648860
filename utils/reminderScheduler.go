package utils

import (
	"log"

	"trainhub/database"
	"trainhub/models"

	"github.com/jinzhu/now"
	"github.com/robfig/cron/v3"
)

// InitializeReminderScheduler starts the daily pending-payment reminder job
func InitializeReminderScheduler() *cron.Cron {
	log.Println("[SCHEDULER] Initializing payment reminder scheduler...")

	c := cron.New()

	// Run daily at 9 AM to remind students about unpaid pay-later registrations
	c.AddFunc("0 9 * * *", func() {
		log.Println("[SCHEDULER] Running daily pending payment check...")
		ProcessPendingPaymentReminders()
	})

	c.Start()
	log.Println("[SCHEDULER] Payment reminder scheduler started - runs daily at 9 AM")
	return c
}

// ProcessPendingPaymentReminders emails students whose pay-later enrollments
// or library purchases created before today are still pending. Read-only: no
// ledger state is ever transitioned here.
func ProcessPendingPaymentReminders() {
	db := database.Database.Db
	cutoff := now.BeginningOfDay()

	var enrollments []models.Enrollment
	if err := db.
		Where("payment_status = ? AND payment_method = ? AND created_at < ?",
			models.PaymentStatusPending, models.PaymentMethodPayLater, cutoff).
		Preload("Student").
		Preload("Batch.Course").
		Find(&enrollments).Error; err != nil {
		log.Printf("[SCHEDULER] Error fetching pending enrollments: %v", err)
		return
	}

	log.Printf("[SCHEDULER] Found %d pending pay-later enrollments", len(enrollments))
	for _, enrollment := range enrollments {
		SendPendingPaymentReminder(enrollment.Student.Name, enrollment.Student.Email, enrollment.Batch.Course.Title)
	}

	var purchases []models.LibraryPurchase
	if err := db.
		Where("payment_status = ? AND payment_method = ? AND created_at < ?",
			models.PaymentStatusPending, models.PaymentMethodPayLater, cutoff).
		Preload("User").
		Preload("Item").
		Find(&purchases).Error; err != nil {
		log.Printf("[SCHEDULER] Error fetching pending purchases: %v", err)
		return
	}

	log.Printf("[SCHEDULER] Found %d pending pay-later purchases", len(purchases))
	for _, purchase := range purchases {
		SendPendingPaymentReminder(purchase.User.Name, purchase.User.Email, purchase.Item.Title)
	}
}
