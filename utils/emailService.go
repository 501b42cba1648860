package utils

import (
	"fmt"
	"log"

	"trainhub/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail delivers one HTML email through SendGrid. All product mail is
// fire-and-forget: callers log the returned error but never fail on it.
func SendEmail(toName, toEmail, subject, htmlBody string) error {
	if config.AppConfig.SendgridApiKey == "" {
		log.Printf("[EMAIL] Skipping %q to %s: SENDGRID_API_KEY not configured", subject, toEmail)
		return nil
	}

	from := mail.NewEmail("Training Platform", config.AppConfig.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendgridApiKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("[EMAIL] Error sending %q to %s: %v", subject, toEmail, err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("[EMAIL] SendGrid rejected %q to %s: %d %s", subject, toEmail, resp.StatusCode, resp.Body)
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}
	return nil
}

// SendEnrollmentConfirmation notifies a student that their enrollment was
// recorded and what happens next for their chosen payment method
func SendEnrollmentConfirmation(name, email, courseTitle, batchName, paymentMethod string) {
	body := fmt.Sprintf(`
		<h2>Enrollment received</h2>
		<p>Hi %s,</p>
		<p>Your enrollment in <strong>%s</strong> (batch %s) has been recorded.</p>
		<p>Payment method: <strong>%s</strong>. Your seat is confirmed once the payment is completed.</p>`,
		name, courseTitle, batchName, paymentMethod)

	if err := SendEmail(name, email, "Enrollment received: "+courseTitle, body); err != nil {
		log.Printf("[EMAIL] Enrollment confirmation to %s failed: %v", email, err)
	}
}

// SendCertificateIssued notifies a student that their completion certificate
// is ready, including the public verification number
func SendCertificateIssued(name, email, courseTitle, verificationNumber string) {
	body := fmt.Sprintf(`
		<h2>Congratulations, %s!</h2>
		<p>You have completed <strong>%s</strong> and your certificate has been issued.</p>
		<p>Verification number: <strong>%s</strong></p>`,
		name, courseTitle, verificationNumber)

	if err := SendEmail(name, email, "Your certificate for "+courseTitle, body); err != nil {
		log.Printf("[EMAIL] Certificate notification to %s failed: %v", email, err)
	}
}

// SendPendingPaymentReminder nudges a student whose pay-later enrollment or
// purchase is still awaiting payment
func SendPendingPaymentReminder(name, email, itemTitle string) {
	body := fmt.Sprintf(`
		<h2>Payment reminder</h2>
		<p>Hi %s,</p>
		<p>Your registration for <strong>%s</strong> is still awaiting payment.
		Please complete the payment to confirm your seat.</p>`,
		name, itemTitle)

	if err := SendEmail(name, email, "Payment reminder: "+itemTitle, body); err != nil {
		log.Printf("[EMAIL] Payment reminder to %s failed: %v", email, err)
	}
}
