package notifier

import (
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"

	"checkflow/models"
	"checkflow/pkg/queue"
)

// EmailSender delivers one rendered notification.
type EmailSender interface {
	Send(to, subject, body string) error
}

// SMTPSender sends mail through a gomail dialer.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPSender(host string, port int, username, password, from string) *SMTPSender {
	return &SMTPSender{dialer: gomail.NewDialer(host, port, username, password), from: from}
}

func (s *SMTPSender) Send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

// subjectFor maps a payment status to the notification subject line.
func subjectFor(status queue.PaymentStatus) string {
	switch status.Status {
	case queue.StatusSuccess:
		return "Payment Successful - " + status.PaymentID
	case queue.StatusFailed:
		return "Payment Failed - " + status.PaymentID
	case queue.StatusPending:
		return "Payment Pending - " + status.PaymentID
	default:
		return "Payment Status Update - " + status.PaymentID
	}
}

// bodyFor renders the plain-text notification body.
func bodyFor(status queue.PaymentStatus, customer models.Customer) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", customer.Name)
	switch status.Status {
	case queue.StatusSuccess:
		b.WriteString("Your payment has been processed successfully!\n\n")
	case queue.StatusFailed:
		b.WriteString("Unfortunately, your payment could not be processed.\n\n")
	default:
		b.WriteString("Your payment is currently being processed.\n\n")
	}
	b.WriteString("Payment Details:\n")
	fmt.Fprintf(&b, "- Payment ID: %s\n", status.PaymentID)
	fmt.Fprintf(&b, "- Amount: $%s\n", status.Amount.StringFixed(2))
	method := status.PaymentMethod
	if method == "" {
		method = "N/A"
	}
	fmt.Fprintf(&b, "- Payment Method: %s\n", method)
	fmt.Fprintf(&b, "- Date: %s\n", status.Timestamp.Format("2006-01-02 15:04:05"))
	if status.Status == queue.StatusFailed {
		reason := status.ErrorMessage
		if reason == "" {
			reason = "Unknown error"
		}
		fmt.Fprintf(&b, "- Reason: %s\n", reason)
		b.WriteString("\nPlease try again or contact support for assistance.\n")
	} else {
		b.WriteString("\nThank you for your payment.\n")
	}
	b.WriteString("\nBest regards,\nPayment Processing Team\n")
	return b.String()
}
