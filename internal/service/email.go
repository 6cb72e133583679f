package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/akashad48/DnaikEquipRent-sub000/internal/config"
	"github.com/akashad48/DnaikEquipRent-sub000/internal/domain"
	"github.com/akashad48/DnaikEquipRent-sub000/internal/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey     string
	fromEmail  string
	fromName   string
	alertEmail string
	enabled    bool
}

func NewEmailService(cfg config.EmailConfig) EmailService {
	return &emailService{
		apiKey:     cfg.SendGridAPIKey,
		fromEmail:  cfg.FromEmail,
		fromName:   cfg.FromName,
		alertEmail: cfg.AlertEmail,
		enabled:    cfg.Enabled,
	}
}

func formatRupees(paise int64) string {
	sign := ""
	if paise < 0 {
		sign = "-"
		paise = -paise
	}
	return fmt.Sprintf("%s₹%d.%02d", sign, paise/100, paise%100)
}

func (s *emailService) send(subject, plainText string) error {
	if !s.enabled {
		logger.Debug("Email disabled, skipping send", "subject", subject)
		return nil
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail("", s.alertEmail)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *emailService) SendPaymentReminderDigest(ctx context.Context, rentals []domain.Rental) error {
	if len(rentals) == 0 {
		return nil
	}

	var b strings.Builder
	b.WriteString("Rentals awaiting payment:\n\n")
	for _, r := range rentals {
		fmt.Fprintf(&b, "Rental #%d  %s  balance %s\n",
			r.ID, r.CustomerName, formatRupees(r.BalancePaise()))
	}

	subject := fmt.Sprintf("Payment reminders: %d rentals due", len(rentals))
	return s.send(subject, b.String())
}

func (s *emailService) SendLongRentalAlert(ctx context.Context, rentals []domain.Rental, thresholdDays int) error {
	if len(rentals) == 0 {
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Active rentals older than %d days:\n\n", thresholdDays)
	for _, r := range rentals {
		fmt.Fprintf(&b, "Rental #%d  %s  started %s\n",
			r.ID, r.CustomerName, r.StartDate.Format("2006-01-02"))
	}

	subject := fmt.Sprintf("Long-running rentals: %d active", len(rentals))
	return s.send(subject, b.String())
}

func (s *emailService) SendPaymentReceipt(ctx context.Context, rental *domain.Rental, amountPaise int64) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Payment of %s recorded for rental #%d (%s).\n\n",
		formatRupees(amountPaise), rental.ID, rental.CustomerName)
	fmt.Fprintf(&b, "Paid to date: %s\n", formatRupees(rental.TotalPaidPaise()))
	if rental.IsSettled() {
		fmt.Fprintf(&b, "Balance: %s\nStatus: %s\n", formatRupees(rental.BalancePaise()), rental.Status)
	}

	subject := fmt.Sprintf("Payment received: rental #%d", rental.ID)
	return s.send(subject, b.String())
}

func (s *emailService) SendReturnSummary(ctx context.Context, rental *domain.Rental) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Rental #%d (%s) returned.\n\n", rental.ID, rental.CustomerName)
	if rental.TotalCalculatedPaise != nil {
		fmt.Fprintf(&b, "Total bill: %s\n", formatRupees(*rental.TotalCalculatedPaise))
	}
	fmt.Fprintf(&b, "Paid to date: %s\n", formatRupees(rental.TotalPaidPaise()))
	fmt.Fprintf(&b, "Balance: %s\nStatus: %s\n", formatRupees(rental.BalancePaise()), rental.Status)

	subject := fmt.Sprintf("Rental returned: #%d %s", rental.ID, rental.Status)
	return s.send(subject, b.String())
}
