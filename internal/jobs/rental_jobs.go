package jobs

import (
	"context"
	"time"

	"github.com/akashad48/DnaikEquipRent-sub000/internal/billing"
	"github.com/akashad48/DnaikEquipRent-sub000/internal/domain"
	"github.com/akashad48/DnaikEquipRent-sub000/internal/logger"
)

// SendPaymentReminders mails the staff alert address one digest of every
// settled rental still carrying an outstanding balance.
func (jr *JobRunner) SendPaymentReminders() {
	jr.runWithRecovery("SendPaymentReminders", func() {
		ctx := context.Background()

		rentals, err := jr.rentalRepo.ListByStatus(ctx, domain.RentalStatusPaymentDue)
		if err != nil {
			logger.Error("Failed to list payment-due rentals", "error", err)
			return
		}

		var due []domain.Rental
		for _, r := range rentals {
			if r.BalancePaise() > billing.ClosePaise {
				due = append(due, r)
			}
		}
		if len(due) == 0 {
			logger.Info("No rentals awaiting payment")
			return
		}

		if err := jr.email.SendPaymentReminderDigest(ctx, due); err != nil {
			logger.Error("Failed to send payment reminder digest", "error", err, "rentals", len(due))
			return
		}
		logger.Info("Payment reminder digest sent", "rentals", len(due))
	})
}

// SendLongRentalAlerts flags active rentals older than the configured
// threshold; these usually mean a return was never recorded.
func (jr *JobRunner) SendLongRentalAlerts() {
	jr.runWithRecovery("SendLongRentalAlerts", func() {
		ctx := context.Background()

		days := jr.config.Billing.LongRentalAlertDays
		cutoff := time.Now().AddDate(0, 0, -days)

		rentals, err := jr.rentalRepo.ListActiveStartedBefore(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to list long-running rentals", "error", err)
			return
		}
		if len(rentals) == 0 {
			logger.Info("No long-running rentals", "threshold_days", days)
			return
		}

		if err := jr.email.SendLongRentalAlert(ctx, rentals, days); err != nil {
			logger.Error("Failed to send long rental alert", "error", err, "rentals", len(rentals))
			return
		}
		logger.Info("Long rental alert sent", "rentals", len(rentals), "threshold_days", days)
	})
}
