package jobs

import (
	"context"

	"github.com/Poscom2010/Fleetrack-sub000/internal/logger"
)

// SendServiceDueDigests emails each configured company a ranked list of its
// vehicles that are due for service.
func (jr *JobRunner) SendServiceDueDigests() {
	jr.runWithRecovery("SendServiceDueDigests", func() {
		ctx := context.Background()
		sched := jr.config.Scheduler

		if sched.DigestRecipient == "" {
			logger.Warn("No digest recipient configured, skipping")
			return
		}

		sent := 0
		for _, companyID := range sched.DigestCompanyIDs {
			due, err := jr.fleet.VehiclesDue(ctx, companyID)
			if err != nil {
				logger.Error("Failed to list due vehicles", "company_id", companyID, "error", err)
				continue
			}
			if len(due) == 0 {
				logger.Debug("No vehicles due", "company_id", companyID)
				continue
			}

			if err := jr.email.SendServiceDueDigest(ctx, sched.DigestRecipient, companyID, due); err != nil {
				logger.Error("Failed to send service-due digest",
					"company_id", companyID, "recipient", sched.DigestRecipient, "error", err)
				continue
			}

			sent++
			logger.Debug("Sent service-due digest", "company_id", companyID, "vehicles", len(due))
		}

		logger.Info("Service-due digests sent", "count", sent)
	})
}

// SendOverdueAlerts emails an alert for every vehicle that is past its
// service interval.
func (jr *JobRunner) SendOverdueAlerts() {
	jr.runWithRecovery("SendOverdueAlerts", func() {
		ctx := context.Background()
		sched := jr.config.Scheduler

		if sched.DigestRecipient == "" {
			logger.Warn("No digest recipient configured, skipping")
			return
		}

		count := 0
		for _, companyID := range sched.DigestCompanyIDs {
			due, err := jr.fleet.VehiclesDue(ctx, companyID)
			if err != nil {
				logger.Error("Failed to list due vehicles", "company_id", companyID, "error", err)
				continue
			}

			for _, vs := range due {
				if !vs.Status.IsOverdue {
					continue
				}
				err := jr.email.SendOverdueAlert(ctx, sched.DigestRecipient, vs.Vehicle.Registration, vs.Status)
				if err != nil {
					logger.Error("Failed to send overdue alert",
						"vehicle_id", vs.Vehicle.ID, "error", err)
					continue
				}
				count++
				logger.Debug("Sent overdue alert",
					"vehicle_id", vs.Vehicle.ID, "registration", vs.Vehicle.Registration)
			}
		}

		logger.Info("Overdue alerts sent", "count", count)
	})
}
