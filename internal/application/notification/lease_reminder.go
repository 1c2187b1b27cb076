package notification

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/tenant"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/infrastructure/notification"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/infrastructure/scheduler"
	"go.uber.org/zap"
)

// DefaultReminderLeadDays are the days before lease end on which a reminder goes out
var DefaultReminderLeadDays = []int{30, 7}

// ExpiringLeaseFinder lists active tenants whose lease ends in [from, to)
type ExpiringLeaseFinder interface {
	FindLeasesEndingBetween(ctx context.Context, from, to time.Time) ([]*tenant.Tenant, error)
}

// LeaseReminderService emails tenants a fixed number of days before their
// lease ends. It runs as the daily lease reminder job.
type LeaseReminderService struct {
	leases   ExpiringLeaseFinder
	sender   notification.EmailSender
	leadDays []int
	logger   *zap.Logger
}

// NewLeaseReminderService creates a new LeaseReminderService.
// Empty leadDays falls back to DefaultReminderLeadDays.
func NewLeaseReminderService(leases ExpiringLeaseFinder, sender notification.EmailSender, leadDays []int, logger *zap.Logger) *LeaseReminderService {
	if len(leadDays) == 0 {
		leadDays = DefaultReminderLeadDays
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LeaseReminderService{
		leases:   leases,
		sender:   sender,
		leadDays: leadDays,
		logger:   logger,
	}
}

// Execute implements scheduler.JobExecutor
func (s *LeaseReminderService) Execute(ctx context.Context, job *scheduler.Job) error {
	sent, err := s.SendReminders(ctx, job.RunDate)
	s.logger.Info("Lease reminders processed",
		zap.String("job_id", job.ID.String()),
		zap.Time("run_date", job.RunDate),
		zap.Int("sent", sent),
		zap.Error(err))
	return err
}

// SendReminders sends the reminders due on day and returns how many went out.
// A failed email does not stop the others; all failures are returned joined.
func (s *LeaseReminderService) SendReminders(ctx context.Context, day time.Time) (int, error) {
	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())

	var (
		sent int
		errs []error
	)
	for _, lead := range s.leadDays {
		from := midnight.AddDate(0, 0, lead)
		tenants, err := s.leases.FindLeasesEndingBetween(ctx, from, from.AddDate(0, 0, 1))
		if err != nil {
			return sent, fmt.Errorf("find leases ending in %d days: %w", lead, err)
		}

		for _, t := range tenants {
			if strings.TrimSpace(t.Email) == "" {
				continue
			}
			if err := s.remind(ctx, t, lead); err != nil {
				errs = append(errs, err)
				continue
			}
			sent++
		}
	}
	return sent, errors.Join(errs...)
}

func (s *LeaseReminderService) remind(ctx context.Context, t *tenant.Tenant, lead int) error {
	var body strings.Builder
	fmt.Fprintf(&body, "Dear %s,\n\n", t.FullName())
	fmt.Fprintf(&body, "Your lease for unit %s ends on %s, in %d days.\n",
		t.Lease.UnitNumber, t.Lease.EndDate.Format("2006-01-02"), lead)
	body.WriteString("Please contact your landlord if you would like to extend it.\n")

	err := s.sender.Send(ctx, &notification.Email{
		To:       []string{t.Email},
		Subject:  fmt.Sprintf("Your lease for unit %s ends in %d days", t.Lease.UnitNumber, lead),
		TextBody: body.String(),
	})
	if err != nil {
		return fmt.Errorf("send lease reminder to tenant %s: %w", t.ID, err)
	}
	return nil
}
