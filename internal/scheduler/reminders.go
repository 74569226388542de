package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/uida/property-portal/internal/billing"
	"github.com/uida/property-portal/internal/config"
	"github.com/uida/property-portal/internal/repository"
)

// ReminderSender delivers installment reminders. Satisfied by the email
// sender.
type ReminderSender interface {
	SendInstallmentReminder(to, name, propertyID string, dueDate time.Time, amount, lateFee decimal.Decimal, overdue bool) error
}

// ReminderScheduler runs a daily sweep over open installment plans and
// emails owners whose next installment is due soon or overdue.
type ReminderScheduler struct {
	repo   *repository.Repository
	sender ReminderSender
	log    *logrus.Logger
	spec   string
	window int // days before the due date a reminder goes out
	cron   *cron.Cron
}

// NewReminderScheduler creates the scheduler from configuration
func NewReminderScheduler(repo *repository.Repository, sender ReminderSender, log *logrus.Logger, cfg *config.Config) *ReminderScheduler {
	return &ReminderScheduler{
		repo:   repo,
		sender: sender,
		log:    log,
		spec:   cfg.ReminderCron,
		window: cfg.ReminderDays,
	}
}

// Start registers the sweep with cron and begins running it
func (s *ReminderScheduler) Start() error {
	s.cron = cron.New()
	if _, err := s.cron.AddFunc(s.spec, func() {
		if err := s.Sweep(time.Now()); err != nil {
			s.log.Errorf("Reminder sweep failed: %v", err)
		}
	}); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Infof("Reminder scheduler started (%s)", s.spec)
	return nil
}

// Stop halts the scheduler
func (s *ReminderScheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Sweep walks every open plan and sends a reminder for installments due
// within the window or already overdue. A failed send is logged and the
// sweep moves on; the next run retries naturally.
func (s *ReminderScheduler) Sweep(now time.Time) error {
	reminders, err := s.repo.FindOpenPlans()
	if err != nil {
		return err
	}

	sent := 0
	for _, rem := range reminders {
		if rem.Owner.Email == "" {
			continue
		}

		quote, err := billing.NextInstallment(billing.PlanTerms{
			PrincipalPerInstallment: rem.Plan.PrincipalPerInstallment.Decimal,
			InterestPerInstallment:  rem.Plan.InterestPerInstallment.Decimal,
			LateFeePerDay:           rem.Plan.LateFeePerDay.Decimal,
			IdealInstallments:       rem.Plan.IdealInstallments,
			InstallmentsPaid:        rem.Plan.InstallmentsPaid,
			FirstDueDate:            rem.Plan.FirstDueDate.Time,
		}, now)
		if err != nil || quote.Settled {
			continue
		}

		overdue := quote.DaysDelayed > 0
		dueSoon := !overdue && !quote.DueDate.After(now.AddDate(0, 0, s.window))
		if !overdue && !dueSoon {
			continue
		}

		if err := s.sender.SendInstallmentReminder(
			rem.Owner.Email, rem.Owner.Name, rem.Plan.PropertyID,
			quote.DueDate, quote.Total, quote.LateFee, overdue,
		); err != nil {
			s.log.Errorf("Failed to remind owner %d about plan %s: %v", rem.Owner.ID, rem.Plan.PlanID, err)
			continue
		}
		sent++
	}

	s.log.Infof("Reminder sweep finished: %d plan(s) open, %d reminder(s) sent", len(reminders), sent)
	return nil
}
