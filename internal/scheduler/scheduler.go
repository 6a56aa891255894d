package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/brickbase/estate-backend/internal/config"
	"github.com/brickbase/estate-backend/internal/domain/models"
	"github.com/brickbase/estate-backend/internal/repository/mongodb"
	"github.com/brickbase/estate-backend/internal/service/dashboard"
	"github.com/brickbase/estate-backend/pkg/money"
)

const jobTimeout = 2 * time.Minute

// Scheduler manages the background jobs: the daily appointment reminder and
// the monthly rent-due sweep. Both emit in-app notifications.
type Scheduler struct {
	cron          *cron.Cron
	appointments  *mongodb.AppointmentRepository
	tenants       *mongodb.TenantRepository
	notifications *mongodb.NotificationRepository
	cfg           config.SchedulerConfig
	logger        *zap.Logger
}

// New creates the scheduler. robfig/cron/v3's default parser is standard
// five-field cron.
func New(cfg config.SchedulerConfig, appointments *mongodb.AppointmentRepository, tenants *mongodb.TenantRepository, notifications *mongodb.NotificationRepository, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cron:          cron.New(),
		appointments:  appointments,
		tenants:       tenants,
		notifications: notifications,
		cfg:           cfg,
		logger:        logger,
	}
}

// Start registers and starts the cron jobs.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler",
		zap.String("reminder_cron", s.cfg.ReminderCron),
		zap.String("rent_due_cron", s.cfg.RentDueCron))

	if _, err := s.cron.AddFunc(s.cfg.ReminderCron, s.sendAppointmentReminders); err != nil {
		s.logger.Error("failed to schedule appointment reminders", zap.Error(err))
	}
	if _, err := s.cron.AddFunc(s.cfg.RentDueCron, s.sendRentDueNotices); err != nil {
		s.logger.Error("failed to schedule rent-due sweep", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

// sendAppointmentReminders notifies users about Confirmed visits scheduled
// within the next 24 hours.
func (s *Scheduler) sendAppointmentReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	now := time.Now().UTC()
	upcoming, err := s.appointments.FindByStatusScheduledBetween(ctx, models.AppointmentConfirmed, now, now.Add(24*time.Hour))
	if err != nil {
		s.logger.Error("reminder sweep failed", zap.Error(err))
		return
	}

	sent := 0
	for _, a := range upcoming {
		n := models.Notification{
			UserID: a.UserID,
			Title:  "Upcoming property visit",
			Message: fmt.Sprintf("Your visit is scheduled for %s.",
				a.ScheduleTime.Format("Mon, 2 Jan at 15:04")),
			Type: models.NotificationAppointmentReminder,
		}
		if _, err := s.notifications.Insert(ctx, n); err != nil {
			s.logger.Error("reminder notification insert failed",
				zap.String("appointment_id", a.ID.Hex()), zap.Error(err))
			continue
		}
		sent++
	}

	s.logger.Info("appointment reminders sent",
		zap.Int("upcoming", len(upcoming)), zap.Int("sent", sent))
}

// sendRentDueNotices emits one broadcast notice per tenant with no payment in
// the current month.
func (s *Scheduler) sendRentDueNotices() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	tenants, err := s.tenants.FindAll(ctx)
	if err != nil {
		s.logger.Error("rent-due sweep failed", zap.Error(err))
		return
	}

	now := time.Now().UTC()
	sent := 0
	for _, t := range tenants {
		if !dashboard.IsTenantOutstanding(t, now) {
			continue
		}
		n := models.Notification{
			Title: "Rent due",
			Message: fmt.Sprintf("Rent of ₹%s is due from %s for %s.",
				money.Format(money.Parse(t.Rent)), t.Name, now.Format("January 2006")),
			Type: models.NotificationRentDue,
		}
		if _, err := s.notifications.Insert(ctx, n); err != nil {
			s.logger.Error("rent-due notification insert failed",
				zap.String("tenant_id", t.ID.Hex()), zap.Error(err))
			continue
		}
		sent++
	}

	s.logger.Info("rent-due notices sent",
		zap.Int("tenants", len(tenants)), zap.Int("sent", sent))
}
