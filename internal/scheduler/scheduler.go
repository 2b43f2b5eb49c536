package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sopheak-dev/agencyflow/internal/config"
	"github.com/sopheak-dev/agencyflow/internal/service"
	"go.uber.org/zap"
)

// Scheduler runs the periodic maintenance jobs: currently only the nightly
// purge of read notifications past their retention window.
type Scheduler struct {
	notifications *service.NotificationService
	cfg           config.NotificationConfig
	logger        *zap.SugaredLogger
	cron          *cron.Cron
}

func NewScheduler(notifications *service.NotificationService, cfg config.NotificationConfig, logger *zap.SugaredLogger) *Scheduler {
	return &Scheduler{
		notifications: notifications,
		cfg:           cfg,
		logger:        logger,
	}
}

// Start registers the cron jobs and launches the scheduler in its own
// goroutine. Call Stop on shutdown.
func (s *Scheduler) Start() error {
	c := cron.New(cron.WithSeconds())

	// Nightly at 12:00 AM
	_, err := c.AddFunc("0 0 0 * * *", s.purgeReadNotifications)
	if err != nil {
		return err
	}

	s.cron = c
	c.Start()
	s.logger.Info("Scheduler started, purging read notifications nightly at 12:00AM")

	return nil
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

func (s *Scheduler) purgeReadNotifications() {
	retention := time.Duration(s.cfg.RetentionDays) * 24 * time.Hour

	purged, err := s.notifications.PurgeRead(context.Background(), retention)
	if err != nil {
		s.logger.Errorf("Failed to purge read notifications: %v", err)
		return
	}

	s.logger.Infof("Purged %d read notifications older than %d days", purged, s.cfg.RetentionDays)
}
