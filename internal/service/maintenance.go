package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const DefaultMaintenanceSchedule = "@hourly"

// challengeMaxAge is how long an unanswered challenge is kept.
const challengeMaxAge = 24 * time.Hour

// MaintenanceService periodically removes expired sessions, stale password
// reset tokens and abandoned memorisation challenges.
type MaintenanceService struct {
	sessions   SessionRepository
	resets     PasswordResetRepository
	challenges ChallengeStore
	schedule   string
	logger     *zap.Logger
	now        func() time.Time
}

func NewMaintenanceService(
	sessions SessionRepository,
	resets PasswordResetRepository,
	challenges ChallengeStore,
	schedule string,
	logger *zap.Logger,
) *MaintenanceService {
	if schedule == "" {
		schedule = DefaultMaintenanceSchedule
	}
	return &MaintenanceService{
		sessions:   sessions,
		resets:     resets,
		challenges: challenges,
		schedule:   schedule,
		logger:     logger,
		now:        time.Now,
	}
}

// Start runs the sweep on schedule until ctx is cancelled.
func (s *MaintenanceService) Start(ctx context.Context) error {
	c := cron.New(cron.WithLocation(time.UTC))

	_, err := c.AddFunc(s.schedule, func() {
		if err := s.Sweep(ctx); err != nil {
			s.logger.Error("maintenance sweep failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("add maintenance job %q: %w", s.schedule, err)
	}

	c.Start()
	s.logger.Info("maintenance scheduler started", zap.String("schedule", s.schedule))

	<-ctx.Done()

	<-c.Stop().Done()
	s.logger.Info("maintenance scheduler stopped")
	return nil
}

// Sweep removes everything that expired before now.
func (s *MaintenanceService) Sweep(ctx context.Context) error {
	now := s.now()

	sessions, err := s.sessions.DeleteExpired(ctx, now)
	if err != nil {
		return err
	}

	resets, err := s.resets.DeleteStale(ctx, now)
	if err != nil {
		return err
	}

	var challenges int
	if s.challenges != nil {
		challenges = s.challenges.PruneBefore(now.Add(-challengeMaxAge))
	}

	s.logger.Info("maintenance sweep done",
		zap.Int64("sessions", sessions),
		zap.Int64("password_resets", resets),
		zap.Int("challenges", challenges),
	)
	return nil
}
