package scheduler

import (
	"context"
	"time"

	"github.com/VinothPrinzz/student-tutor-automation/internal/app"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// DigestScheduler runs the daily review-channel digest on a cron spec.
type DigestScheduler struct {
	cronEngine *cron.Cron
	digest     *app.DigestService
	log        *logrus.Logger
	cronSpec   string
}

func NewDigestScheduler(digest *app.DigestService, log *logrus.Logger, cronSpec string) *DigestScheduler {
	return &DigestScheduler{
		cronEngine: cron.New(cron.WithLocation(time.Local)),
		digest:     digest,
		log:        log,
		cronSpec:   cronSpec,
	}
}

func (s *DigestScheduler) Start() error {
	_, err := s.cronEngine.AddFunc(s.cronSpec, func() {
		s.log.Info("Cron job triggered for daily digest.")
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		if err := s.digest.Run(ctx); err != nil {
			s.log.Errorf("Daily digest failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	s.cronEngine.Start()
	s.log.Infof("Digest scheduler started with spec %q.", s.cronSpec)
	return nil
}

func (s *DigestScheduler) Stop() {
	s.log.Info("Stopping digest scheduler...")
	ctx := s.cronEngine.Stop()
	<-ctx.Done()
	s.log.Info("Digest scheduler stopped.")
}
