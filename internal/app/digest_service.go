package app

import (
	"context"
	"fmt"
	"time"

	"github.com/VinothPrinzz/student-tutor-automation/internal/domain/question"
	"github.com/VinothPrinzz/student-tutor-automation/internal/domain/review"

	"github.com/sirupsen/logrus"
)

// DigestService posts a daily activity summary to the review channel:
// how many answers wait for review and how many went out in the last
// day. It is a passive report, not a reminder or escalation.
type DigestService struct {
	records question.Repository
	reviews review.Channel
	log     *logrus.Logger
}

func NewDigestService(records question.Repository, reviews review.Channel, log *logrus.Logger) *DigestService {
	return &DigestService{records: records, reviews: reviews, log: log}
}

func (s *DigestService) Run(ctx context.Context) error {
	pending, err := s.records.CountPending(ctx)
	if err != nil {
		return fmt.Errorf("digest: count pending: %w", err)
	}
	approved, err := s.records.CountApprovedSince(ctx, time.Now().Add(-24*time.Hour))
	if err != nil {
		return fmt.Errorf("digest: count approved: %w", err)
	}

	text := fmt.Sprintf(
		"📋 Daily digest: %d answer(s) awaiting review, %d approved and delivered in the last 24 hours.",
		pending, approved,
	)
	if err := s.reviews.PostMessage(ctx, text); err != nil {
		return fmt.Errorf("digest: post message: %w", err)
	}

	s.log.Infof("Daily digest posted: %d pending, %d approved", pending, approved)
	return nil
}
