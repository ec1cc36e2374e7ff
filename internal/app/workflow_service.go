package app

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/VinothPrinzz/student-tutor-automation/internal/domain/messaging"
	"github.com/VinothPrinzz/student-tutor-automation/internal/domain/question"
	"github.com/VinothPrinzz/student-tutor-automation/internal/domain/review"
	"github.com/VinothPrinzz/student-tutor-automation/internal/domain/student"
	"github.com/VinothPrinzz/student-tutor-automation/internal/infra/logger"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	ackText = "Got your question! A teacher is checking the answer and you'll receive it here shortly."

	apologyText = "Sorry, something went wrong while reading your message. Please try sending it again."
)

// AnswerGenerator produces a best-effort answer. It never fails.
type AnswerGenerator interface {
	Generate(ctx context.Context, questionText string) string
}

// TextExtractor turns a photographed question into text. It never fails.
type TextExtractor interface {
	ExtractText(ctx context.Context, imagePath string) string
}

// Archive appends a finalized question/answer pair for later reuse.
type Archive interface {
	Append(ctx context.Context, studentName, questionText, answer, editedAnswer string) error
}

// WorkflowService is the orchestrator: it walks every question through
// generation, review and delivery. Per record the states are
// PendingReview -> Approved; editing is a side-step inside PendingReview
// that resolves into Approved on form submission.
type WorkflowService struct {
	records   question.Repository
	students  student.Repository
	generator AnswerGenerator
	extractor TextExtractor
	reviews   review.Channel
	messenger messaging.Client
	archive   Archive
	log       *logrus.Logger
	imageDir  string
}

func NewWorkflowService(
	records question.Repository,
	students student.Repository,
	generator AnswerGenerator,
	extractor TextExtractor,
	reviews review.Channel,
	messenger messaging.Client,
	archive Archive,
	log *logrus.Logger,
	imageDir string,
) *WorkflowService {
	return &WorkflowService{
		records:   records,
		students:  students,
		generator: generator,
		extractor: extractor,
		reviews:   reviews,
		messenger: messenger,
		archive:   archive,
		log:       log,
		imageDir:  imageDir,
	}
}

// HandleQuestion runs the inbound half of the workflow: extract (for
// photos), generate, persist, post for review, acknowledge the student.
// Only a failure to read the inbound attachment surfaces an apology;
// every later failure degrades into a logged substitute.
func (s *WorkflowService) HandleQuestion(ctx context.Context, msg messaging.Inbound) error {
	questionText := msg.Text
	fromImage := false
	imagePath := ""

	if msg.PhotoFileID != "" {
		fromImage = true

		url, err := s.messenger.FileURL(ctx, msg.PhotoFileID)
		if err != nil {
			s.log.Errorf("Could not resolve photo for user %d: %v", msg.UserID, err)
			s.sendOrLog(ctx, msg.UserID, apologyText)
			return err
		}
		imagePath, err = s.messenger.Download(ctx, url, s.imageDir)
		if err != nil {
			s.log.Errorf("Could not download photo for user %d: %v", msg.UserID, err)
			s.sendOrLog(ctx, msg.UserID, apologyText)
			return err
		}

		questionText = s.extractor.ExtractText(ctx, imagePath)
	}

	if strings.TrimSpace(questionText) == "" {
		s.log.Warnf("Empty question from user %d, ignoring", msg.UserID)
		return nil
	}

	s.recordStudentActivity(ctx, msg)

	answer := s.generator.Generate(ctx, questionText)

	rec := &question.Record{
		StudentID:   msg.UserID,
		StudentName: displayName(msg),
		Question:    questionText,
		Answer:      answer,
		FromImage:   fromImage,
	}
	if imagePath != "" {
		rec.ImagePath = sql.NullString{String: imagePath, Valid: true}
	}

	if err := s.records.Create(ctx, rec); err != nil {
		// The workflow continues on a temporary id; the record will not
		// survive a restart but the student still gets an answer.
		rec.ID = "temp-" + uuid.NewString()
		now := time.Now()
		rec.CreatedAt = now
		rec.UpdatedAt = now
		s.log.Errorf("Could not persist question record, continuing with temporary id %s: %v", rec.ID, err)
	}

	_, err := s.reviews.PostReviewCard(ctx, review.Card{
		RecordID:    rec.ID,
		StudentName: rec.StudentName,
		Question:    rec.Question,
		Answer:      rec.Answer,
		FromImage:   rec.FromImage,
	})
	if err != nil {
		// The question becomes unreviewable but the student is still acked.
		s.log.Errorf("Could not post review card for record %s: %v", rec.ID, err)
	}

	s.sendOrLog(ctx, msg.UserID, ackText)
	return nil
}

// HandleApprove runs the direct-approval transition: persist the
// approval, update the card, deliver to the student, archive. Side
// effect failures are logged independently; nothing rolls back.
func (s *WorkflowService) HandleApprove(ctx context.Context, recordID, reviewerID string, ref review.MessageRef) error {
	rec, err := s.lookup(ctx, recordID)
	if err != nil || rec == nil {
		return err
	}

	rec.Approve(reviewerID, time.Now())
	s.finalize(ctx, rec, ref)
	return nil
}

// HandleEditSubmit runs the approve-after-edit transition. The delivered
// and archived text is the reviewer's edit, not the generated answer.
func (s *WorkflowService) HandleEditSubmit(ctx context.Context, sub review.EditSubmission) error {
	rec, err := s.lookup(ctx, sub.RecordID)
	if err != nil || rec == nil {
		return err
	}

	rec.ApproveWithEdit(sub.ReviewerID, sub.Text, time.Now())
	s.finalize(ctx, rec, review.MessageRef{ChannelID: sub.ChannelID, MessageID: sub.MessageID})
	return nil
}

// RecordForEdit fetches the record an edit form should be pre-filled
// from. No mutation happens until the form comes back.
func (s *WorkflowService) RecordForEdit(ctx context.Context, recordID string) (*question.Record, error) {
	rec, err := s.records.GetByID(ctx, recordID)
	if err != nil {
		logger.DeadLetter(s.log).Warnf("Edit requested for unknown record %s: %v", recordID, err)
		return nil, err
	}
	return rec, nil
}

// lookup resolves a callback's record id. Unknown ids and repeated
// approvals are dropped with a log line: a reviewer double-click must
// never re-deliver the answer to the student.
func (s *WorkflowService) lookup(ctx context.Context, recordID string) (*question.Record, error) {
	rec, err := s.records.GetByID(ctx, recordID)
	if err != nil {
		logger.DeadLetter(s.log).Warnf("Callback for unknown record %s dropped: %v", recordID, err)
		return nil, nil
	}
	if rec.IsApproved {
		s.log.Infof("Record %s is already approved, ignoring duplicate callback", rec.ID)
		return nil, nil
	}
	return rec, nil
}

// finalize runs the ordered side effects of the Approved transition.
func (s *WorkflowService) finalize(ctx context.Context, rec *question.Record, ref review.MessageRef) {
	if err := s.records.Update(ctx, rec); err != nil {
		s.log.Errorf("Could not persist approval of record %s: %v", rec.ID, err)
	}

	if err := s.reviews.UpdateReviewCard(ctx, ref, rec.FinalAnswer()); err != nil {
		s.log.Errorf("Could not update review card for record %s: %v", rec.ID, err)
	}

	s.sendOrLog(ctx, rec.StudentID, rec.FinalAnswer())

	if err := s.archiveRecord(ctx, rec); err != nil {
		s.log.Errorf("Could not archive record %s: %v", rec.ID, err)
	}

	s.log.Infof("Record %s approved by %s", rec.ID, rec.ApprovedBy.String)
}

func (s *WorkflowService) archiveRecord(ctx context.Context, rec *question.Record) error {
	if s.archive == nil {
		return nil
	}
	// The edited-answer column falls back to the generated answer, so the
	// archive always carries the text that was delivered.
	return s.archive.Append(ctx, rec.StudentName, rec.Question, rec.Answer, rec.FinalAnswer())
}

func (s *WorkflowService) recordStudentActivity(ctx context.Context, msg messaging.Inbound) {
	profile := &student.Profile{
		Platform:       student.PlatformTelegram,
		PlatformUserID: msg.UserID,
		FirstName:      msg.FirstName,
	}
	if msg.LastName != "" {
		profile.LastName = sql.NullString{String: msg.LastName, Valid: true}
	}
	if err := s.students.RecordActivity(ctx, profile); err != nil {
		s.log.Warnf("Could not record activity for user %d: %v", msg.UserID, err)
	}
}

func (s *WorkflowService) sendOrLog(ctx context.Context, userID int64, text string) {
	if err := s.messenger.SendText(ctx, userID, text); err != nil {
		s.log.Errorf("Could not deliver message to user %d: %v", userID, err)
	}
}

func displayName(msg messaging.Inbound) string {
	name := strings.TrimSpace(msg.FirstName + " " + msg.LastName)
	if name == "" {
		return "Unknown student"
	}
	return name
}
