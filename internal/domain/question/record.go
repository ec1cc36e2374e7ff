package question

import (
	"database/sql"
	"time"
)

// Status describes where a record is in the review workflow.
// There is no rejected state: editing happens inside PendingReview and
// resolves into Approved just like a plain approval does.
type Status string

const (
	StatusPendingReview Status = "PENDING_REVIEW"
	StatusApproved      Status = "APPROVED"
)

// Record is one submitted question with its generated answer.
// Created right after answer generation, mutated exactly once at approval
// time, never deleted.
type Record struct {
	ID           string
	StudentID    int64
	StudentName  string
	Question     string
	Answer       string
	EditedAnswer sql.NullString
	IsApproved   bool
	FromImage    bool
	ImagePath    sql.NullString
	ApprovedBy   sql.NullString
	ApprovedAt   sql.NullTime
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Status derives the workflow state from the approval flag.
func (r *Record) Status() Status {
	if r.IsApproved {
		return StatusApproved
	}
	return StatusPendingReview
}

// FinalAnswer is the text that reaches the student: the reviewer's edit
// when one exists, the generated answer otherwise.
func (r *Record) FinalAnswer() string {
	if r.EditedAnswer.Valid {
		return r.EditedAnswer.String
	}
	return r.Answer
}

// Approve marks the record approved as-is.
func (r *Record) Approve(reviewerID string, at time.Time) {
	r.IsApproved = true
	r.ApprovedBy = sql.NullString{String: reviewerID, Valid: true}
	r.ApprovedAt = sql.NullTime{Time: at, Valid: true}
	r.UpdatedAt = at
}

// ApproveWithEdit stores the reviewer's replacement answer and approves.
func (r *Record) ApproveWithEdit(reviewerID, editedAnswer string, at time.Time) {
	r.EditedAnswer = sql.NullString{String: editedAnswer, Valid: true}
	r.Approve(reviewerID, at)
}
