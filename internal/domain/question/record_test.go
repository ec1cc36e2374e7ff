package question

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatusFollowsApprovalFlag(t *testing.T) {
	rec := &Record{Answer: "generated"}
	assert.Equal(t, StatusPendingReview, rec.Status())

	rec.Approve("teacher-1", time.Now())
	assert.Equal(t, StatusApproved, rec.Status())
}

func TestApproveSetsAuditFields(t *testing.T) {
	now := time.Now()
	rec := &Record{Answer: "generated", CreatedAt: now.Add(-time.Minute), UpdatedAt: now.Add(-time.Minute)}

	rec.Approve("teacher-1", now)

	assert.True(t, rec.IsApproved)
	assert.Equal(t, "teacher-1", rec.ApprovedBy.String)
	assert.True(t, rec.ApprovedAt.Valid)
	assert.Equal(t, now, rec.UpdatedAt)
	assert.False(t, rec.EditedAnswer.Valid)
	assert.Equal(t, "generated", rec.FinalAnswer())
}

func TestApproveWithEditOverridesFinalAnswer(t *testing.T) {
	rec := &Record{Answer: "generated"}

	rec.ApproveWithEdit("teacher-2", "edited", time.Now())

	assert.True(t, rec.IsApproved)
	assert.Equal(t, "edited", rec.EditedAnswer.String)
	assert.Equal(t, "edited", rec.FinalAnswer())
}
