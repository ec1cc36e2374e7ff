package review

import "context"

// Card is the content of a review message posted for teachers.
type Card struct {
	RecordID    string
	StudentName string
	Question    string
	Answer      string
	FromImage   bool
}

// MessageRef points at a posted review card so it can be updated in place.
type MessageRef struct {
	ChannelID string
	MessageID string
}

// EditSubmission is a completed edit form. RecordID, ChannelID and
// MessageID round-trip through the form's opaque metadata; they are the
// only link back to the original review card.
type EditSubmission struct {
	RecordID   string
	ChannelID  string
	MessageID  string
	ReviewerID string
	Text       string
}

// Channel is the team-chat surface teachers review answers on.
type Channel interface {
	// PostReviewCard renders the card with approve and edit actions, each
	// carrying the record id as its opaque action payload.
	PostReviewCard(ctx context.Context, card Card) (MessageRef, error)
	// UpdateReviewCard replaces the card with the final answer and a
	// completion marker. Repeated calls re-render the same final state.
	UpdateReviewCard(ctx context.Context, ref MessageRef, finalAnswer string) error
	// PostMessage posts a plain message to the review channel.
	PostMessage(ctx context.Context, text string) error
}
