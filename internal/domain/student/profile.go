package student

import (
	"database/sql"
	"time"
)

// Platform identifies the messaging platform a student writes from.
type Platform string

const (
	PlatformTelegram Platform = "TELEGRAM"
	PlatformWhatsApp Platform = "WHATSAPP"
)

// Profile is an auxiliary per-student record. The review workflow itself
// never reads it; it exists for usage statistics.
type Profile struct {
	ID             int64
	Platform       Platform
	PlatformUserID int64
	FirstName      string
	LastName       sql.NullString
	QuestionsAsked int
	LastSeenAt     time.Time
	CreatedAt      time.Time
}
