package student

import "context"

// Repository defines persistence operations for student profiles.
// The (platform, platform user id) pair is unique.
type Repository interface {
	GetByPlatformID(ctx context.Context, platform Platform, platformUserID int64) (*Profile, error)
	// RecordActivity upserts the profile for one inbound question:
	// creates it on first contact, otherwise bumps the question counter
	// and last-seen timestamp. Fills in store-assigned fields.
	RecordActivity(ctx context.Context, p *Profile) error
}
