package messaging

import "context"

// Inbound is one student turn: a text question, or a photographed one
// when PhotoFileID is set.
type Inbound struct {
	UserID      int64
	FirstName   string
	LastName    string
	Text        string
	PhotoFileID string
}

// Client sends answers back to students and resolves photo attachments.
type Client interface {
	SendText(ctx context.Context, userID int64, text string) error
	// FileURL resolves a platform file reference to a downloadable URL.
	FileURL(ctx context.Context, fileID string) (string, error)
	// Download fetches the URL into destDir and returns the local path.
	Download(ctx context.Context, url, destDir string) (string, error)
}
