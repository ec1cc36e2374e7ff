package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"time"

	"gopkg.in/telebot.v3"
)

// TelebotAdapter implements the messaging.Client interface using the
// gopkg.in/telebot.v3 library.
type TelebotAdapter struct {
	bot        *telebot.Bot
	httpClient *http.Client
}

func NewTelebotAdapter(b *telebot.Bot) *TelebotAdapter {
	return &TelebotAdapter{
		bot:        b,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// SendText sends a text message to the student's direct chat.
func (tba *TelebotAdapter) SendText(ctx context.Context, userID int64, text string) error {
	recipient := &telebot.User{ID: userID}
	_, err := tba.bot.Send(recipient, text)
	return err
}

// FileURL resolves a Telegram file id into a downloadable URL.
func (tba *TelebotAdapter) FileURL(ctx context.Context, fileID string) (string, error) {
	file, err := tba.bot.FileByID(fileID)
	if err != nil {
		return "", fmt.Errorf("error resolving file %s: %w", fileID, err)
	}
	return fmt.Sprintf("https://api.telegram.org/file/bot%s/%s", tba.bot.Token, file.FilePath), nil
}

// Download fetches the URL into destDir and returns the local path. The
// extension is kept from the URL path so the extractor can key off it.
func (tba *TelebotAdapter) Download(ctx context.Context, url, destDir string) (string, error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("error creating download dir: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("error building download request: %w", err)
	}
	resp, err := tba.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("error downloading attachment: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("attachment download returned status %d", resp.StatusCode)
	}

	name := fmt.Sprintf("question_%d%s", time.Now().UnixNano(), path.Ext(url))
	localPath := filepath.Join(destDir, name)

	out, err := os.Create(localPath)
	if err != nil {
		return "", fmt.Errorf("error creating local file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		os.Remove(localPath)
		return "", fmt.Errorf("error writing attachment to disk: %w", err)
	}
	return localPath, nil
}
