package sheets

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Archive appends finalized question/answer pairs to a Google Sheet for
// later training-data use. The Sheets service is established lazily on
// first append and shared by all workflow invocations afterwards.
type Archive struct {
	spreadsheetID   string
	sheetName       string
	credentialsFile string
	log             *logrus.Logger

	mu  sync.Mutex
	svc *sheets.Service
}

func NewArchive(spreadsheetID, sheetName, credentialsFile string, log *logrus.Logger) *Archive {
	return &Archive{
		spreadsheetID:   spreadsheetID,
		sheetName:       sheetName,
		credentialsFile: credentialsFile,
		log:             log,
	}
}

// Append writes one row: timestamp, requester, question, answer, edited
// answer (callers pass the delivered text when no edit occurred). Errors
// are returned to the caller; the orchestrator treats them as non-fatal.
func (a *Archive) Append(ctx context.Context, studentName, questionText, answer, editedAnswer string) error {
	svc, err := a.service(ctx)
	if err != nil {
		return fmt.Errorf("error initializing sheets service: %w", err)
	}

	row := []interface{}{
		time.Now().UTC().Format(time.RFC3339),
		studentName,
		questionText,
		answer,
		editedAnswer,
	}

	_, err = svc.Spreadsheets.Values.
		Append(a.spreadsheetID, a.sheetName, &sheets.ValueRange{Values: [][]interface{}{row}}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("error appending archive row: %w", err)
	}
	return nil
}

// service lazily builds the Sheets client. A failed attempt is not
// cached; the next append retries.
func (a *Archive) service(ctx context.Context) (*sheets.Service, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.svc != nil {
		return a.svc, nil
	}

	svc, err := sheets.NewService(ctx, option.WithCredentialsFile(a.credentialsFile))
	if err != nil {
		return nil, err
	}
	a.svc = svc
	a.log.Info("Archive sheets service initialized.")
	return a.svc, nil
}
