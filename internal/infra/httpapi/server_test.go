package httpapi

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/VinothPrinzz/student-tutor-automation/internal/domain/question"
	"github.com/VinothPrinzz/student-tutor-automation/internal/domain/student"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- stubs ----

type stubRecords struct {
	recs map[string]*question.Record
}

func (s *stubRecords) Create(ctx context.Context, rec *question.Record) error { return nil }

func (s *stubRecords) GetByID(ctx context.Context, id string) (*question.Record, error) {
	rec, ok := s.recs[id]
	if !ok {
		return nil, fmt.Errorf("question record not found")
	}
	return rec, nil
}

func (s *stubRecords) Update(ctx context.Context, rec *question.Record) error { return nil }

func (s *stubRecords) ListPending(ctx context.Context, limit int) ([]*question.Record, error) {
	pending := make([]*question.Record, 0)
	for _, rec := range s.recs {
		if !rec.IsApproved {
			pending = append(pending, rec)
		}
	}
	return pending, nil
}

func (s *stubRecords) ListRecent(ctx context.Context, limit int) ([]*question.Record, error) {
	all := make([]*question.Record, 0, len(s.recs))
	for _, rec := range s.recs {
		all = append(all, rec)
	}
	return all, nil
}

func (s *stubRecords) CountPending(ctx context.Context) (int, error) {
	pending, _ := s.ListPending(ctx, 0)
	return len(pending), nil
}

func (s *stubRecords) CountApprovedSince(ctx context.Context, since time.Time) (int, error) {
	n := 0
	for _, rec := range s.recs {
		if rec.IsApproved {
			n++
		}
	}
	return n, nil
}

type stubStudents struct {
	profiles map[string]*student.Profile
}

func studentKey(platform student.Platform, userID int64) string {
	return fmt.Sprintf("%s/%d", platform, userID)
}

func (s *stubStudents) GetByPlatformID(ctx context.Context, platform student.Platform, platformUserID int64) (*student.Profile, error) {
	p, ok := s.profiles[studentKey(platform, platformUserID)]
	if !ok {
		return nil, fmt.Errorf("student profile not found")
	}
	return p, nil
}

func (s *stubStudents) RecordActivity(ctx context.Context, p *student.Profile) error { return nil }

func newTestServer() *Server {
	log := logrus.New()
	log.SetOutput(io.Discard)

	records := &stubRecords{recs: map[string]*question.Record{
		"rec-1": {
			ID:          "rec-1",
			StudentID:   42,
			StudentName: "Priya S",
			Question:    "What is 2+2?",
			Answer:      "The answer is 4.",
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		},
	}}
	students := &stubStudents{profiles: map[string]*student.Profile{
		studentKey(student.PlatformTelegram, 42): {
			ID:             1,
			Platform:       student.PlatformTelegram,
			PlatformUserID: 42,
			FirstName:      "Priya",
			LastName:       sql.NullString{String: "S", Valid: true},
			QuestionsAsked: 3,
			LastSeenAt:     time.Now(),
			CreatedAt:      time.Now(),
		},
	}}

	return NewServer(records, students, log)
}

func doRequest(t *testing.T, srv *Server, path string) *http.Response {
	t.Helper()
	resp, err := srv.app.Test(httptest.NewRequest(http.MethodGet, path, nil))
	require.NoError(t, err)
	return resp
}

// ---- tests ----

func TestHealth(t *testing.T) {
	resp := doRequest(t, newTestServer(), "/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGetRecord(t *testing.T) {
	srv := newTestServer()

	resp := doRequest(t, srv, "/api/records/rec-1")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var view recordView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	assert.Equal(t, "rec-1", view.ID)
	assert.Equal(t, "What is 2+2?", view.Question)

	resp = doRequest(t, srv, "/api/records/no-such-id")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetStudent(t *testing.T) {
	resp := doRequest(t, newTestServer(), "/api/students/telegram/42")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var view studentView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	assert.Equal(t, string(student.PlatformTelegram), view.Platform)
	assert.Equal(t, int64(42), view.PlatformUserID)
	assert.Equal(t, "Priya", view.FirstName)
	assert.Equal(t, 3, view.QuestionsAsked)
}

func TestGetStudentNotFound(t *testing.T) {
	resp := doRequest(t, newTestServer(), "/api/students/telegram/999")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetStudentBadRequest(t *testing.T) {
	srv := newTestServer()

	resp := doRequest(t, srv, "/api/students/icq/42")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doRequest(t, srv, "/api/students/whatsapp/not-a-number")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStats(t *testing.T) {
	resp := doRequest(t, newTestServer(), "/api/stats")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stats map[string]int
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	assert.Equal(t, 1, stats["pending_review"])
	assert.Equal(t, 0, stats["approved_last_24h"])
}
