package ai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func completionJSON(content string) string {
	body := map[string]interface{}{
		"id":     "cmpl-test",
		"object": "chat.completion",
		"choices": []map[string]interface{}{
			{
				"index":         0,
				"message":       map[string]string{"role": "assistant", "content": content},
				"finish_reason": "stop",
			},
		},
	}
	raw, _ := json.Marshal(body)
	return string(raw)
}

func testGenerator(t *testing.T, baseURL string) *Generator {
	t.Helper()
	return NewGenerator(Config{
		APIKey:     "test-key",
		BaseURL:    baseURL + "/v1",
		Model:      "test-model",
		RetryDelay: time.Millisecond,
	}, quietLogger())
}

func TestGenerateReturnsAnswerOnFirstAttempt(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, completionJSON("2 + 2 equals 4."))
	}))
	defer srv.Close()

	g := testGenerator(t, srv.URL)
	answer := g.Generate(context.Background(), "What is 2+2?")
	assert.Equal(t, "2 + 2 equals 4.", answer)
}

func TestGenerateFallsBackWhenServiceUnreachable(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	g := testGenerator(t, srv.URL)
	answer := g.Generate(context.Background(), "What is 2+2?")

	// 3 full-context attempts, then exactly 1 simplified attempt.
	assert.Equal(t, int32(4), atomic.LoadInt32(&calls))
	require.NotEmpty(t, answer)
	assert.Equal(t, FallbackAnswer("What is 2+2?"), answer)
}

func TestGenerateUsesSimplifiedRequestAfterPrimaryFails(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		if n <= 3 {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, completionJSON("Four."))
	}))
	defer srv.Close()

	g := testGenerator(t, srv.URL)
	answer := g.Generate(context.Background(), "What is 2+2?")

	assert.Equal(t, int32(4), atomic.LoadInt32(&calls))
	assert.Equal(t, "Four.", answer)
}

func TestGenerateTreatsEmptyContentAsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, completionJSON("   "))
	}))
	defer srv.Close()

	g := testGenerator(t, srv.URL)
	answer := g.Generate(context.Background(), "Why is the sky blue?")
	assert.Equal(t, FallbackAnswer("Why is the sky blue?"), answer)
}
