package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

const (
	defaultMaxRetries        = 2 // 3 attempts total
	defaultRetryDelay        = 1000 * time.Millisecond
	defaultPrimaryTimeout    = 30 * time.Second
	defaultSimplifiedTimeout = 15 * time.Second

	primaryMaxTokens    = 1000
	simplifiedMaxTokens = 100

	primaryTemperature    = 0.7
	simplifiedTemperature = 0.5
)

const tutorSystemPrompt = `You are a patient school tutor. Explain the answer to the student's question
step by step, in simple language, and keep it short enough to read in a chat message.`

// Config tunes the generation policy. Zero values fall back to the
// defaults above.
type Config struct {
	APIKey            string
	BaseURL           string
	Model             string
	MaxRetries        int
	RetryDelay        time.Duration
	PrimaryTimeout    time.Duration
	SimplifiedTimeout time.Duration
}

// Generator produces a best-effort answer for a question. It degrades in
// layers: full-context request with retries, then one simplified request,
// then a local keyword-matched fallback. It never fails.
type Generator struct {
	client *openai.Client
	cfg    Config
	log    *logrus.Logger
}

func NewGenerator(cfg Config, log *logrus.Logger) *Generator {
	if cfg.Model == "" {
		cfg.Model = openai.GPT4oMini
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = defaultRetryDelay
	}
	if cfg.PrimaryTimeout == 0 {
		cfg.PrimaryTimeout = defaultPrimaryTimeout
	}
	if cfg.SimplifiedTimeout == 0 {
		cfg.SimplifiedTimeout = defaultSimplifiedTimeout
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &Generator{
		client: openai.NewClientWithConfig(clientCfg),
		cfg:    cfg,
		log:    log,
	}
}

// Generate always resolves to some answer text; no error ever escapes it.
func (g *Generator) Generate(ctx context.Context, questionText string) string {
	for attempt := 1; attempt <= g.cfg.MaxRetries+1; attempt++ {
		answer, err := g.fullRequest(ctx, questionText)
		if err == nil {
			return answer
		}
		g.log.Warnf("Answer generation attempt %d/%d failed: %v", attempt, g.cfg.MaxRetries+1, err)

		if attempt <= g.cfg.MaxRetries {
			// Linear backoff: delay grows with the attempt number.
			time.Sleep(g.cfg.RetryDelay * time.Duration(attempt))
		}
	}

	answer, err := g.simplifiedRequest(ctx, questionText)
	if err == nil {
		g.log.Info("Answer produced by simplified request after primary attempts failed")
		return answer
	}
	g.log.Warnf("Simplified answer generation failed: %v", err)

	g.log.Info("Falling back to keyword-matched canned answer")
	return FallbackAnswer(questionText)
}

func (g *Generator) fullRequest(ctx context.Context, questionText string) (string, error) {
	reqCtx, cancel := context.WithTimeout(ctx, g.cfg.PrimaryTimeout)
	defer cancel()

	resp, err := g.client.CreateChatCompletion(reqCtx, openai.ChatCompletionRequest{
		Model: g.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: tutorSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: questionText},
		},
		MaxTokens:   primaryMaxTokens,
		Temperature: primaryTemperature,
	})
	if err != nil {
		return "", err
	}
	return contentOf(resp)
}

func (g *Generator) simplifiedRequest(ctx context.Context, questionText string) (string, error) {
	reqCtx, cancel := context.WithTimeout(ctx, g.cfg.SimplifiedTimeout)
	defer cancel()

	resp, err := g.client.CreateChatCompletion(reqCtx, openai.ChatCompletionRequest{
		Model: g.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: "Answer briefly: " + questionText},
		},
		MaxTokens:   simplifiedMaxTokens,
		Temperature: simplifiedTemperature,
	})
	if err != nil {
		return "", err
	}
	return contentOf(resp)
}

// contentOf treats an empty or missing choice as a failure so it counts
// toward the retry budget like a transport error.
func contentOf(resp openai.ChatCompletionResponse) (string, error) {
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion response has no choices")
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("completion response has empty content")
	}
	return content, nil
}
