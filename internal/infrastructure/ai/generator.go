package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"clarityhire/internal/config"

	"github.com/cenkalti/backoff/v5"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"golang.org/x/time/rate"
)

var (
	ErrDisabled      = errors.New("ai generation is not configured")
	ErrEmptyResponse = errors.New("ai returned an empty response")
	ErrBadListFormat = errors.New("ai response is not a JSON list of strings")
)

// Generator wraps a language model with a request limiter and retries.
type Generator struct {
	model   llms.Model
	limiter *rate.Limiter
	logger  *log.Logger

	maxTries   uint
	maxElapsed time.Duration
}

func New(ctx context.Context, cfg config.AIConfig, logger *log.Logger) (*Generator, error) {
	if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
		return &Generator{logger: logger}, nil
	}
	model, err := googleai.New(ctx,
		googleai.WithAPIKey(cfg.GeminiAPIKey),
		googleai.WithDefaultModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return NewWithModel(model, cfg.RatePerMinute, logger), nil
}

func NewWithModel(model llms.Model, perMinute int, logger *log.Logger) *Generator {
	if perMinute <= 0 {
		perMinute = 20
	}
	return &Generator{
		model:      model,
		limiter:    rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute),
		logger:     logger,
		maxTries:   3,
		maxElapsed: 30 * time.Second,
	}
}

func (g *Generator) Enabled() bool {
	return g != nil && g.model != nil
}

// Text sends one prompt and returns the trimmed completion.
func (g *Generator) Text(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if !g.Enabled() {
		return "", ErrDisabled
	}
	if err := g.limiter.Wait(ctx); err != nil {
		return "", err
	}

	operation := func() (string, error) {
		out, err := llms.GenerateFromSinglePrompt(ctx, g.model, prompt,
			llms.WithTemperature(0.7),
			llms.WithMaxTokens(maxTokens),
		)
		if err != nil {
			if ctx.Err() != nil {
				return "", backoff.Permanent(err)
			}
			if g.logger != nil {
				g.logger.Printf("[AI] generation failed, retrying | err=%v", err)
			}
			return "", err
		}
		out = strings.TrimSpace(out)
		if out == "" {
			return "", ErrEmptyResponse
		}
		return out, nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 500 * time.Millisecond
	bo.MaxInterval = 5 * time.Second

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(bo),
		backoff.WithMaxTries(g.maxTries),
		backoff.WithMaxElapsedTime(g.maxElapsed),
	)
}

// List asks for a JSON array of strings and parses it.
func (g *Generator) List(ctx context.Context, prompt string, maxTokens int) ([]string, error) {
	out, err := g.Text(ctx, prompt, maxTokens)
	if err != nil {
		return nil, err
	}
	return ParseList(out)
}

// ParseList decodes a JSON array of strings, tolerating markdown code fences
// around it.
func ParseList(raw string) ([]string, error) {
	s := StripCodeFence(raw)
	var items []string
	if err := json.Unmarshal([]byte(s), &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadListFormat, err)
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			out = append(out, it)
		}
	}
	return out, nil
}

func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
