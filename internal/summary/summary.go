package summary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"golang.org/x/time/rate"
)

// Provider identifies the LLM backend
type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderGroq   Provider = "groq"
)

// DefaultInstruction is the prompt used for gallery item summaries
const DefaultInstruction = "Summarize this content and highlight key moments."

const (
	geminiPlaceholder = "[Demo] Enable Gemini API for AI-powered summaries."
	groqPlaceholder   = "[Demo] Enable Groq API by setting GROQ_API_KEY in .env for fast AI summaries."
	emptyResponse     = "No summary generated."
)

// Config holds provider credentials and call limits
type Config struct {
	Provider          Provider
	GoogleAPIKey      string
	GroqAPIKey        string
	GeminiModel       string
	GroqModel         string
	GroqBaseURL       string
	Timeout           time.Duration
	RequestsPerSecond float64
	MaxRetries        int
	RetryDelay        time.Duration
}

// generator performs one request against a provider
type generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Service implements domain.Summarizer for the configured provider.
type Service struct {
	provider    Provider
	name        string // Display name used in error strings
	gen         generator
	placeholder string
	limiter     *rate.Limiter
	timeout     time.Duration
	retries     int
	retryDelay  time.Duration
	logger      *slog.Logger
}

// New builds a summary service. Any provider other than groq falls back to gemini.
func New(cfg Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 1
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 500 * time.Millisecond
	}

	s := &Service{
		limiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		timeout:    cfg.Timeout,
		retries:    max(cfg.MaxRetries, 0),
		retryDelay: cfg.RetryDelay,
		logger:     logger,
	}

	if Provider(strings.ToLower(string(cfg.Provider))) == ProviderGroq {
		s.provider = ProviderGroq
		s.name = "Groq"
		s.placeholder = groqPlaceholder
		if key := strings.TrimSpace(cfg.GroqAPIKey); key != "" {
			s.gen = newGroqClient(key, cfg.GroqModel, cfg.GroqBaseURL, nil)
		}
	} else {
		if cfg.Provider != "" && Provider(strings.ToLower(string(cfg.Provider))) != ProviderGemini {
			logger.Warn("unknown summary provider, using gemini", "provider", cfg.Provider)
		}
		s.provider = ProviderGemini
		s.name = "Gemini"
		s.placeholder = geminiPlaceholder
		if key := strings.TrimSpace(cfg.GoogleAPIKey); key != "" {
			s.gen = newGeminiClient(key, cfg.GeminiModel)
		}
	}
	return s
}

// Provider returns the active provider
func (s *Service) Provider() Provider { return s.provider }

// Configured returns true if the active provider has a credential
func (s *Service) Configured() bool { return s.gen != nil }

// Summarize asks the provider to apply instruction to text. It always returns
// display text: a placeholder when unconfigured, "[Error] ..." on failure.
func (s *Service) Summarize(ctx context.Context, text, instruction string) string {
	if s.gen == nil {
		return s.placeholder
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	prompt := instruction + "\n\n" + text
	start := time.Now()

	out, err := retry.DoWithData(
		func() (string, error) {
			if err := s.limiter.Wait(ctx); err != nil {
				return "", retry.Unrecoverable(err)
			}
			return s.gen.Generate(ctx, prompt)
		},
		retry.Context(ctx),
		retry.Attempts(uint(s.retries+1)),
		retry.Delay(s.retryDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(isRetryable),
		retry.OnRetry(func(n uint, err error) {
			s.logger.Warn("summary request failed, retrying", "provider", s.provider, "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		s.logger.Error("summary failed", "provider", s.provider, "error", err, "duration", time.Since(start))
		return fmt.Sprintf("[Error] %s: %s", s.name, err)
	}

	s.logger.Info("summary generated", "provider", s.provider, "chars", len(out), "duration", time.Since(start))
	if strings.TrimSpace(out) == "" {
		return emptyResponse
	}
	return out
}

// statusError is an HTTP failure from a provider
type statusError struct {
	Code   int
	Status string
	Body   string
}

func (e *statusError) Error() string {
	if e.Body == "" {
		return e.Status
	}
	return e.Status + ": " + e.Body
}

// isRetryable rejects client errors other than rate limiting
func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var se *statusError
	if errors.As(err, &se) {
		return se.Code == 429 || se.Code >= 500
	}
	return true
}
