// Package retry decorates an embedding service with rate limiting,
// per-attempt timeouts and exponential backoff on transient failures.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/quarrylabs/quarry-cli/internal/core/domain"
	"github.com/quarrylabs/quarry-cli/internal/core/ports/driven"
	"github.com/quarrylabs/quarry-cli/internal/logger"
)

// Ensure Service implements the interface.
var _ driven.EmbeddingService = (*Service)(nil)

// Config controls retry behaviour.
type Config struct {
	// MaxRetries is the number of retry attempts after the first try.
	MaxRetries int

	// InitialBackoff is the delay before the first retry; it doubles per attempt.
	InitialBackoff time.Duration

	// MaxBackoff caps the backoff delay.
	MaxBackoff time.Duration

	// AttemptTimeout bounds each individual attempt. Zero means no per-attempt
	// timeout beyond whatever the caller's context carries.
	AttemptTimeout time.Duration

	// RatePerSecond throttles calls to the inner service. Zero disables it.
	RatePerSecond float64
}

// FromRunSettings builds a Config from run settings.
func FromRunSettings(run domain.RunSettings) Config {
	return Config{
		MaxRetries:     run.MaxRetries,
		InitialBackoff: run.RetryBackoff,
		MaxBackoff:     run.MaxBackoff,
		AttemptTimeout: run.GatewayTimeout,
		RatePerSecond:  run.EmbedRate,
	}
}

// DefaultConfig returns retry defaults matching the default run settings.
func DefaultConfig() Config {
	return FromRunSettings(domain.DefaultAppSettings().Run)
}

// Service wraps an embedding service with retry logic.
// Only transient failures are retried; invalid input fails immediately.
type Service struct {
	inner   driven.EmbeddingService
	cfg     Config
	limiter *rate.Limiter
}

// Wrap decorates inner with the given retry configuration.
func Wrap(inner driven.EmbeddingService, cfg Config) *Service {
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = 500 * time.Millisecond
	}
	if cfg.MaxBackoff <= 0 {
		cfg.MaxBackoff = 8 * time.Second
	}

	var limiter *rate.Limiter
	if cfg.RatePerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), 1)
	}

	return &Service{
		inner:   inner,
		cfg:     cfg,
		limiter: limiter,
	}
}

// Embed generates a vector embedding, retrying transient failures.
func (s *Service) Embed(ctx context.Context, text string) ([]float32, error) {
	var embedding []float32
	err := s.do(ctx, func(attemptCtx context.Context) error {
		var err error
		embedding, err = s.inner.Embed(attemptCtx, text)
		return err
	})
	if err != nil {
		return nil, err
	}
	return embedding, nil
}

// EmbedBatch generates embeddings for multiple texts, retrying transient failures.
// The whole batch is retried as a unit.
func (s *Service) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	var embeddings [][]float32
	err := s.do(ctx, func(attemptCtx context.Context) error {
		var err error
		embeddings, err = s.inner.EmbedBatch(attemptCtx, texts)
		return err
	})
	if err != nil {
		return nil, err
	}
	return embeddings, nil
}

// Dimensions returns the inner service's vector width.
func (s *Service) Dimensions() int {
	return s.inner.Dimensions()
}

// ModelName returns the inner service's model name.
func (s *Service) ModelName() string {
	return s.inner.ModelName()
}

// Ping delegates to the inner service without retrying. A health check
// should report the current state, not mask an outage.
func (s *Service) Ping(ctx context.Context) error {
	return s.inner.Ping(ctx)
}

// Close releases the inner service's resources.
func (s *Service) Close() error {
	return s.inner.Close()
}

// do runs call with rate limiting, a per-attempt timeout and backoff retries.
func (s *Service) do(ctx context.Context, call func(context.Context) error) error {
	var lastErr error

	for attempt := 0; attempt <= s.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := s.backoffDelay(attempt)
			logger.Debug("Retrying embedding call in %s (attempt %d/%d)", delay, attempt, s.cfg.MaxRetries)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		if s.limiter != nil {
			if err := s.limiter.Wait(ctx); err != nil {
				return err
			}
		}

		attemptCtx := ctx
		cancel := context.CancelFunc(func() {})
		if s.cfg.AttemptTimeout > 0 {
			attemptCtx, cancel = context.WithTimeout(ctx, s.cfg.AttemptTimeout)
		}
		err := call(attemptCtx)
		cancel()

		if err == nil {
			return nil
		}
		lastErr = err

		if !isRetryable(err) {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}

	return fmt.Errorf("after %d retries: %w", s.cfg.MaxRetries, lastErr)
}

// backoffDelay returns the delay before the given retry attempt.
// Delays double from InitialBackoff and are capped at MaxBackoff.
func (s *Service) backoffDelay(attempt int) time.Duration {
	delay := s.cfg.InitialBackoff
	for i := 1; i < attempt; i++ {
		delay *= 2
		if delay >= s.cfg.MaxBackoff {
			return s.cfg.MaxBackoff
		}
	}
	if delay > s.cfg.MaxBackoff {
		return s.cfg.MaxBackoff
	}
	return delay
}

// isRetryable reports whether err is worth retrying. Unavailable backends
// and attempt timeouts are transient; cancellation and rejected input are not.
func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	return errors.Is(err, domain.ErrServiceUnavailable)
}
