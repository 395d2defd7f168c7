// Package generation relays prompts to the generative-language API and
// exposes the reply as a lazy sequence of text fragments.
package generation

import (
	"context"
	"errors"
	"iter"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"google.golang.org/api/googleapi"
)

var (
	// ErrStreamDone ends a Stream normally
	ErrStreamDone = errors.New("stream done")

	ErrModelsExhausted = errors.New("all generation models exhausted")
	ErrRateLimited     = errors.New("rate limited")
	ErrTimeout         = errors.New("generation timed out")
)

// ErrorPrefix starts every in-band error fragment
const ErrorPrefix = "Error: "

// Stream yields the fragments of one model reply
type Stream interface {
	// Next returns the next fragment, ErrStreamDone at the end, or any other error
	Next() (string, error)
}

// Generator opens a streaming generation against one model
type Generator interface {
	GenerateStream(ctx context.Context, model, prompt string) Stream
}

// Relay tries each configured model in order until one produces a reply
type Relay struct {
	generator Generator
	models    []string
	timeout   time.Duration
	logger    *slog.Logger
}

func NewRelay(generator Generator, models []string, timeout time.Duration, logger *slog.Logger) *Relay {
	return &Relay{
		generator: generator,
		models:    models,
		timeout:   timeout,
		logger:    logger,
	}
}

// Stream returns a single-use sequence of reply fragments. A rate-limited
// model is skipped only while nothing has been yielded yet. Any other
// failure, a timeout, or running out of models ends the sequence with one
// fragment starting with ErrorPrefix. Stopping the range loop or cancelling
// ctx stops reading from upstream.
func (r *Relay) Stream(ctx context.Context, prompt string) iter.Seq[string] {
	return func(yield func(string) bool) {
		var (
			callCtx context.Context
			cancel  context.CancelFunc
		)
		if r.timeout > 0 {
			callCtx, cancel = context.WithTimeout(ctx, r.timeout)
		} else {
			callCtx, cancel = context.WithCancel(ctx)
		}
		defer cancel()

		emitted := false
		for _, model := range r.models {
			stream := r.generator.GenerateStream(callCtx, model, prompt)
			if !r.drain(ctx, callCtx, model, stream, &emitted, yield) {
				return
			}
		}

		yield(ErrorPrefix + ErrModelsExhausted.Error())
	}
}

// drain forwards fragments from one model. It reports whether the relay
// should move on to the next model; false means the sequence is over.
func (r *Relay) drain(ctx, callCtx context.Context, model string, stream Stream, emitted *bool, yield func(string) bool) bool {
	for {
		fragment, err := stream.Next()
		switch {
		case errors.Is(err, ErrStreamDone):
			return false
		case err != nil:
			if ctx.Err() != nil {
				// consumer went away; nobody is left to read an error fragment
				return false
			}
			if callCtx.Err() != nil {
				r.logger.Warn("Generation timed out", "model", model, "timeout", r.timeout)
				yield(ErrorPrefix + ErrTimeout.Error())
				return false
			}
			if !*emitted && IsRateLimited(err) {
				r.logger.Warn("Model rate limited, trying next", "model", model, "error", err)
				return true
			}
			r.logger.Error("Generation failed", "model", model, "error", err)
			yield(ErrorPrefix + err.Error())
			return false
		}

		if fragment == "" {
			continue
		}
		*emitted = true
		if !yield(fragment) {
			return false
		}
	}
}

// IsRateLimited recognizes quota and rate-limit failures from the upstream API
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrRateLimited) {
		return true
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusTooManyRequests {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range []string{"429", "quota", "rate limit", "resourceexhausted", "resource_exhausted", "resource exhausted"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
