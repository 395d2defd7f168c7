package generation

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
	"strings"
	"testing"
	"time"

	"google.golang.org/api/googleapi"
)

// scriptedStream replays fragments, then returns err (ErrStreamDone when nil)
type scriptedStream struct {
	ctx       context.Context
	fragments []string
	err       error
	reads     *int
	delay     time.Duration
}

func (s *scriptedStream) Next() (string, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-s.ctx.Done():
			return "", s.ctx.Err()
		}
	}
	if err := s.ctx.Err(); err != nil {
		return "", err
	}
	if len(s.fragments) > 0 {
		f := s.fragments[0]
		s.fragments = s.fragments[1:]
		if s.reads != nil {
			*s.reads++
		}
		return f, nil
	}
	if s.err != nil {
		return "", s.err
	}
	return "", ErrStreamDone
}

type fakeGenerator struct {
	scripts map[string]*scriptedStream
	calls   []string
}

func (g *fakeGenerator) GenerateStream(ctx context.Context, model, prompt string) Stream {
	g.calls = append(g.calls, model)
	s, ok := g.scripts[model]
	if !ok {
		return &scriptedStream{ctx: ctx, err: errors.New("unknown model")}
	}
	s.ctx = ctx
	return s
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRelay_Stream(t *testing.T) {
	rateLimit := &googleapi.Error{Code: 429, Message: "quota exceeded"}

	tests := []struct {
		name      string
		models    []string
		scripts   map[string]*scriptedStream
		want      []string
		wantCalls []string
	}{
		{
			name:      "first model succeeds",
			models:    []string{"a", "b"},
			scripts:   map[string]*scriptedStream{"a": {fragments: []string{"[", "{}", "]"}}},
			want:      []string{"[", "{}", "]"},
			wantCalls: []string{"a"},
		},
		{
			name:   "rate limited falls through",
			models: []string{"a", "b"},
			scripts: map[string]*scriptedStream{
				"a": {err: rateLimit},
				"b": {fragments: []string{"ok"}},
			},
			want:      []string{"ok"},
			wantCalls: []string{"a", "b"},
		},
		{
			name:      "all models rate limited",
			models:    []string{"a", "b"},
			scripts:   map[string]*scriptedStream{"a": {err: rateLimit}, "b": {err: errors.New("RESOURCE_EXHAUSTED")}},
			want:      []string{"Error: all generation models exhausted"},
			wantCalls: []string{"a", "b"},
		},
		{
			name:      "other failure stops",
			models:    []string{"a", "b"},
			scripts:   map[string]*scriptedStream{"a": {err: errors.New("invalid api key")}},
			want:      []string{"Error: invalid api key"},
			wantCalls: []string{"a"},
		},
		{
			name:   "rate limit after output is not retried",
			models: []string{"a", "b"},
			scripts: map[string]*scriptedStream{
				"a": {fragments: []string{"[{"}, err: rateLimit},
				"b": {fragments: []string{"never"}},
			},
			want:      []string{"[{", "Error: " + rateLimit.Error()},
			wantCalls: []string{"a"},
		},
		{
			name:      "empty fragments skipped",
			models:    []string{"a"},
			scripts:   map[string]*scriptedStream{"a": {fragments: []string{"", "x", ""}}},
			want:      []string{"x"},
			wantCalls: []string{"a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{scripts: tt.scripts}
			relay := NewRelay(gen, tt.models, time.Minute, testLogger())

			got := slices.Collect(relay.Stream(context.Background(), "prompt"))
			if !slices.Equal(got, tt.want) {
				t.Errorf("Stream() = %q, want %q", got, tt.want)
			}
			if !slices.Equal(gen.calls, tt.wantCalls) {
				t.Errorf("models called = %v, want %v", gen.calls, tt.wantCalls)
			}
		})
	}
}

func TestRelay_ConsumerStops(t *testing.T) {
	reads := 0
	gen := &fakeGenerator{scripts: map[string]*scriptedStream{
		"a": {fragments: []string{"1", "2", "3", "4", "5"}, reads: &reads},
	}}
	relay := NewRelay(gen, []string{"a"}, time.Minute, testLogger())

	for fragment := range relay.Stream(context.Background(), "prompt") {
		if fragment == "2" {
			break
		}
	}
	if reads != 2 {
		t.Errorf("upstream reads = %d, want 2", reads)
	}
}

func TestRelay_ContextCancelled(t *testing.T) {
	gen := &fakeGenerator{scripts: map[string]*scriptedStream{
		"a": {fragments: []string{"1", "2"}, delay: time.Second},
	}}
	relay := NewRelay(gen, []string{"a"}, time.Minute, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got := slices.Collect(relay.Stream(ctx, "prompt"))
	if len(got) != 0 {
		t.Errorf("Stream() after cancel = %q, want nothing", got)
	}
}

func TestRelay_Timeout(t *testing.T) {
	gen := &fakeGenerator{scripts: map[string]*scriptedStream{
		"a": {fragments: []string{"1"}, delay: time.Second},
	}}
	relay := NewRelay(gen, []string{"a"}, 20*time.Millisecond, testLogger())

	got := slices.Collect(relay.Stream(context.Background(), "prompt"))
	if len(got) != 1 || !strings.HasPrefix(got[0], ErrorPrefix) || !strings.Contains(got[0], "timed out") {
		t.Errorf("Stream() = %q, want a single timeout fragment", got)
	}
}

func TestIsRateLimited(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{&googleapi.Error{Code: 429}, true},
		{&googleapi.Error{Code: 500}, false},
		{errors.New("googleapi: Error 429: too many requests"), true},
		{errors.New("You exceeded your current quota"), true},
		{errors.New("rpc error: code = ResourceExhausted"), true},
		{errors.New("permission denied"), false},
	}
	for _, tt := range tests {
		if got := IsRateLimited(tt.err); got != tt.want {
			t.Errorf("IsRateLimited(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
