package services

import (
	"context"
	"errors"
	"io"
	"iter"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/SAP-F-2025/examprep-service/internal/auth"
	"github.com/SAP-F-2025/examprep-service/internal/events"
	"github.com/SAP-F-2025/examprep-service/internal/models"
	"github.com/SAP-F-2025/examprep-service/internal/repositories"
	"github.com/SAP-F-2025/examprep-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/examprep-service/internal/testutil"
	"github.com/SAP-F-2025/examprep-service/internal/validator"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRepo(t *testing.T) repositories.Repository {
	t.Helper()
	return postgres.NewPostgreSQLRepository(postgres.RepositoryConfig{DB: testutil.NewTestDB(t)})
}

func newTestTokens(t *testing.T) *auth.TokenManager {
	t.Helper()
	tokens, err := auth.NewTokenManager("test-secret", "HS256", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenManager() error = %v", err)
	}
	return tokens
}

func seedUser(t *testing.T, repo repositories.Repository, email, password string) *models.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	user := &models.User{Email: email, PasswordHash: hash}
	if err := repo.User().Create(context.Background(), nil, user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

type sentMail struct {
	To, Subject, Body string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *fakeMailer) Send(ctx context.Context, to, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

// fakeStreamer records the last prompt and replays fixed fragments
type fakeStreamer struct {
	fragments []string
	prompt    string
}

func (s *fakeStreamer) Stream(ctx context.Context, prompt string) iter.Seq[string] {
	s.prompt = prompt
	return func(yield func(string) bool) {
		for _, f := range s.fragments {
			if !yield(f) {
				return
			}
		}
	}
}

type fakeFetcher struct {
	text string
	err  error
}

func (f *fakeFetcher) FetchText(ctx context.Context, url string) (string, error) {
	return f.text, f.err
}

func collect(seq iter.Seq[string]) string {
	var out string
	for f := range seq {
		out += f
	}
	return out
}

func isValidationError(err error) bool {
	var ve validator.ValidationErrors
	return errors.As(err, &ve)
}

func newMockPublisher() *events.MockEventPublisher {
	return events.NewMockEventPublisher(testLogger())
}
