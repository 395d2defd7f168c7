package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SAP-F-2025/examprep-service/internal/events"
	"github.com/SAP-F-2025/examprep-service/internal/models"
	"github.com/SAP-F-2025/examprep-service/internal/repositories"
)

func seedTask(t *testing.T, repo repositories.Repository, userID uint, title string, due time.Time, status models.TaskStatus) *models.Task {
	t.Helper()
	task := &models.Task{Title: title, Status: status, DueDate: &due, UserID: userID}
	if err := repo.Task().Create(context.Background(), nil, task); err != nil {
		t.Fatalf("create task: %v", err)
	}
	return task
}

func TestReminderService_RunPass(t *testing.T) {
	repo := newTestRepo(t)
	user := seedUser(t, repo, "ana@example.com", "pw")
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	due := seedTask(t, repo, user.ID, "Mock test", now.Add(5*time.Minute), models.TaskPending)
	seedTask(t, repo, user.ID, "Later", now.Add(time.Hour), models.TaskPending)
	seedTask(t, repo, user.ID, "Done", now.Add(2*time.Minute), models.TaskCompleted)

	mail := &fakeMailer{}
	publisher := newMockPublisher()
	svc := NewReminderService(repo, mail, publisher, 10*time.Minute, testLogger())

	report, err := svc.RunPass(context.Background(), now)
	if err != nil {
		t.Fatalf("RunPass() error = %v", err)
	}
	if *report != (ReminderReport{Eligible: 1, Sent: 1}) {
		t.Errorf("report = %+v", report)
	}

	if len(mail.sent) != 1 {
		t.Fatalf("sent %d mails, want 1", len(mail.sent))
	}
	want := sentMail{
		To:      "ana@example.com",
		Subject: "Task Reminder",
		Body:    "Hi! Just a reminder that your task 'Mock test' is due at 2026-03-01 09:05 (UTC).",
	}
	if mail.sent[0] != want {
		t.Errorf("mail = %+v, want %+v", mail.sent[0], want)
	}

	if got := publisher.GetPublishedEvents(); len(got) != 1 || got[0].Type != events.TaskReminderSent {
		t.Errorf("published = %v", got)
	}

	// A second pass finds nothing: the reminder flag is set
	report, err = svc.RunPass(context.Background(), now)
	if err != nil {
		t.Fatalf("RunPass() error = %v", err)
	}
	if report.Eligible != 0 || len(mail.sent) != 1 {
		t.Errorf("second pass report = %+v, mails = %d", report, len(mail.sent))
	}

	task, err := repo.Task().GetByIDForOwner(context.Background(), nil, due.ID, user.ID)
	if err != nil {
		t.Fatalf("GetByIDForOwner() error = %v", err)
	}
	if !task.ReminderSent {
		t.Error("ReminderSent = false after a successful send")
	}
}

func TestReminderService_MailFailureLeavesTaskEligible(t *testing.T) {
	repo := newTestRepo(t)
	user := seedUser(t, repo, "ana@example.com", "pw")
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	seedTask(t, repo, user.ID, "Mock test", now.Add(time.Minute), models.TaskPending)

	mail := &fakeMailer{err: errors.New("smtp down")}
	svc := NewReminderService(repo, mail, nil, 10*time.Minute, testLogger())

	report, err := svc.RunPass(context.Background(), now)
	if err != nil {
		t.Fatalf("RunPass() error = %v", err)
	}
	if report.Failed != 1 || report.Sent != 0 {
		t.Errorf("report = %+v", report)
	}

	mail.err = nil
	report, err = svc.RunPass(context.Background(), now)
	if err != nil {
		t.Fatalf("RunPass() error = %v", err)
	}
	if report.Sent != 1 || len(mail.sent) != 1 {
		t.Errorf("retry report = %+v, mails = %d", report, len(mail.sent))
	}
}

func TestReminderService_SkipsMissingOwner(t *testing.T) {
	repo := newTestRepo(t)
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	seedTask(t, repo, 42, "Orphan", now.Add(time.Minute), models.TaskInProgress)

	mail := &fakeMailer{}
	svc := NewReminderService(repo, mail, nil, 10*time.Minute, testLogger())

	report, err := svc.RunPass(context.Background(), now)
	if err != nil {
		t.Fatalf("RunPass() error = %v", err)
	}
	if report.Skipped != 1 || len(mail.sent) != 0 {
		t.Errorf("report = %+v, mails = %d", report, len(mail.sent))
	}

	due, err := repo.Task().FindDue(context.Background(), nil, now, now.Add(10*time.Minute))
	if err != nil {
		t.Fatalf("FindDue() error = %v", err)
	}
	if len(due) != 1 {
		t.Errorf("skipped task no longer eligible")
	}
}

// concurrentPassMailer marks the task while its mail is in flight, the way a
// second worker finishing first would.
type concurrentPassMailer struct {
	repo   repositories.Repository
	taskID uint
	sent   int
}

func (m *concurrentPassMailer) Send(ctx context.Context, to, subject, body string) error {
	m.sent++
	_, err := m.repo.Task().MarkReminderSent(ctx, nil, m.taskID)
	return err
}

func TestReminderService_AlreadyMarkedIsNotCounted(t *testing.T) {
	repo := newTestRepo(t)
	user := seedUser(t, repo, "ana@example.com", "pw")
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	task := seedTask(t, repo, user.ID, "Mock test", now.Add(5*time.Minute), models.TaskPending)

	mail := &concurrentPassMailer{repo: repo, taskID: task.ID}
	publisher := newMockPublisher()
	svc := NewReminderService(repo, mail, publisher, 10*time.Minute, testLogger())

	report, err := svc.RunPass(context.Background(), now)
	if err != nil {
		t.Fatalf("RunPass() error = %v", err)
	}
	if *report != (ReminderReport{Eligible: 1, Skipped: 1}) {
		t.Errorf("report = %+v, want one skipped", report)
	}
	if mail.sent != 1 {
		t.Errorf("sent %d mails, want 1", mail.sent)
	}
	if got := publisher.GetPublishedEvents(); len(got) != 0 {
		t.Errorf("published %d events for a task another pass already marked", len(got))
	}
}
