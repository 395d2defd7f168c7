package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/examprep-service/internal/events"
	"github.com/SAP-F-2025/examprep-service/internal/mailer"
	"github.com/SAP-F-2025/examprep-service/internal/models"
	"github.com/SAP-F-2025/examprep-service/internal/repositories"
)

const reminderSubject = "Task Reminder"

type reminderService struct {
	repo      repositories.Repository
	mailer    mailer.Mailer
	publisher events.EventPublisher
	window    time.Duration
	logger    *slog.Logger
}

func NewReminderService(repo repositories.Repository, m mailer.Mailer, publisher events.EventPublisher, window time.Duration, logger *slog.Logger) ReminderService {
	return &reminderService{
		repo:      repo,
		mailer:    m,
		publisher: publisher,
		window:    window,
		logger:    logger,
	}
}

// RunPass mails every eligible task once. A task is marked only after its
// mail was accepted, so failed or skipped tasks are retried on the next pass.
func (s *reminderService) RunPass(ctx context.Context, now time.Time) (*ReminderReport, error) {
	now = now.UTC()
	tasks, err := s.repo.Task().FindDue(ctx, nil, now, now.Add(s.window))
	if err != nil {
		return nil, fmt.Errorf("failed to query due tasks: %w", err)
	}

	report := &ReminderReport{Eligible: len(tasks)}
	for _, task := range tasks {
		if ctx.Err() != nil {
			return report, ctx.Err()
		}

		user, err := s.repo.User().GetByID(ctx, nil, task.UserID)
		if err != nil || user.Email == "" {
			s.logger.Warn("Skipping reminder, owner has no address", "task_id", task.ID, "user_id", task.UserID, "error", err)
			report.Skipped++
			continue
		}

		if err := s.mailer.Send(ctx, user.Email, reminderSubject, reminderBody(task)); err != nil {
			s.logger.Error("Failed to send reminder", "task_id", task.ID, "email", user.Email, "error", err)
			report.Failed++
			continue
		}

		marked, err := s.repo.Task().MarkReminderSent(ctx, nil, task.ID)
		if err != nil {
			s.logger.Error("Failed to mark reminder sent", "task_id", task.ID, "error", err)
			report.Failed++
			continue
		}
		if !marked {
			s.logger.Info("Reminder already marked by another pass", "task_id", task.ID)
			report.Skipped++
			continue
		}

		report.Sent++
		s.logger.Info("Reminder sent", "task_id", task.ID, "email", user.Email)
		events.PublishSafe(ctx, s.publisher, s.logger, events.NewEvent(events.TaskReminderSent, events.ReminderSentEvent{
			TaskID: task.ID,
			UserID: task.UserID,
			Email:  user.Email,
			DueAt:  task.DueDate.UTC(),
		}))
	}

	return report, nil
}

func reminderBody(task *models.Task) string {
	return fmt.Sprintf("Hi! Just a reminder that your task '%s' is due at %s (UTC).",
		task.Title, task.DueDate.UTC().Format("2006-01-02 15:04"))
}
