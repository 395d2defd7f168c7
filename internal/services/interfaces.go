package services

import (
	"context"
	"iter"
	"time"

	"github.com/SAP-F-2025/examprep-service/internal/models"
	"github.com/SAP-F-2025/examprep-service/internal/validator"
)

// ===== SERVICE INTERFACES =====

type AuthService interface {
	// Login checks credentials and issues an access token
	Login(ctx context.Context, req *validator.LoginRequest) (*models.LoginResponse, error)

	// Authenticate returns the user id carried by a valid access token
	Authenticate(ctx context.Context, token string) (uint, error)
}

type UserService interface {
	List(ctx context.Context) ([]models.UserProfile, error)
}

type TaskService interface {
	Create(ctx context.Context, ownerID uint, req *validator.TaskCreateRequest) (*models.Task, error)
	List(ctx context.Context, ownerID uint) ([]*models.Task, error)
	Update(ctx context.Context, ownerID, taskID uint, req *validator.TaskUpdateRequest) (*models.Task, error)
}

type ResultService interface {
	Save(ctx context.Context, req *validator.ResultCreateRequest) (*models.SaveResultResponse, error)
	Progress(ctx context.Context, userID string) (*models.ProgressResponse, error)
	Dashboard(ctx context.Context, userID string) (*models.DashboardStatsResponse, error)
}

type ExamService interface {
	GenerateFromTopic(ctx context.Context, req *validator.ExamRequest) (iter.Seq[string], error)
	GenerateFromDocument(ctx context.Context, upload *Upload, form *validator.DocumentExamForm) (iter.Seq[string], error)
	ExtractQuestions(ctx context.Context, upload *Upload, form *validator.ExtractionForm) (*Extraction, error)
	GenerateFromWeb(ctx context.Context, req *validator.ExamRequest) (iter.Seq[string], error)
}

type ReminderService interface {
	// RunPass sends reminders for tasks due within the window starting at now
	RunPass(ctx context.Context, now time.Time) (*ReminderReport, error)
}

// ===== SHARED TYPES =====

// Upload is a received file held in memory
type Upload struct {
	Filename string
	Data     []byte
}

// Extraction is a question extraction stream plus what was learned about the document
type Extraction struct {
	Fragments     iter.Seq[string]
	QuestionCount int
	DiagramPages  []int
}

type ReminderReport struct {
	Eligible int `json:"eligible"`
	Sent     int `json:"sent"`
	Skipped  int `json:"skipped"`
	Failed   int `json:"failed"`
}

// ServiceManager interface for managing all services
type ServiceManager interface {
	Auth() AuthService
	User() UserService
	Task() TaskService
	Result() ResultService
	Exam() ExamService
	Reminder() ReminderService

	Initialize(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
