package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SAP-F-2025/examprep-service/internal/auth"
	"github.com/SAP-F-2025/examprep-service/internal/events"
	"github.com/SAP-F-2025/examprep-service/internal/mailer"
	"github.com/SAP-F-2025/examprep-service/internal/repositories"
	"github.com/SAP-F-2025/examprep-service/internal/validator"
)

// ServiceManagerConfig holds what the services need beyond the repository
type ServiceManagerConfig struct {
	Tokens    *auth.TokenManager
	Publisher events.EventPublisher
	Mailer    mailer.Mailer
	Relay     Streamer
	Fetcher   PageFetcher

	ExtractionTimeout time.Duration
	ReminderWindow    time.Duration
}

// serviceManager implements ServiceManager interface
type serviceManager struct {
	// Dependencies
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	config    ServiceManagerConfig

	// Service instances
	authService     AuthService
	userService     UserService
	taskService     TaskService
	resultService   ResultService
	examService     ExamService
	reminderService ReminderService

	// Lifecycle management
	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

// NewServiceManager creates a new service manager with all dependencies
func NewServiceManager(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, config ServiceManagerConfig) ServiceManager {
	return &serviceManager{
		repo:      repo,
		logger:    logger,
		validator: validator,
		config:    config,
	}
}

// Initialize sets up all services and their dependencies
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	sm.logger.Info("Initializing service manager")

	if err := sm.validateConfig(); err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	sm.authService = NewAuthService(sm.repo, sm.config.Tokens, sm.logger, sm.validator)
	sm.userService = NewUserService(sm.repo, sm.logger)
	sm.taskService = NewTaskService(sm.repo, sm.config.Publisher, sm.logger, sm.validator)
	sm.resultService = NewResultService(sm.repo, sm.config.Publisher, sm.logger, sm.validator)

	// Exam and reminder services are optional per process: the API has no
	// mailer and the worker has no relay.
	if sm.config.Relay != nil {
		sm.examService = NewExamService(sm.config.Relay, sm.config.Fetcher, sm.config.ExtractionTimeout, sm.logger, sm.validator)
		sm.logger.Info("Exam service initialized")
	}
	if sm.config.Mailer != nil {
		sm.reminderService = NewReminderService(sm.repo, sm.config.Mailer, sm.config.Publisher, sm.config.ReminderWindow, sm.logger)
		sm.logger.Info("Reminder service initialized")
	}

	sm.initialized = true
	sm.logger.Info("Service manager initialized successfully")

	return nil
}

func (sm *serviceManager) validateConfig() error {
	if sm.config.Tokens == nil {
		return fmt.Errorf("token manager is required")
	}
	if sm.config.Relay != nil {
		if sm.config.Fetcher == nil {
			return fmt.Errorf("page fetcher is required with a relay")
		}
		if sm.config.ExtractionTimeout <= 0 {
			return fmt.Errorf("extraction timeout must be positive")
		}
	}
	if sm.config.Mailer != nil && sm.config.ReminderWindow <= 0 {
		return fmt.Errorf("reminder window must be positive")
	}
	return nil
}

// Service getters
func (sm *serviceManager) Auth() AuthService {
	sm.mustBeInitialized()
	return sm.authService
}

func (sm *serviceManager) User() UserService {
	sm.mustBeInitialized()
	return sm.userService
}

func (sm *serviceManager) Task() TaskService {
	sm.mustBeInitialized()
	return sm.taskService
}

func (sm *serviceManager) Result() ResultService {
	sm.mustBeInitialized()
	return sm.resultService
}

func (sm *serviceManager) Exam() ExamService {
	sm.mustBeInitialized()
	if sm.examService == nil {
		panic("exam service not enabled or not initialized")
	}
	return sm.examService
}

func (sm *serviceManager) Reminder() ReminderService {
	sm.mustBeInitialized()
	if sm.reminderService == nil {
		panic("reminder service not enabled or not initialized")
	}
	return sm.reminderService
}

func (sm *serviceManager) mustBeInitialized() {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.logger.Info("Shutting down service manager")

	if sm.config.Publisher != nil {
		if err := sm.config.Publisher.Close(); err != nil {
			sm.logger.Error("Failed to close event publisher", "error", err)
		}
	}

	sm.shutdown = true
	sm.logger.Info("Service manager shut down completed")

	return nil
}
