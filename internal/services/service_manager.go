package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/hirelens/interview-service/internal/events"
	"github.com/hirelens/interview-service/internal/repositories"
	"github.com/hirelens/interview-service/internal/validator"
)

// ServiceManagerConfig holds configuration for the service manager
type ServiceManagerConfig struct {
	JWTSecret string
	TokenTTL  time.Duration

	AdminEmail    string
	AdminPassword string

	// SingleInProgressSession makes Start return the open session for a
	// (candidate, set) pair instead of creating another.
	SingleInProgressSession bool

	DefaultTimeout time.Duration
}

// serviceManager implements ServiceManager interface
type serviceManager struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	extractor TextExtractor
	publisher events.EventPublisher
	config    ServiceManagerConfig

	authService        AuthService
	questionSetService QuestionSetService
	ingestService      IngestService
	gradingService     GradingService
	sessionService     SessionService
	reportService      ReportService

	initialized bool
	mu          sync.RWMutex
}

// NewServiceManager creates a new service manager with all dependencies
func NewServiceManager(repo repositories.Repository, logger *slog.Logger, v *validator.Validator, extractor TextExtractor, publisher events.EventPublisher, config ServiceManagerConfig) ServiceManager {
	if config.TokenTTL == 0 {
		config.TokenTTL = 24 * time.Hour
	}
	if config.DefaultTimeout == 0 {
		config.DefaultTimeout = 30 * time.Second
	}
	return &serviceManager{
		repo:      repo,
		logger:    logger,
		validator: v,
		extractor: extractor,
		publisher: publisher,
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

	sm.authService = NewAuthService(sm.repo, sm.logger, sm.validator, sm.config.JWTSecret, sm.config.TokenTTL)
	sm.questionSetService = NewQuestionSetService(sm.repo, sm.logger, sm.validator, sm.publisher)
	sm.ingestService = NewIngestService(sm.repo, sm.logger, sm.validator, sm.extractor)
	sm.gradingService = NewGradingService(sm.repo, sm.logger)
	sm.sessionService = NewSessionService(sm.repo, sm.logger, sm.publisher, sm.config.SingleInProgressSession)
	sm.reportService = NewReportService(sm.repo, sm.logger)

	if err := sm.authService.EnsureAdmin(ctx, sm.config.AdminEmail, sm.config.AdminPassword); err != nil {
		return fmt.Errorf("failed to bootstrap admin account: %w", err)
	}

	sm.initialized = true
	sm.logger.Info("Service manager initialized successfully")

	return nil
}

// Service getters
func (sm *serviceManager) Auth() AuthService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.authService
}

func (sm *serviceManager) QuestionSet() QuestionSetService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.questionSetService
}

func (sm *serviceManager) Ingest() IngestService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.ingestService
}

func (sm *serviceManager) Grading() GradingService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.gradingService
}

func (sm *serviceManager) Session() SessionService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.sessionService
}

func (sm *serviceManager) Report() ReportService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.reportService
}

// Shutdown releases service resources
func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return nil
	}

	sm.logger.Info("Shutting down service manager")

	if sm.publisher != nil {
		if err := sm.publisher.Close(); err != nil {
			sm.logger.Warn("failed to close event publisher", "error", err)
		}
	}

	sm.initialized = false
	return nil
}
