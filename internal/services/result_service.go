package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"gorm.io/datatypes"

	"github.com/SAP-F-2025/examprep-service/internal/events"
	"github.com/SAP-F-2025/examprep-service/internal/models"
	"github.com/SAP-F-2025/examprep-service/internal/repositories"
	"github.com/SAP-F-2025/examprep-service/internal/validator"
)

const (
	trendPoints     = 7
	chartPoints     = 10
	chartDateLayout = "02 Jan"
)

type resultService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewResultService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator) ResultService {
	return &resultService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

func (s *resultService) Save(ctx context.Context, req *validator.ResultCreateRequest) (*models.SaveResultResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	breakdown := models.SectionalBreakdown(req.SectionalBreakdown)
	if breakdown == nil {
		breakdown = models.SectionalBreakdown{}
	}

	result := &models.ExamResult{
		UserID:             req.UserID,
		Topic:              req.Topic,
		TotalQuestions:     req.TotalQuestions,
		Attempted:          req.Attempted,
		Correct:            req.Correct,
		Wrong:              req.Wrong,
		Score:              req.Score,
		Accuracy:           req.Accuracy,
		TimeSpent:          req.TimeSpent,
		SectionalBreakdown: datatypes.NewJSONType(breakdown),
	}

	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		return tx.Result().Create(ctx, nil, result)
	})
	if err != nil {
		s.logger.Error("Failed to save exam result", "user_id", req.UserID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	s.logger.Info("Exam result saved", "result_id", result.ID, "user_id", result.UserID)
	events.PublishSafe(ctx, s.publisher, s.logger, events.NewEvent(events.ResultSaved, events.ResultSavedEvent{
		ResultID: result.ID,
		UserID:   result.UserID,
		Topic:    result.Topic,
		Score:    result.Score,
		Accuracy: result.Accuracy,
	}))

	return &models.SaveResultResponse{Status: "success", ResultID: result.ID}, nil
}

// Progress summarizes a user's history, newest result first
func (s *resultService) Progress(ctx context.Context, userID string) (*models.ProgressResponse, error) {
	results, err := s.repo.Result().ListByUserNewestFirst(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if len(results) == 0 {
		return nil, ErrResultsNotFound
	}

	avgScore, avgAccuracy := means(results)

	latest := results[0].SectionalBreakdown.Data()
	if latest == nil {
		latest = models.SectionalBreakdown{}
	}

	n := min(trendPoints, len(results))
	trend := make([]float64, n)
	for i := 0; i < n; i++ {
		trend[n-1-i] = results[i].Score
	}

	return &models.ProgressResponse{
		AvgScore:        avgScore,
		AvgAccuracy:     avgAccuracy,
		LatestSectional: latest,
		WeeklyTrend:     trend,
		TotalMocks:      len(results),
	}, nil
}

// Dashboard summarizes a user's history in insertion order; the chart shows
// the last ten inserted results.
func (s *resultService) Dashboard(ctx context.Context, userID string) (*models.DashboardStatsResponse, error) {
	results, err := s.repo.Result().ListByUserInsertionOrder(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if len(results) == 0 {
		return nil, ErrResultsNotFound
	}

	avgScore, avgAccuracy := means(results)

	recent := results[max(0, len(results)-chartPoints):]
	chart := make([]models.ChartPoint, 0, len(recent))
	for _, r := range recent {
		chart = append(chart, models.ChartPoint{
			Date:  r.CreatedAt.Format(chartDateLayout),
			Score: r.Score,
		})
	}

	return &models.DashboardStatsResponse{
		TotalMocks:  len(results),
		AvgScore:    avgScore,
		AvgAccuracy: avgAccuracy,
		ChartData:   chart,
	}, nil
}

// means returns the average score and accuracy rounded to 2 decimals
func means(results []*models.ExamResult) (float64, float64) {
	var score, accuracy float64
	for _, r := range results {
		score += r.Score
		accuracy += r.Accuracy
	}
	n := float64(len(results))
	return roundFloat(score/n, 2), roundFloat(accuracy/n, 2)
}

func roundFloat(val float64, precision int) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}
