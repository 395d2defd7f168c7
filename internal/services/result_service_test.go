package services

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/SAP-F-2025/examprep-service/internal/events"
	"github.com/SAP-F-2025/examprep-service/internal/models"
	"github.com/SAP-F-2025/examprep-service/internal/validator"
)

func saveResults(t *testing.T, svc ResultService, userID string, scores ...float64) {
	t.Helper()
	for i, score := range scores {
		_, err := svc.Save(context.Background(), &validator.ResultCreateRequest{
			UserID:             userID,
			Topic:              "Algebra",
			TotalQuestions:     10,
			Score:              score,
			Accuracy:           score / 2,
			SectionalBreakdown: map[string]int{"algebra": i},
		})
		if err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}
}

func TestResultService_EmptyHistory(t *testing.T) {
	svc := NewResultService(newTestRepo(t), nil, testLogger(), validator.New())

	if _, err := svc.Progress(context.Background(), "u1"); !errors.Is(err, ErrResultsNotFound) {
		t.Errorf("Progress() error = %v, want ErrResultsNotFound", err)
	}
	if _, err := svc.Dashboard(context.Background(), "u1"); !errors.Is(err, ErrResultsNotFound) {
		t.Errorf("Dashboard() error = %v, want ErrResultsNotFound", err)
	}
}

func TestResultService_SingleResult(t *testing.T) {
	publisher := newMockPublisher()
	svc := NewResultService(newTestRepo(t), publisher, testLogger(), validator.New())
	saveResults(t, svc, "u1", 7)

	progress, err := svc.Progress(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Progress() error = %v", err)
	}
	want := &models.ProgressResponse{
		AvgScore:        7,
		AvgAccuracy:     3.5,
		LatestSectional: models.SectionalBreakdown{"algebra": 0},
		WeeklyTrend:     []float64{7},
		TotalMocks:      1,
	}
	if !reflect.DeepEqual(progress, want) {
		t.Errorf("Progress() = %+v, want %+v", progress, want)
	}

	if got := publisher.GetPublishedEvents(); len(got) != 1 || got[0].Type != events.ResultSaved {
		t.Errorf("published = %v", got)
	}
}

func TestResultService_ProgressTrend(t *testing.T) {
	svc := NewResultService(newTestRepo(t), nil, testLogger(), validator.New())
	saveResults(t, svc, "u1", 1, 2, 3, 4, 5, 6, 7, 8, 9)
	saveResults(t, svc, "u2", 100)

	progress, err := svc.Progress(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Progress() error = %v", err)
	}
	if progress.TotalMocks != 9 || progress.AvgScore != 5 || progress.AvgAccuracy != 2.5 {
		t.Errorf("Progress() = %+v", progress)
	}
	if want := []float64{3, 4, 5, 6, 7, 8, 9}; !reflect.DeepEqual(progress.WeeklyTrend, want) {
		t.Errorf("WeeklyTrend = %v, want %v", progress.WeeklyTrend, want)
	}
	if progress.LatestSectional["algebra"] != 8 {
		t.Errorf("LatestSectional = %v, want the newest result's breakdown", progress.LatestSectional)
	}
}

func TestResultService_Dashboard(t *testing.T) {
	svc := NewResultService(newTestRepo(t), nil, testLogger(), validator.New())
	saveResults(t, svc, "u1", 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12)

	stats, err := svc.Dashboard(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Dashboard() error = %v", err)
	}
	if stats.TotalMocks != 12 || stats.AvgScore != 6.5 {
		t.Errorf("Dashboard() = %+v", stats)
	}
	if len(stats.ChartData) != 10 {
		t.Fatalf("len(ChartData) = %d, want 10", len(stats.ChartData))
	}
	if stats.ChartData[0].Score != 3 || stats.ChartData[9].Score != 12 {
		t.Errorf("ChartData = %+v, want the last ten in insertion order", stats.ChartData)
	}
}

func TestRoundFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{in: 2.346, want: 2.35},
		{in: 1.0 / 3.0, want: 0.33},
		{in: 5, want: 5},
	}
	for _, tt := range tests {
		if got := roundFloat(tt.in, 2); got != tt.want {
			t.Errorf("roundFloat(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
