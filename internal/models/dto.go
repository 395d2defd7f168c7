package models

import "time"

// ===== AUTH DTOs =====

type LoginResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	User        UserProfile `json:"user"`
}

// ===== ANALYTICS DTOs =====

type ProgressResponse struct {
	AvgScore        float64            `json:"avg_score"`
	AvgAccuracy     float64            `json:"avg_accuracy"`
	LatestSectional SectionalBreakdown `json:"latest_sectional"`
	WeeklyTrend     []float64          `json:"weekly_trend"`
	TotalMocks      int                `json:"total_mocks"`
}

type ChartPoint struct {
	Date  string  `json:"date"`
	Score float64 `json:"score"`
}

type DashboardStatsResponse struct {
	TotalMocks  int          `json:"total_mocks"`
	AvgScore    float64      `json:"avg_score"`
	AvgAccuracy float64      `json:"avg_accuracy"`
	ChartData   []ChartPoint `json:"chart_data"`
}

type SaveResultResponse struct {
	Status   string `json:"status"`
	ResultID uint   `json:"result_id"`
}

// ===== ERROR RESPONSES =====

type ErrorResponse struct {
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Path      string      `json:"path,omitempty"`
}

type SuccessResponse struct {
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}
