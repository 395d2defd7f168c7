package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/examprep-service/internal/services"
	"github.com/SAP-F-2025/examprep-service/internal/utils"
	"github.com/SAP-F-2025/examprep-service/internal/validator"
)

type StatsHandler struct {
	BaseHandler
	resultService services.ResultService
}

func NewStatsHandler(resultService services.ResultService, logger utils.Logger) *StatsHandler {
	return &StatsHandler{
		BaseHandler:   NewBaseHandler(logger),
		resultService: resultService,
	}
}

// SaveResult stores one finished exam
// @Summary Save exam result
// @Tags stats
// @Accept json
// @Produce json
// @Param result body validator.ResultCreateRequest true "Result"
// @Success 200 {object} models.SaveResultResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/stats/save-result [post]
func (h *StatsHandler) SaveResult(c *gin.Context) {
	var req validator.ResultCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	resp, err := h.resultService.Save(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetProgress
// @Summary Progress summary
// @Tags stats
// @Produce json
// @Param user_id path string true "External user id"
// @Success 200 {object} models.ProgressResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/stats/progress/{user_id} [get]
func (h *StatsHandler) GetProgress(c *gin.Context) {
	resp, err := h.resultService.Progress(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetDashboardStats
// @Summary Dashboard statistics
// @Tags stats
// @Produce json
// @Param user_id path string true "External user id"
// @Success 200 {object} models.DashboardStatsResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/stats/dashboard-stats/{user_id} [get]
func (h *StatsHandler) GetDashboardStats(c *gin.Context) {
	resp, err := h.resultService.Dashboard(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
