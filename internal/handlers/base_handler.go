package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/examprep-service/internal/document"
	"github.com/SAP-F-2025/examprep-service/internal/models"
	"github.com/SAP-F-2025/examprep-service/internal/services"
	"github.com/SAP-F-2025/examprep-service/internal/utils"
	"github.com/SAP-F-2025/examprep-service/internal/validator"
)

type ErrorResponse = models.ErrorResponse

// BaseHandler carries what every handler shares: logging and error mapping
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	utils.GetLogger(c, h.logger).Info(msg, args...)
}

func (h BaseHandler) LogError(c *gin.Context, err error, msg string, args ...any) {
	utils.GetLogger(c, h.logger).Error(msg, append(args, "error", err)...)
}

// RespondWithError writes an ErrorResponse and stops the chain
func (h BaseHandler) RespondWithError(c *gin.Context, status int, message string, details interface{}) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		Message:   message,
		Details:   details,
		Timestamp: time.Now().UTC(),
		Path:      c.Request.URL.Path,
	})
}

func (h BaseHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		h.RespondWithError(c, http.StatusBadRequest, "Validation failed", validationErrors)
		return
	}

	var anchorErr *document.AnchorNotFoundError
	if errors.As(err, &anchorErr) {
		h.RespondWithError(c, http.StatusNotFound, anchorErr.Error(), gin.H{
			"requested":       anchorErr.Requested,
			"detected_labels": anchorErr.DetectedLabels,
		})
		return
	}

	switch {
	case errors.Is(err, services.ErrUnauthorized):
		h.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials", nil)
	case errors.Is(err, services.ErrTaskNotFound):
		h.RespondWithError(c, http.StatusNotFound, "Task not found", nil)
	case errors.Is(err, services.ErrResultsNotFound):
		h.RespondWithError(c, http.StatusNotFound, "No exam history found", nil)
	case errors.Is(err, document.ErrUnsupportedDocument):
		h.RespondWithError(c, http.StatusUnsupportedMediaType, "Unsupported document", err.Error())
	case errors.Is(err, services.ErrExtractionTimeout):
		h.RespondWithError(c, http.StatusGatewayTimeout, "Document extraction timed out", nil)
	case errors.Is(err, services.ErrWebFetch):
		h.RespondWithError(c, http.StatusBadGateway, err.Error(), nil)
	default:
		h.LogError(c, err, "Unhandled service error")
		h.RespondWithError(c, http.StatusInternalServerError, "Internal server error", nil)
	}
}

func (h BaseHandler) parseIDParam(c *gin.Context, param string) uint {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil || id == 0 {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid "+param, c.Param(param))
		return 0
	}
	return uint(id)
}
