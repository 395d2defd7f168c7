package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/examprep-service/internal/services"
	"github.com/SAP-F-2025/examprep-service/internal/utils"
	"github.com/SAP-F-2025/examprep-service/internal/validator"
)

type TaskHandler struct {
	BaseHandler
	taskService services.TaskService
}

func NewTaskHandler(taskService services.TaskService, logger utils.Logger) *TaskHandler {
	return &TaskHandler{
		BaseHandler: NewBaseHandler(logger),
		taskService: taskService,
	}
}

// CreateTask creates a task owned by the caller
// @Summary Create task
// @Tags tasks
// @Accept json
// @Produce json
// @Param task body validator.TaskCreateRequest true "Task data"
// @Success 200 {object} models.Task
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /create-task [post]
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		h.RespondWithError(c, http.StatusUnauthorized, "Not authenticated", nil)
		return
	}

	var req validator.TaskCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	task, err := h.taskService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// GetTasks lists the caller's tasks
// @Summary List tasks
// @Tags tasks
// @Produce json
// @Success 200 {array} models.Task
// @Failure 401 {object} ErrorResponse
// @Router /get-task [get]
func (h *TaskHandler) GetTasks(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		h.RespondWithError(c, http.StatusUnauthorized, "Not authenticated", nil)
		return
	}

	tasks, err := h.taskService.List(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// UpdateTask applies a partial update to one of the caller's tasks
// @Summary Update task
// @Tags tasks
// @Accept json
// @Produce json
// @Param task_id path uint true "Task ID"
// @Param task body validator.TaskUpdateRequest true "Fields to change"
// @Success 200 {object} models.Task
// @Failure 404 {object} ErrorResponse
// @Router /update-task/{task_id} [post]
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		h.RespondWithError(c, http.StatusUnauthorized, "Not authenticated", nil)
		return
	}

	taskID := h.parseIDParam(c, "task_id")
	if taskID == 0 {
		return
	}

	var req validator.TaskUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	h.LogRequest(c, "Updating task", "task_id", taskID, "user_id", userID)

	task, err := h.taskService.Update(c.Request.Context(), userID, taskID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}
