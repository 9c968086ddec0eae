package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kanban-board-api/internal/dto"
	"kanban-board-api/internal/response"
	"kanban-board-api/internal/service"
)

// TaskHandler serves the task endpoints, including the assigned-to-me
// and reviewing views
type TaskHandler struct {
	taskService service.TaskService
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// CreateTask handles POST /tasks
func (h *TaskHandler) CreateTask(c *gin.Context) {
	principal, ok := principalFromContext(c)
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	result, err := h.taskService.CreateTask(c.Request.Context(), principal, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, result)
}

// GetTask handles GET /tasks/:taskId
func (h *TaskHandler) GetTask(c *gin.Context) {
	principal, ok := principalFromContext(c)
	if !ok {
		return
	}
	taskID, ok := pathUUID(c, "taskId")
	if !ok {
		return
	}

	result, err := h.taskService.GetTask(c.Request.Context(), principal, taskID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// UpdateTask handles PATCH /tasks/:taskId
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	principal, ok := principalFromContext(c)
	if !ok {
		return
	}
	taskID, ok := pathUUID(c, "taskId")
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	result, err := h.taskService.UpdateTask(c.Request.Context(), principal, taskID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// DeleteTask handles DELETE /tasks/:taskId
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	principal, ok := principalFromContext(c)
	if !ok {
		return
	}
	taskID, ok := pathUUID(c, "taskId")
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), principal, taskID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusNoContent, nil)
}

// ListAssignedToMe handles GET /tasks/assigned-to-me
func (h *TaskHandler) ListAssignedToMe(c *gin.Context) {
	principal, ok := principalFromContext(c)
	if !ok {
		return
	}

	result, err := h.taskService.ListAssignedToMe(c.Request.Context(), principal)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// ListReviewing handles GET /tasks/reviewing
func (h *TaskHandler) ListReviewing(c *gin.Context) {
	principal, ok := principalFromContext(c)
	if !ok {
		return
	}

	result, err := h.taskService.ListReviewing(c.Request.Context(), principal)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}
