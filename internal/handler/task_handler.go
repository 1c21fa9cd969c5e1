package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskboard/internal/apperr"
	"taskboard/internal/model"
	"taskboard/internal/service/task"
)

type TaskHandler struct {
	taskService *task.Service
	logger      *zap.Logger
}

func NewTaskHandler(taskService *task.Service, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{taskService: taskService, logger: logger}
}

// ListTasks handles GET /api/tasks?status=.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, ok := requesterID(c)
	if !ok {
		return
	}

	tasks, err := h.taskService.List(c.Request.Context(), userID, c.Query("status"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// CreateTask handles POST /api/tasks.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, ok := requesterID(c)
	if !ok {
		return
	}

	var req struct {
		Title       string             `json:"title"`
		Description string             `json:"description"`
		Status      string             `json:"status"`
		DueDate     model.NullableTime `json:"dueDate"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request"})
		return
	}

	created, err := h.taskService.Create(c.Request.Context(), userID, task.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		DueDate:     req.DueDate.Pointer(),
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.logger.Info("Task created",
		zap.Int("task_id", created.ID),
		zap.Int("user_id", userID),
	)
	c.JSON(http.StatusCreated, created)
}

// UpdateTask handles PUT /api/tasks/:id.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, ok := requesterID(c)
	if !ok {
		return
	}
	taskID, err := taskIDParam(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	var patch model.TaskPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request"})
		return
	}

	updated, err := h.taskService.Update(c.Request.Context(), userID, taskID, patch)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteTask handles DELETE /api/tasks/:id.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, ok := requesterID(c)
	if !ok {
		return
	}
	taskID, err := taskIDParam(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if err := h.taskService.Delete(c.Request.Context(), userID, taskID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}

// taskIDParam parses the :id path segment. A non-numeric id can never
// match a row, so it reports ErrNotFound rather than a validation error.
func taskIDParam(c *gin.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, apperr.ErrNotFound
	}
	return id, nil
}
