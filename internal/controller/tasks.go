package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskboard/internal/middleware"
	"taskboard/internal/models"
	"taskboard/internal/service"
)

type createTaskRequest struct {
	Title    string          `json:"title"`
	Category models.Category `json:"category"`
}

// ListTasks (auth): returns the caller's tasks.
func (h *Controller) ListTasks(c *gin.Context) {
	tasks, err := h.tasks.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		internalError(c, "ListTasks", err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// CreateTask (auth): stores a task owned by the caller, returns 201 with it.
func (h *Controller) CreateTask(c *gin.Context) {
	var body createTaskRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "Invalid request")
		return
	}
	task, err := h.tasks.Create(c.Request.Context(), middleware.UserID(c), body.Title, body.Category)
	if errors.Is(err, service.ErrInvalidCategory) {
		badRequest(c, "Invalid category")
		return
	}
	if err != nil {
		internalError(c, "CreateTask", err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

// DeleteTask (auth): removes a task by id. Unknown ids still succeed.
func (h *Controller) DeleteTask(c *gin.Context) {
	err := h.tasks.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if errors.Is(err, service.ErrForbidden) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}
	if err != nil {
		internalError(c, "DeleteTask", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}
