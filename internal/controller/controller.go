package controller

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskboard/internal/service"
	"taskboard/pkg/logger"
)

// Pinger is a dependency checked by the readiness probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Controller holds the gin handlers for the HTTP API.
type Controller struct {
	accounts *service.Accounts
	tasks    *service.Tasks
	checks   map[string]Pinger
}

// New returns a Controller. checks maps a dependency name to its readiness probe.
func New(accounts *service.Accounts, tasks *service.Tasks, checks map[string]Pinger) *Controller {
	return &Controller{accounts: accounts, tasks: tasks, checks: checks}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

// internalError logs err and answers with a generic 500.
func internalError(c *gin.Context, op string, err error) {
	logger.Error(c.Request.Context(), op+" failed", "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
