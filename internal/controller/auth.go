package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskboard/internal/service"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register creates an account: 201 on success, 400 on a taken email.
func (h *Controller) Register(c *gin.Context) {
	var body registerRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "Invalid request")
		return
	}
	id, err := h.accounts.Register(c.Request.Context(), body.Name, body.Email, body.Password)
	if errors.Is(err, service.ErrDuplicateEmail) {
		badRequest(c, "Email already in use")
		return
	}
	if err != nil {
		internalError(c, "Register", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully", "id": id})
}

// Login exchanges credentials for a token.
func (h *Controller) Login(c *gin.Context) {
	var body loginRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "Invalid request")
		return
	}
	tok, err := h.accounts.Login(c.Request.Context(), body.Email, body.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		badRequest(c, "Invalid credentials")
		return
	}
	if err != nil {
		internalError(c, "Login", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": tok})
}
