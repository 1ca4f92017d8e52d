package http

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"expense-tracker-api/internal/auth"
	"expense-tracker-api/internal/models"
)

type registerRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=100"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type authResponse struct {
	User   *models.User   `json:"user"`
	Tokens auth.TokenPair `json:"tokens"`
}

// POST /register
func (s *Server) register(c *gin.Context) {
	var input registerRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Validation error", "errors": err.Error()})
		return
	}

	user, err := s.authSvc.Register(input.Name, input.Email, input.Password)
	if errors.Is(err, auth.ErrDuplicateEmail) {
		c.JSON(400, gin.H{"success": false, "message": err.Error()})
		return
	} else if err != nil {
		internalError(c, err)
		return
	}

	c.JSON(201, gin.H{
		"success": true,
		"message": "User registered successfully",
		"data":    gin.H{"user": user},
	})
}

// POST /login
func (s *Server) login(c *gin.Context) {
	var input loginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Validation error", "errors": err.Error()})
		return
	}

	user, tokens, err := s.authSvc.Login(input.Email, input.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		c.JSON(401, gin.H{"success": false, "message": err.Error()})
		return
	} else if err != nil {
		internalError(c, err)
		return
	}

	c.JSON(200, gin.H{
		"success": true,
		"message": "Login successful",
		"data":    authResponse{User: user, Tokens: tokens},
	})
}

// POST /auth/refresh
func (s *Server) refresh(c *gin.Context) {
	var input struct {
		RefreshToken string `json:"refreshToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Refresh token is required"})
		return
	}

	tokens, err := s.authSvc.RefreshAccessToken(input.RefreshToken)
	if errors.Is(err, auth.ErrInvalidToken) || errors.Is(err, auth.ErrUserNotFound) {
		c.JSON(401, gin.H{"success": false, "message": "Invalid refresh token"})
		return
	} else if err != nil {
		internalError(c, err)
		return
	}

	c.JSON(200, gin.H{
		"success": true,
		"message": "Tokens refreshed successfully",
		"data":    gin.H{"tokens": tokens},
	})
}

// POST /auth/logout
func (s *Server) logout(c *gin.Context) {
	userID := c.MustGet("userID").(string)
	if err := s.authSvc.Logout(userID); err != nil {
		internalError(c, err)
		return
	}
	c.JSON(200, gin.H{"success": true, "message": "Logged out successfully"})
}

// internalError logs the real cause and returns a generic 500 so storage
// internals never leak to the caller.
func internalError(c *gin.Context, err error) {
	log.Printf("internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(500, gin.H{"success": false, "message": "Internal server error"})
}
