package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dkovalev/accountd/internal/common"
)

type credentialsRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (s *Server) signUp(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	err := s.users.SignUp(ctx, req.Email, req.Password)
	switch {
	case errors.Is(err, common.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "User already exists"})
	case err != nil:
		s.logger.Error(ctx, "signup failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	default:
		s.logger.Info(ctx, "user created", "email", req.Email)
		c.JSON(http.StatusOK, gin.H{"message": "User created successfully"})
	}
}

func (s *Server) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	token, err := s.users.Login(ctx, req.Email, req.Password)
	switch {
	case errors.Is(err, common.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case errors.Is(err, common.ErrInvalidCredentials):
		c.JSON(http.StatusForbidden, gin.H{"error": "Invalid credentials"})
	case err != nil:
		s.logger.Error(ctx, "login failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	default:
		c.JSON(http.StatusOK, gin.H{"token": token})
	}
}

func (s *Server) listUsers(c *gin.Context) {
	pageSize := 0
	if raw := c.Query("perPageCount"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid perPageCount"})
			return
		}
		pageSize = n
	}

	ctx := c.Request.Context()
	count, views, err := s.users.ListUsers(ctx, pageSize)
	if err != nil {
		s.logger.Error(ctx, "list users failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count, "data": views})
}

func (s *Server) getUserByID(c *gin.Context) {
	ctx := c.Request.Context()

	view, err := s.users.GetUserByID(ctx, c.Param("id"))
	switch {
	case errors.Is(err, common.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case err != nil:
		s.logger.Error(ctx, "get user failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	default:
		c.JSON(http.StatusOK, gin.H{"data": view})
	}
}
