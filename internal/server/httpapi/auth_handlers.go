package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"convo/internal/server/services"
)

type registerReq struct {
	Email           string `json:"email" binding:"required"`
	Password        string `json:"password" binding:"required"`
	PasswordConfirm string `json:"password_confirm" binding:"required"`
	FirstName       string `json:"first_name" binding:"required"`
	LastName        string `json:"last_name" binding:"required"`
	PhoneNumber     string `json:"phone_number"`
	Role            string `json:"role"`
}

func (s *Server) handleRegister(c *gin.Context) {
	var req registerReq
	if !s.bindJSON(c, &req) {
		return
	}

	user, pair, err := s.users.Register(c.Request.Context(), &services.RegisterRequest{
		Email:           req.Email,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		PhoneNumber:     req.PhoneNumber,
		Role:            req.Role,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":          user,
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	})
}

type loginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginReq
	if !s.bindJSON(c, &req) {
		return
	}

	user, pair, err := s.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":          user,
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	})
}

type refreshReq struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func (s *Server) handleRefresh(c *gin.Context) {
	var req refreshReq
	if !s.bindJSON(c, &req) {
		return
	}

	access, err := s.users.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": access})
}

func (s *Server) handleLogout(c *gin.Context) {
	h := c.GetHeader("Authorization")
	if h == "" || !strings.HasPrefix(h, "Bearer ") {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	if err := s.users.Logout(c.Request.Context(), strings.TrimPrefix(h, "Bearer ")); err != nil {
		s.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
