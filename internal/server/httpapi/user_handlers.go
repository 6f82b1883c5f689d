package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"convo/internal/server/services"
)

func (s *Server) handleMe(c *gin.Context) {
	user, err := s.users.Me(c.Request.Context(), MustUserID(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type updateProfileReq struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	PhoneNumber *string `json:"phone_number"`
}

func (s *Server) handleUpdateProfile(c *gin.Context) {
	var req updateProfileReq
	if !s.bindJSON(c, &req) {
		return
	}

	user, err := s.users.UpdateProfile(c.Request.Context(), MustUserID(c), &services.ProfileUpdate{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type changePasswordReq struct {
	CurrentPassword    string `json:"current_password" binding:"required"`
	NewPassword        string `json:"new_password" binding:"required"`
	NewPasswordConfirm string `json:"new_password_confirm" binding:"required"`
}

func (s *Server) handleChangePassword(c *gin.Context) {
	var req changePasswordReq
	if !s.bindJSON(c, &req) {
		return
	}

	err := s.users.ChangePassword(c.Request.Context(), MustUserID(c),
		req.CurrentPassword, req.NewPassword, req.NewPasswordConfirm)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
