package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"convo/internal/server/query"
)

type createConversationReq struct {
	Participants []string `json:"participants"`
}

func (s *Server) handleCreateConversation(c *gin.Context) {
	var req createConversationReq
	if !s.bindJSON(c, &req) {
		return
	}

	conv, err := s.conversations.Create(c.Request.Context(), MustUserID(c), req.Participants)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, conv)
}

func (s *Server) handleListConversations(c *gin.Context) {
	q, err := query.ParseConversationQuery(c.Request.URL.Query())
	if err != nil {
		s.respondError(c, err)
		return
	}

	page, err := s.conversations.List(c.Request.Context(), MustUserID(c), q)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (s *Server) handleGetConversation(c *gin.Context) {
	conv, err := s.conversations.Get(c.Request.Context(), MustUserID(c), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, conv)
}

type addParticipantReq struct {
	UserID string `json:"user_id" binding:"required"`
}

func (s *Server) handleAddParticipant(c *gin.Context) {
	var req addParticipantReq
	if !s.bindJSON(c, &req) {
		return
	}

	conv, err := s.conversations.AddParticipant(c.Request.Context(), MustUserID(c), c.Param("id"), req.UserID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, conv)
}
