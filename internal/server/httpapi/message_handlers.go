package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"convo/internal/server/query"
)

type sendMessageReq struct {
	Body string `json:"message_body" binding:"required"`
}

func (s *Server) handleSendMessage(c *gin.Context) {
	var req sendMessageReq
	if !s.bindJSON(c, &req) {
		return
	}

	msg, err := s.messages.Send(c.Request.Context(), MustUserID(c), c.Param("id"), req.Body)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

func (s *Server) handleListConversationMessages(c *gin.Context) {
	q, err := query.ParseMessageQuery(c.Request.URL.Query())
	if err != nil {
		s.respondError(c, err)
		return
	}

	page, err := s.messages.ListForConversation(c.Request.Context(), MustUserID(c), c.Param("id"), q)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (s *Server) handleListMessages(c *gin.Context) {
	q, err := query.ParseMessageQuery(c.Request.URL.Query())
	if err != nil {
		s.respondError(c, err)
		return
	}

	page, err := s.messages.List(c.Request.Context(), MustUserID(c), q)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}
