// Package httpapi exposes the service layer over REST. All routes live
// under /api/v1; everything except registration, login and refresh requires
// a bearer access token.
package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"convo/internal/logging"
	"convo/internal/server/config"
	"convo/internal/server/services"
)

type Server struct {
	config        *config.Config
	logger        logging.Logger
	users         *services.UserService
	conversations *services.ConversationService
	messages      *services.MessageService
	router        *gin.Engine
}

func NewServer(cfg *config.Config, logger logging.Logger,
	users *services.UserService, conversations *services.ConversationService,
	messages *services.MessageService) *Server {

	s := &Server{
		config:        cfg,
		logger:        logger,
		users:         users,
		conversations: conversations,
		messages:      messages,
	}
	s.router = s.buildRouter()
	return s
}

// Handler returns the root handler for use with an http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) buildRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")

	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", s.handleRegister)
		authGroup.POST("/login", s.handleLogin)
		authGroup.POST("/token/refresh", s.handleRefresh)
		authGroup.POST("/logout", s.handleLogout)
	}

	protected := v1.Group("")
	protected.Use(s.authRequired())
	{
		protected.GET("/users/me", s.handleMe)
		protected.PATCH("/users/me", s.handleUpdateProfile)
		protected.POST("/users/me/password", s.handleChangePassword)

		protected.POST("/conversations", s.handleCreateConversation)
		protected.GET("/conversations", s.handleListConversations)
		protected.GET("/conversations/:id", s.handleGetConversation)
		protected.POST("/conversations/:id/participants", s.handleAddParticipant)

		protected.POST("/conversations/:id/messages", s.handleSendMessage)
		protected.GET("/conversations/:id/messages", s.handleListConversationMessages)
		protected.GET("/messages", s.handleListMessages)
	}

	return r
}
