package httpapi

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"

	"convo/internal/dbx"
	"convo/internal/logging"
	"convo/internal/server/config"
	"convo/internal/server/models"
	"convo/internal/server/query"
	conversationsrepo "convo/internal/server/repositories/conversations"
	messagesrepo "convo/internal/server/repositories/messages"
	refreshtokensrepo "convo/internal/server/repositories/refreshtokens"
	revokedtokensrepo "convo/internal/server/repositories/revokedtokens"
	usersrepo "convo/internal/server/repositories/users"
	"convo/internal/server/services"
)

type stubUsersRepo struct {
	createErr error

	byEmailOut *models.User
	byEmailErr error

	byIDOut *models.User
	byIDErr error

	existsOut bool
	existsErr error

	updateProfileErr  error
	updatePasswordErr error
}

func (f *stubUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return u, nil
}
func (f *stubUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return f.byEmailOut, f.byEmailErr
}
func (f *stubUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	return f.byIDOut, f.byIDErr
}
func (f *stubUsersRepo) Exists(ctx context.Context, id string) (bool, error) {
	return f.existsOut, f.existsErr
}
func (f *stubUsersRepo) ExistingIDs(ctx context.Context, ids []string) ([]string, error) {
	return ids, nil
}
func (f *stubUsersRepo) UpdateProfile(ctx context.Context, id, firstName, lastName, phoneNumber string) error {
	return f.updateProfileErr
}
func (f *stubUsersRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return f.updatePasswordErr
}

type stubConversationsRepo struct {
	existsOut bool
	memberOut bool

	byIDOut *models.Conversation
	byIDErr error

	listOut   []models.Conversation
	listCount int64
}

func (f *stubConversationsRepo) Create(ctx context.Context, conv *models.Conversation) error {
	return nil
}
func (f *stubConversationsRepo) AddParticipant(ctx context.Context, conversationID, userID string) error {
	return nil
}
func (f *stubConversationsRepo) Exists(ctx context.Context, conversationID string) (bool, error) {
	return f.existsOut, nil
}
func (f *stubConversationsRepo) IsParticipant(ctx context.Context, conversationID, userID string) (bool, error) {
	return f.memberOut, nil
}
func (f *stubConversationsRepo) GetByID(ctx context.Context, conversationID string) (*models.Conversation, error) {
	return f.byIDOut, f.byIDErr
}
func (f *stubConversationsRepo) ListPage(ctx context.Context, scopeUserID string, q query.ConversationQuery) ([]models.Conversation, int64, error) {
	return f.listOut, f.listCount, nil
}

type stubMessagesRepo struct {
	listOut   []models.Message
	listCount int64
}

func (f *stubMessagesRepo) Create(ctx context.Context, msg *models.Message) error { return nil }
func (f *stubMessagesRepo) ListPage(ctx context.Context, scopeUserID string, q query.MessageQuery) ([]models.Message, int64, error) {
	return f.listOut, f.listCount, nil
}

type stubRefreshRepo struct {
	findOut *models.RefreshToken
	findErr error
}

func (f *stubRefreshRepo) Create(ctx context.Context, userID string, token string, validity time.Duration) error {
	return nil
}
func (f *stubRefreshRepo) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	return f.findOut, f.findErr
}
func (f *stubRefreshRepo) Delete(ctx context.Context, token string) error { return nil }

type stubRevokedRepo struct {
	containsOut bool
}

func (f *stubRevokedRepo) Add(ctx context.Context, jti string, expiresAt time.Time) error {
	return nil
}
func (f *stubRevokedRepo) Contains(ctx context.Context, jti string) (bool, error) {
	return f.containsOut, nil
}

type stubRepoManager struct {
	u  *stubUsersRepo
	c  *stubConversationsRepo
	m  *stubMessagesRepo
	rt *stubRefreshRepo
	rv *stubRevokedRepo
}

func (f *stubRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (f *stubRepoManager) Users(db dbx.DBTX) usersrepo.Repository       { return f.u }

func (f *stubRepoManager) Conversations(db dbx.DBTX) conversationsrepo.Repository { return f.c }
func (f *stubRepoManager) Messages(db dbx.DBTX) messagesrepo.Repository           { return f.m }

func (f *stubRepoManager) RefreshTokens(db dbx.DBTX) refreshtokensrepo.Repository { return f.rt }
func (f *stubRepoManager) RevokedTokens(db dbx.DBTX) revokedtokensrepo.Repository { return f.rv }

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:                    "k",
		AccessTokenValidityDuration:  15 * time.Minute,
		RefreshTokenValidityDuration: time.Hour,
		PasswordMinLength:            8,
		MinParticipants:              1,
		MaxParticipants:              10,
	}
}

func newTestServer(t *testing.T) (*Server, *stubRepoManager, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	rm := &stubRepoManager{
		u:  &stubUsersRepo{},
		c:  &stubConversationsRepo{},
		m:  &stubMessagesRepo{},
		rt: &stubRefreshRepo{},
		rv: &stubRevokedRepo{},
	}
	cfg := testConfig()
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	srv := NewServer(cfg, logger,
		services.NewUserService(db, rm, cfg),
		services.NewConversationService(db, rm, cfg),
		services.NewMessageService(db, rm),
	)
	return srv, rm, mock
}
