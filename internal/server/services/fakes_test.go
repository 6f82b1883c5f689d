package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"convo/internal/dbx"
	"convo/internal/server/models"
	"convo/internal/server/query"
	conversationsrepo "convo/internal/server/repositories/conversations"
	messagesrepo "convo/internal/server/repositories/messages"
	refreshtokensrepo "convo/internal/server/repositories/refreshtokens"
	"convo/internal/server/repositories/repomanager"
	revokedtokensrepo "convo/internal/server/repositories/revokedtokens"
	usersrepo "convo/internal/server/repositories/users"
)

var _ repomanager.RepositoryManager = (*fakeRepoManager)(nil)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	byEmailOut *models.User
	byEmailErr error

	byIDOut *models.User
	byIDErr error

	existsOut bool
	existsErr error

	existingIDsOut []string
	existingIDsErr error
	existingIDsIn  []string

	updateProfileErr  error
	updatePasswordErr error
	updatedHash       string
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return f.byEmailOut, f.byEmailErr
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	return f.byIDOut, f.byIDErr
}

func (f *fakeUsersRepo) Exists(ctx context.Context, id string) (bool, error) {
	return f.existsOut, f.existsErr
}

func (f *fakeUsersRepo) ExistingIDs(ctx context.Context, ids []string) ([]string, error) {
	f.existingIDsIn = ids
	if f.existingIDsErr != nil {
		return nil, f.existingIDsErr
	}
	if f.existingIDsOut != nil {
		return f.existingIDsOut, nil
	}
	return ids, nil
}

func (f *fakeUsersRepo) UpdateProfile(ctx context.Context, id, firstName, lastName, phoneNumber string) error {
	return f.updateProfileErr
}

func (f *fakeUsersRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	f.updatedHash = passwordHash
	return f.updatePasswordErr
}

type fakeConversationsRepo struct {
	createErr error
	createdID string

	addErr   error
	addedIDs []string

	existsOut bool
	existsErr error

	memberOut bool
	memberErr error

	byIDOut *models.Conversation
	byIDErr error

	listOut   []models.Conversation
	listCount int64
	listErr   error
	listScope string
	listQuery query.ConversationQuery
}

func (f *fakeConversationsRepo) Create(ctx context.Context, conv *models.Conversation) error {
	f.createdID = conv.ID
	return f.createErr
}

func (f *fakeConversationsRepo) AddParticipant(ctx context.Context, conversationID, userID string) error {
	f.addedIDs = append(f.addedIDs, userID)
	return f.addErr
}

func (f *fakeConversationsRepo) Exists(ctx context.Context, conversationID string) (bool, error) {
	return f.existsOut, f.existsErr
}

func (f *fakeConversationsRepo) IsParticipant(ctx context.Context, conversationID, userID string) (bool, error) {
	return f.memberOut, f.memberErr
}

func (f *fakeConversationsRepo) GetByID(ctx context.Context, conversationID string) (*models.Conversation, error) {
	return f.byIDOut, f.byIDErr
}

func (f *fakeConversationsRepo) ListPage(ctx context.Context, scopeUserID string, q query.ConversationQuery) ([]models.Conversation, int64, error) {
	f.listScope = scopeUserID
	f.listQuery = q
	return f.listOut, f.listCount, f.listErr
}

type fakeMessagesRepo struct {
	createErr error
	created   *models.Message

	listOut   []models.Message
	listCount int64
	listErr   error
	listQuery query.MessageQuery
}

func (f *fakeMessagesRepo) Create(ctx context.Context, msg *models.Message) error {
	f.created = msg
	return f.createErr
}

func (f *fakeMessagesRepo) ListPage(ctx context.Context, scopeUserID string, q query.MessageQuery) ([]models.Message, int64, error) {
	f.listQuery = q
	return f.listOut, f.listCount, f.listErr
}

type fakeRefreshRepo struct {
	createErr error
	createdID string

	findOut *models.RefreshToken
	findErr error

	delErr     error
	deletedTok string
}

func (f *fakeRefreshRepo) Create(ctx context.Context, userID string, token string, validity time.Duration) error {
	f.createdID = userID
	return f.createErr
}

func (f *fakeRefreshRepo) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}

func (f *fakeRefreshRepo) Delete(ctx context.Context, token string) error {
	f.deletedTok = token
	return f.delErr
}

type fakeRevokedRepo struct {
	addErr   error
	addedJTI string

	containsOut bool
	containsErr error
}

func (f *fakeRevokedRepo) Add(ctx context.Context, jti string, expiresAt time.Time) error {
	f.addedJTI = jti
	return f.addErr
}

func (f *fakeRevokedRepo) Contains(ctx context.Context, jti string) (bool, error) {
	return f.containsOut, f.containsErr
}

type fakeRepoManager struct {
	u  *fakeUsersRepo
	c  *fakeConversationsRepo
	m  *fakeMessagesRepo
	rt *fakeRefreshRepo
	rv *fakeRevokedRepo
}

func (f *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (f *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository { return f.u }

func (f *fakeRepoManager) Conversations(db dbx.DBTX) conversationsrepo.Repository { return f.c }

func (f *fakeRepoManager) Messages(db dbx.DBTX) messagesrepo.Repository { return f.m }

func (f *fakeRepoManager) RefreshTokens(db dbx.DBTX) refreshtokensrepo.Repository { return f.rt }

func (f *fakeRepoManager) RevokedTokens(db dbx.DBTX) revokedtokensrepo.Repository { return f.rv }
