package conversations

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"convo/internal/common"
	"convo/internal/server/models"
	"convo/internal/server/query"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectExec(`^INSERT\s+INTO\s+conversations\s+\(id,\s*created_at\)\s+VALUES\s*\(\$1,\s*\$2\)$`).
		WithArgs("c1", now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), &models.Conversation{ID: "c1", CreatedAt: now})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAddParticipant(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	// duplicate insert resolves to zero affected rows, not an error
	mock.ExpectExec(`^INSERT\s+INTO\s+conversation_participants\b.*ON\s+CONFLICT\s+DO\s+NOTHING$`).
		WithArgs("c1", "u1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.AddParticipant(context.Background(), "c1", "u1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestExists(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`^SELECT\s+EXISTS\s*\(SELECT\s+1\s+FROM\s+conversations\s+WHERE\s+id\s*=\s*\$1\)$`).
		WithArgs("c1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := repo.Exists(context.Background(), "c1")
	if err != nil || !ok {
		t.Fatalf("got (%v, %v)", ok, err)
	}
}

func TestIsParticipant(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`^SELECT\s+EXISTS\s*\(SELECT\s+1\s+FROM\s+conversation_participants\b`).
		WithArgs("c1", "outsider").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	ok, err := repo.IsParticipant(context.Background(), "c1", "outsider")
	if err != nil || ok {
		t.Fatalf("got (%v, %v)", ok, err)
	}
}

func TestGetByID(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	created := time.Now()
	mock.ExpectQuery(`^SELECT\s+id,\s*created_at\s+FROM\s+conversations\s+WHERE\s+id\s*=\s*\$1$`).
		WithArgs("c1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("c1", created))
	mock.ExpectQuery(`^SELECT\s+user_id\s+FROM\s+conversation_participants\b`).
		WithArgs("c1").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow("u1").AddRow("u2"))

	conv, err := repo.GetByID(context.Background(), "c1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conv.ID != "c1" || len(conv.ParticipantIDs) != 2 || conv.ParticipantIDs[0] != "u1" {
		t.Fatalf("unexpected conversation: %+v", conv)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`^SELECT\s+id,\s*created_at\s+FROM\s+conversations\b`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound, got %v", err)
	}
}

func TestListPage_ScopeOnly(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	created := time.Now()
	mock.ExpectQuery(`^SELECT\s+COUNT\(\*\)\s+FROM\s+conversations\s+c\s+WHERE\s+EXISTS\b`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`^SELECT\s+c\.id,\s*c\.created_at\s+FROM\s+conversations\s+c\b.*ORDER\s+BY\s+c\.created_at,\s*c\.id\s+LIMIT\s+\$2\s+OFFSET\s+\$3$`).
		WithArgs("u1", query.PageSize, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("c1", created))
	mock.ExpectQuery(`^SELECT\s+user_id\s+FROM\s+conversation_participants\b`).
		WithArgs("c1").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow("u1"))

	convs, count, err := repo.ListPage(context.Background(), "u1", query.ConversationQuery{Page: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 1 || len(convs) != 1 || convs[0].ID != "c1" {
		t.Fatalf("got count=%d convs=%+v", count, convs)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListPage_AllFilters(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	after := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	before := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	q := query.ConversationQuery{
		Participant:   "u2",
		CreatedAfter:  &after,
		CreatedBefore: &before,
		Page:          2,
	}

	mock.ExpectQuery(`^SELECT\s+COUNT\(\*\)\s+FROM\s+conversations\s+c\s+WHERE\s+EXISTS\b.*\$2.*c\.created_at\s*>\s*\$3.*c\.created_at\s*<\s*\$4$`).
		WithArgs("u1", "u2", after, before).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`^SELECT\s+c\.id,\s*c\.created_at\s+FROM\s+conversations\s+c\b.*LIMIT\s+\$5\s+OFFSET\s+\$6$`).
		WithArgs("u1", "u2", after, before, query.PageSize, query.PageSize).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}))

	convs, count, err := repo.ListPage(context.Background(), "u1", q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 0 || len(convs) != 0 {
		t.Fatalf("got count=%d convs=%+v", count, convs)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
