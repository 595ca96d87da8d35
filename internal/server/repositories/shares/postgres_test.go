package shares

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gliphic/internal/common"
	"github.com/dmitrijs2005/gliphic/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

const (
	insertQuery = `(?s)^\s*INSERT\s+INTO\s+shares\s*\(group_id,\s*from_user_id,\s*to_user_id,\s*sealed_key,\s*seal_nonce\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5\)\s*RETURNING\s+id,\s*created_at\s*$`
	selectBase  = `(?s)^SELECT\s+id,\s*group_id,\s*from_user_id,\s*to_user_id,\s*sealed_key,\s*seal_nonce,\s*created_at\s+FROM\s+shares\s+WHERE\s+`
	deleteQuery = `^DELETE\s+FROM\s+shares\s+WHERE\s+id\s*=\s*\$1$`
)

var columns = []string{"id", "group_id", "from_user_id", "to_user_id", "sealed_key", "seal_nonce", "created_at"}

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(insertQuery).WithArgs("g1", "u1", "u2", []byte("sealed"), []byte("nonce")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("s1", now))

	s, err := repo.Create(context.Background(), &models.Share{
		GroupID: "g1", FromUserID: "u1", ToUserID: "u2", SealedKey: []byte("sealed"), SealNonce: []byte("nonce"),
	})
	require.NoError(t, err)
	assert.Equal(t, "s1", s.ID)

	mock.ExpectQuery(insertQuery).WillReturnError(errors.New("db down"))
	_, err = repo.Create(context.Background(), &models.Share{})
	assert.ErrorContains(t, err, "db error: db down")
}

func TestGet(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(selectBase+`id\s*=\s*\$1$`).WithArgs("s1").
		WillReturnRows(sqlmock.NewRows(columns).AddRow("s1", "g1", "u1", "u2", []byte("k"), []byte("n"), now))
	s, err := repo.Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "u2", s.ToUserID)

	mock.ExpectQuery(selectBase+`id\s*=\s*\$1$`).WithArgs("s2").WillReturnError(sql.ErrNoRows)
	_, err = repo.Get(context.Background(), "s2")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestListForUser(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(selectBase+`to_user_id\s*=\s*\$1\s+ORDER\s+BY\s+created_at$`).WithArgs("u2").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("s1", "g1", "u1", "u2", []byte("k"), []byte("n"), now).
			AddRow("s2", "g2", "u3", "u2", []byte("k"), []byte("n"), now))

	list, err := repo.ListForUser(context.Background(), "u2")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "s2", list[1].ID)
}

func TestDelete(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(deleteQuery).WithArgs("s1").WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), "s1"))

	mock.ExpectExec(deleteQuery).WithArgs("s1").WillReturnError(errors.New("db err"))
	assert.ErrorContains(t, repo.Delete(context.Background(), "s1"), "db error: db err")
}
