package refreshtokens

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

const (
	insertQuery        = `(?s)^INSERT\s+INTO\s+refresh_tokens\b.*VALUES\s*\(\$1,\s*\$2,\s*\$3\)\s+RETURNING\s+id,\s*created_at\s*$`
	selectQuery        = `(?s)^SELECT\s+id,\s*user_id,\s*token,\s*expires_at,\s*created_at\s+FROM\s+refresh_tokens\s+WHERE\s+token\s*=\s*\$1\s*$`
	deleteQuery        = `(?s)^DELETE\s+FROM\s+refresh_tokens\s+WHERE\s+token\s*=\s*\$1\s*$`
	deleteExpiredQuery = `(?s)^DELETE\s+FROM\s+refresh_tokens\s+WHERE\s+user_id\s*=\s*\$1\s+AND\s+expires_at\s*<=\s*\$2\s*$`
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

func TestPostgresCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	expires := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	created := time.Date(2030, 1, 1, 3, 4, 5, 0, time.UTC)

	mock.ExpectQuery(insertQuery).
		WithArgs("u1", "tok123", expires).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("id-1", created))

	tok := &models.RefreshToken{UserID: "u1", Token: "tok123", ExpiresAt: expires}
	require.NoError(t, repo.Create(context.Background(), tok))
	assert.Equal(t, "id-1", tok.ID)
	assert.Equal(t, created, tok.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCreate_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(insertQuery).WillReturnError(errors.New("db down"))

	err := repo.Create(context.Background(), &models.RefreshToken{UserID: "u1", Token: "tok123"})
	assert.ErrorContains(t, err, "insert refresh token: db down")
}

func TestPostgresFind(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	expires := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	created := expires.Add(-time.Hour)

	mock.ExpectQuery(selectQuery).
		WithArgs("tok123").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "token", "expires_at", "created_at"}).
			AddRow("id-1", "u1", "tok123", expires, created))

	got, err := repo.Find(context.Background(), "tok123")
	require.NoError(t, err)
	assert.Equal(t, &models.RefreshToken{ID: "id-1", UserID: "u1", Token: "tok123", ExpiresAt: expires, CreatedAt: created}, got)
}

func TestPostgresFind_Errors(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(selectQuery).WithArgs("missing").WillReturnError(sql.ErrNoRows)
	_, err := repo.Find(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	mock.ExpectQuery(selectQuery).WithArgs("tok123").WillReturnError(errors.New("db err"))
	_, err = repo.Find(context.Background(), "tok123")
	assert.ErrorContains(t, err, "select refresh token: db err")
}

func TestPostgresDelete(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(deleteQuery).WithArgs("tok123").WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), "tok123"))

	mock.ExpectExec(deleteQuery).WithArgs("tok123").WillReturnError(errors.New("db err"))
	assert.ErrorContains(t, repo.Delete(context.Background(), "tok123"), "delete refresh token: db err")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresDeleteExpired(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectExec(deleteExpiredQuery).WithArgs("u1", now).WillReturnResult(sqlmock.NewResult(0, 3))
	n, err := repo.DeleteExpired(context.Background(), "u1", now)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	mock.ExpectExec(deleteExpiredQuery).WithArgs("u1", now).WillReturnError(errors.New("db err"))
	_, err = repo.DeleteExpired(context.Background(), "u1", now)
	assert.ErrorContains(t, err, "delete expired refresh tokens: db err")
	assert.NoError(t, mock.ExpectationsWereMet())
}
