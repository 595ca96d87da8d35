package groups

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gliphic/internal/common"
	"github.com/dmitrijs2005/gliphic/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
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
	insertQuery = `(?s)^\s*INSERT\s+INTO\s+groups\s*\(raw_id,\s*name,\s*description,\s*image_base64,\s*open\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5\)\s*RETURNING\s+id,\s*created_at\s*$`
	selectQuery = `(?s)^\s*SELECT\s+id,\s*raw_id,\s*name,\s*description,\s*image_base64,\s*image_key,\s*open,\s*created_at\s+FROM\s+groups\s+WHERE\s+id\s*=\s*\$1\s*$`
	updateQuery = `(?s)^\s*UPDATE\s+groups\s+SET\s+image_key\s*=\s*\$2\s+WHERE\s+id\s*=\s*\$1\s*$`
)

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(insertQuery).
		WithArgs([]byte("raw-id-12345"), "Friends", "Close friends", "", true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("g-1", now))

	g, err := repo.Create(context.Background(), &models.Group{
		RawID: []byte("raw-id-12345"), Name: "Friends", Description: "Close friends", Open: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "g-1", g.ID)
	assert.True(t, g.CreatedAt.Equal(now))
}

func TestCreate_Errors(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(insertQuery).WillReturnError(&pgconn.PgError{Code: "23505"})
	_, err := repo.Create(context.Background(), &models.Group{})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)

	mock.ExpectQuery(insertQuery).WillReturnError(errors.New("db down"))
	_, err = repo.Create(context.Background(), &models.Group{})
	assert.ErrorContains(t, err, "db error: db down")
}

func TestGetByID(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	cols := []string{"id", "raw_id", "name", "description", "image_base64", "image_key", "open", "created_at"}
	mock.ExpectQuery(selectQuery).WithArgs("g-1").
		WillReturnRows(sqlmock.NewRows(cols).AddRow("g-1", []byte("raw"), "Friends", "Close", "", "images/k", false, now))

	g, err := repo.GetByID(context.Background(), "g-1")
	require.NoError(t, err)
	assert.Equal(t, "Friends", g.Name)
	assert.Equal(t, "images/k", g.ImageKey)

	mock.ExpectQuery(selectQuery).WithArgs("missing").WillReturnError(sql.ErrNoRows)
	_, err = repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSetImageKey(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(updateQuery).WithArgs("g-1", "images/k").WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.SetImageKey(context.Background(), "g-1", "images/k"))

	mock.ExpectExec(updateQuery).WithArgs("g-2", "images/k").WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.SetImageKey(context.Background(), "g-2", "images/k"), common.ErrorNotFound)

	mock.ExpectExec(updateQuery).WithArgs("g-3", "images/k").WillReturnError(errors.New("db err"))
	assert.ErrorContains(t, repo.SetImageKey(context.Background(), "g-3", "images/k"), "db error: db err")
}
