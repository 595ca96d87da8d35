package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gliphic/internal/common"
	"github.com/dmitrijs2005/gliphic/internal/dbx"
	"github.com/dmitrijs2005/gliphic/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectUser = `SELECT id, username, salt, master_key_verifier, contact_number, contact_id FROM users`

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (username, salt, master_key_verifier, contact_id)
         VALUES ($1, $2, $3, $4)
		 RETURNING id, contact_number
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.UserName, user.Salt, user.Verifier, user.ContactID).Scan(&user.ID, &user.ContactNumber)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, fmt.Errorf("user %s: %w", user.UserName, common.ErrorAlreadyExists)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) get(ctx context.Context, where string, arg any) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRowContext(ctx, selectUser+" WHERE "+where, arg).Scan(
		&user.ID, &user.UserName, &user.Salt, &user.Verifier, &user.ContactNumber, &user.ContactID)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetUserByLogin(ctx context.Context, userName string) (*models.User, error) {
	return r.get(ctx, "username = $1", userName)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.get(ctx, "id = $1", id)
}

func (r *PostgresRepository) GetByContactID(ctx context.Context, contactID string) (*models.User, error) {
	return r.get(ctx, "contact_id = $1", contactID)
}

func (r *PostgresRepository) GetByContactNumber(ctx context.Context, number int64) (*models.User, error) {
	return r.get(ctx, "contact_number = $1", number)
}
