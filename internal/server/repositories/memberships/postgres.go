package memberships

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

const selectMembership = `SELECT user_id, group_id, number, permissions, encrypted_group_key, group_key_iv FROM memberships`

func (r *PostgresRepository) Create(ctx context.Context, m *models.Membership) error {
	query := `
		INSERT INTO memberships (user_id, group_id, number, permissions, encrypted_group_key, group_key_iv)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query, m.UserID, m.GroupID, m.Number, m.Permissions, m.EncryptedGroupKey, m.GroupKeyIV)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return fmt.Errorf("membership: %w", common.ErrorAlreadyExists)
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) NextNumber(ctx context.Context, userID string) (int64, error) {
	query := `
		SELECT COALESCE(MAX(number) + 1, 0)
		FROM memberships
		WHERE user_id = $1
	`
	var n int64
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func scan(row interface{ Scan(...any) error }) (*models.Membership, error) {
	m := &models.Membership{}
	err := row.Scan(&m.UserID, &m.GroupID, &m.Number, &m.Permissions, &m.EncryptedGroupKey, &m.GroupKeyIV)
	return m, err
}

func (r *PostgresRepository) getOne(ctx context.Context, where string, args ...any) (*models.Membership, error) {
	m, err := scan(r.db.QueryRowContext(ctx, selectMembership+" WHERE "+where, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return m, nil
}

func (r *PostgresRepository) GetByNumber(ctx context.Context, userID string, number int64) (*models.Membership, error) {
	return r.getOne(ctx, "user_id = $1 AND number = $2", userID, number)
}

func (r *PostgresRepository) GetByGroup(ctx context.Context, userID, groupID string) (*models.Membership, error) {
	return r.getOne(ctx, "user_id = $1 AND group_id = $2", userID, groupID)
}

func (r *PostgresRepository) list(ctx context.Context, where string, arg any) ([]*models.Membership, error) {
	rows, err := r.db.QueryContext(ctx, selectMembership+" WHERE "+where+" ORDER BY number", arg)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []*models.Membership
	for rows.Next() {
		m, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Membership, error) {
	return r.list(ctx, "user_id = $1", userID)
}

func (r *PostgresRepository) ListByGroup(ctx context.Context, groupID string) ([]*models.Membership, error) {
	return r.list(ctx, "group_id = $1", groupID)
}

func (r *PostgresRepository) UpdatePermissions(ctx context.Context, userID, groupID string, permissions int) error {
	query := `
		UPDATE memberships SET permissions = $3
		WHERE user_id = $1 AND group_id = $2
	`
	res, err := r.db.ExecContext(ctx, query, userID, groupID, permissions)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
