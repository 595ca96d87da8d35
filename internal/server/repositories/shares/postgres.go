package shares

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

const selectShare = `SELECT id, group_id, from_user_id, to_user_id, sealed_key, seal_nonce, created_at FROM shares`

func scan(row interface{ Scan(...any) error }) (*models.Share, error) {
	s := &models.Share{}
	err := row.Scan(&s.ID, &s.GroupID, &s.FromUserID, &s.ToUserID, &s.SealedKey, &s.SealNonce, &s.CreatedAt)
	return s, err
}

func (r *PostgresRepository) Create(ctx context.Context, s *models.Share) (*models.Share, error) {
	query := `
		INSERT INTO shares (group_id, from_user_id, to_user_id, sealed_key, seal_nonce)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query, s.GroupID, s.FromUserID, s.ToUserID, s.SealedKey, s.SealNonce).
		Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Share, error) {
	s, err := scan(r.db.QueryRowContext(ctx, selectShare+" WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}

func (r *PostgresRepository) ListForUser(ctx context.Context, userID string) ([]*models.Share, error) {
	rows, err := r.db.QueryContext(ctx, selectShare+" WHERE to_user_id = $1 ORDER BY created_at", userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []*models.Share
	for rows.Next() {
		s, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM shares WHERE id = $1`, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
