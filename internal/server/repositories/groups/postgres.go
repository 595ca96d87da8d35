package groups

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

func (r *PostgresRepository) Create(ctx context.Context, g *models.Group) (*models.Group, error) {
	query := `
		INSERT INTO groups (raw_id, name, description, image_base64, open)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query, g.RawID, g.Name, g.Description, g.ImageBase64, g.Open).
		Scan(&g.ID, &g.CreatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, fmt.Errorf("group id: %w", common.ErrorAlreadyExists)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return g, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Group, error) {
	query := `
		SELECT id, raw_id, name, description, image_base64, image_key, open, created_at
		FROM groups
		WHERE id = $1
	`
	g := &models.Group{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&g.ID, &g.RawID, &g.Name, &g.Description, &g.ImageBase64, &g.ImageKey, &g.Open, &g.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return g, nil
}

func (r *PostgresRepository) SetImageKey(ctx context.Context, id, imageKey string) error {
	query := `
		UPDATE groups SET image_key = $2
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, id, imageKey)
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
