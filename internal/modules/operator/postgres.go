package operator

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/P-N-S-U/backend/internal/platform/database"
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL operator repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateOperator(ctx context.Context, o *Operator) error {
	query := `
		INSERT INTO operators (id, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query, o.ID, o.Email, o.PasswordHash).Scan(&o.CreatedAt, &o.UpdatedAt)
	return database.Translate(err)
}

func (r *postgresRepository) GetOperatorByEmail(ctx context.Context, email string) (*Operator, error) {
	query := `SELECT id, email, password_hash, created_at, updated_at FROM operators WHERE email = $1`
	return scanOperator(r.db.QueryRowContext(ctx, query, email))
}

func (r *postgresRepository) GetOperatorByID(ctx context.Context, id uuid.UUID) (*Operator, error) {
	query := `SELECT id, email, password_hash, created_at, updated_at FROM operators WHERE id = $1`
	return scanOperator(r.db.QueryRowContext(ctx, query, id))
}

func scanOperator(row *sql.Row) (*Operator, error) {
	o := &Operator{}
	if err := row.Scan(&o.ID, &o.Email, &o.PasswordHash, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, database.Translate(err)
	}
	return o, nil
}
