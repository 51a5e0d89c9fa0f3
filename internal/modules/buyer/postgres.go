package buyer

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/P-N-S-U/backend/internal/platform/database"
	"github.com/P-N-S-U/backend/internal/platform/errs"
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL buyer repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateBuyer(ctx context.Context, b *Buyer) error {
	query := `
		INSERT INTO buyers (id, name, email, phone, password_hash)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query, b.ID, b.Name, b.Email, b.Phone, b.PasswordHash).
		Scan(&b.CreatedAt, &b.UpdatedAt)
	return database.Translate(err)
}

func (r *postgresRepository) GetBuyerByEmail(ctx context.Context, email string) (*Buyer, error) {
	query := `
		SELECT id, name, email, phone, password_hash, cart, created_at, updated_at
		FROM buyers
		WHERE email = $1
	`
	return scanBuyer(r.db.QueryRowContext(ctx, query, email))
}

func (r *postgresRepository) GetBuyerByID(ctx context.Context, id uuid.UUID) (*Buyer, error) {
	query := `
		SELECT id, name, email, phone, password_hash, cart, created_at, updated_at
		FROM buyers
		WHERE id = $1
	`
	return scanBuyer(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresRepository) SaveCart(ctx context.Context, id uuid.UUID, cart []CartItem) error {
	if cart == nil {
		cart = []CartItem{}
	}
	raw, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `UPDATE buyers SET cart = $1, updated_at = NOW() WHERE id = $2`, raw, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func scanBuyer(row *sql.Row) (*Buyer, error) {
	b := &Buyer{}
	var cart []byte
	err := row.Scan(
		&b.ID,
		&b.Name,
		&b.Email,
		&b.Phone,
		&b.PasswordHash,
		&cart,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, database.Translate(err)
	}
	if len(cart) > 0 {
		if err := json.Unmarshal(cart, &b.Cart); err != nil {
			return nil, err
		}
	}
	return b, nil
}
