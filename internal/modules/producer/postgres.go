package producer

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/P-N-S-U/backend/internal/platform/database"
	"github.com/P-N-S-U/backend/internal/platform/errs"
)

const producerColumns = `id, name, email, phone, password_hash, address, documents, verified,
	certificate_url, qr_code_url, created_at, updated_at`

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL producer repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateProducer(ctx context.Context, p *Producer) error {
	query := `
		INSERT INTO producers (id, name, email, phone, password_hash, address, documents)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		p.ID, p.Name, p.Email, p.Phone, p.PasswordHash, p.Address, pq.Array(p.Documents),
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	return database.Translate(err)
}

func (r *postgresRepository) GetProducerByEmail(ctx context.Context, email string) (*Producer, error) {
	query := `SELECT ` + producerColumns + ` FROM producers WHERE email = $1`
	return scanProducer(r.db.QueryRowContext(ctx, query, email))
}

func (r *postgresRepository) GetProducerByID(ctx context.Context, id uuid.UUID) (*Producer, error) {
	query := `SELECT ` + producerColumns + ` FROM producers WHERE id = $1`
	return scanProducer(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresRepository) ListProducers(ctx context.Context, verified *bool) ([]*Producer, error) {
	query := `SELECT ` + producerColumns + ` FROM producers`
	var args []interface{}
	if verified != nil {
		query += ` WHERE verified = $1`
		args = append(args, *verified)
	}
	query += ` ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var producers []*Producer
	for rows.Next() {
		p, err := scanProducer(rows)
		if err != nil {
			return nil, err
		}
		producers = append(producers, p)
	}
	return producers, rows.Err()
}

func (r *postgresRepository) MarkVerified(ctx context.Context, id uuid.UUID, certificateURL, qrCodeURL string) error {
	query := `
		UPDATE producers
		SET verified = TRUE, certificate_url = $1, qr_code_url = $2, updated_at = NOW()
		WHERE id = $3
	`
	res, err := r.db.ExecContext(ctx, query, certificateURL, qrCodeURL, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errs.ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanProducer(row scanner) (*Producer, error) {
	p := &Producer{}
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Email,
		&p.Phone,
		&p.PasswordHash,
		&p.Address,
		pq.Array(&p.Documents),
		&p.Verified,
		&p.CertificateURL,
		&p.QRCodeURL,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, database.Translate(err)
	}
	return p, nil
}
