package listing

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/P-N-S-U/backend/internal/platform/database"
	"github.com/P-N-S-U/backend/internal/platform/errs"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const listingColumns = `id,producer_id,name,description,price,category,quantity,image_url,qr_code_url,created_at,updated_at`

func (r *postgresRepo) Create(ctx context.Context, l *Listing) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO listings
		  (id, producer_id, name, description, price, category, quantity, image_url, qr_code_url)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING created_at, updated_at`,
		l.ID, l.ProducerID, l.Name, l.Description, l.Price,
		l.Category, l.Quantity, l.ImageURL, l.QRCodeURL).Scan(&l.CreatedAt, &l.UpdatedAt)
	return database.Translate(err)
}

func scanListing(scan func(...interface{}) error) (*Listing, error) {
	l := &Listing{}
	err := scan(&l.ID, &l.ProducerID, &l.Name, &l.Description, &l.Price,
		&l.Category, &l.Quantity, &l.ImageURL, &l.QRCodeURL,
		&l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, database.Translate(err)
	}
	return l, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Listing, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, errs.ErrNotFound
	}
	row := r.db.QueryRowContext(ctx, `SELECT `+listingColumns+` FROM listings WHERE id=$1`, uid)
	return scanListing(row.Scan)
}

func (r *postgresRepo) List(ctx context.Context, category string) ([]*Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE 1=1`
	args := []interface{}{}
	n := 1
	if category != "" {
		query += fmt.Sprintf(` AND category=$%d`, n)
		args = append(args, category)
		n++
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	listings := []*Listing{}
	for rows.Next() {
		l, err := scanListing(rows.Scan)
		if err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, l *Listing) error {
	err := r.db.QueryRowContext(ctx, `
		UPDATE listings
		SET name=$1, description=$2, price=$3, category=$4, quantity=$5,
		    image_url=$6, qr_code_url=$7, updated_at=NOW()
		WHERE id=$8
		RETURNING updated_at`,
		l.Name, l.Description, l.Price, l.Category, l.Quantity,
		l.ImageURL, l.QRCodeURL, l.ID).Scan(&l.UpdatedAt)
	return database.Translate(err)
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return errs.ErrNotFound
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM listings WHERE id=$1`, uid)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errs.ErrNotFound
	}
	return nil
}
