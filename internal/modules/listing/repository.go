package listing

import "context"

// Repository defines listing storage. Lookups return errs.ErrNotFound for a
// missing listing.
type Repository interface {
	Create(ctx context.Context, l *Listing) error
	GetByID(ctx context.Context, id string) (*Listing, error)
	List(ctx context.Context, category string) ([]*Listing, error)
	Update(ctx context.Context, l *Listing) error
	Delete(ctx context.Context, id string) error
}
