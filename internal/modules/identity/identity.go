package identity

import (
	"context"

	"github.com/google/uuid"
)

// Kind tags the identity variant.
type Kind string

const (
	KindOperator Kind = "operator"
	KindBuyer    Kind = "buyer"
	KindProducer Kind = "producer"
)

// Identity is the resolved caller. Verified is only meaningful for producers.
type Identity struct {
	Kind     Kind
	ID       uuid.UUID
	Email    string
	Verified bool
}

func Operator(id uuid.UUID, email string) Identity {
	return Identity{Kind: KindOperator, ID: id, Email: email}
}

func Buyer(id uuid.UUID, email string) Identity {
	return Identity{Kind: KindBuyer, ID: id, Email: email}
}

func Producer(id uuid.UUID, email string, verified bool) Identity {
	return Identity{Kind: KindProducer, ID: id, Email: email, Verified: verified}
}

func (i Identity) IsOperator() bool { return i.Kind == KindOperator }
func (i Identity) IsBuyer() bool    { return i.Kind == KindBuyer }
func (i Identity) IsProducer() bool { return i.Kind == KindProducer }

// IsVerifiedProducer reports whether i is a producer whose flag was set when
// the request was resolved.
func (i Identity) IsVerifiedProducer() bool { return i.IsProducer() && i.Verified }

type contextKey struct{}

// WithIdentity attaches the resolved identity to a request context.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the identity resolved for this request, if any.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	return id, ok
}
