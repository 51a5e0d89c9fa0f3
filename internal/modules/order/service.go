package order

import (
	"bytes"
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/P-N-S-U/backend/internal/modules/access"
	"github.com/P-N-S-U/backend/internal/modules/buyer"
	"github.com/P-N-S-U/backend/internal/modules/identity"
	"github.com/P-N-S-U/backend/internal/modules/listing"
	"github.com/P-N-S-U/backend/internal/platform/errs"
	"github.com/P-N-S-U/backend/internal/platform/metrics"
	"github.com/P-N-S-U/backend/internal/platform/render"
)

var (
	ErrEmptyOrder      = errors.New("order must contain at least one item")
	ErrProductNotFound = errors.New("product not found")
)

// ListingReader loads the live catalog entry behind a line.
type ListingReader interface {
	GetListing(ctx context.Context, id string) (*listing.Listing, error)
}

// BuyerReader loads the buyer printed on an invoice.
type BuyerReader interface {
	GetBuyerByID(ctx context.Context, id uuid.UUID) (*buyer.Buyer, error)
}

type InvoiceRenderer interface {
	RenderInvoice(w io.Writer, inv render.Invoice) error
}

// Options carries the configurable order rules.
type Options struct {
	// Policy defaults to Permissive.
	Policy TransitionPolicy
	// RestrictInvoices limits invoices to parties of the order.
	RestrictInvoices bool
}

// Service defines the order management business logic.
type Service interface {
	// Create prices every line from the live catalog and persists the order.
	Create(ctx context.Context, caller identity.Identity, req PlaceOrderRequest) (*Order, error)

	// Advance sets a new status on behalf of a producer on the order.
	Advance(ctx context.Context, caller identity.Identity, id string, req UpdateStatusRequest) (*Order, error)

	// List returns the orders visible to caller.
	List(ctx context.Context, caller identity.Identity) ([]*Order, error)

	Get(ctx context.Context, caller identity.Identity, id string) (*Order, error)

	// Invoice renders the order as a PDF.
	Invoice(ctx context.Context, caller identity.Identity, id string) ([]byte, error)
}

type service struct {
	repo     Repository
	listings ListingReader
	buyers   BuyerReader
	invoices InvoiceRenderer
	opts     Options
	metrics  *metrics.Metrics
}

// NewService creates a new order service.
func NewService(repo Repository, listings ListingReader, buyers BuyerReader, invoices InvoiceRenderer, opts Options, m *metrics.Metrics) Service {
	if opts.Policy == nil {
		opts.Policy = Permissive()
	}
	return &service{repo: repo, listings: listings, buyers: buyers, invoices: invoices, opts: opts, metrics: m}
}

func (s *service) Create(ctx context.Context, caller identity.Identity, req PlaceOrderRequest) (*Order, error) {
	if !caller.IsBuyer() {
		return nil, errs.New(errs.CodeForbidden, "access denied: buyers only")
	}
	if len(req.Items) == 0 {
		return nil, errs.Wrap(ErrEmptyOrder, errs.CodeValidation, ErrEmptyOrder.Error())
	}

	o := &Order{
		ID:      uuid.New(),
		BuyerID: caller.ID,
		Status:  StatusPending,
	}
	var total float64
	for i, li := range req.Items {
		if li.Quantity <= 0 {
			return nil, errs.Newf(errs.CodeValidation, "quantity must be > 0 for product %s", li.ProductID)
		}
		l, err := s.listings.GetListing(ctx, li.ProductID)
		if err != nil {
			if errs.HasCode(err, errs.CodeNotFound) {
				return nil, errs.Wrap(ErrProductNotFound, errs.CodeNotFound, "product "+li.ProductID+" not found")
			}
			return nil, err
		}

		item := &OrderItem{
			ID:         uuid.New(),
			OrderID:    o.ID,
			Position:   i,
			ListingID:  l.ID,
			ProducerID: l.ProducerID,
			Name:       l.Name,
			Quantity:   li.Quantity,
			UnitPrice:  l.Price,
		}
		total += item.LineTotal()
		o.Items = append(o.Items, item)
	}
	o.TotalPrice = round2(total)

	if err := s.repo.CreateOrder(ctx, o); err != nil {
		return nil, errs.Wrap(err, errs.CodeInternal, "failed to persist order")
	}
	s.metrics.IncOrdersCreated()
	return o, nil
}

// Advance is a plain read-modify-write; concurrent advances race and the
// last write wins.
func (s *service) Advance(ctx context.Context, caller identity.Identity, id string, req UpdateStatusRequest) (*Order, error) {
	if !caller.IsProducer() {
		return nil, errs.New(errs.CodeForbidden, "access denied: producers only")
	}
	to, ok := ParseStatus(req.Status)
	if !ok {
		return nil, errs.Newf(errs.CodeValidation, "invalid status %q", req.Status)
	}
	o, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	owns, err := s.producerOwns(ctx, o, caller)
	if err != nil {
		return nil, err
	}
	if !owns {
		return nil, errs.New(errs.CodeForbidden, "you do not own any item in this order")
	}
	if !s.opts.Policy.Allow(o.Status, to) {
		return nil, errs.Newf(errs.CodeConflict, "cannot transition order from %s to %s", o.Status, to)
	}

	if err := s.repo.UpdateStatus(ctx, o.ID, to); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, errs.Wrap(err, errs.CodeNotFound, "order not found")
		}
		return nil, errs.Wrap(err, errs.CodeInternal, "update order status")
	}
	s.metrics.IncOrderTransition(string(to))
	o.Status = to
	o.UpdatedAt = time.Now()
	return o, nil
}

func (s *service) List(ctx context.Context, caller identity.Identity) ([]*Order, error) {
	var (
		orders []*Order
		err    error
	)
	switch caller.Kind {
	case identity.KindBuyer:
		orders, err = s.repo.ListOrdersByBuyer(ctx, caller.ID)
	case identity.KindProducer:
		orders, err = s.repo.ListOrdersByProducer(ctx, caller.ID)
	case identity.KindOperator:
		orders, err = s.repo.ListOrders(ctx)
	default:
		return nil, errs.New(errs.CodeForbidden, "access denied")
	}
	if err != nil {
		return nil, errs.Wrap(err, errs.CodeInternal, "list orders")
	}
	if orders == nil {
		orders = []*Order{}
	}
	return orders, nil
}

func (s *service) Get(ctx context.Context, caller identity.Identity, id string) (*Order, error) {
	o, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !visible(o, caller) {
		return nil, errs.New(errs.CodeForbidden, "you do not own this resource")
	}
	return o, nil
}

func (s *service) Invoice(ctx context.Context, caller identity.Identity, id string) ([]byte, error) {
	o, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.opts.RestrictInvoices && !visible(o, caller) {
		return nil, errs.New(errs.CodeForbidden, "you do not own this resource")
	}

	inv := render.Invoice{
		OrderID:   o.ID.String(),
		BuyerName: "Unknown customer",
		Status:    string(o.Status),
		CreatedAt: o.CreatedAt,
		Total:     o.TotalPrice,
	}
	b, err := s.buyers.GetBuyerByID(ctx, o.BuyerID)
	switch {
	case err == nil:
		inv.BuyerName, inv.BuyerEmail = b.Name, b.Email
	case !errors.Is(err, errs.ErrNotFound):
		return nil, errs.Wrap(err, errs.CodeInternal, "load buyer")
	}
	for _, item := range o.Items {
		desc := item.Name
		if desc == "" {
			desc = item.ListingID.String()
		}
		inv.Lines = append(inv.Lines, render.InvoiceLine{Description: desc, Quantity: item.Quantity, UnitPrice: item.UnitPrice})
	}

	var buf bytes.Buffer
	if err := s.invoices.RenderInvoice(&buf, inv); err != nil {
		return nil, errs.Wrap(err, errs.CodeUpstream, "render invoice")
	}
	return buf.Bytes(), nil
}

func (s *service) load(ctx context.Context, id string) (*Order, error) {
	o, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, errs.Wrap(err, errs.CodeNotFound, "order not found")
		}
		return nil, errs.Wrap(err, errs.CodeInternal, "load order")
	}
	return o, nil
}

// producerOwns checks the producer captured on each line first, then the
// live owner of each listing still in the catalog.
func (s *service) producerOwns(ctx context.Context, o *Order, caller identity.Identity) (bool, error) {
	for _, item := range o.Items {
		if access.RequireOwnership(item.ProducerID, caller) == nil {
			return true, nil
		}
	}
	for _, item := range o.Items {
		l, err := s.listings.GetListing(ctx, item.ListingID.String())
		if err != nil {
			if errs.HasCode(err, errs.CodeNotFound) {
				continue
			}
			return false, err
		}
		if access.RequireOwnership(l.ProducerID, caller) == nil {
			return true, nil
		}
	}
	return false, nil
}

func visible(o *Order, caller identity.Identity) bool {
	switch caller.Kind {
	case identity.KindOperator:
		return true
	case identity.KindBuyer:
		return access.RequireOwnership(o.BuyerID, caller) == nil
	case identity.KindProducer:
		for _, item := range o.Items {
			if access.RequireOwnership(item.ProducerID, caller) == nil {
				return true
			}
		}
	}
	return false
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
