package order

// TransitionPolicy decides whether an order may move between two statuses.
type TransitionPolicy interface {
	Allow(from, to OrderStatus) bool
}

type permissive struct{}

func (permissive) Allow(_, _ OrderStatus) bool { return true }

// Permissive lets any status be set from any status.
func Permissive() TransitionPolicy { return permissive{} }

// validTransitions defines the allowed status state machine.
var validTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:   {StatusProcessed, StatusCancelled},
	StatusProcessed: {StatusShipped},
	StatusShipped:   {StatusDelivered},
	StatusDelivered: {},
	StatusCancelled: {},
}

type strict struct{}

func (strict) Allow(from, to OrderStatus) bool {
	for _, s := range validTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Strict only allows pending → processed → shipped → delivered and
// pending → cancelled.
func Strict() TransitionPolicy { return strict{} }
