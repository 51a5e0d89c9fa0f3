package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrictTable(t *testing.T) {
	p := Strict()
	cases := []struct {
		from, to OrderStatus
		allowed  bool
	}{
		{StatusPending, StatusProcessed, true},
		{StatusPending, StatusCancelled, true},
		{StatusProcessed, StatusShipped, true},
		{StatusShipped, StatusDelivered, true},
		{StatusPending, StatusShipped, false},
		{StatusProcessed, StatusCancelled, false},
		{StatusDelivered, StatusPending, false},
		{StatusCancelled, StatusPending, false},
		{StatusPending, StatusPending, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.allowed, p.Allow(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestPermissiveAllowsAll(t *testing.T) {
	assert.True(t, Permissive().Allow(StatusDelivered, StatusPending))
	assert.True(t, Permissive().Allow(StatusCancelled, StatusShipped))
}

func TestParseStatus(t *testing.T) {
	st, ok := ParseStatus(" Shipped ")
	assert.True(t, ok)
	assert.Equal(t, StatusShipped, st)

	_, ok = ParseStatus("returned")
	assert.False(t, ok)
}
