package database

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/P-N-S-U/backend/internal/platform/errs"
)

func TestTranslate(t *testing.T) {
	assert.NoError(t, Translate(nil))
	assert.ErrorIs(t, Translate(sql.ErrNoRows), errs.ErrNotFound)
	assert.ErrorIs(t, Translate(fmt.Errorf("scan: %w", sql.ErrNoRows)), errs.ErrNotFound)

	dup := &pq.Error{Code: "23505", Constraint: "buyers_email_key"}
	err := Translate(dup)
	assert.ErrorIs(t, err, errs.ErrConflict)
	assert.Contains(t, err.Error(), "buyers_email_key")

	other := errors.New("connection reset")
	assert.Equal(t, other, Translate(other))
}

func TestSchemaEmbedded(t *testing.T) {
	assert.Contains(t, schema, "CREATE TABLE IF NOT EXISTS producers")
	assert.Contains(t, schema, "order_items")
}
