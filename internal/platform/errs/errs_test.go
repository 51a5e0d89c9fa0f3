package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	t.Run("coded error", func(t *testing.T) {
		err := New(CodeForbidden, "nope")
		assert.Equal(t, CodeForbidden, CodeOf(err))
		assert.True(t, HasCode(err, CodeForbidden))
	})

	t.Run("wrapped coded error keeps code", func(t *testing.T) {
		err := fmt.Errorf("load: %w", Wrap(ErrNotFound, CodeNotFound, "order not found"))
		assert.Equal(t, CodeNotFound, CodeOf(err))
		assert.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("plain error is internal", func(t *testing.T) {
		assert.Equal(t, CodeInternal, CodeOf(errors.New("boom")))
		assert.Equal(t, "internal error", Message(errors.New("boom")))
	})

	t.Run("nil has no code", func(t *testing.T) {
		assert.False(t, HasCode(nil, CodeInternal))
	})
}

func TestErrorString(t *testing.T) {
	assert.Equal(t, "order not found: not found", Wrap(ErrNotFound, CodeNotFound, "order not found").Error())
	assert.Equal(t, "bad input", New(CodeValidation, "bad input").Error())
}
