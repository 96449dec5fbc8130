package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypedErrors(t *testing.T) {
	t.Run("duplicate key matches sentinel through wrapping", func(t *testing.T) {
		err := fmt.Errorf("insert: %w", &DuplicateKeyError{Key: "EKMA4116"})
		assert.ErrorIs(t, err, ErrDuplicateKey)
		assert.NotErrorIs(t, err, ErrNotFound)

		var dup *DuplicateKeyError
		assert.True(t, errors.As(err, &dup))
		assert.Equal(t, "EKMA4116", dup.Key)
	})

	t.Run("not found", func(t *testing.T) {
		err := &NotFoundError{Key: "DO2025-0009"}
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Equal(t, "record 'DO2025-0009' not found", err.Error())
	})

	t.Run("validation names the field", func(t *testing.T) {
		err := &ValidationError{Field: "qty", Reason: "must not be negative"}
		assert.ErrorIs(t, err, ErrValidation)
		assert.Equal(t, "invalid qty: must not be negative", err.Error())
	})
}
