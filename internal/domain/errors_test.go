package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/streetwear-admin-api/internal/domain"
)

func TestErrores_EnvuelvenSentinel(t *testing.T) {
	assert.ErrorIs(t, domain.ValidationError("cantidad negativa"), domain.ErrInvalidInput)
	assert.ErrorIs(t, domain.NotFoundError("Order", "x"), domain.ErrNotFound)
	assert.ErrorIs(t, domain.TransitionError("CANCELLED", "DELIVERED"), domain.ErrInvalidTransition)
}

func TestMessage_QuitaPrefijo(t *testing.T) {
	assert.Equal(t, "cantidad negativa", domain.Message(domain.ValidationError("cantidad negativa")))
	assert.Equal(t, "CANCELLED -> DELIVERED", domain.Message(domain.TransitionError("CANCELLED", "DELIVERED")))

	wrapped := fmt.Errorf("update stock: %w", domain.ValidationError("x"))
	assert.Equal(t, wrapped.Error(), domain.Message(wrapped), "si el sentinel no es prefijo se devuelve el texto completo")

	other := errors.New("boom")
	assert.Equal(t, "boom", domain.Message(other))
}
