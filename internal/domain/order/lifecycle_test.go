package order_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/streetwear-admin-api/internal/domain"
	"github.com/jhoicas/streetwear-admin-api/internal/domain/entity"
	"github.com/jhoicas/streetwear-admin-api/internal/domain/order"
)

func TestPolicy_Estricta(t *testing.T) {
	p := order.Policy{Strict: true}

	tests := []struct {
		name    string
		from    entity.OrderStatus
		to      entity.OrderStatus
		wantErr error
	}{
		{"pendiente a pagado", entity.OrderStatusPending, entity.OrderStatusPaid, nil},
		{"pagado a producción", entity.OrderStatusPaid, entity.OrderStatusInProduction, nil},
		{"producción a enviado", entity.OrderStatusInProduction, entity.OrderStatusShipped, nil},
		{"enviado a entregado", entity.OrderStatusShipped, entity.OrderStatusDelivered, nil},
		{"cancelar desde pendiente", entity.OrderStatusPending, entity.OrderStatusCancelled, nil},
		{"cancelar desde enviado", entity.OrderStatusShipped, entity.OrderStatusCancelled, nil},
		{"mismo estado", entity.OrderStatusPaid, entity.OrderStatusPaid, nil},
		{"saltar pago", entity.OrderStatusPending, entity.OrderStatusShipped, domain.ErrInvalidTransition},
		{"retroceder", entity.OrderStatusShipped, entity.OrderStatusPaid, domain.ErrInvalidTransition},
		{"cancelado es terminal", entity.OrderStatusCancelled, entity.OrderStatusDelivered, domain.ErrInvalidTransition},
		{"entregado es terminal", entity.OrderStatusDelivered, entity.OrderStatusCancelled, domain.ErrInvalidTransition},
		{"estado desconocido", entity.OrderStatusPending, entity.OrderStatus("LOST"), domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := p.CanTransition(tt.from, tt.to)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPolicy_Permisiva(t *testing.T) {
	p := order.Policy{Strict: false}

	assert.NoError(t, p.CanTransition(entity.OrderStatusCancelled, entity.OrderStatusDelivered))
	assert.NoError(t, p.CanShip(entity.OrderStatusDelivered))
	assert.ErrorIs(t, p.CanTransition(entity.OrderStatusPending, entity.OrderStatus("nope")), domain.ErrInvalidInput,
		"el enum se valida aun sin tabla de transiciones")
}

func TestPolicy_CanShip(t *testing.T) {
	p := order.Policy{Strict: true}

	for _, s := range []entity.OrderStatus{
		entity.OrderStatusPending, entity.OrderStatusPaid, entity.OrderStatusInProduction, entity.OrderStatusShipped,
	} {
		assert.NoError(t, p.CanShip(s), string(s))
	}
	assert.ErrorIs(t, p.CanShip(entity.OrderStatusDelivered), domain.ErrInvalidTransition)
	assert.ErrorIs(t, p.CanShip(entity.OrderStatusCancelled), domain.ErrInvalidTransition)
}

func TestIsTerminalYAllowedFrom(t *testing.T) {
	assert.True(t, order.IsTerminal(entity.OrderStatusDelivered))
	assert.True(t, order.IsTerminal(entity.OrderStatusCancelled))
	assert.False(t, order.IsTerminal(entity.OrderStatusShipped))

	assert.Empty(t, order.AllowedFrom(entity.OrderStatusCancelled))
	assert.ElementsMatch(t,
		[]entity.OrderStatus{entity.OrderStatusPaid, entity.OrderStatusCancelled},
		order.AllowedFrom(entity.OrderStatusPending))

	for _, s := range entity.OrderStatuses {
		if order.IsTerminal(s) {
			continue
		}
		assert.Contains(t, order.AllowedFrom(s), entity.OrderStatusCancelled, "%s debe poder cancelarse", s)
	}
}
