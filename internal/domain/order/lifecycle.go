// Package order contiene las reglas del ciclo de vida de un pedido (servicio de dominio).
package order

import (
	"github.com/jhoicas/streetwear-admin-api/internal/domain"
	"github.com/jhoicas/streetwear-admin-api/internal/domain/entity"
)

// transitions tabla de transiciones permitidas: PENDING → PAID → IN_PRODUCTION → SHIPPED → DELIVERED,
// con CANCELLED alcanzable desde cualquier estado no terminal.
var transitions = map[entity.OrderStatus][]entity.OrderStatus{
	entity.OrderStatusPending:      {entity.OrderStatusPaid, entity.OrderStatusCancelled},
	entity.OrderStatusPaid:         {entity.OrderStatusInProduction, entity.OrderStatusShipped, entity.OrderStatusCancelled},
	entity.OrderStatusInProduction: {entity.OrderStatusShipped, entity.OrderStatusCancelled},
	entity.OrderStatusShipped:      {entity.OrderStatusDelivered, entity.OrderStatusCancelled},
	entity.OrderStatusDelivered:    {},
	entity.OrderStatusCancelled:    {},
}

// shippable estados desde los que se puede registrar una guía (transición "ship").
// SHIPPED incluido para corregir número o transportadora.
var shippable = []entity.OrderStatus{
	entity.OrderStatusPending,
	entity.OrderStatusPaid,
	entity.OrderStatusInProduction,
	entity.OrderStatusShipped,
}

// Policy aplica (o no) la tabla de transiciones.
type Policy struct {
	Strict bool
}

// IsTerminal indica si el estado no admite más cambios.
func IsTerminal(s entity.OrderStatus) bool {
	return s == entity.OrderStatusDelivered || s == entity.OrderStatusCancelled
}

// AllowedFrom devuelve los estados destino permitidos desde s.
func AllowedFrom(s entity.OrderStatus) []entity.OrderStatus {
	out := make([]entity.OrderStatus, len(transitions[s]))
	copy(out, transitions[s])
	return out
}

// CanTransition valida el cambio from → to. Repetir el estado actual siempre se permite.
func (p Policy) CanTransition(from, to entity.OrderStatus) error {
	if !to.Valid() {
		return domain.ValidationError("estado de pedido desconocido: " + string(to))
	}
	if !p.Strict || from == to {
		return nil
	}
	for _, allowed := range transitions[from] {
		if allowed == to {
			return nil
		}
	}
	return domain.TransitionError(string(from), string(to))
}

// CanShip valida la transición implícita a SHIPPED al registrar la guía.
func (p Policy) CanShip(from entity.OrderStatus) error {
	if !p.Strict {
		return nil
	}
	for _, s := range shippable {
		if s == from {
			return nil
		}
	}
	return domain.TransitionError(string(from), string(entity.OrderStatusShipped))
}
