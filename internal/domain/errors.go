package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInvalidTransition = errors.New("transición de estado no permitida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
)

// ValidationError envuelve ErrInvalidInput con un mensaje legible para el operador.
func ValidationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
}

// NotFoundError envuelve ErrNotFound indicando la entidad y el id buscados.
func NotFoundError(entity, id string) error {
	return fmt.Errorf("%w: %s %q", ErrNotFound, entity, id)
}

// TransitionError envuelve ErrInvalidTransition con el estado origen y destino.
func TransitionError(from, to string) error {
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}

// Message devuelve el texto del error sin el prefijo del sentinel, para respuestas HTTP.
func Message(err error) string {
	for _, sentinel := range []error{ErrInvalidInput, ErrNotFound, ErrInvalidTransition, ErrDuplicate} {
		if errors.Is(err, sentinel) {
			msg := err.Error()
			prefix := sentinel.Error() + ": "
			if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
				return msg[len(prefix):]
			}
			return msg
		}
	}
	return err.Error()
}
