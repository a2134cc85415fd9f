package model

import (
	"errors"
	"strings"
)

var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrDuplicateIDPortal = errors.New("ya existe un usuario con ese idPortal")
	ErrDuplicatePIN      = errors.New("el PIN ya está en uso")
	ErrForbidden         = errors.New("acceso denegado")
	ErrInvalidTransition = errors.New("transición de estado no permitida")
	ErrInvalidInput      = errors.New("datos de entrada no válidos")
)

// ValidationError collects the field problems of a rejected payload
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "validación fallida: " + strings.Join(e.Fields, "; ")
}

// Is lets callers test for ErrInvalidInput
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}
