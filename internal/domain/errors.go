package domain

import "errors"

// Errores de dominio (sin dependencias externas). Los handlers HTTP los
// traducen a códigos de estado; el core nunca formatea respuestas.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrEmailNotVerified   = errors.New("email no verificado")
	ErrOTPExpired         = errors.New("código de verificación expirado")
	ErrInvalidOTP         = errors.New("código de verificación inválido")
	ErrInsufficientStock  = errors.New("stock insuficiente")
)
