package services

import "errors"

// Sentinel errors shared by every service. Handlers match them with
// errors.Is and map them to HTTP statuses and notice codes; none of them
// is fatal to the process.
var (
	ErrValidation         = errors.New("datos de entrada inválidos")
	ErrSlotUnavailable    = errors.New("espacio no disponible")
	ErrNotFound           = errors.New("no encontrado")
	ErrInvalidTransition  = errors.New("transición de estado no permitida")
	ErrInvalidCredentials = errors.New("correo o contraseña incorrectos")
	ErrEmailInUse         = errors.New("el correo ya está registrado")
	ErrTooManyAttempts    = errors.New("demasiados intentos, intenta de nuevo más tarde")
	ErrPermissionDenied   = errors.New("permisos insuficientes")
)
