package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound      = errors.New("recurso no encontrado")
	ErrInvalidInput  = errors.New("entrada inválida")
	ErrInvalidDate   = errors.New("fecha inválida, se espera AAAA-MM-DD")
	ErrInvalidStatus = errors.New("estado de pago inválido")
	ErrInvalidBackup = errors.New("documento de respaldo inválido")
	ErrNoSelection   = errors.New("se requieren cliente y mes")
)
