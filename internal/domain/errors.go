// Package domain holds the business error taxonomy and the permission
// catalog. No external dependencies; services return these sentinels and
// the handler layer maps them to HTTP status codes.
package domain

import "errors"

var (
	ErrNoEncontrado          = errors.New("recurso no encontrado")
	ErrProductoNoEncontrado  = errors.New("producto no encontrado")
	ErrValidacion            = errors.New("entrada inválida")
	ErrMontoInvalido         = errors.New("monto inválido")
	ErrStockInsuficiente     = errors.New("stock insuficiente")
	ErrPagoInsuficiente      = errors.New("el monto recibido es menor al total de la venta")
	ErrCajaYaAbierta         = errors.New("ya existe una caja abierta en este terminal")
	ErrCajaNoAbierta         = errors.New("no hay sesión de caja abierta")
	ErrEstadoInvalido        = errors.New("operación inválida para el estado actual")
	ErrDuplicado             = errors.New("recurso duplicado")
	ErrCredencialesInvalidas = errors.New("credenciales inválidas")
)
