package dto

import "github.com/shopspring/decimal"

type CrearClienteRequest struct {
	NombreCompleto string           `json:"nombre_completo" validate:"required,min=2"`
	TipoDoc        *string          `json:"tipo_doc"        validate:"omitempty,oneof=DNI RUC CE Pasaporte Otro"`
	NumeroDoc      *string          `json:"numero_doc"`
	Telefono       *string          `json:"telefono"`
	Email          *string          `json:"email"           validate:"omitempty,email"`
	Direccion      *string          `json:"direccion"`
	TipoCliente    *string          `json:"tipo_cliente"    validate:"omitempty,oneof=minorista mayorista VIP empresa"`
	LimiteCredito  *decimal.Decimal `json:"limite_credito"`
	Notas          *string          `json:"notas"`
}

type ClienteResponse struct {
	ID             string           `json:"id"`
	NombreCompleto string           `json:"nombre_completo"`
	TipoDoc        *string          `json:"tipo_doc,omitempty"`
	NumeroDoc      *string          `json:"numero_doc,omitempty"`
	Telefono       *string          `json:"telefono,omitempty"`
	Email          *string          `json:"email,omitempty"`
	Direccion      *string          `json:"direccion,omitempty"`
	TipoCliente    *string          `json:"tipo_cliente,omitempty"`
	LimiteCredito  *decimal.Decimal `json:"limite_credito,omitempty"`
	Notas          *string          `json:"notas,omitempty"`
	Activo         bool             `json:"activo"`
	CreatedAt      string           `json:"created_at"`
}
