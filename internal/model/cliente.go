package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cliente represents a customer (persona o empresa).
type Cliente struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NombreCompleto string    `gorm:"index;not null"`
	// TipoDoc: "DNI" | "RUC" | "CE" | "Pasaporte" | "Otro"
	TipoDoc   *string `gorm:"type:varchar(20)"`
	NumeroDoc *string `gorm:"index"`
	Telefono  *string
	Email     *string
	Direccion *string
	// TipoCliente: "minorista" | "mayorista" | "VIP" | "empresa"
	TipoCliente   *string          `gorm:"type:varchar(20)"`
	LimiteCredito *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Notas         *string
	Activo        bool `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Cliente) TableName() string { return "clientes" }
