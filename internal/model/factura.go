package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Factura is a point-of-sale invoice. Emitting one decrements the branch
// inventory inside the same transaction; anular restores it.
type Factura struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Numero        int64           `gorm:"uniqueIndex;not null"` // correlative, from facturas_numero_seq
	AperturaID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	SucursalID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	PersonaID     uuid.UUID       `gorm:"type:uuid;not null"`
	ClienteNombre *string
	ClienteEmail  *string
	Subtotal      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Descuento     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Estado        EstadoOperacion `gorm:"not null;default:3"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Apertura *AperturaCaja    `gorm:"foreignKey:AperturaID"`
	Persona  *Persona         `gorm:"foreignKey:PersonaID"`
	Detalles []FacturaDetalle `gorm:"foreignKey:FacturaID;constraint:OnDelete:CASCADE"`
}

type FacturaDetalle struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FacturaID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductoID     uuid.UUID       `gorm:"type:uuid;not null"`
	Cantidad       int             `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt      time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}
