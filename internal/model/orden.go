package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrdenRestablecimiento is a purchase order against a supplier. Confirming a
// pending order adds every line quantity into the destination branch's
// inventario and timestamps the receipt.
type OrdenRestablecimiento struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProveedorID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	SucursalID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	SolicitanteID uuid.UUID       `gorm:"type:uuid;not null"`
	AprobadorID   *uuid.UUID      `gorm:"type:uuid"`
	Estado        EstadoOperacion `gorm:"not null;default:1"`
	FechaRecepcion *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Proveedor   *Proveedor     `gorm:"foreignKey:ProveedorID"`
	Sucursal    *Sucursal      `gorm:"foreignKey:SucursalID"`
	Solicitante *Persona       `gorm:"foreignKey:SolicitanteID"`
	Aprobador   *Persona       `gorm:"foreignKey:AprobadorID"`
	Detalles    []OrdenDetalle `gorm:"foreignKey:OrdenID;constraint:OnDelete:CASCADE"`
}

func (OrdenRestablecimiento) TableName() string { return "ordenes_restablecimiento" }

type OrdenDetalle struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrdenID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductoID   uuid.UUID       `gorm:"type:uuid;not null"`
	Cantidad     int             `gorm:"not null"`
	CostoUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt    time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (OrdenDetalle) TableName() string { return "orden_detalles" }
