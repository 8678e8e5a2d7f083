package model

import (
	"time"

	"github.com/google/uuid"
)

// Traslado is a stock movement between two branches' inventories.
// Estado: pendiente → en_proceso → completada; anulada only from pendiente.
type Traslado struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SucursalOrigenID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	SucursalDestinoID uuid.UUID       `gorm:"type:uuid;not null;index"`
	SolicitanteID     uuid.UUID       `gorm:"type:uuid;not null"`
	Estado            EstadoOperacion `gorm:"not null;default:1"`
	Observaciones     *string
	FechaProcesado    *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time

	SucursalOrigen  *Sucursal         `gorm:"foreignKey:SucursalOrigenID"`
	SucursalDestino *Sucursal         `gorm:"foreignKey:SucursalDestinoID"`
	Solicitante     *Persona          `gorm:"foreignKey:SolicitanteID"`
	Detalles        []TrasladoDetalle `gorm:"foreignKey:TrasladoID;constraint:OnDelete:CASCADE"`
}

type TrasladoDetalle struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TrasladoID uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductoID uuid.UUID `gorm:"type:uuid;not null"`
	Cantidad   int       `gorm:"not null"`
	CreatedAt  time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}
