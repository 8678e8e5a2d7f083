package model

import (
	"time"

	"github.com/google/uuid"
)

type Proveedor struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RazonSocial string    `gorm:"not null"`
	NIT         string    `gorm:"uniqueIndex;not null"`
	Telefono    *string
	Email       *string
	Direccion   *string
	Activo      bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Contactos []ContactoProveedor `gorm:"foreignKey:ProveedorID;constraint:OnDelete:CASCADE"`
}

func (Proveedor) TableName() string { return "proveedores" }

type ContactoProveedor struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProveedorID uuid.UUID `gorm:"type:uuid;not null;index"`
	Nombre      string    `gorm:"not null"`
	Telefono    *string
	Email       *string
	CreatedAt   time.Time
}

func (ContactoProveedor) TableName() string { return "contactos_proveedor" }
