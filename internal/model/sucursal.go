package model

import (
	"time"

	"github.com/google/uuid"
)

// Sucursal is a pharmacy branch. Each branch owns exactly one inventario
// bucket and designates one responsible employee.
type Sucursal struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre        string     `gorm:"uniqueIndex;not null"`
	HoraApertura  string     `gorm:"type:varchar(5);not null;default:'08:00'"`
	HoraCierre    string     `gorm:"type:varchar(5);not null;default:'20:00'"`
	MunicipioID   *uuid.UUID `gorm:"type:uuid"`
	InventarioID  uuid.UUID  `gorm:"type:uuid;not null"`
	ResponsableID *uuid.UUID `gorm:"type:uuid"`
	Activo        bool       `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Municipio   *Municipio  `gorm:"foreignKey:MunicipioID"`
	Inventario  *Inventario `gorm:"foreignKey:InventarioID"`
	Responsable *Persona    `gorm:"foreignKey:ResponsableID"`
	Cajas       []Caja      `gorm:"foreignKey:SucursalID"`
}

func (Sucursal) TableName() string { return "sucursales" }

// Caja is a physical point-of-sale register belonging to a branch.
type Caja struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre     string    `gorm:"not null"`
	SucursalID uuid.UUID `gorm:"type:uuid;not null;index"`
	Activo     bool      `gorm:"not null;default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Sucursal *Sucursal `gorm:"foreignKey:SucursalID"`
}
