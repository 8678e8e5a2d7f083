package model

import (
	"time"

	"github.com/google/uuid"
)

// Persona stores employees with role-based access. The bcrypt hash lives
// here; plaintext passwords never touch the database.
type Persona struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombres       string    `gorm:"not null"`
	Apellidos     string    `gorm:"not null"`
	Email         string    `gorm:"uniqueIndex;not null"`
	PasswordHash  string    `gorm:"not null"`
	RolID         uuid.UUID `gorm:"type:uuid;not null;index"`
	SucursalID    *uuid.UUID `gorm:"type:uuid;index"`
	GeneroID      *uuid.UUID `gorm:"type:uuid"`
	EstadoCivilID *uuid.UUID `gorm:"type:uuid"`
	TurnoID       *uuid.UUID `gorm:"type:uuid"`
	FechaNacimiento *time.Time
	Activo        bool `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Rol         *Rol        `gorm:"foreignKey:RolID"`
	Sucursal    *Sucursal   `gorm:"foreignKey:SucursalID"`
	Genero      *Genero     `gorm:"foreignKey:GeneroID"`
	EstadoCivil *EstadoCivil `gorm:"foreignKey:EstadoCivilID"`
	Turno       *Turno      `gorm:"foreignKey:TurnoID"`
	Telefonos   []Telefono  `gorm:"foreignKey:PersonaID;constraint:OnDelete:CASCADE"`
	Direcciones []Direccion `gorm:"foreignKey:PersonaID;constraint:OnDelete:CASCADE"`
}

func (Persona) TableName() string { return "personas" }

// NombreCompleto is used for JWT claims and report headers.
func (p *Persona) NombreCompleto() string {
	return p.Nombres + " " + p.Apellidos
}

type Telefono struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PersonaID uuid.UUID `gorm:"type:uuid;not null;index"`
	Numero    string    `gorm:"type:varchar(20);not null"`
	Tipo      string    `gorm:"type:varchar(20);not null;default:'movil'"` // "movil" | "casa" | "trabajo"
	CreatedAt time.Time
}

type Direccion struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PersonaID   uuid.UUID `gorm:"type:uuid;not null;index"`
	MunicipioID uuid.UUID `gorm:"type:uuid;not null"`
	Detalle     string    `gorm:"not null"`
	CreatedAt   time.Time

	Municipio *Municipio `gorm:"foreignKey:MunicipioID"`
}

func (Direccion) TableName() string { return "direcciones" }
