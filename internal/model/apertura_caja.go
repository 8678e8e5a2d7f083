package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AperturaCaja records the open-to-close lifecycle of a register's till for
// one working period. Besides the service-level pre-checks, two partial
// unique indexes (see infra/database.go) guarantee at most one active
// session per caja and one per persona.
type AperturaCaja struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CajaID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	PersonaID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	MontoApertura decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	MontoCierre   *decimal.Decimal `gorm:"type:decimal(12,2)"`
	FechaApertura time.Time       `gorm:"not null"`
	FechaCierre   *time.Time
	Activa        bool    `gorm:"not null;default:true"`
	Observaciones *string // closing remarks append here, separated by " | "
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Caja    *Caja    `gorm:"foreignKey:CajaID"`
	Persona *Persona `gorm:"foreignKey:PersonaID"`
}

func (AperturaCaja) TableName() string { return "aperturas_caja" }
