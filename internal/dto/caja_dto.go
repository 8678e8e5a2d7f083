package dto

import "github.com/shopspring/decimal"

type AbrirCajaRequest struct {
	CajaID        string          `json:"caja_id" validate:"required,uuid"`
	MontoApertura decimal.Decimal `json:"monto_apertura" validate:"required"`
}

type CerrarCajaRequest struct {
	AperturaID    string          `json:"apertura_id" validate:"required,uuid"`
	MontoCierre   decimal.Decimal `json:"monto_cierre" validate:"required"`
	Observaciones *string         `json:"observaciones"`
}

type AperturaResponse struct {
	ID            string           `json:"id"`
	CajaID        string           `json:"caja_id"`
	Caja          string           `json:"caja,omitempty"`
	PersonaID     string           `json:"persona_id"`
	MontoApertura decimal.Decimal  `json:"monto_apertura"`
	MontoCierre   *decimal.Decimal `json:"monto_cierre,omitempty"`
	FechaApertura string           `json:"fecha_apertura"`
	FechaCierre   *string          `json:"fecha_cierre,omitempty"`
	Activa        bool             `json:"activa"`
	Observaciones *string          `json:"observaciones,omitempty"`
}

type AperturaListResponse struct {
	Data  []AperturaResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
