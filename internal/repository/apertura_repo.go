package repository

import (
	"context"

	"farmavita/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AperturaRepository interface {
	Create(ctx context.Context, a *model.AperturaCaja) error
	Update(ctx context.Context, a *model.AperturaCaja) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.AperturaCaja, error)
	// FindActivaPorCaja / FindActivaPorPersona return (nil, nil) when no
	// active session exists — absence is not an error here.
	FindActivaPorCaja(ctx context.Context, cajaID uuid.UUID) (*model.AperturaCaja, error)
	FindActivaPorPersona(ctx context.Context, personaID uuid.UUID) (*model.AperturaCaja, error)
	List(ctx context.Context, page, limit int) ([]model.AperturaCaja, int64, error)
}

type aperturaRepo struct{ db *gorm.DB }

func NewAperturaRepository(db *gorm.DB) AperturaRepository { return &aperturaRepo{db: db} }

func (r *aperturaRepo) Create(ctx context.Context, a *model.AperturaCaja) error {
	return r.db.WithContext(ctx).Omit("Caja", "Persona").Create(a).Error
}

func (r *aperturaRepo) Update(ctx context.Context, a *model.AperturaCaja) error {
	return r.db.WithContext(ctx).Omit("Caja", "Persona").Save(a).Error
}

func (r *aperturaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.AperturaCaja, error) {
	var a model.AperturaCaja
	err := r.db.WithContext(ctx).Preload("Caja").First(&a, id).Error
	return &a, err
}

func (r *aperturaRepo) FindActivaPorCaja(ctx context.Context, cajaID uuid.UUID) (*model.AperturaCaja, error) {
	var a model.AperturaCaja
	err := r.db.WithContext(ctx).Where("caja_id = ? AND activa = true", cajaID).First(&a).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *aperturaRepo) FindActivaPorPersona(ctx context.Context, personaID uuid.UUID) (*model.AperturaCaja, error) {
	var a model.AperturaCaja
	err := r.db.WithContext(ctx).Where("persona_id = ? AND activa = true", personaID).First(&a).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *aperturaRepo) List(ctx context.Context, page, limit int) ([]model.AperturaCaja, int64, error) {
	var aperturas []model.AperturaCaja
	var total int64

	q := r.db.WithContext(ctx).Model(&model.AperturaCaja{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Preload("Caja").Order("fecha_apertura DESC").
		Limit(limit).Offset((page - 1) * limit).Find(&aperturas).Error
	return aperturas, total, err
}
