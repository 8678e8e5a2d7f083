package repository

import (
	"context"
	"time"

	"farmavita/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TrasladoRepository interface {
	Create(ctx context.Context, t *model.Traslado) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Traslado, error)
	List(ctx context.Context, estado *model.EstadoOperacion, page, limit int) ([]model.Traslado, int64, error)
	UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado model.EstadoOperacion, procesado *time.Time) error
	DB() *gorm.DB
}

type trasladoRepo struct{ db *gorm.DB }

func NewTrasladoRepository(db *gorm.DB) TrasladoRepository { return &trasladoRepo{db: db} }

func (r *trasladoRepo) Create(ctx context.Context, t *model.Traslado) error {
	return r.db.WithContext(ctx).
		Omit("SucursalOrigen", "SucursalDestino", "Solicitante", "Detalles.Producto").
		Create(t).Error
}

func (r *trasladoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Traslado, error) {
	var t model.Traslado
	err := r.db.WithContext(ctx).
		Preload("Detalles.Producto").
		Preload("SucursalOrigen").Preload("SucursalDestino").
		First(&t, id).Error
	return &t, err
}

func (r *trasladoRepo) List(ctx context.Context, estado *model.EstadoOperacion, page, limit int) ([]model.Traslado, int64, error) {
	var traslados []model.Traslado
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Traslado{})
	if estado != nil {
		q = q.Where("estado = ?", *estado)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Preload("Detalles.Producto").
		Preload("SucursalOrigen").Preload("SucursalDestino").
		Order("created_at DESC").Limit(limit).Offset((page - 1) * limit).
		Find(&traslados).Error
	return traslados, total, err
}

func (r *trasladoRepo) UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado model.EstadoOperacion, procesado *time.Time) error {
	updates := map[string]interface{}{"estado": estado}
	if procesado != nil {
		updates["fecha_procesado"] = *procesado
	}
	return tx.Model(&model.Traslado{}).Where("id = ?", id).Updates(updates).Error
}

func (r *trasladoRepo) DB() *gorm.DB { return r.db }
