package repository

import (
	"context"
	"time"

	"farmavita/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrdenRepository interface {
	Create(ctx context.Context, o *model.OrdenRestablecimiento) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.OrdenRestablecimiento, error)
	List(ctx context.Context, estado *model.EstadoOperacion, page, limit int) ([]model.OrdenRestablecimiento, int64, error)
	ConfirmarTx(tx *gorm.DB, id uuid.UUID, aprobadorID uuid.UUID, recepcion time.Time) error
	UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado model.EstadoOperacion) error
	DB() *gorm.DB
}

type ordenRepo struct{ db *gorm.DB }

func NewOrdenRepository(db *gorm.DB) OrdenRepository { return &ordenRepo{db: db} }

func (r *ordenRepo) Create(ctx context.Context, o *model.OrdenRestablecimiento) error {
	return r.db.WithContext(ctx).
		Omit("Proveedor", "Sucursal", "Solicitante", "Aprobador", "Detalles.Producto").
		Create(o).Error
}

func (r *ordenRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.OrdenRestablecimiento, error) {
	var o model.OrdenRestablecimiento
	err := r.db.WithContext(ctx).
		Preload("Detalles.Producto").Preload("Proveedor").Preload("Sucursal").
		First(&o, id).Error
	return &o, err
}

func (r *ordenRepo) List(ctx context.Context, estado *model.EstadoOperacion, page, limit int) ([]model.OrdenRestablecimiento, int64, error) {
	var ordenes []model.OrdenRestablecimiento
	var total int64

	q := r.db.WithContext(ctx).Model(&model.OrdenRestablecimiento{})
	if estado != nil {
		q = q.Where("estado = ?", *estado)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Preload("Detalles.Producto").Preload("Proveedor").Preload("Sucursal").
		Order("created_at DESC").Limit(limit).Offset((page - 1) * limit).
		Find(&ordenes).Error
	return ordenes, total, err
}

func (r *ordenRepo) ConfirmarTx(tx *gorm.DB, id uuid.UUID, aprobadorID uuid.UUID, recepcion time.Time) error {
	return tx.Model(&model.OrdenRestablecimiento{}).Where("id = ?", id).Updates(map[string]interface{}{
		"estado":          model.EstadoCompletada,
		"aprobador_id":    aprobadorID,
		"fecha_recepcion": recepcion,
	}).Error
}

func (r *ordenRepo) UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado model.EstadoOperacion) error {
	return tx.Model(&model.OrdenRestablecimiento{}).Where("id = ?", id).Update("estado", estado).Error
}

func (r *ordenRepo) DB() *gorm.DB { return r.db }
