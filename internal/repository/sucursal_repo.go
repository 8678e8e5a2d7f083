package repository

import (
	"context"

	"farmavita/internal/dto"
	"farmavita/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SucursalRepository interface {
	CreateConInventario(ctx context.Context, s *model.Sucursal, inv *model.Inventario) error
	Update(ctx context.Context, s *model.Sucursal) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sucursal, error)
	List(ctx context.Context, filter dto.ListFilter) ([]model.Sucursal, int64, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error

	SaveCaja(ctx context.Context, c *model.Caja) error
	FindCajaByID(ctx context.Context, id uuid.UUID) (*model.Caja, error)
	ListCajas(ctx context.Context, sucursalID *uuid.UUID, activo string) ([]model.Caja, error)
	SoftDeleteCaja(ctx context.Context, id uuid.UUID) error
}

type sucursalRepo struct{ db *gorm.DB }

func NewSucursalRepository(db *gorm.DB) SucursalRepository { return &sucursalRepo{db: db} }

// CreateConInventario creates the branch and its inventory bucket atomically
// so no branch ever exists without a stock bucket.
func (r *sucursalRepo) CreateConInventario(ctx context.Context, s *model.Sucursal, inv *model.Inventario) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(inv).Error; err != nil {
			return err
		}
		s.InventarioID = inv.ID
		return tx.Create(s).Error
	})
}

func (r *sucursalRepo) Update(ctx context.Context, s *model.Sucursal) error {
	return r.db.WithContext(ctx).Omit("Inventario", "Responsable", "Municipio", "Cajas").Save(s).Error
}

func (r *sucursalRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Sucursal, error) {
	var s model.Sucursal
	err := r.db.WithContext(ctx).Preload("Responsable").Preload("Inventario").First(&s, id).Error
	return &s, err
}

func (r *sucursalRepo) List(ctx context.Context, filter dto.ListFilter) ([]model.Sucursal, int64, error) {
	var sucursales []model.Sucursal
	var total int64

	q := activoScope(r.db.WithContext(ctx).Model(&model.Sucursal{}), filter.Activo)
	if filter.Buscar != "" {
		q = q.Where("nombre ILIKE ?", "%"+filter.Buscar+"%")
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Responsable").Order("nombre " + filter.Orden).Limit(filter.Limit).Offset(offset).Find(&sucursales).Error
	return sucursales, total, err
}

func (r *sucursalRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Sucursal{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *sucursalRepo) SaveCaja(ctx context.Context, c *model.Caja) error {
	return r.db.WithContext(ctx).Omit("Sucursal").Save(c).Error
}

func (r *sucursalRepo) FindCajaByID(ctx context.Context, id uuid.UUID) (*model.Caja, error) {
	var c model.Caja
	err := r.db.WithContext(ctx).Preload("Sucursal").First(&c, id).Error
	return &c, err
}

func (r *sucursalRepo) ListCajas(ctx context.Context, sucursalID *uuid.UUID, activo string) ([]model.Caja, error) {
	var cajas []model.Caja
	q := activoScope(r.db.WithContext(ctx), activo).Preload("Sucursal")
	if sucursalID != nil {
		q = q.Where("sucursal_id = ?", *sucursalID)
	}
	err := q.Order("nombre ASC").Find(&cajas).Error
	return cajas, err
}

func (r *sucursalRepo) SoftDeleteCaja(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Caja{}).Where("id = ?", id).Update("activo", false).Error
}
