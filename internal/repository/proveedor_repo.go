package repository

import (
	"context"

	"farmavita/internal/dto"
	"farmavita/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProveedorRepository interface {
	Save(ctx context.Context, p *model.Proveedor) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Proveedor, error)
	List(ctx context.Context, filter dto.ListFilter) ([]model.Proveedor, int64, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
	ReplaceContactos(ctx context.Context, proveedorID uuid.UUID, contactos []model.ContactoProveedor) error
}

type proveedorRepo struct{ db *gorm.DB }

func NewProveedorRepository(db *gorm.DB) ProveedorRepository { return &proveedorRepo{db: db} }

func (r *proveedorRepo) Save(ctx context.Context, p *model.Proveedor) error {
	return r.db.WithContext(ctx).Omit("Contactos").Save(p).Error
}

func (r *proveedorRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Proveedor, error) {
	var p model.Proveedor
	err := r.db.WithContext(ctx).Preload("Contactos").First(&p, id).Error
	return &p, err
}

func (r *proveedorRepo) List(ctx context.Context, filter dto.ListFilter) ([]model.Proveedor, int64, error) {
	var proveedores []model.Proveedor
	var total int64

	q := activoScope(r.db.WithContext(ctx).Model(&model.Proveedor{}), filter.Activo)
	if filter.Buscar != "" {
		like := "%" + filter.Buscar + "%"
		q = q.Where("razon_social ILIKE ? OR nit = ?", like, filter.Buscar)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("razon_social " + filter.Orden).Limit(filter.Limit).Offset(offset).Find(&proveedores).Error
	return proveedores, total, err
}

func (r *proveedorRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Proveedor{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *proveedorRepo) ReplaceContactos(ctx context.Context, proveedorID uuid.UUID, contactos []model.ContactoProveedor) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("proveedor_id = ?", proveedorID).Delete(&model.ContactoProveedor{}).Error; err != nil {
			return err
		}
		if len(contactos) == 0 {
			return nil
		}
		for i := range contactos {
			contactos[i].ProveedorID = proveedorID
		}
		return tx.Create(&contactos).Error
	})
}
