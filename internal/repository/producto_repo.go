package repository

import (
	"context"

	"farmavita/internal/dto"
	"farmavita/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductoRepository defines the data access contract for the shared product
// catalog. Services depend on this interface, not on the concrete GORM
// implementation, enabling unit testing via in-memory fakes.
type ProductoRepository interface {
	Save(ctx context.Context, p *model.Producto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error)
	FindByCodigoBarras(ctx context.Context, codigo string) (*model.Producto, error)
	List(ctx context.Context, filter dto.ListFilter, categoriaID, proveedorID *uuid.UUID) ([]model.Producto, int64, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) Save(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Omit("Categoria", "Proveedor").Save(p).Error
}

func (r *productoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).Preload("Categoria").First(&p, id).Error
	return &p, err
}

func (r *productoRepo) FindByCodigoBarras(ctx context.Context, codigo string) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).Preload("Categoria").
		Where("codigo_barras = ? AND activo = true", codigo).First(&p).Error
	return &p, err
}

func (r *productoRepo) List(ctx context.Context, filter dto.ListFilter, categoriaID, proveedorID *uuid.UUID) ([]model.Producto, int64, error) {
	var productos []model.Producto
	var total int64

	q := activoScope(r.db.WithContext(ctx).Model(&model.Producto{}), filter.Activo)
	if filter.Buscar != "" {
		like := "%" + filter.Buscar + "%"
		q = q.Where("nombre ILIKE ? OR codigo_barras = ?", like, filter.Buscar)
	}
	if categoriaID != nil {
		q = q.Where("categoria_id = ?", *categoriaID)
	}
	if proveedorID != nil {
		q = q.Where("proveedor_id = ?", *proveedorID)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Categoria").Order("nombre " + filter.Orden).
		Limit(filter.Limit).Offset(offset).Find(&productos).Error
	return productos, total, err
}

func (r *productoRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Producto{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *productoRepo) Reactivar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Producto{}).Where("id = ?", id).Update("activo", true).Error
}
