package repository

import (
	"context"

	"farmavita/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventarioRepository is the quantity ledger. The …Tx variants take a live
// *gorm.DB transaction — services open the transaction and thread it through
// so multi-row movements commit or roll back as one unit.
type InventarioRepository interface {
	CreateInventario(ctx context.Context, inv *model.Inventario) error
	FindInventarioByID(ctx context.Context, id uuid.UUID) (*model.Inventario, error)
	ListProductos(ctx context.Context, inventarioID uuid.UUID) ([]model.InventarioProducto, error)
	ListStockBajo(ctx context.Context, inventarioID *uuid.UUID) ([]model.InventarioProducto, error)

	FindProducto(ctx context.Context, inventarioID, productoID uuid.UUID) (*model.InventarioProducto, error)
	FindProductoTx(tx *gorm.DB, inventarioID, productoID uuid.UUID) (*model.InventarioProducto, error)
	CreateProductoTx(tx *gorm.DB, ip *model.InventarioProducto) error
	AjustarCantidadTx(tx *gorm.DB, id uuid.UUID, delta int) error
	UpdateProductoTx(tx *gorm.DB, ip *model.InventarioProducto) error
	DeleteProductoTx(tx *gorm.DB, id uuid.UUID) error

	// DB exposes the underlying handle so services can open transactions.
	DB() *gorm.DB
}

type inventarioRepo struct{ db *gorm.DB }

func NewInventarioRepository(db *gorm.DB) InventarioRepository { return &inventarioRepo{db: db} }

func (r *inventarioRepo) CreateInventario(ctx context.Context, inv *model.Inventario) error {
	return r.db.WithContext(ctx).Create(inv).Error
}

func (r *inventarioRepo) FindInventarioByID(ctx context.Context, id uuid.UUID) (*model.Inventario, error) {
	var inv model.Inventario
	err := r.db.WithContext(ctx).First(&inv, id).Error
	return &inv, err
}

func (r *inventarioRepo) ListProductos(ctx context.Context, inventarioID uuid.UUID) ([]model.InventarioProducto, error) {
	var rows []model.InventarioProducto
	err := r.db.WithContext(ctx).Preload("Producto").
		Where("inventario_id = ?", inventarioID).Order("created_at ASC").Find(&rows).Error
	return rows, err
}

func (r *inventarioRepo) ListStockBajo(ctx context.Context, inventarioID *uuid.UUID) ([]model.InventarioProducto, error) {
	var rows []model.InventarioProducto
	q := r.db.WithContext(ctx).Preload("Producto").Where("cantidad < stock_minimo")
	if inventarioID != nil {
		q = q.Where("inventario_id = ?", *inventarioID)
	}
	err := q.Find(&rows).Error
	return rows, err
}

func (r *inventarioRepo) FindProducto(ctx context.Context, inventarioID, productoID uuid.UUID) (*model.InventarioProducto, error) {
	return r.FindProductoTx(r.db.WithContext(ctx), inventarioID, productoID)
}

func (r *inventarioRepo) FindProductoTx(tx *gorm.DB, inventarioID, productoID uuid.UUID) (*model.InventarioProducto, error) {
	var ip model.InventarioProducto
	err := tx.Where("inventario_id = ? AND producto_id = ?", inventarioID, productoID).First(&ip).Error
	return &ip, err
}

func (r *inventarioRepo) CreateProductoTx(tx *gorm.DB, ip *model.InventarioProducto) error {
	return tx.Omit("Inventario", "Producto").Create(ip).Error
}

func (r *inventarioRepo) AjustarCantidadTx(tx *gorm.DB, id uuid.UUID, delta int) error {
	return tx.Model(&model.InventarioProducto{}).Where("id = ?", id).
		Update("cantidad", gorm.Expr("cantidad + ?", delta)).Error
}

func (r *inventarioRepo) UpdateProductoTx(tx *gorm.DB, ip *model.InventarioProducto) error {
	return tx.Omit("Inventario", "Producto").Save(ip).Error
}

func (r *inventarioRepo) DeleteProductoTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.InventarioProducto{}, id).Error
}

func (r *inventarioRepo) DB() *gorm.DB { return r.db }
