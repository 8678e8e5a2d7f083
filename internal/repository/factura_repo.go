package repository

import (
	"context"
	"time"

	"farmavita/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FacturaRepository interface {
	// NextNumero pulls the correlative from facturas_numero_seq inside the
	// emitting transaction so no two invoices share a number.
	NextNumero(tx *gorm.DB) (int64, error)
	CreateTx(tx *gorm.DB, f *model.Factura) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Factura, error)
	List(ctx context.Context, sucursalID *uuid.UUID, desde, hasta *time.Time, page, limit int) ([]model.Factura, int64, error)
	UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado model.EstadoOperacion) error
	DB() *gorm.DB
}

type facturaRepo struct{ db *gorm.DB }

func NewFacturaRepository(db *gorm.DB) FacturaRepository { return &facturaRepo{db: db} }

func (r *facturaRepo) NextNumero(tx *gorm.DB) (int64, error) {
	var numero int64
	err := tx.Raw("SELECT nextval('facturas_numero_seq')").Scan(&numero).Error
	return numero, err
}

func (r *facturaRepo) CreateTx(tx *gorm.DB, f *model.Factura) error {
	return tx.Omit("Apertura", "Persona", "Detalles.Producto").Create(f).Error
}

func (r *facturaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Factura, error) {
	var f model.Factura
	err := r.db.WithContext(ctx).
		Preload("Detalles.Producto").Preload("Persona").
		First(&f, id).Error
	return &f, err
}

func (r *facturaRepo) List(ctx context.Context, sucursalID *uuid.UUID, desde, hasta *time.Time, page, limit int) ([]model.Factura, int64, error) {
	var facturas []model.Factura
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Factura{})
	if sucursalID != nil {
		q = q.Where("sucursal_id = ?", *sucursalID)
	}
	if desde != nil {
		q = q.Where("created_at >= ?", *desde)
	}
	if hasta != nil {
		q = q.Where("created_at < ?", *hasta)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Preload("Detalles.Producto").
		Order("numero DESC").Limit(limit).Offset((page - 1) * limit).
		Find(&facturas).Error
	return facturas, total, err
}

func (r *facturaRepo) UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado model.EstadoOperacion) error {
	return tx.Model(&model.Factura{}).Where("id = ?", id).Update("estado", estado).Error
}

func (r *facturaRepo) DB() *gorm.DB { return r.db }
