package model

import (
	"time"

	"github.com/google/uuid"
)

// Inventario is a named stock bucket. Branches point at their bucket via
// Sucursal.InventarioID; transfers move quantity between two buckets.
type Inventario struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"not null"`
	Activo    bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Productos []InventarioProducto `gorm:"foreignKey:InventarioID"`
}

// InventarioProducto carries the quantity and min/max thresholds for one
// (inventario, producto) pair. The composite unique index is the invariant:
// at most one row per pair.
type InventarioProducto struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	InventarioID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_inventario_producto,priority:1"`
	ProductoID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_inventario_producto,priority:2"`
	Cantidad     int       `gorm:"not null;default:0"`
	StockMinimo  int       `gorm:"not null;default:5"`
	StockMaximo  int       `gorm:"not null;default:100"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Inventario *Inventario `gorm:"foreignKey:InventarioID"`
	Producto   *Producto   `gorm:"foreignKey:ProductoID"`
}

func (InventarioProducto) TableName() string { return "inventario_productos" }
