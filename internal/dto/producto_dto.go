package dto

import "github.com/shopspring/decimal"

type GuardarProductoRequest struct {
	ID           string          `json:"id" validate:"omitempty,uuid"`
	CodigoBarras string          `json:"codigo_barras" validate:"required"`
	Nombre       string          `json:"nombre" validate:"required"`
	Descripcion  *string         `json:"descripcion"`
	CategoriaID  string          `json:"categoria_id" validate:"required,uuid"`
	ProveedorID  *string         `json:"proveedor_id" validate:"omitempty,uuid"`
	PrecioCosto  decimal.Decimal `json:"precio_costo" validate:"required"`
	PrecioVenta  decimal.Decimal `json:"precio_venta" validate:"required"`
}

type ProductoResponse struct {
	ID           string          `json:"id"`
	CodigoBarras string          `json:"codigo_barras"`
	Nombre       string          `json:"nombre"`
	Descripcion  *string         `json:"descripcion,omitempty"`
	CategoriaID  string          `json:"categoria_id"`
	Categoria    string          `json:"categoria,omitempty"`
	ProveedorID  *string         `json:"proveedor_id,omitempty"`
	PrecioCosto  decimal.Decimal `json:"precio_costo"`
	PrecioVenta  decimal.Decimal `json:"precio_venta"`
	Activo       bool            `json:"activo"`
}

type ProductoListResponse struct {
	Data  []ProductoResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

// ConsultaPrecioResponse is the payload of the cached price-check endpoint.
type ConsultaPrecioResponse struct {
	Nombre      string          `json:"nombre"`
	PrecioVenta decimal.Decimal `json:"precio_venta"`
	Categoria   string          `json:"categoria"`
}
