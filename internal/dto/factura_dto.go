package dto

import "github.com/shopspring/decimal"

type FacturaItemRequest struct {
	ProductoID string          `json:"producto_id" validate:"required,uuid"`
	Cantidad   int             `json:"cantidad" validate:"required,gt=0"`
	Descuento  decimal.Decimal `json:"descuento"`
}

type EmitirFacturaRequest struct {
	AperturaID    string               `json:"apertura_id" validate:"required,uuid"`
	ClienteNombre *string              `json:"cliente_nombre"`
	ClienteEmail  *string              `json:"cliente_email" validate:"omitempty,email"`
	Items         []FacturaItemRequest `json:"items" validate:"required,min=1,dive"`
}

type FacturaItemResponse struct {
	ProductoID     string          `json:"producto_id"`
	Producto       string          `json:"producto,omitempty"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type FacturaResponse struct {
	ID            string                `json:"id"`
	Numero        int64                 `json:"numero"`
	SucursalID    string                `json:"sucursal_id"`
	ClienteNombre *string               `json:"cliente_nombre,omitempty"`
	Subtotal      decimal.Decimal       `json:"subtotal"`
	Descuento     decimal.Decimal       `json:"descuento"`
	Total         decimal.Decimal       `json:"total"`
	Estado        string                `json:"estado"`
	Items         []FacturaItemResponse `json:"items"`
	CreatedAt     string                `json:"created_at"`
}

type FacturaListResponse struct {
	Data  []FacturaResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
