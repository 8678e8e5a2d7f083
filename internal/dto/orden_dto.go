package dto

import "github.com/shopspring/decimal"

type OrdenItemRequest struct {
	ProductoID    string          `json:"producto_id" validate:"required,uuid"`
	Cantidad      int             `json:"cantidad" validate:"required,gt=0"`
	CostoUnitario decimal.Decimal `json:"costo_unitario" validate:"required"`
}

type CrearOrdenRequest struct {
	ProveedorID string             `json:"proveedor_id" validate:"required,uuid"`
	SucursalID  string             `json:"sucursal_id" validate:"required,uuid"`
	Items       []OrdenItemRequest `json:"items" validate:"required,min=1,dive"`
}

type OrdenItemResponse struct {
	ProductoID    string          `json:"producto_id"`
	Producto      string          `json:"producto,omitempty"`
	Cantidad      int             `json:"cantidad"`
	CostoUnitario decimal.Decimal `json:"costo_unitario"`
}

type OrdenResponse struct {
	ID             string              `json:"id"`
	ProveedorID    string              `json:"proveedor_id"`
	Proveedor      string              `json:"proveedor,omitempty"`
	SucursalID     string              `json:"sucursal_id"`
	Estado         string              `json:"estado"`
	FechaRecepcion *string             `json:"fecha_recepcion,omitempty"`
	Items          []OrdenItemResponse `json:"items"`
	CreatedAt      string              `json:"created_at"`
}

type OrdenListResponse struct {
	Data  []OrdenResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
