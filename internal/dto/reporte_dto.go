package dto

import "github.com/shopspring/decimal"

type VentaDiaria struct {
	Fecha         string          `json:"fecha" db:"fecha"`
	SucursalID    string          `json:"sucursal_id" db:"sucursal_id"`
	Sucursal      string          `json:"sucursal" db:"sucursal"`
	NumFacturas   int64           `json:"num_facturas" db:"num_facturas"`
	TotalVendido  decimal.Decimal `json:"total_vendido" db:"total_vendido"`
}

type ValorizacionInventario struct {
	SucursalID   string          `json:"sucursal_id" db:"sucursal_id"`
	Sucursal     string          `json:"sucursal" db:"sucursal"`
	Unidades     int64           `json:"unidades" db:"unidades"`
	ValorCosto   decimal.Decimal `json:"valor_costo" db:"valor_costo"`
	ValorVenta   decimal.Decimal `json:"valor_venta" db:"valor_venta"`
}

type StockBajo struct {
	SucursalID  string `json:"sucursal_id" db:"sucursal_id"`
	Sucursal    string `json:"sucursal" db:"sucursal"`
	ProductoID  string `json:"producto_id" db:"producto_id"`
	Producto    string `json:"producto" db:"producto"`
	Cantidad    int    `json:"cantidad" db:"cantidad"`
	StockMinimo int    `json:"stock_minimo" db:"stock_minimo"`
}
