package dto

type AjusteInventarioRequest struct {
	InventarioID string `json:"inventario_id" validate:"required,uuid"`
	ProductoID   string `json:"producto_id" validate:"required,uuid"`
	Cantidad     int    `json:"cantidad" validate:"required,gt=0"`
	StockMinimo  *int   `json:"stock_minimo" validate:"omitempty,gte=0"`
	StockMaximo  *int   `json:"stock_maximo" validate:"omitempty,gte=0"`
}

type ActualizarInventarioRequest struct {
	InventarioID string `json:"inventario_id" validate:"required,uuid"`
	ProductoID   string `json:"producto_id" validate:"required,uuid"`
	Cantidad     *int   `json:"cantidad" validate:"omitempty,gte=0"`
	StockMinimo  *int   `json:"stock_minimo" validate:"omitempty,gte=0"`
	StockMaximo  *int   `json:"stock_maximo" validate:"omitempty,gte=0"`
}

type TrasladarInventarioRequest struct {
	OrigenID   string `json:"origen_id" validate:"required,uuid"`
	DestinoID  string `json:"destino_id" validate:"required,uuid"`
	ProductoID string `json:"producto_id" validate:"required,uuid"`
	Cantidad   int    `json:"cantidad" validate:"required,gt=0"`
}

type ClonarInventarioRequest struct {
	OrigenID string `json:"origen_id" validate:"required,uuid"`
	Nombre   string `json:"nombre" validate:"required"`
}

type InventarioProductoResponse struct {
	ID           string `json:"id"`
	InventarioID string `json:"inventario_id"`
	ProductoID   string `json:"producto_id"`
	Producto     string `json:"producto,omitempty"`
	CodigoBarras string `json:"codigo_barras,omitempty"`
	Cantidad     int    `json:"cantidad"`
	StockMinimo  int    `json:"stock_minimo"`
	StockMaximo  int    `json:"stock_maximo"`
}

type InventarioResponse struct {
	ID        string                       `json:"id"`
	Nombre    string                       `json:"nombre"`
	Productos []InventarioProductoResponse `json:"productos,omitempty"`
}

// AlertaStockResponse flags rows under their minimum threshold.
type AlertaStockResponse struct {
	InventarioID string `json:"inventario_id"`
	ProductoID   string `json:"producto_id"`
	Producto     string `json:"producto"`
	Cantidad     int    `json:"cantidad"`
	StockMinimo  int    `json:"stock_minimo"`
}
