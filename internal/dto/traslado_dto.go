package dto

type TrasladoItemRequest struct {
	ProductoID string `json:"producto_id" validate:"required,uuid"`
	Cantidad   int    `json:"cantidad" validate:"required,gt=0"`
}

type CrearTrasladoRequest struct {
	SucursalOrigenID  string                `json:"sucursal_origen_id" validate:"required,uuid"`
	SucursalDestinoID string                `json:"sucursal_destino_id" validate:"required,uuid"`
	Observaciones     *string               `json:"observaciones"`
	Items             []TrasladoItemRequest `json:"items" validate:"required,min=1,dive"`
}

type TrasladoItemResponse struct {
	ProductoID string `json:"producto_id"`
	Producto   string `json:"producto,omitempty"`
	Cantidad   int    `json:"cantidad"`
}

type TrasladoResponse struct {
	ID                string                 `json:"id"`
	SucursalOrigenID  string                 `json:"sucursal_origen_id"`
	SucursalDestinoID string                 `json:"sucursal_destino_id"`
	SucursalOrigen    string                 `json:"sucursal_origen,omitempty"`
	SucursalDestino   string                 `json:"sucursal_destino,omitempty"`
	Estado            string                 `json:"estado"`
	Observaciones     *string                `json:"observaciones,omitempty"`
	FechaProcesado    *string                `json:"fecha_procesado,omitempty"`
	Items             []TrasladoItemResponse `json:"items"`
	CreatedAt         string                 `json:"created_at"`
}

type TrasladoListResponse struct {
	Data  []TrasladoResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
