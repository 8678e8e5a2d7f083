package dto

type GuardarSucursalRequest struct {
	ID            string  `json:"id" validate:"omitempty,uuid"`
	Nombre        string  `json:"nombre" validate:"required"`
	HoraApertura  string  `json:"hora_apertura" validate:"omitempty,datetime=15:04"`
	HoraCierre    string  `json:"hora_cierre" validate:"omitempty,datetime=15:04"`
	MunicipioID   *string `json:"municipio_id" validate:"omitempty,uuid"`
	ResponsableID *string `json:"responsable_id" validate:"omitempty,uuid"`
}

type SucursalResponse struct {
	ID            string  `json:"id"`
	Nombre        string  `json:"nombre"`
	HoraApertura  string  `json:"hora_apertura"`
	HoraCierre    string  `json:"hora_cierre"`
	InventarioID  string  `json:"inventario_id"`
	ResponsableID *string `json:"responsable_id"`
	Responsable   string  `json:"responsable,omitempty"`
	Activo        bool    `json:"activo"`
}

type GuardarCajaRequest struct {
	ID         string `json:"id" validate:"omitempty,uuid"`
	Nombre     string `json:"nombre" validate:"required"`
	SucursalID string `json:"sucursal_id" validate:"required,uuid"`
}

type CajaResponse struct {
	ID         string `json:"id"`
	Nombre     string `json:"nombre"`
	SucursalID string `json:"sucursal_id"`
	Sucursal   string `json:"sucursal,omitempty"`
	Activo     bool   `json:"activo"`
}
