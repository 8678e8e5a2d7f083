package dto

type TelefonoRequest struct {
	Numero string `json:"numero" validate:"required"`
	Tipo   string `json:"tipo" validate:"omitempty,oneof=movil casa trabajo"`
}

type DireccionRequest struct {
	MunicipioID string `json:"municipio_id" validate:"required,uuid"`
	Detalle     string `json:"detalle" validate:"required"`
}

// GuardarPersonaRequest serves both create and update: an empty ID inserts,
// a present ID updates (legacy add-or-update contract).
type GuardarPersonaRequest struct {
	ID              string             `json:"id" validate:"omitempty,uuid"`
	Nombres         string             `json:"nombres" validate:"required"`
	Apellidos       string             `json:"apellidos" validate:"required"`
	Email           string             `json:"email" validate:"required,email"`
	Password        string             `json:"password" validate:"omitempty,min=8"` // required on create
	RolID           string             `json:"rol_id" validate:"required,uuid"`
	SucursalID      *string            `json:"sucursal_id" validate:"omitempty,uuid"`
	GeneroID        *string            `json:"genero_id" validate:"omitempty,uuid"`
	EstadoCivilID   *string            `json:"estado_civil_id" validate:"omitempty,uuid"`
	TurnoID         *string            `json:"turno_id" validate:"omitempty,uuid"`
	FechaNacimiento *string            `json:"fecha_nacimiento" validate:"omitempty,datetime=2006-01-02"`
	Telefonos       []TelefonoRequest  `json:"telefonos" validate:"dive"`
	Direcciones     []DireccionRequest `json:"direcciones" validate:"dive"`
}

type TelefonoResponse struct {
	ID     string `json:"id"`
	Numero string `json:"numero"`
	Tipo   string `json:"tipo"`
}

type DireccionResponse struct {
	ID          string `json:"id"`
	MunicipioID string `json:"municipio_id"`
	Municipio   string `json:"municipio,omitempty"`
	Detalle     string `json:"detalle"`
}

type PersonaResponse struct {
	ID          string              `json:"id"`
	Nombres     string              `json:"nombres"`
	Apellidos   string              `json:"apellidos"`
	Email       string              `json:"email"`
	Rol         string              `json:"rol"`
	RolID       string              `json:"rol_id"`
	SucursalID  *string             `json:"sucursal_id"`
	Sucursal    string              `json:"sucursal,omitempty"`
	Activo      bool                `json:"activo"`
	Telefonos   []TelefonoResponse  `json:"telefonos,omitempty"`
	Direcciones []DireccionResponse `json:"direcciones,omitempty"`
}

type PersonaListResponse struct {
	Data  []PersonaResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
