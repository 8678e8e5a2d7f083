package dto

// GuardarLookupRequest covers the simple reference tables (roles, géneros,
// estados civiles, departamentos, categorías): name plus optional description.
type GuardarLookupRequest struct {
	ID          string  `json:"id" validate:"omitempty,uuid"`
	Nombre      string  `json:"nombre" validate:"required"`
	Descripcion *string `json:"descripcion"`
}

type GuardarMunicipioRequest struct {
	ID             string `json:"id" validate:"omitempty,uuid"`
	Nombre         string `json:"nombre" validate:"required"`
	DepartamentoID string `json:"departamento_id" validate:"required,uuid"`
}

type GuardarTurnoRequest struct {
	ID         string `json:"id" validate:"omitempty,uuid"`
	Nombre     string `json:"nombre" validate:"required"`
	HoraInicio string `json:"hora_inicio" validate:"required,datetime=15:04"`
	HoraFin    string `json:"hora_fin" validate:"required,datetime=15:04"`
}

type LookupResponse struct {
	ID          string  `json:"id"`
	Nombre      string  `json:"nombre"`
	Descripcion *string `json:"descripcion,omitempty"`
	Activo      bool    `json:"activo"`
}

type MunicipioResponse struct {
	ID             string `json:"id"`
	Nombre         string `json:"nombre"`
	DepartamentoID string `json:"departamento_id"`
	Departamento   string `json:"departamento,omitempty"`
	Activo         bool   `json:"activo"`
}

type TurnoResponse struct {
	ID         string `json:"id"`
	Nombre     string `json:"nombre"`
	HoraInicio string `json:"hora_inicio"`
	HoraFin    string `json:"hora_fin"`
	Activo     bool   `json:"activo"`
}
