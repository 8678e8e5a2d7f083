package dto

type ContactoProveedorRequest struct {
	Nombre   string  `json:"nombre" validate:"required"`
	Telefono *string `json:"telefono"`
	Email    *string `json:"email" validate:"omitempty,email"`
}

type GuardarProveedorRequest struct {
	ID          string                     `json:"id" validate:"omitempty,uuid"`
	RazonSocial string                     `json:"razon_social" validate:"required"`
	NIT         string                     `json:"nit" validate:"required"`
	Telefono    *string                    `json:"telefono"`
	Email       *string                    `json:"email" validate:"omitempty,email"`
	Direccion   *string                    `json:"direccion"`
	Contactos   []ContactoProveedorRequest `json:"contactos" validate:"dive"`
}

type ContactoProveedorResponse struct {
	ID       string  `json:"id"`
	Nombre   string  `json:"nombre"`
	Telefono *string `json:"telefono,omitempty"`
	Email    *string `json:"email,omitempty"`
}

type ProveedorResponse struct {
	ID          string                      `json:"id"`
	RazonSocial string                      `json:"razon_social"`
	NIT         string                      `json:"nit"`
	Telefono    *string                     `json:"telefono,omitempty"`
	Email       *string                     `json:"email,omitempty"`
	Direccion   *string                     `json:"direccion,omitempty"`
	Activo      bool                        `json:"activo"`
	Contactos   []ContactoProveedorResponse `json:"contactos,omitempty"`
}

type ProveedorListResponse struct {
	Data  []ProveedorResponse `json:"data"`
	Total int64               `json:"total"`
	Page  int                 `json:"page"`
	Limit int                 `json:"limit"`
}
