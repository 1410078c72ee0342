package dto

type CrearProveedorRequest struct {
	RazonSocial string  `json:"razon_social" validate:"required,min=2"`
	RUC         *string `json:"ruc"`
	Contacto    *string `json:"contacto"`
	Telefono    *string `json:"telefono"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Direccion   *string `json:"direccion"`
	Notas       *string `json:"notas"`
}

type ProveedorResponse struct {
	ID          string  `json:"id"`
	RazonSocial string  `json:"razon_social"`
	RUC         *string `json:"ruc,omitempty"`
	Contacto    *string `json:"contacto,omitempty"`
	Telefono    *string `json:"telefono,omitempty"`
	Email       *string `json:"email,omitempty"`
	Direccion   *string `json:"direccion,omitempty"`
	Notas       *string `json:"notas,omitempty"`
	Activo      bool    `json:"activo"`
}
