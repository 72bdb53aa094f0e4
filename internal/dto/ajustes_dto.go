package dto

// ActualizarAjustesRequest permite modificar la configuración de la empresa.
// Los campos son punteros: solo se aplica lo que el cliente envía.
type ActualizarAjustesRequest struct {
	NombreEmpresa      *string `json:"nombre_empresa" validate:"omitempty,max=120"`
	LogoEmpresa        *string `json:"logo_empresa"`
	RespaldoAutomatico *bool   `json:"respaldo_automatico"`
	TipoHuevoDefecto   *string `json:"tipo_huevo_defecto" validate:"omitempty,oneof=rosado pardo"`
	MostrarAmbosTipos  *bool   `json:"mostrar_ambos_tipos"`
}
