package model

import "time"

// Ajustes is the app-level settings document (collection "app_settings",
// key "main"). Carries the frequent-supplier memory learned from incoming
// movements and the backup bookkeeping fields.
type Ajustes struct {
	FechaActual             string     `json:"currentDate"`
	PrimerInicio            bool       `json:"isFirstLaunch"`
	UltimoRespaldo          *time.Time `json:"lastBackupDate,omitempty"`
	RespaldoAutomatico      bool       `json:"autoBackupEnabled"`
	NombreEmpresa           string     `json:"companyName"`
	LogoEmpresa             *string    `json:"companyLogo,omitempty"`
	ProveedoresFrecuentes   []string   `json:"frequentSuppliers"`
	TipoHuevoPredeterminado TipoHuevo  `json:"defaultEggType"`
	MostrarAmbosTipos       bool       `json:"showBothEggTypes"`
}

// AjustesPredeterminados builds the first-launch settings document.
func AjustesPredeterminados() Ajustes {
	return Ajustes{
		FechaActual:             FechaClave(time.Now()),
		PrimerInicio:            true,
		RespaldoAutomatico:      true,
		NombreEmpresa:           "Avícola Donna's",
		ProveedoresFrecuentes:   []string{},
		TipoHuevoPredeterminado: HuevoRosado,
	}
}

// AprenderProveedor appends a supplier to the frequent list in
// order-of-first-use. Empty names, the reserved system name, and
// already-known suppliers are ignored. Returns true when the list changed.
func (a *Ajustes) AprenderProveedor(nombre string) bool {
	if nombre == "" || nombre == ProveedorSistema {
		return false
	}
	for _, conocido := range a.ProveedoresFrecuentes {
		if conocido == nombre {
			return false
		}
	}
	a.ProveedoresFrecuentes = append(a.ProveedoresFrecuentes, nombre)
	return true
}
