package model

import (
	"time"
)

// TipoHuevo identifies one of the two product lines tracked with parallel
// inventories.
type TipoHuevo string

const (
	HuevoRosado TipoHuevo = "rosado"
	HuevoPardo  TipoHuevo = "pardo"
)

func (t TipoHuevo) Valido() bool {
	return t == HuevoRosado || t == HuevoPardo
}

// NombreVisible returns the UI label for the variant.
func (t TipoHuevo) NombreVisible() string {
	switch t {
	case HuevoRosado:
		return "Huevo Rosado"
	case HuevoPardo:
		return "Huevo Pardo"
	default:
		return string(t)
	}
}

// TipoMovimiento clasifica cada movimiento de inventario.
type TipoMovimiento string

const (
	MovimientoCarga  TipoMovimiento = "carga"  // incoming load from a supplier
	MovimientoSalida TipoMovimiento = "salida" // outgoing sale
	MovimientoAjuste TipoMovimiento = "ajuste" // manual audit adjustment
	MovimientoCierre TipoMovimiento = "cierre" // automated day-close snapshot
)

func (t TipoMovimiento) Valido() bool {
	switch t {
	case MovimientoCarga, MovimientoSalida, MovimientoAjuste, MovimientoCierre:
		return true
	}
	return false
}

func (t TipoMovimiento) NombreVisible() string {
	switch t {
	case MovimientoCarga:
		return "Carga Entrante"
	case MovimientoSalida:
		return "Salida"
	case MovimientoAjuste:
		return "Ajuste"
	case MovimientoCierre:
		return "Cierre de Día"
	default:
		return string(t)
	}
}

// ProveedorSistema is the reserved supplier name for system-generated
// movements (day-close snapshots). It never enters the frequent-supplier
// list nor supplier rankings.
const ProveedorSistema = "Sistema"

// Movimiento registra un evento que afecta el inventario: carga entrante,
// salida, ajuste manual o cierre de día. Movements are immutable — a
// correction is modeled as a new movement, never as an edit.
type Movimiento struct {
	ID             string             `json:"id,omitempty"`
	Fecha          string             `json:"date"` // clave YYYY-MM-DD
	PaquetesRosado InventarioPaquetes `json:"rosadoPackages"`
	PaquetesPardo  InventarioPaquetes `json:"pardoPackages"`
	Tipo           TipoMovimiento     `json:"type"`
	Proveedor      string             `json:"supplier"`
	Notas          *string            `json:"notes,omitempty"`
	Timestamp      time.Time          `json:"timestamp"`
}

// NuevoMovimiento builds a movement stamped with the current time.
func NuevoMovimiento(fecha string, tipo TipoMovimiento, proveedor string, rosado, pardo InventarioPaquetes, notas *string) Movimiento {
	return Movimiento{
		Fecha:          fecha,
		PaquetesRosado: rosado,
		PaquetesPardo:  pardo,
		Tipo:           tipo,
		Proveedor:      proveedor,
		Notas:          notas,
		Timestamp:      time.Now(),
	}
}

// TotalPaquetes suma ambos inventarios del movimiento.
func (m Movimiento) TotalPaquetes() int {
	return m.PaquetesRosado.TotalPaquetes() + m.PaquetesPardo.TotalPaquetes()
}

// PesoTotal suma el peso de ambos inventarios del movimiento.
func (m Movimiento) PesoTotal() float64 {
	return m.PaquetesRosado.PesoTotal() + m.PaquetesPardo.PesoTotal()
}

// TieneTipo reports whether the movement carries stock of the given variant.
func (m Movimiento) TieneTipo(huevo TipoHuevo) bool {
	switch huevo {
	case HuevoRosado:
		return m.PaquetesRosado.TieneStock()
	case HuevoPardo:
		return m.PaquetesPardo.TieneStock()
	default:
		return false
	}
}
