package model

import (
	"errors"
	"time"
)

var (
	// ErrDiaYaCerrado: closing an already-closed day is rejected instead of
	// silently re-entering the transition.
	ErrDiaYaCerrado = errors.New("el día ya está cerrado")
	// ErrDiaNoCerrado: reopening a day that is already open.
	ErrDiaNoCerrado = errors.New("el día no está cerrado")
)

// StockDiario is the mutable inventory aggregate for one business date.
// Totals are never set directly: every mutation method recomputes them as a
// postcondition, so the stored totals are always the sum over both variant
// inventories.
type StockDiario struct {
	Fecha          string             `json:"date"` // clave YYYY-MM-DD
	PaquetesRosado InventarioPaquetes `json:"rosadoPackages"`
	PaquetesPardo  InventarioPaquetes `json:"pardoPackages"`
	TotalPaquetes  int                `json:"totalPackages"`
	PesoTotal      float64            `json:"totalWeight"`
	Cerrado        bool               `json:"isClosed"`
	EsDiaActual    bool               `json:"isCurrentDay"`
	CerradoEn      *time.Time         `json:"closedAt,omitempty"`
	CreadoEn       time.Time          `json:"createdAt"`
	ActualizadoEn  time.Time          `json:"updatedAt"`
}

// NuevoStockDiario creates an empty, open aggregate for the given date.
func NuevoStockDiario(fecha string) *StockDiario {
	ahora := time.Now()
	s := &StockDiario{
		Fecha:         fecha,
		CreadoEn:      ahora,
		ActualizadoEn: ahora,
	}
	s.RecalcularTotales()
	return s
}

// RecalcularTotales recomputes the derived totals from the two inventories
// and stamps ActualizadoEn. Idempotent: calling it twice in a row yields the
// same totals as once.
func (s *StockDiario) RecalcularTotales() {
	s.TotalPaquetes = s.PaquetesRosado.TotalPaquetes() + s.PaquetesPardo.TotalPaquetes()
	s.PesoTotal = s.PaquetesRosado.PesoTotal() + s.PaquetesPardo.PesoTotal()
	s.ActualizadoEn = time.Now()
}

// inventario returns the variant's inventory pointer; nil for an unknown
// variant (callers validate TipoHuevo first).
func (s *StockDiario) inventario(huevo TipoHuevo) *InventarioPaquetes {
	switch huevo {
	case HuevoRosado:
		return &s.PaquetesRosado
	case HuevoPardo:
		return &s.PaquetesPardo
	default:
		return nil
	}
}

// AgregarCarga applies an incoming delta to one variant and recomputes.
func (s *StockDiario) AgregarCarga(huevo TipoHuevo, paquetes InventarioPaquetes) {
	if inv := s.inventario(huevo); inv != nil {
		inv.Agregar(paquetes)
	}
	s.RecalcularTotales()
}

// RegistrarSalida applies an outgoing delta to one variant with every
// counter clamped at zero and recomputes. Returns the clamped shortfall.
func (s *StockDiario) RegistrarSalida(huevo TipoHuevo, paquetes InventarioPaquetes) int {
	faltante := 0
	if inv := s.inventario(huevo); inv != nil {
		faltante = inv.Restar(paquetes)
	}
	s.RecalcularTotales()
	return faltante
}

// ReemplazarTipo overwrites one variant's inventory (manual corrections)
// and recomputes.
func (s *StockDiario) ReemplazarTipo(huevo TipoHuevo, paquetes InventarioPaquetes) {
	if inv := s.inventario(huevo); inv != nil {
		*inv = paquetes
	}
	s.RecalcularTotales()
}

// PaquetesPorTipo returns a copy of one variant's inventory.
func (s *StockDiario) PaquetesPorTipo(huevo TipoHuevo) InventarioPaquetes {
	if inv := s.inventario(huevo); inv != nil {
		return *inv
	}
	return InventarioPaquetes{}
}

// Cerrar transitions Open → Closed: stamps CerradoEn, clears the
// current-day mark and recomputes.
func (s *StockDiario) Cerrar(ahora time.Time) error {
	if s.Cerrado {
		return ErrDiaYaCerrado
	}
	s.Cerrado = true
	s.EsDiaActual = false
	s.CerradoEn = &ahora
	s.RecalcularTotales()
	return nil
}

// Reabrir transitions Closed → Open: clears the closed state and, when the
// date is today, restores the current-day mark.
func (s *StockDiario) Reabrir(esHoy bool) error {
	if !s.Cerrado {
		return ErrDiaNoCerrado
	}
	s.Cerrado = false
	s.CerradoEn = nil
	if esHoy {
		s.EsDiaActual = true
	}
	s.RecalcularTotales()
	return nil
}
