package model

import (
	"errors"
	"fmt"
)

// Weight classes tracked by the business: whole-kilogram packages from 7 to
// 13 kg, each subdivided into ten tenth-of-kilo buckets (7.0 … 7.9, etc.).
const (
	PesoMinimo    = 7
	PesoMaximo    = 13
	SubDivisiones = 10
	ClasesDePeso  = PesoMaximo - PesoMinimo + 1
)

// ErrEntradaInvalida marks malformed inventory input: a weight class outside
// 7..13, a counter slice whose length is not 10, or a negative counter.
var ErrEntradaInvalida = errors.New("entrada de inventario inválida")

// InventarioPaquetes is the weight-bucketed package container for a single
// egg variant: 7 weight classes × 10 tenth buckets = 70 counters. The tenth
// bucket is informational bookkeeping only — see PesoTotal.
type InventarioPaquetes struct {
	Kg7  [SubDivisiones]int `json:"kg7"`
	Kg8  [SubDivisiones]int `json:"kg8"`
	Kg9  [SubDivisiones]int `json:"kg9"`
	Kg10 [SubDivisiones]int `json:"kg10"`
	Kg11 [SubDivisiones]int `json:"kg11"`
	Kg12 [SubDivisiones]int `json:"kg12"`
	Kg13 [SubDivisiones]int `json:"kg13"`
}

// clases returns pointers to the seven weight-class arrays, index 0 = 7 kg.
func (inv *InventarioPaquetes) clases() [ClasesDePeso]*[SubDivisiones]int {
	return [ClasesDePeso]*[SubDivisiones]int{
		&inv.Kg7, &inv.Kg8, &inv.Kg9, &inv.Kg10, &inv.Kg11, &inv.Kg12, &inv.Kg13,
	}
}

// Pesos lists the tracked weight classes in ascending order.
func Pesos() []int {
	pesos := make([]int, 0, ClasesDePeso)
	for p := PesoMinimo; p <= PesoMaximo; p++ {
		pesos = append(pesos, p)
	}
	return pesos
}

// TotalPaquetes suma los 70 contadores.
func (inv InventarioPaquetes) TotalPaquetes() int {
	total := 0
	for _, clase := range inv.clases() {
		for _, n := range clase {
			total += n
		}
	}
	return total
}

// PesoTotal returns the total weight in kilograms using only the integer
// class weight: a package counted under 7.4 contributes 7 kg. The tenths
// subdivision never adds fractional weight — this mirrors how every
// historical total was computed, so it must not be "fixed" here.
func (inv InventarioPaquetes) PesoTotal() float64 {
	var total float64
	peso := PesoMinimo
	for _, clase := range inv.clases() {
		cantidad := 0
		for _, n := range clase {
			cantidad += n
		}
		total += float64(peso) * float64(cantidad)
		peso++
	}
	return total
}

// TotalPorPeso returns the package count for one weight class, 0 when the
// class is outside 7..13.
func (inv InventarioPaquetes) TotalPorPeso(peso int) int {
	if peso < PesoMinimo || peso > PesoMaximo {
		return 0
	}
	total := 0
	for _, n := range inv.clases()[peso-PesoMinimo] {
		total += n
	}
	return total
}

// PaquetesPorPeso returns a copy of the ten tenth-bucket counters for one
// weight class.
func (inv InventarioPaquetes) PaquetesPorPeso(peso int) ([]int, error) {
	if peso < PesoMinimo || peso > PesoMaximo {
		return nil, fmt.Errorf("%w: peso %d fuera de rango", ErrEntradaInvalida, peso)
	}
	clase := inv.clases()[peso-PesoMinimo]
	paquetes := make([]int, SubDivisiones)
	copy(paquetes, clase[:])
	return paquetes, nil
}

// SetPaquetesPorPeso replaces the ten counters of one weight class. The
// slice must have exactly 10 non-negative entries; anything else is a hard
// validation error, never a silent no-op.
func (inv *InventarioPaquetes) SetPaquetesPorPeso(peso int, paquetes []int) error {
	if peso < PesoMinimo || peso > PesoMaximo {
		return fmt.Errorf("%w: peso %d fuera de rango", ErrEntradaInvalida, peso)
	}
	if len(paquetes) != SubDivisiones {
		return fmt.Errorf("%w: se esperaban %d contadores, llegaron %d", ErrEntradaInvalida, SubDivisiones, len(paquetes))
	}
	for i, n := range paquetes {
		if n < 0 {
			return fmt.Errorf("%w: contador negativo en %d.%d", ErrEntradaInvalida, peso, i)
		}
	}
	copy(inv.clases()[peso-PesoMinimo][:], paquetes)
	return nil
}

// Validar rejects inventories holding any negative counter.
func (inv InventarioPaquetes) Validar() error {
	peso := PesoMinimo
	for _, clase := range inv.clases() {
		for i, n := range clase {
			if n < 0 {
				return fmt.Errorf("%w: contador negativo en %d.%d", ErrEntradaInvalida, peso, i)
			}
		}
		peso++
	}
	return nil
}

// Agregar suma los contadores de otro inventario elemento a elemento.
func (inv *InventarioPaquetes) Agregar(otro InventarioPaquetes) {
	propias := inv.clases()
	ajenas := otro.clases()
	for c := 0; c < ClasesDePeso; c++ {
		for i := 0; i < SubDivisiones; i++ {
			propias[c][i] += ajenas[c][i]
		}
	}
}

// Restar subtracts another inventory element-wise, clamping every counter at
// zero. It returns the total shortfall (the amount that could not be
// subtracted) so callers can warn instead of losing it silently.
func (inv *InventarioPaquetes) Restar(otro InventarioPaquetes) int {
	faltante := 0
	propias := inv.clases()
	ajenas := otro.clases()
	for c := 0; c < ClasesDePeso; c++ {
		for i := 0; i < SubDivisiones; i++ {
			resto := propias[c][i] - ajenas[c][i]
			if resto < 0 {
				faltante += -resto
				resto = 0
			}
			propias[c][i] = resto
		}
	}
	return faltante
}

// TieneStock reports whether any counter is positive.
func (inv InventarioPaquetes) TieneStock() bool {
	return inv.TotalPaquetes() > 0
}

// ResumenPeso is one (weight class, package count) pair for compact displays.
type ResumenPeso struct {
	Peso     int `json:"peso"`
	Cantidad int `json:"cantidad"`
}

// ResumenPorPeso lists the weight classes that currently hold stock.
func (inv InventarioPaquetes) ResumenPorPeso() []ResumenPeso {
	resumen := make([]ResumenPeso, 0, ClasesDePeso)
	for _, peso := range Pesos() {
		if cantidad := inv.TotalPorPeso(peso); cantidad > 0 {
			resumen = append(resumen, ResumenPeso{Peso: peso, Cantidad: cantidad})
		}
	}
	return resumen
}
