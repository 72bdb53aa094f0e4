package dto

import (
	"avicoladonnas/internal/model"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type RegistrarMovimientoRequest struct {
	Tipo           string                   `json:"tipo"      validate:"required,oneof=carga salida ajuste"`
	Proveedor      string                   `json:"proveedor" validate:"max=120"`
	Notas          *string                  `json:"notas"`
	PaquetesRosado model.InventarioPaquetes `json:"paquetes_rosado"`
	PaquetesPardo  model.InventarioPaquetes `json:"paquetes_pardo"`
}

type ActualizarStockTipoRequest struct {
	Paquetes model.InventarioPaquetes `json:"paquetes"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type MovimientoResponse struct {
	Movimiento model.Movimiento   `json:"movimiento"`
	Stock      *model.StockDiario `json:"stock,omitempty"`
	// Faltante is the total amount an outgoing movement could not subtract
	// because the counters were already at zero.
	Faltante int `json:"faltante"`
}

type HistorialResponse struct {
	Dias []model.StockDiario `json:"dias"`
	// Omitidos counts stored records dropped because they no longer decode.
	Omitidos int `json:"omitidos"`
}

type MovimientosResponse struct {
	Movimientos []model.Movimiento `json:"movimientos"`
	Omitidos    int                `json:"omitidos"`
}

type EstadisticasDiaResponse struct {
	Fecha       string `json:"fecha"`
	Movimientos int    `json:"movimientos"`
	Proveedores int    `json:"proveedores"`
}
