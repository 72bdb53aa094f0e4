package dto

import (
	"github.com/shopspring/decimal"

	"avicoladonnas/internal/model"
)

// ReporteResponse is the full analytics view for a date range. Every field
// is derived from the fetched daily stocks and movements — nothing here is
// stored.
type ReporteResponse struct {
	Titulo      string            `json:"titulo"`
	RangoFechas string            `json:"rango_fechas"`
	FechaInicio string            `json:"fecha_inicio"`
	FechaFin    string            `json:"fecha_fin"`
	Tipo        model.TipoReporte `json:"tipo"`

	TotalPaquetes       int             `json:"total_paquetes"`
	PesoTotal           float64         `json:"peso_total"`
	TotalRosado         int             `json:"total_rosado"`
	TotalPardo          int             `json:"total_pardo"`
	PorcentajeRosado    decimal.Decimal `json:"porcentaje_rosado"`
	PorcentajePardo     decimal.Decimal `json:"porcentaje_pardo"`
	PromedioPaquetesDia int             `json:"promedio_paquetes_dia"`
	DiasActivos         int             `json:"dias_activos"`
	DiasEnRango         int             `json:"dias_en_rango"`
	RegistrosOmitidos   int             `json:"registros_omitidos"`

	Tendencias      TendenciasReporte  `json:"tendencias"`
	ProveedoresTop  []ProveedorRanking `json:"proveedores_top"`
	Distribucion    []DistribucionPeso `json:"distribucion_pesos"`
	GraficoDiario   []PuntoGrafico     `json:"grafico_diario"`
	Conclusiones    []string           `json:"conclusiones"`
	Recomendaciones []string           `json:"recomendaciones"`
}

type TendenciasReporte struct {
	Paquetes model.Tendencia `json:"paquetes"`
	Peso     model.Tendencia `json:"peso"`
	Rosado   model.Tendencia `json:"rosado"`
	Pardo    model.Tendencia `json:"pardo"`
}

// ProveedorRanking is one supplier's aggregate over the range.
type ProveedorRanking struct {
	Nombre        string          `json:"nombre"`
	TotalPaquetes int             `json:"total_paquetes"`
	Entregas      int             `json:"entregas"`
	Porcentaje    decimal.Decimal `json:"porcentaje"`
}

// DistribucionPeso is the per-weight-class breakdown across the range.
// Classes with zero total are omitted from the report.
type DistribucionPeso struct {
	Peso   int `json:"peso"`
	Rosado int `json:"rosado"`
	Pardo  int `json:"pardo"`
	Total  int `json:"total"`
}

// PuntoGrafico is one day's totals for charting, ascending by date.
type PuntoGrafico struct {
	Fecha         string `json:"fecha"`
	TotalPaquetes int    `json:"total_paquetes"`
	Rosado        int    `json:"rosado"`
	Pardo         int    `json:"pardo"`
}
