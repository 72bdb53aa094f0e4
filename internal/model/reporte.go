package model

// TipoReporte selects the flavor of a generated report.
type TipoReporte string

const (
	ReporteDiario    TipoReporte = "daily"
	ReporteSemanal   TipoReporte = "weekly"
	ReporteMensual   TipoReporte = "monthly"
	ReporteProveedor TipoReporte = "supplier"
	ReporteTipoHuevo TipoReporte = "eggType"
)

func (t TipoReporte) Valido() bool {
	switch t {
	case ReporteDiario, ReporteSemanal, ReporteMensual, ReporteProveedor, ReporteTipoHuevo:
		return true
	}
	return false
}

func (t TipoReporte) NombreVisible() string {
	switch t {
	case ReporteDiario:
		return "Diario"
	case ReporteSemanal:
		return "Semanal"
	case ReporteMensual:
		return "Mensual"
	case ReporteProveedor:
		return "Proveedor"
	case ReporteTipoHuevo:
		return "Tipo Huevo"
	default:
		return string(t)
	}
}

// Tendencia classifies a date range's direction by comparing the last three
// days against the first three.
type Tendencia string

const (
	TendenciaSube    Tendencia = "sube"
	TendenciaBaja    Tendencia = "baja"
	TendenciaEstable Tendencia = "estable"
)
