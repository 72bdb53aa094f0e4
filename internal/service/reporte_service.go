package service

import (
	"context"
	"fmt"
	"sort"

	"avicoladonnas/internal/dto"
	"avicoladonnas/internal/model"
	"avicoladonnas/internal/repository"

	"github.com/shopspring/decimal"
)

type ReporteService interface {
	GenerarReporte(ctx context.Context, tipo model.TipoReporte, desde, hasta string) (*dto.ReporteResponse, error)
}

type reporteService struct {
	stocks      repository.StockDiarioRepository
	movimientos repository.MovimientoRepository
}

func NewReporteService(stocks repository.StockDiarioRepository, movimientos repository.MovimientoRepository) ReporteService {
	return &reporteService{stocks: stocks, movimientos: movimientos}
}

var cien = decimal.NewFromInt(100)

// GenerarReporte arma la vista analítica completa de un rango de fechas.
// Todo se deriva de los stocks diarios y movimientos leídos; el reporte no
// se persiste.
func (s *reporteService) GenerarReporte(ctx context.Context, tipo model.TipoReporte, desde, hasta string) (*dto.ReporteResponse, error) {
	if !tipo.Valido() {
		return nil, fmt.Errorf("%w: reporte %q", ErrTipoInvalido, tipo)
	}
	if err := validarRango(desde, hasta); err != nil {
		return nil, err
	}

	dias, omitidosStocks, err := s.stocks.PorRango(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}
	movs, omitidosMovs, err := s.movimientos.PorRango(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}

	rango := fmt.Sprintf("%s - %s", desde, hasta)
	resp := &dto.ReporteResponse{
		Titulo:            fmt.Sprintf("%s - %s", tipo.NombreVisible(), rango),
		RangoFechas:       rango,
		FechaInicio:       desde,
		FechaFin:          hasta,
		Tipo:              tipo,
		DiasEnRango:       len(dias),
		RegistrosOmitidos: omitidosStocks + omitidosMovs,
	}

	totalRosado := 0
	totalPardo := 0
	for _, dia := range dias {
		resp.TotalPaquetes += dia.TotalPaquetes
		resp.PesoTotal += dia.PesoTotal
		totalRosado += dia.PaquetesRosado.TotalPaquetes()
		totalPardo += dia.PaquetesPardo.TotalPaquetes()
		if dia.TotalPaquetes > 0 {
			resp.DiasActivos++
		}
	}
	resp.TotalRosado = totalRosado
	resp.TotalPardo = totalPardo
	resp.PorcentajeRosado = porcentaje(totalRosado, resp.TotalPaquetes)
	resp.PorcentajePardo = porcentaje(totalPardo, resp.TotalPaquetes)
	if len(dias) > 0 {
		resp.PromedioPaquetesDia = resp.TotalPaquetes / len(dias)
	}

	resp.Tendencias = dto.TendenciasReporte{
		Paquetes: tendenciaEnteros(serieEnteros(dias, func(d model.StockDiario) int { return d.TotalPaquetes })),
		Peso:     tendenciaPesos(seriePesos(dias)),
		Rosado:   tendenciaEnteros(serieEnteros(dias, func(d model.StockDiario) int { return d.PaquetesRosado.TotalPaquetes() })),
		Pardo:    tendenciaEnteros(serieEnteros(dias, func(d model.StockDiario) int { return d.PaquetesPardo.TotalPaquetes() })),
	}

	ranking := rankearProveedores(movs, resp.TotalPaquetes)
	if len(ranking) > 5 {
		resp.ProveedoresTop = ranking[:5]
	} else {
		resp.ProveedoresTop = ranking
	}
	resp.Distribucion = distribucionPesos(dias)
	resp.GraficoDiario = graficoDiario(dias)
	resp.Conclusiones = conclusiones(dias, resp, ranking)
	resp.Recomendaciones = recomendaciones(resp, ranking)
	return resp, nil
}

func porcentaje(parte, total int) decimal.Decimal {
	if total <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(parte)).Mul(cien).Div(decimal.NewFromInt(int64(total)))
}

func serieEnteros(dias []model.StockDiario, valor func(model.StockDiario) int) []int {
	serie := make([]int, len(dias))
	for i, dia := range dias {
		serie[i] = valor(dia)
	}
	return serie
}

func seriePesos(dias []model.StockDiario) []float64 {
	serie := make([]float64, len(dias))
	for i, dia := range dias {
		serie[i] = dia.PesoTotal
	}
	return serie
}

// tendenciaEnteros compara la suma de los últimos tres días contra la de los
// primeros tres, con una banda muerta del 10% truncada a entero. Con menos de
// dos días no hay tendencia.
func tendenciaEnteros(serie []int) model.Tendencia {
	if len(serie) < 2 {
		return model.TendenciaEstable
	}
	reciente := 0
	for _, v := range ultimos(serie, 3) {
		reciente += v
	}
	previo := 0
	for _, v := range primeros(serie, 3) {
		previo += v
	}
	switch {
	case reciente > int(float64(previo)*1.1):
		return model.TendenciaSube
	case reciente < int(float64(previo)*0.9):
		return model.TendenciaBaja
	default:
		return model.TendenciaEstable
	}
}

func tendenciaPesos(serie []float64) model.Tendencia {
	if len(serie) < 2 {
		return model.TendenciaEstable
	}
	reciente := 0.0
	for _, v := range ultimos(serie, 3) {
		reciente += v
	}
	previo := 0.0
	for _, v := range primeros(serie, 3) {
		previo += v
	}
	switch {
	case reciente > previo*1.1:
		return model.TendenciaSube
	case reciente < previo*0.9:
		return model.TendenciaBaja
	default:
		return model.TendenciaEstable
	}
}

func primeros[T any](serie []T, n int) []T {
	if len(serie) < n {
		return serie
	}
	return serie[:n]
}

func ultimos[T any](serie []T, n int) []T {
	if len(serie) < n {
		return serie
	}
	return serie[len(serie)-n:]
}

// rankearProveedores agrupa solo cargas entrantes con proveedor real,
// ordenadas de mayor a menor por paquetes. El porcentaje es sobre el total
// del reporte, no sobre el total entregado.
func rankearProveedores(movs []model.Movimiento, totalReporte int) []dto.ProveedorRanking {
	type acumulado struct {
		paquetes int
		entregas int
	}
	porProveedor := make(map[string]*acumulado)
	for _, mov := range movs {
		if mov.Tipo != model.MovimientoCarga || mov.Proveedor == "" || mov.Proveedor == model.ProveedorSistema {
			continue
		}
		acc, ok := porProveedor[mov.Proveedor]
		if !ok {
			acc = &acumulado{}
			porProveedor[mov.Proveedor] = acc
		}
		acc.paquetes += mov.TotalPaquetes()
		acc.entregas++
	}

	ranking := make([]dto.ProveedorRanking, 0, len(porProveedor))
	for nombre, acc := range porProveedor {
		ranking = append(ranking, dto.ProveedorRanking{
			Nombre:        nombre,
			TotalPaquetes: acc.paquetes,
			Entregas:      acc.entregas,
			Porcentaje:    porcentaje(acc.paquetes, totalReporte),
		})
	}
	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].TotalPaquetes != ranking[j].TotalPaquetes {
			return ranking[i].TotalPaquetes > ranking[j].TotalPaquetes
		}
		return ranking[i].Nombre < ranking[j].Nombre
	})
	return ranking
}

func distribucionPesos(dias []model.StockDiario) []dto.DistribucionPeso {
	var dist []dto.DistribucionPeso
	for _, peso := range model.Pesos() {
		rosado := 0
		pardo := 0
		for _, dia := range dias {
			rosado += dia.PaquetesRosado.TotalPorPeso(peso)
			pardo += dia.PaquetesPardo.TotalPorPeso(peso)
		}
		if rosado+pardo == 0 {
			continue
		}
		dist = append(dist, dto.DistribucionPeso{
			Peso:   peso,
			Rosado: rosado,
			Pardo:  pardo,
			Total:  rosado + pardo,
		})
	}
	return dist
}

func graficoDiario(dias []model.StockDiario) []dto.PuntoGrafico {
	puntos := make([]dto.PuntoGrafico, len(dias))
	for i, dia := range dias {
		puntos[i] = dto.PuntoGrafico{
			Fecha:         dia.Fecha,
			TotalPaquetes: dia.TotalPaquetes,
			Rosado:        dia.PaquetesRosado.TotalPaquetes(),
			Pardo:         dia.PaquetesPardo.TotalPaquetes(),
		}
	}
	return puntos
}

func conclusiones(dias []model.StockDiario, resp *dto.ReporteResponse, ranking []dto.ProveedorRanking) []string {
	var frases []string

	if len(dias) > 0 {
		mejor := dias[0]
		for _, dia := range dias[1:] {
			if dia.TotalPaquetes > mejor.TotalPaquetes {
				mejor = dia
			}
		}
		frases = append(frases, fmt.Sprintf("El día más productivo fue el %s con %d paquetes",
			model.FechaVisible(mejor.Fecha), mejor.TotalPaquetes))
	}

	switch resp.Tendencias.Paquetes {
	case model.TendenciaSube:
		frases = append(frases, "Se observa una tendencia positiva en la producción durante el período")
	case model.TendenciaBaja:
		frases = append(frases, "Se observa una disminución en la producción durante el período")
	default:
		frases = append(frases, "La producción se mantiene estable durante el período")
	}

	if resp.TotalRosado > 0 && resp.TotalPardo > 0 {
		switch {
		case resp.PorcentajeRosado.GreaterThan(decimal.NewFromInt(70)):
			frases = append(frases, fmt.Sprintf("El huevo rosado representa el %s%% de la producción total",
				resp.PorcentajeRosado.StringFixed(0)))
		case resp.PorcentajePardo.GreaterThan(decimal.NewFromInt(70)):
			frases = append(frases, fmt.Sprintf("El huevo pardo representa el %s%% de la producción total",
				resp.PorcentajePardo.StringFixed(0)))
		default:
			frases = append(frases, fmt.Sprintf("Hay una distribución equilibrada entre huevo rosado (%s%%) y pardo (%s%%)",
				resp.PorcentajeRosado.StringFixed(0), resp.PorcentajePardo.StringFixed(0)))
		}
	}

	if len(ranking) > 0 {
		principal := ranking[0]
		frases = append(frases, fmt.Sprintf("El proveedor principal es %s con %d paquetes (%s%%)",
			principal.Nombre, principal.TotalPaquetes, principal.Porcentaje.StringFixed(1)))
	}
	return frases
}

func recomendaciones(resp *dto.ReporteResponse, ranking []dto.ProveedorRanking) []string {
	var frases []string

	switch resp.Tendencias.Paquetes {
	case model.TendenciaBaja:
		frases = append(frases, "Considera revisar los procesos de producción para identificar oportunidades de mejora")
	case model.TendenciaSube:
		frases = append(frases, "Mantén las prácticas actuales que están generando el crecimiento en producción")
	default:
		frases = append(frases, "Explora oportunidades para optimizar y aumentar la eficiencia")
	}

	switch {
	case resp.TotalRosado > 0 && resp.TotalPardo == 0:
		frases = append(frases, "Considera diversificar con huevo pardo para ampliar tu oferta")
	case resp.TotalRosado == 0 && resp.TotalPardo > 0:
		frases = append(frases, "Considera diversificar con huevo rosado para ampliar tu oferta")
	}

	if len(ranking) == 1 {
		frases = append(frases, "Considera diversificar proveedores para reducir riesgos de suministro")
	} else if len(ranking) > 5 {
		frases = append(frases, "Evalúa consolidar con los proveedores más eficientes para simplificar operaciones")
	}

	if inactivos := resp.DiasEnRango - resp.DiasActivos; inactivos > 0 {
		frases = append(frases, fmt.Sprintf("Hay %d días sin actividad. Considera optimizar la programación de entregas", inactivos))
	}
	return frases
}
