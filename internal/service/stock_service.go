package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"avicoladonnas/internal/dto"
	"avicoladonnas/internal/model"
	"avicoladonnas/internal/repository"
	"avicoladonnas/internal/store"
	"avicoladonnas/internal/worker"

	"github.com/rs/zerolog/log"
)

var (
	// ErrTipoInvalido: el tipo de movimiento o de huevo no existe.
	ErrTipoInvalido = errors.New("tipo inválido")
	// ErrFechaInvalida: la fecha no tiene formato YYYY-MM-DD.
	ErrFechaInvalida = errors.New("fecha inválida")
	// ErrProveedorRequerido: una carga entrante necesita proveedor.
	ErrProveedorRequerido = errors.New("proveedor requerido para cargas")
)

type StockService interface {
	ObtenerOCrearHoy(ctx context.Context) (*model.StockDiario, error)
	StockPorFecha(ctx context.Context, fecha string) (*model.StockDiario, error)
	Historial(ctx context.Context) (*dto.HistorialResponse, error)
	HistorialEnRango(ctx context.Context, desde, hasta string) (*dto.HistorialResponse, error)
	RegistrarMovimiento(ctx context.Context, req dto.RegistrarMovimientoRequest) (*dto.MovimientoResponse, error)
	ActualizarStockTipo(ctx context.Context, huevo model.TipoHuevo, req dto.ActualizarStockTipoRequest) (*model.StockDiario, error)
	CerrarDia(ctx context.Context) (*dto.MovimientoResponse, error)
	ReabrirDia(ctx context.Context, fecha string) (*model.StockDiario, error)
	MovimientosPorFecha(ctx context.Context, fecha string) (*dto.MovimientosResponse, error)
	MovimientosEnRango(ctx context.Context, desde, hasta string) (*dto.MovimientosResponse, error)
	Movimientos(ctx context.Context) (*dto.MovimientosResponse, error)
	EstadisticasHoy(ctx context.Context) (*dto.EstadisticasDiaResponse, error)
}

type stockService struct {
	stocks      repository.StockDiarioRepository
	movimientos repository.MovimientoRepository
	ajustes     repository.AjustesRepository
	dispatcher  *worker.Dispatcher

	ahora func() time.Time

	// candados serializa lectura-modificación-escritura por fecha. El
	// documento diario se reescribe completo, así que dos movimientos
	// concurrentes del mismo día no pueden intercalarse.
	mu       sync.Mutex
	candados map[string]*sync.Mutex
}

func NewStockService(
	stocks repository.StockDiarioRepository,
	movimientos repository.MovimientoRepository,
	ajustes repository.AjustesRepository,
	dispatcher *worker.Dispatcher,
) StockService {
	return &stockService{
		stocks:      stocks,
		movimientos: movimientos,
		ajustes:     ajustes,
		dispatcher:  dispatcher,
		ahora:       time.Now,
		candados:    make(map[string]*sync.Mutex),
	}
}

func (s *stockService) candado(fecha string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.candados[fecha]
	if !ok {
		c = &sync.Mutex{}
		s.candados[fecha] = c
	}
	return c
}

func (s *stockService) hoy() string {
	return model.FechaClave(s.ahora())
}

// ── Lectura de stock ──────────────────────────────────────────────────────────

// ObtenerOCrearHoy devuelve el stock del día actual, creándolo vacío si es
// la primera operación del día. La creación es idempotente: la fecha es la
// clave del documento, así que dos llamadas concurrentes convergen.
func (s *stockService) ObtenerOCrearHoy(ctx context.Context) (*model.StockDiario, error) {
	fecha := s.hoy()
	c := s.candado(fecha)
	c.Lock()
	defer c.Unlock()
	return s.obtenerOCrear(ctx, fecha)
}

func (s *stockService) obtenerOCrear(ctx context.Context, fecha string) (*model.StockDiario, error) {
	stock, err := s.stocks.PorFecha(ctx, fecha)
	if err == nil {
		stock.EsDiaActual = fecha == s.hoy()
		return stock, nil
	}
	if !errors.Is(err, store.ErrNoEncontrado) {
		return nil, err
	}
	stock = model.NuevoStockDiario(fecha)
	stock.EsDiaActual = fecha == s.hoy()
	if err := s.stocks.Guardar(ctx, stock); err != nil {
		return nil, err
	}
	log.Info().Str("fecha", fecha).Msg("stock diario creado")
	return stock, nil
}

func (s *stockService) StockPorFecha(ctx context.Context, fecha string) (*model.StockDiario, error) {
	if !model.FechaValida(fecha) {
		return nil, fmt.Errorf("%w: %q", ErrFechaInvalida, fecha)
	}
	stock, err := s.stocks.PorFecha(ctx, fecha)
	if err != nil {
		return nil, err
	}
	stock.EsDiaActual = fecha == s.hoy()
	return stock, nil
}

func (s *stockService) Historial(ctx context.Context) (*dto.HistorialResponse, error) {
	dias, omitidos, err := s.stocks.Historial(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.HistorialResponse{Dias: dias, Omitidos: omitidos}, nil
}

func (s *stockService) HistorialEnRango(ctx context.Context, desde, hasta string) (*dto.HistorialResponse, error) {
	if err := validarRango(desde, hasta); err != nil {
		return nil, err
	}
	dias, omitidos, err := s.stocks.PorRango(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}
	return &dto.HistorialResponse{Dias: dias, Omitidos: omitidos}, nil
}

// ── Movimientos ───────────────────────────────────────────────────────────────

// RegistrarMovimiento valida, persiste el movimiento y aplica su efecto al
// stock del día actual. Los ajustes quedan registrados como evidencia de
// auditoría pero no tocan los contadores.
func (s *stockService) RegistrarMovimiento(ctx context.Context, req dto.RegistrarMovimientoRequest) (*dto.MovimientoResponse, error) {
	tipo := model.TipoMovimiento(req.Tipo)
	switch tipo {
	case model.MovimientoCarga, model.MovimientoSalida, model.MovimientoAjuste:
	default:
		return nil, fmt.Errorf("%w: movimiento %q", ErrTipoInvalido, req.Tipo)
	}
	if err := req.PaquetesRosado.Validar(); err != nil {
		return nil, err
	}
	if err := req.PaquetesPardo.Validar(); err != nil {
		return nil, err
	}
	if tipo == model.MovimientoCarga && req.Proveedor == "" {
		return nil, ErrProveedorRequerido
	}

	fecha := s.hoy()
	c := s.candado(fecha)
	c.Lock()
	defer c.Unlock()

	stock, err := s.obtenerOCrear(ctx, fecha)
	if err != nil {
		return nil, err
	}

	mov := model.NuevoMovimiento(fecha, tipo, req.Proveedor, req.PaquetesRosado, req.PaquetesPardo, req.Notas)
	if err := s.movimientos.Crear(ctx, &mov); err != nil {
		return nil, err
	}

	faltante := 0
	switch tipo {
	case model.MovimientoCarga:
		stock.AgregarCarga(model.HuevoRosado, req.PaquetesRosado)
		stock.AgregarCarga(model.HuevoPardo, req.PaquetesPardo)
	case model.MovimientoSalida:
		faltante += stock.RegistrarSalida(model.HuevoRosado, req.PaquetesRosado)
		faltante += stock.RegistrarSalida(model.HuevoPardo, req.PaquetesPardo)
	case model.MovimientoAjuste:
		// solo evidencia, sin efecto sobre el stock
	}

	if tipo != model.MovimientoAjuste {
		if err := s.stocks.Guardar(ctx, stock); err != nil {
			return nil, err
		}
	}
	if faltante > 0 {
		log.Warn().Str("fecha", fecha).Int("faltante", faltante).
			Msg("salida superó el stock disponible, contadores acotados en cero")
	}
	if tipo == model.MovimientoCarga {
		s.aprenderProveedor(ctx, req.Proveedor)
	}

	log.Info().Str("fecha", fecha).Str("tipo", string(tipo)).
		Int("paquetes", mov.TotalPaquetes()).Msg("movimiento registrado")
	return &dto.MovimientoResponse{Movimiento: mov, Stock: stock, Faltante: faltante}, nil
}

// aprenderProveedor agrega el proveedor a la lista de frecuentes. Un fallo
// acá no invalida el movimiento ya persistido, solo se registra.
func (s *stockService) aprenderProveedor(ctx context.Context, nombre string) {
	ajustes, err := s.ajustes.Obtener(ctx)
	if errors.Is(err, store.ErrNoEncontrado) {
		predeterminados := model.AjustesPredeterminados()
		ajustes = &predeterminados
	} else if err != nil {
		log.Warn().Err(err).Msg("no se pudo leer ajustes para aprender proveedor")
		return
	}
	if !ajustes.AprenderProveedor(nombre) {
		return
	}
	if err := s.ajustes.Guardar(ctx, ajustes); err != nil {
		log.Warn().Err(err).Str("proveedor", nombre).Msg("no se pudo guardar proveedor frecuente")
	}
}

// ActualizarStockTipo reemplaza el inventario completo de una variante del
// día actual, para correcciones directas desde la pantalla de stock.
func (s *stockService) ActualizarStockTipo(ctx context.Context, huevo model.TipoHuevo, req dto.ActualizarStockTipoRequest) (*model.StockDiario, error) {
	if !huevo.Valido() {
		return nil, fmt.Errorf("%w: huevo %q", ErrTipoInvalido, huevo)
	}
	if err := req.Paquetes.Validar(); err != nil {
		return nil, err
	}

	fecha := s.hoy()
	c := s.candado(fecha)
	c.Lock()
	defer c.Unlock()

	stock, err := s.obtenerOCrear(ctx, fecha)
	if err != nil {
		return nil, err
	}
	stock.ReemplazarTipo(huevo, req.Paquetes)
	if err := s.stocks.Guardar(ctx, stock); err != nil {
		return nil, err
	}
	return stock, nil
}

// ── Cierre y reapertura ───────────────────────────────────────────────────────

// CerrarDia congela el día actual: marca el stock como cerrado y persiste un
// movimiento de cierre con la foto final del inventario, a nombre del
// proveedor reservado del sistema. Si el respaldo automático está activo se
// encola un respaldo asíncrono.
func (s *stockService) CerrarDia(ctx context.Context) (*dto.MovimientoResponse, error) {
	fecha := s.hoy()
	c := s.candado(fecha)
	c.Lock()
	defer c.Unlock()

	stock, err := s.stocks.PorFecha(ctx, fecha)
	if err != nil {
		return nil, err
	}
	if err := stock.Cerrar(s.ahora()); err != nil {
		return nil, err
	}

	notas := "Cierre automático del día"
	mov := model.NuevoMovimiento(fecha, model.MovimientoCierre, model.ProveedorSistema,
		stock.PaquetesRosado, stock.PaquetesPardo, &notas)
	if err := s.movimientos.Crear(ctx, &mov); err != nil {
		return nil, err
	}
	if err := s.stocks.Guardar(ctx, stock); err != nil {
		return nil, err
	}
	log.Info().Str("fecha", fecha).Int("paquetes", stock.TotalPaquetes).Msg("día cerrado")

	s.encolarRespaldo(ctx, fecha)
	return &dto.MovimientoResponse{Movimiento: mov, Stock: stock}, nil
}

func (s *stockService) encolarRespaldo(ctx context.Context, fecha string) {
	if s.dispatcher == nil {
		return
	}
	ajustes, err := s.ajustes.Obtener(ctx)
	if err != nil || !ajustes.RespaldoAutomatico {
		return
	}
	if err := s.dispatcher.EnqueueRespaldo(ctx, worker.RespaldoPayload{Fecha: fecha}); err != nil {
		log.Warn().Err(err).Str("fecha", fecha).Msg("no se pudo encolar respaldo")
	}
}

// ReabrirDia quita la marca de cierre de un día para correcciones tardías.
func (s *stockService) ReabrirDia(ctx context.Context, fecha string) (*model.StockDiario, error) {
	if !model.FechaValida(fecha) {
		return nil, fmt.Errorf("%w: %q", ErrFechaInvalida, fecha)
	}
	c := s.candado(fecha)
	c.Lock()
	defer c.Unlock()

	stock, err := s.stocks.PorFecha(ctx, fecha)
	if err != nil {
		return nil, err
	}
	if err := stock.Reabrir(fecha == s.hoy()); err != nil {
		return nil, err
	}
	if err := s.stocks.Guardar(ctx, stock); err != nil {
		return nil, err
	}
	log.Info().Str("fecha", fecha).Msg("día reabierto")
	return stock, nil
}

// ── Consultas de movimientos ──────────────────────────────────────────────────

func (s *stockService) MovimientosPorFecha(ctx context.Context, fecha string) (*dto.MovimientosResponse, error) {
	if !model.FechaValida(fecha) {
		return nil, fmt.Errorf("%w: %q", ErrFechaInvalida, fecha)
	}
	movs, omitidos, err := s.movimientos.PorFecha(ctx, fecha)
	if err != nil {
		return nil, err
	}
	return &dto.MovimientosResponse{Movimientos: movs, Omitidos: omitidos}, nil
}

func (s *stockService) MovimientosEnRango(ctx context.Context, desde, hasta string) (*dto.MovimientosResponse, error) {
	if err := validarRango(desde, hasta); err != nil {
		return nil, err
	}
	movs, omitidos, err := s.movimientos.PorRango(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}
	return &dto.MovimientosResponse{Movimientos: movs, Omitidos: omitidos}, nil
}

func (s *stockService) Movimientos(ctx context.Context) (*dto.MovimientosResponse, error) {
	movs, omitidos, err := s.movimientos.Todos(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.MovimientosResponse{Movimientos: movs, Omitidos: omitidos}, nil
}

// EstadisticasHoy resume la actividad del día: cantidad de movimientos y
// proveedores distintos que aparecen en ellos.
func (s *stockService) EstadisticasHoy(ctx context.Context) (*dto.EstadisticasDiaResponse, error) {
	fecha := s.hoy()
	movs, _, err := s.movimientos.PorFecha(ctx, fecha)
	if err != nil {
		return nil, err
	}
	proveedores := make(map[string]struct{})
	for _, mov := range movs {
		if mov.Proveedor != "" {
			proveedores[mov.Proveedor] = struct{}{}
		}
	}
	return &dto.EstadisticasDiaResponse{
		Fecha:       fecha,
		Movimientos: len(movs),
		Proveedores: len(proveedores),
	}, nil
}

func validarRango(desde, hasta string) error {
	if !model.FechaValida(desde) {
		return fmt.Errorf("%w: desde %q", ErrFechaInvalida, desde)
	}
	if !model.FechaValida(hasta) {
		return fmt.Errorf("%w: hasta %q", ErrFechaInvalida, hasta)
	}
	if desde > hasta {
		return fmt.Errorf("%w: desde %q posterior a hasta %q", ErrFechaInvalida, desde, hasta)
	}
	return nil
}
