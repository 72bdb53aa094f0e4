package service

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"avicoladonnas/internal/dto"
	"avicoladonnas/internal/model"
	"avicoladonnas/internal/repository"
	"avicoladonnas/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubStockRepo is an in-memory StockDiarioRepository for testing.
type stubStockRepo struct {
	stocks   map[string]model.StockDiario
	guardado int
}

func newStubStockRepo() *stubStockRepo {
	return &stubStockRepo{stocks: make(map[string]model.StockDiario)}
}

func (r *stubStockRepo) Guardar(_ context.Context, stock *model.StockDiario) error {
	r.stocks[stock.Fecha] = *stock
	r.guardado++
	return nil
}

func (r *stubStockRepo) PorFecha(_ context.Context, fecha string) (*model.StockDiario, error) {
	stock, ok := r.stocks[fecha]
	if !ok {
		return nil, fmt.Errorf("%w: daily_stocks/%s", store.ErrNoEncontrado, fecha)
	}
	return &stock, nil
}

func (r *stubStockRepo) PorRango(_ context.Context, desde, hasta string) ([]model.StockDiario, int, error) {
	var dias []model.StockDiario
	for fecha, stock := range r.stocks {
		if fecha >= desde && fecha <= hasta {
			dias = append(dias, stock)
		}
	}
	sort.Slice(dias, func(i, j int) bool { return dias[i].Fecha < dias[j].Fecha })
	return dias, 0, nil
}

func (r *stubStockRepo) Historial(_ context.Context) ([]model.StockDiario, int, error) {
	return r.PorRango(context.Background(), "0000-00-00", "9999-99-99")
}

var _ repository.StockDiarioRepository = (*stubStockRepo)(nil)

// stubMovimientoRepo captures created movements for assertion.
type stubMovimientoRepo struct {
	movimientos []model.Movimiento
	seq         int
}

func (r *stubMovimientoRepo) Crear(_ context.Context, mov *model.Movimiento) error {
	r.seq++
	mov.ID = fmt.Sprintf("mov-%d", r.seq)
	r.movimientos = append(r.movimientos, *mov)
	return nil
}

func (r *stubMovimientoRepo) PorFecha(_ context.Context, fecha string) ([]model.Movimiento, int, error) {
	var movs []model.Movimiento
	for _, mov := range r.movimientos {
		if mov.Fecha == fecha {
			movs = append(movs, mov)
		}
	}
	return movs, 0, nil
}

func (r *stubMovimientoRepo) PorRango(_ context.Context, desde, hasta string) ([]model.Movimiento, int, error) {
	var movs []model.Movimiento
	for _, mov := range r.movimientos {
		if mov.Fecha >= desde && mov.Fecha <= hasta {
			movs = append(movs, mov)
		}
	}
	return movs, 0, nil
}

func (r *stubMovimientoRepo) Todos(_ context.Context) ([]model.Movimiento, int, error) {
	return r.movimientos, 0, nil
}

var _ repository.MovimientoRepository = (*stubMovimientoRepo)(nil)

// stubAjustesRepo holds a single optional settings document.
type stubAjustesRepo struct {
	ajustes *model.Ajustes
}

func (r *stubAjustesRepo) Obtener(_ context.Context) (*model.Ajustes, error) {
	if r.ajustes == nil {
		return nil, store.ErrNoEncontrado
	}
	copia := *r.ajustes
	return &copia, nil
}

func (r *stubAjustesRepo) Guardar(_ context.Context, ajustes *model.Ajustes) error {
	copia := *ajustes
	r.ajustes = &copia
	return nil
}

var _ repository.AjustesRepository = (*stubAjustesRepo)(nil)

// ── Helpers ──────────────────────────────────────────────────────────────────

const fechaPrueba = "2026-08-29"

func inventarioDePrueba(t *testing.T, peso, cantidad int) model.InventarioPaquetes {
	t.Helper()
	paquetes := make([]int, model.SubDivisiones)
	paquetes[0] = cantidad
	var inv model.InventarioPaquetes
	require.NoError(t, inv.SetPaquetesPorPeso(peso, paquetes))
	return inv
}

type entornoStock struct {
	svc     StockService
	stocks  *stubStockRepo
	movs    *stubMovimientoRepo
	ajustes *stubAjustesRepo
}

func nuevoEntornoStock(t *testing.T) *entornoStock {
	t.Helper()
	stocks := newStubStockRepo()
	movs := &stubMovimientoRepo{}
	ajustes := &stubAjustesRepo{}
	svc := NewStockService(stocks, movs, ajustes, nil).(*stockService)
	svc.ahora = func() time.Time {
		return time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	}
	return &entornoStock{svc: svc, stocks: stocks, movs: movs, ajustes: ajustes}
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestObtenerOCrearHoyEsIdempotente(t *testing.T) {
	env := nuevoEntornoStock(t)
	ctx := context.Background()

	stock, err := env.svc.ObtenerOCrearHoy(ctx)
	require.NoError(t, err)
	assert.Equal(t, fechaPrueba, stock.Fecha)
	assert.Equal(t, 0, stock.TotalPaquetes)
	assert.True(t, stock.EsDiaActual, "el stock recién creado es el día actual")

	// El documento persistido también lleva la marca de día actual
	guardado, err := env.stocks.PorFecha(ctx, fechaPrueba)
	require.NoError(t, err)
	assert.True(t, guardado.EsDiaActual)

	// La segunda llamada no crea un documento nuevo
	otra, err := env.svc.ObtenerOCrearHoy(ctx)
	require.NoError(t, err)
	assert.Equal(t, stock.Fecha, otra.Fecha)
	assert.True(t, otra.EsDiaActual)
	assert.Len(t, env.stocks.stocks, 1)
}

func TestRegistrarCargaActualizaStockYAprendeProveedor(t *testing.T) {
	env := nuevoEntornoStock(t)
	ctx := context.Background()

	resp, err := env.svc.RegistrarMovimiento(ctx, dto.RegistrarMovimientoRequest{
		Tipo:           "carga",
		Proveedor:      "Granja San Luis",
		PaquetesRosado: inventarioDePrueba(t, 7, 5),
	})
	require.NoError(t, err)
	assert.Equal(t, "mov-1", resp.Movimiento.ID)
	assert.Equal(t, model.MovimientoCarga, resp.Movimiento.Tipo)
	assert.Equal(t, 5, resp.Stock.TotalPaquetes)
	assert.Equal(t, 35.0, resp.Stock.PesoTotal)
	assert.Equal(t, 0, resp.Faltante)

	guardado := env.stocks.stocks[fechaPrueba]
	assert.Equal(t, 5, guardado.TotalPaquetes)

	require.NotNil(t, env.ajustes.ajustes)
	assert.Contains(t, env.ajustes.ajustes.ProveedoresFrecuentes, "Granja San Luis")
}

func TestRegistrarSalidaInformaFaltante(t *testing.T) {
	env := nuevoEntornoStock(t)
	ctx := context.Background()

	_, err := env.svc.RegistrarMovimiento(ctx, dto.RegistrarMovimientoRequest{
		Tipo:           "carga",
		Proveedor:      "Granja San Luis",
		PaquetesRosado: inventarioDePrueba(t, 7, 5),
	})
	require.NoError(t, err)

	resp, err := env.svc.RegistrarMovimiento(ctx, dto.RegistrarMovimientoRequest{
		Tipo:           "salida",
		PaquetesRosado: inventarioDePrueba(t, 7, 8),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Faltante)
	assert.Equal(t, 0, resp.Stock.TotalPaquetes)
}

func TestAjusteSePersisteSinTocarElStock(t *testing.T) {
	env := nuevoEntornoStock(t)
	ctx := context.Background()

	_, err := env.svc.RegistrarMovimiento(ctx, dto.RegistrarMovimientoRequest{
		Tipo:           "carga",
		Proveedor:      "Granja San Luis",
		PaquetesRosado: inventarioDePrueba(t, 7, 5),
	})
	require.NoError(t, err)

	resp, err := env.svc.RegistrarMovimiento(ctx, dto.RegistrarMovimientoRequest{
		Tipo:           "ajuste",
		PaquetesRosado: inventarioDePrueba(t, 7, 2),
	})
	require.NoError(t, err)
	assert.Equal(t, model.MovimientoAjuste, resp.Movimiento.Tipo)

	// El ajuste queda como evidencia pero el stock no cambia
	assert.Equal(t, 5, env.stocks.stocks[fechaPrueba].TotalPaquetes)
	assert.Len(t, env.movs.movimientos, 2)
}

func TestRegistrarMovimientoValidaciones(t *testing.T) {
	env := nuevoEntornoStock(t)
	ctx := context.Background()

	_, err := env.svc.RegistrarMovimiento(ctx, dto.RegistrarMovimientoRequest{Tipo: "cierre"})
	assert.ErrorIs(t, err, ErrTipoInvalido)

	_, err = env.svc.RegistrarMovimiento(ctx, dto.RegistrarMovimientoRequest{
		Tipo:           "carga",
		PaquetesRosado: inventarioDePrueba(t, 7, 1),
	})
	assert.ErrorIs(t, err, ErrProveedorRequerido)

	malo := model.InventarioPaquetes{}
	malo.Kg7[0] = -1
	_, err = env.svc.RegistrarMovimiento(ctx, dto.RegistrarMovimientoRequest{
		Tipo:           "salida",
		PaquetesRosado: malo,
	})
	assert.ErrorIs(t, err, model.ErrEntradaInvalida)

	// Nada quedó persistido
	assert.Empty(t, env.movs.movimientos)
}

func TestCerrarDiaGeneraMovimientoDeCierre(t *testing.T) {
	env := nuevoEntornoStock(t)
	ctx := context.Background()

	_, err := env.svc.RegistrarMovimiento(ctx, dto.RegistrarMovimientoRequest{
		Tipo:           "carga",
		Proveedor:      "Granja San Luis",
		PaquetesRosado: inventarioDePrueba(t, 7, 4),
	})
	require.NoError(t, err)

	resp, err := env.svc.CerrarDia(ctx)
	require.NoError(t, err)
	assert.True(t, resp.Stock.Cerrado)
	assert.Equal(t, model.MovimientoCierre, resp.Movimiento.Tipo)
	assert.Equal(t, model.ProveedorSistema, resp.Movimiento.Proveedor)
	require.NotNil(t, resp.Movimiento.Notas)
	assert.Equal(t, "Cierre automático del día", *resp.Movimiento.Notas)
	// La foto del cierre refleja el stock final
	assert.Equal(t, 4, resp.Movimiento.TotalPaquetes())

	// Cerrar dos veces se rechaza
	_, err = env.svc.CerrarDia(ctx)
	assert.ErrorIs(t, err, model.ErrDiaYaCerrado)

	// El proveedor del sistema nunca entra a la lista de frecuentes
	assert.NotContains(t, env.ajustes.ajustes.ProveedoresFrecuentes, model.ProveedorSistema)
}

func TestCerrarDiaSinStockFalla(t *testing.T) {
	env := nuevoEntornoStock(t)
	_, err := env.svc.CerrarDia(context.Background())
	assert.ErrorIs(t, err, store.ErrNoEncontrado)
}

func TestReabrirDia(t *testing.T) {
	env := nuevoEntornoStock(t)
	ctx := context.Background()

	_, err := env.svc.ObtenerOCrearHoy(ctx)
	require.NoError(t, err)
	_, err = env.svc.CerrarDia(ctx)
	require.NoError(t, err)

	stock, err := env.svc.ReabrirDia(ctx, fechaPrueba)
	require.NoError(t, err)
	assert.False(t, stock.Cerrado)
	assert.True(t, stock.EsDiaActual)

	// Reabrir un día abierto se rechaza
	_, err = env.svc.ReabrirDia(ctx, fechaPrueba)
	assert.ErrorIs(t, err, model.ErrDiaNoCerrado)

	// Fecha inexistente propaga no-encontrado
	_, err = env.svc.ReabrirDia(ctx, "2026-01-01")
	assert.ErrorIs(t, err, store.ErrNoEncontrado)

	// Fecha malformada
	_, err = env.svc.ReabrirDia(ctx, "no-fecha")
	assert.ErrorIs(t, err, ErrFechaInvalida)
}

func TestActualizarStockTipoReemplazaElInventario(t *testing.T) {
	env := nuevoEntornoStock(t)
	ctx := context.Background()

	_, err := env.svc.RegistrarMovimiento(ctx, dto.RegistrarMovimientoRequest{
		Tipo:           "carga",
		Proveedor:      "Granja San Luis",
		PaquetesPardo:  inventarioDePrueba(t, 8, 2),
		PaquetesRosado: inventarioDePrueba(t, 7, 1),
	})
	require.NoError(t, err)

	stock, err := env.svc.ActualizarStockTipo(ctx, model.HuevoPardo, dto.ActualizarStockTipoRequest{
		Paquetes: inventarioDePrueba(t, 8, 9),
	})
	require.NoError(t, err)
	assert.Equal(t, 10, stock.TotalPaquetes) // 9 pardo + 1 rosado

	_, err = env.svc.ActualizarStockTipo(ctx, "azul", dto.ActualizarStockTipoRequest{})
	assert.ErrorIs(t, err, ErrTipoInvalido)
}

func TestEstadisticasHoy(t *testing.T) {
	env := nuevoEntornoStock(t)
	ctx := context.Background()

	for _, proveedor := range []string{"Granja San Luis", "Avícola Norte", "Granja San Luis"} {
		_, err := env.svc.RegistrarMovimiento(ctx, dto.RegistrarMovimientoRequest{
			Tipo:           "carga",
			Proveedor:      proveedor,
			PaquetesRosado: inventarioDePrueba(t, 7, 1),
		})
		require.NoError(t, err)
	}

	resp, err := env.svc.EstadisticasHoy(ctx)
	require.NoError(t, err)
	assert.Equal(t, fechaPrueba, resp.Fecha)
	assert.Equal(t, 3, resp.Movimientos)
	assert.Equal(t, 2, resp.Proveedores)
}

func TestConsultasDeRangoValidanFechas(t *testing.T) {
	env := nuevoEntornoStock(t)
	ctx := context.Background()

	_, err := env.svc.MovimientosEnRango(ctx, "2026-08-10", "2026-08-01")
	assert.ErrorIs(t, err, ErrFechaInvalida)

	_, err = env.svc.HistorialEnRango(ctx, "ayer", "2026-08-01")
	assert.ErrorIs(t, err, ErrFechaInvalida)

	_, err = env.svc.MovimientosPorFecha(ctx, "2026/08/01")
	assert.ErrorIs(t, err, ErrFechaInvalida)
}
