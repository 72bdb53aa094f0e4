//go:build integration

package router

// Integration tests against real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./internal/router/... -v

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"avicoladonnas/internal/config"
	"avicoladonnas/internal/dto"
	"avicoladonnas/internal/infra"
	"avicoladonnas/internal/model"
	"avicoladonnas/internal/repository"
	"avicoladonnas/internal/store"
	"avicoladonnas/internal/worker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

func cargaDePrueba(cantidad int) map[string]any {
	kg7 := make([]int, model.SubDivisiones)
	kg7[0] = cantidad
	return map[string]any{"kg7": kg7}
}

type testEnv struct {
	server  *httptest.Server
	st      store.DocumentStore
	ajustes repository.AjustesRepository
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("avicola_test"),
		tcPostgres.WithUsername("avicola"),
		tcPostgres.WithPassword("avicola"),
		testcontainers.WithWaitStrategy(
			tcPostgres.BasicWaitStrategies()...,
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:               8000,
		Env:                "test",
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
		WorkerPoolSize:     1,
		RateLimitPerMinute: 10000,
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	gormStore, err := store.NewGormStore(db)
	require.NoError(t, err)
	cb := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	st := store.ConBreaker(gormStore, cb)

	workerCtx, cancel := context.WithCancel(ctx)
	t.Cleanup(cancel)

	dispatcher := worker.NewDispatcher(rdb)
	ajustesRepo := repository.NewAjustesRepository(st)
	worker.StartWorkerPool(workerCtx, rdb, worker.NewRespaldoWorker(st, ajustesRepo), cfg.WorkerPoolSize)

	r := New(cfg, db, rdb, st, cb, dispatcher)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &testEnv{server: srv, st: st, ajustes: ajustesRepo}
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestIntegracionCicloCompleto(t *testing.T) {
	env := setupTestEnv(t)

	// Salud
	resp := do(t, env.server, "GET", "/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// El stock de hoy nace vacío
	resp = do(t, env.server, "GET", "/v1/stock/hoy", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var stock model.StockDiario
	decodeJSON(t, resp, &stock)
	assert.Equal(t, 0, stock.TotalPaquetes)
	assert.False(t, stock.Cerrado)

	// Carga entrante: 5 paquetes de 7 kg
	resp = do(t, env.server, "POST", "/v1/movimientos", jsonBody(t, map[string]any{
		"tipo":            "carga",
		"proveedor":       "Granja San Luis",
		"paquetes_rosado": cargaDePrueba(5),
	}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var movResp dto.MovimientoResponse
	decodeJSON(t, resp, &movResp)
	assert.Equal(t, 5, movResp.Stock.TotalPaquetes)
	assert.Equal(t, 35.0, movResp.Stock.PesoTotal)
	assert.NotEmpty(t, movResp.Movimiento.ID)

	// Salida que excede el stock: el faltante se informa, nada queda negativo
	resp = do(t, env.server, "POST", "/v1/movimientos", jsonBody(t, map[string]any{
		"tipo":            "salida",
		"paquetes_rosado": cargaDePrueba(8),
	}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decodeJSON(t, resp, &movResp)
	assert.Equal(t, 3, movResp.Faltante)
	assert.Equal(t, 0, movResp.Stock.TotalPaquetes)

	// El proveedor quedó aprendido
	resp = do(t, env.server, "GET", "/v1/ajustes", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var ajustes model.Ajustes
	decodeJSON(t, resp, &ajustes)
	assert.Contains(t, ajustes.ProveedoresFrecuentes, "Granja San Luis")

	// Cierre del día: movimiento de cierre a nombre del sistema
	resp = do(t, env.server, "POST", "/v1/dias/cerrar", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeJSON(t, resp, &movResp)
	assert.True(t, movResp.Stock.Cerrado)
	assert.Equal(t, model.ProveedorSistema, movResp.Movimiento.Proveedor)

	// Cerrar dos veces es conflicto
	resp = do(t, env.server, "POST", "/v1/dias/cerrar", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// El respaldo automático corre en segundo plano y sella la fecha
	assert.Eventually(t, func() bool {
		sellado, err := env.ajustes.Obtener(context.Background())
		return err == nil && sellado.UltimoRespaldo != nil
	}, 15*time.Second, 200*time.Millisecond)

	// Reapertura para correcciones
	fecha := movResp.Stock.Fecha
	resp = do(t, env.server, "POST", "/v1/dias/"+fecha+"/reabrir", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeJSON(t, resp, &stock)
	assert.False(t, stock.Cerrado)
	assert.True(t, stock.EsDiaActual)

	// Los movimientos del día quedaron todos registrados
	resp = do(t, env.server, "GET", "/v1/movimientos?fecha="+fecha, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var movimientos dto.MovimientosResponse
	decodeJSON(t, resp, &movimientos)
	assert.Len(t, movimientos.Movimientos, 3) // carga, salida, cierre

	// Reporte del día
	resp = do(t, env.server, "GET", "/v1/reportes?tipo=daily&desde="+fecha+"&hasta="+fecha, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var reporte dto.ReporteResponse
	decodeJSON(t, resp, &reporte)
	assert.Equal(t, 1, reporte.DiasEnRango)
	require.Len(t, reporte.ProveedoresTop, 1)
	assert.Equal(t, "Granja San Luis", reporte.ProveedoresTop[0].Nombre)
}

func TestIntegracionValidaciones(t *testing.T) {
	env := setupTestEnv(t)

	// Carga sin proveedor
	resp := do(t, env.server, "POST", "/v1/movimientos", jsonBody(t, map[string]any{
		"tipo":            "carga",
		"paquetes_rosado": cargaDePrueba(1),
	}))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Tipo de movimiento desconocido
	resp = do(t, env.server, "POST", "/v1/movimientos", jsonBody(t, map[string]any{
		"tipo": "prestamo",
	}))
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	resp.Body.Close()

	// Fecha inexistente
	resp = do(t, env.server, "GET", "/v1/stock/2001-01-01", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// Fecha malformada
	resp = do(t, env.server, "GET", "/v1/stock/ayer", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}
