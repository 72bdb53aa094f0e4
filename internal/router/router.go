package router

import (
	"time"

	"avicoladonnas/internal/config"
	"avicoladonnas/internal/handler"
	"avicoladonnas/internal/infra"
	"avicoladonnas/internal/middleware"
	"avicoladonnas/internal/repository"
	"avicoladonnas/internal/service"
	"avicoladonnas/internal/store"
	"avicoladonnas/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DocumentStore ← DB
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, st store.DocumentStore, cb *infra.CircuitBreaker, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(cfg.RateLimitPerMinute, time.Minute))

	// ── Repositories ─────────────────────────────────────────────────────────
	stockRepo := repository.NewStockDiarioRepository(st)
	movimientoRepo := repository.NewMovimientoRepository(st)
	ajustesRepo := repository.NewAjustesRepository(st)

	// ── Services ─────────────────────────────────────────────────────────────
	stockSvc := service.NewStockService(stockRepo, movimientoRepo, ajustesRepo, dispatcher)
	reporteSvc := service.NewReporteService(stockRepo, movimientoRepo)
	ajustesSvc := service.NewAjustesService(ajustesRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	stockH := handler.NewStockHandler(stockSvc)
	movimientosH := handler.NewMovimientosHandler(stockSvc)
	reportesH := handler.NewReportesHandler(reporteSvc)
	ajustesH := handler.NewAjustesHandler(ajustesSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb, cb))

	v1 := r.Group("/v1")
	{
		stock := v1.Group("/stock")
		{
			stock.GET("/hoy", stockH.Hoy)
			stock.GET("/hoy/estadisticas", stockH.EstadisticasHoy)
			stock.PUT("/hoy/:tipo", stockH.ActualizarTipo)
			stock.GET("/historial", stockH.Historial)
			stock.GET("/:fecha", stockH.PorFecha)
		}

		v1.POST("/movimientos", movimientosH.Registrar)
		v1.GET("/movimientos", movimientosH.Listar)

		dias := v1.Group("/dias")
		{
			dias.POST("/cerrar", stockH.CerrarDia)
			dias.POST("/:fecha/reabrir", stockH.ReabrirDia)
		}

		v1.GET("/reportes", reportesH.Generar)

		v1.GET("/ajustes", ajustesH.Obtener)
		v1.PUT("/ajustes", ajustesH.Actualizar)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
