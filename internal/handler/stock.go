package handler

import (
	"net/http"

	"avicoladonnas/internal/apierror"
	"avicoladonnas/internal/dto"
	"avicoladonnas/internal/model"
	"avicoladonnas/internal/service"

	"github.com/gin-gonic/gin"
)

type StockHandler struct{ svc service.StockService }

func NewStockHandler(svc service.StockService) *StockHandler {
	return &StockHandler{svc: svc}
}

// Hoy godoc
// @Summary Stock del día actual
// @Description Devuelve el stock de hoy, creándolo vacío si aún no existe
// @Tags stock
// @Produce json
// @Success 200 {object} model.StockDiario
// @Router /v1/stock/hoy [get]
func (h *StockHandler) Hoy(c *gin.Context) {
	stock, err := h.svc.ObtenerOCrearHoy(c.Request.Context())
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, stock)
}

// PorFecha godoc
// @Summary Stock de una fecha
// @Tags stock
// @Produce json
// @Param fecha path string true "Fecha YYYY-MM-DD"
// @Success 200 {object} model.StockDiario
// @Failure 404 {object} apierror.APIError
// @Router /v1/stock/{fecha} [get]
func (h *StockHandler) PorFecha(c *gin.Context) {
	stock, err := h.svc.StockPorFecha(c.Request.Context(), c.Param("fecha"))
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, stock)
}

// Historial godoc
// @Summary Historial de stocks diarios
// @Description Todos los días registrados en orden ascendente. Con desde y
// @Description hasta se limita al rango.
// @Tags stock
// @Produce json
// @Param desde query string false "Fecha inicial YYYY-MM-DD"
// @Param hasta query string false "Fecha final YYYY-MM-DD"
// @Success 200 {object} dto.HistorialResponse
// @Router /v1/stock/historial [get]
func (h *StockHandler) Historial(c *gin.Context) {
	desde := c.Query("desde")
	hasta := c.Query("hasta")

	var (
		resp *dto.HistorialResponse
		err  error
	)
	if desde != "" || hasta != "" {
		resp, err = h.svc.HistorialEnRango(c.Request.Context(), desde, hasta)
	} else {
		resp, err = h.svc.Historial(c.Request.Context())
	}
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ActualizarTipo godoc
// @Summary Reemplaza el inventario de una variante del día actual
// @Tags stock
// @Accept json
// @Produce json
// @Param tipo path string true "Variante: rosado o pardo"
// @Param body body dto.ActualizarStockTipoRequest true "Inventario completo"
// @Success 200 {object} model.StockDiario
// @Failure 400 {object} apierror.APIError
// @Router /v1/stock/hoy/{tipo} [put]
func (h *StockHandler) ActualizarTipo(c *gin.Context) {
	huevo := model.TipoHuevo(c.Param("tipo"))
	if !huevo.Valido() {
		c.JSON(http.StatusBadRequest, apierror.New("Tipo de huevo invalido"))
		return
	}
	var req dto.ActualizarStockTipoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	stock, err := h.svc.ActualizarStockTipo(c.Request.Context(), huevo, req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, stock)
}

// EstadisticasHoy godoc
// @Summary Resumen de actividad del día actual
// @Tags stock
// @Produce json
// @Success 200 {object} dto.EstadisticasDiaResponse
// @Router /v1/stock/hoy/estadisticas [get]
func (h *StockHandler) EstadisticasHoy(c *gin.Context) {
	resp, err := h.svc.EstadisticasHoy(c.Request.Context())
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CerrarDia godoc
// @Summary Cierra el día actual
// @Description Congela el stock de hoy y registra el movimiento de cierre
// @Tags dias
// @Produce json
// @Success 200 {object} dto.MovimientoResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/dias/cerrar [post]
func (h *StockHandler) CerrarDia(c *gin.Context) {
	resp, err := h.svc.CerrarDia(c.Request.Context())
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ReabrirDia godoc
// @Summary Reabre un día cerrado para correcciones
// @Tags dias
// @Produce json
// @Param fecha path string true "Fecha YYYY-MM-DD"
// @Success 200 {object} model.StockDiario
// @Failure 409 {object} apierror.APIError
// @Router /v1/dias/{fecha}/reabrir [post]
func (h *StockHandler) ReabrirDia(c *gin.Context) {
	stock, err := h.svc.ReabrirDia(c.Request.Context(), c.Param("fecha"))
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, stock)
}
