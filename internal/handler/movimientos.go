package handler

import (
	"net/http"

	"avicoladonnas/internal/apierror"
	"avicoladonnas/internal/dto"
	"avicoladonnas/internal/service"

	"github.com/gin-gonic/gin"
)

type MovimientosHandler struct{ svc service.StockService }

func NewMovimientosHandler(svc service.StockService) *MovimientosHandler {
	return &MovimientosHandler{svc: svc}
}

// Registrar godoc
// @Summary Registra un movimiento de inventario
// @Description Carga entrante, salida o ajuste sobre el día actual. Las
// @Description cargas requieren proveedor; los ajustes solo quedan como
// @Description evidencia y no modifican el stock.
// @Tags movimientos
// @Accept json
// @Produce json
// @Param body body dto.RegistrarMovimientoRequest true "Movimiento"
// @Success 201 {object} dto.MovimientoResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/movimientos [post]
func (h *MovimientosHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarMovimientoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarMovimiento(c.Request.Context(), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary Lista movimientos
// @Description Sin parámetros lista todos, con fecha filtra un día, con
// @Description desde y hasta filtra un rango.
// @Tags movimientos
// @Produce json
// @Param fecha query string false "Fecha exacta YYYY-MM-DD"
// @Param desde query string false "Fecha inicial YYYY-MM-DD"
// @Param hasta query string false "Fecha final YYYY-MM-DD"
// @Success 200 {object} dto.MovimientosResponse
// @Router /v1/movimientos [get]
func (h *MovimientosHandler) Listar(c *gin.Context) {
	fecha := c.Query("fecha")
	desde := c.Query("desde")
	hasta := c.Query("hasta")

	var (
		resp *dto.MovimientosResponse
		err  error
	)
	switch {
	case fecha != "" && (desde != "" || hasta != ""):
		c.JSON(http.StatusBadRequest, apierror.New("fecha y rango son excluyentes"))
		return
	case fecha != "":
		resp, err = h.svc.MovimientosPorFecha(c.Request.Context(), fecha)
	case desde != "" || hasta != "":
		resp, err = h.svc.MovimientosEnRango(c.Request.Context(), desde, hasta)
	default:
		resp, err = h.svc.Movimientos(c.Request.Context())
	}
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
