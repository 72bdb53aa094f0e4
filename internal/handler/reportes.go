package handler

import (
	"net/http"

	"avicoladonnas/internal/apierror"
	"avicoladonnas/internal/model"
	"avicoladonnas/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportesHandler struct{ svc service.ReporteService }

func NewReportesHandler(svc service.ReporteService) *ReportesHandler {
	return &ReportesHandler{svc: svc}
}

// Generar godoc
// @Summary Genera un reporte analítico de un rango de fechas
// @Description Totales, tendencias, ranking de proveedores, distribución por
// @Description peso y conclusiones en lenguaje natural.
// @Tags reportes
// @Produce json
// @Param tipo query string true "daily, weekly, monthly, supplier o eggType"
// @Param desde query string true "Fecha inicial YYYY-MM-DD"
// @Param hasta query string true "Fecha final YYYY-MM-DD"
// @Success 200 {object} dto.ReporteResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/reportes [get]
func (h *ReportesHandler) Generar(c *gin.Context) {
	tipo := model.TipoReporte(c.Query("tipo"))
	if tipo == "" {
		c.JSON(http.StatusBadRequest, apierror.New("tipo requerido"))
		return
	}
	resp, err := h.svc.GenerarReporte(c.Request.Context(), tipo, c.Query("desde"), c.Query("hasta"))
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
