package handler

import (
	"net/http"

	"avicoladonnas/internal/dto"
	"avicoladonnas/internal/service"

	"github.com/gin-gonic/gin"
)

type AjustesHandler struct{ svc service.AjustesService }

func NewAjustesHandler(svc service.AjustesService) *AjustesHandler {
	return &AjustesHandler{svc: svc}
}

// Obtener godoc
// @Summary Configuración de la empresa
// @Tags ajustes
// @Produce json
// @Success 200 {object} model.Ajustes
// @Router /v1/ajustes [get]
func (h *AjustesHandler) Obtener(c *gin.Context) {
	ajustes, err := h.svc.Obtener(c.Request.Context())
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, ajustes)
}

// Actualizar godoc
// @Summary Actualiza la configuración de la empresa
// @Tags ajustes
// @Accept json
// @Produce json
// @Param body body dto.ActualizarAjustesRequest true "Campos a modificar"
// @Success 200 {object} model.Ajustes
// @Router /v1/ajustes [put]
func (h *AjustesHandler) Actualizar(c *gin.Context) {
	var req dto.ActualizarAjustesRequest
	if !bindAndValidate(c, &req) {
		return
	}
	ajustes, err := h.svc.Actualizar(c.Request.Context(), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, ajustes)
}
