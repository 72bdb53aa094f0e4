package handler

import (
	"errors"
	"net/http"

	"avicoladonnas/internal/apierror"
	"avicoladonnas/internal/model"
	"avicoladonnas/internal/service"
	"avicoladonnas/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// responderError maps domain errors onto HTTP statuses. Unknown errors
// become a generic 500 so internals never leak to clients.
func responderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNoEncontrado):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case errors.Is(err, model.ErrEntradaInvalida),
		errors.Is(err, service.ErrTipoInvalido),
		errors.Is(err, service.ErrFechaInvalida),
		errors.Is(err, service.ErrProveedorRequerido):
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	case errors.Is(err, model.ErrDiaYaCerrado), errors.Is(err, model.ErrDiaNoCerrado):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	case errors.Is(err, store.ErrNoDisponible):
		c.JSON(http.StatusServiceUnavailable, apierror.New("Almacenamiento no disponible"))
	default:
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno"))
	}
}
