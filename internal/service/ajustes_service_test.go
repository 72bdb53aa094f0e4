package service

import (
	"context"
	"testing"

	"avicoladonnas/internal/dto"
	"avicoladonnas/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObtenerAprovisionaLosPredeterminados(t *testing.T) {
	repo := &stubAjustesRepo{}
	svc := NewAjustesService(repo)

	ajustes, err := svc.Obtener(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Avícola Donna's", ajustes.NombreEmpresa)
	assert.True(t, ajustes.PrimerInicio)
	assert.True(t, ajustes.RespaldoAutomatico)
	assert.Equal(t, model.HuevoRosado, ajustes.TipoHuevoPredeterminado)

	// El documento quedó persistido, la segunda lectura no reescribe
	require.NotNil(t, repo.ajustes)
	otra, err := svc.Obtener(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ajustes.NombreEmpresa, otra.NombreEmpresa)
}

func TestActualizarAplicaSoloLosCamposEnviados(t *testing.T) {
	repo := &stubAjustesRepo{}
	svc := NewAjustesService(repo)

	nombre := "Distribuidora El Sol"
	respaldo := false
	ajustes, err := svc.Actualizar(context.Background(), dto.ActualizarAjustesRequest{
		NombreEmpresa:      &nombre,
		RespaldoAutomatico: &respaldo,
	})
	require.NoError(t, err)
	assert.Equal(t, "Distribuidora El Sol", ajustes.NombreEmpresa)
	assert.False(t, ajustes.RespaldoAutomatico)
	assert.False(t, ajustes.PrimerInicio)
	// Lo no enviado conserva el valor previo
	assert.Equal(t, model.HuevoRosado, ajustes.TipoHuevoPredeterminado)

	tipo := "pardo"
	ajustes, err = svc.Actualizar(context.Background(), dto.ActualizarAjustesRequest{
		TipoHuevoDefecto: &tipo,
	})
	require.NoError(t, err)
	assert.Equal(t, model.HuevoPardo, ajustes.TipoHuevoPredeterminado)
	assert.Equal(t, "Distribuidora El Sol", ajustes.NombreEmpresa)
}

func TestAprenderProveedorIgnoraReservadosYDuplicados(t *testing.T) {
	ajustes := model.AjustesPredeterminados()

	assert.True(t, ajustes.AprenderProveedor("Granja A"))
	assert.False(t, ajustes.AprenderProveedor("Granja A"))
	assert.False(t, ajustes.AprenderProveedor(""))
	assert.False(t, ajustes.AprenderProveedor(model.ProveedorSistema))
	assert.True(t, ajustes.AprenderProveedor("Granja B"))

	assert.Equal(t, []string{"Granja A", "Granja B"}, ajustes.ProveedoresFrecuentes)
}
