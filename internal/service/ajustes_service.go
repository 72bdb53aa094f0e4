package service

import (
	"context"
	"errors"

	"avicoladonnas/internal/dto"
	"avicoladonnas/internal/model"
	"avicoladonnas/internal/repository"
	"avicoladonnas/internal/store"

	"github.com/rs/zerolog/log"
)

type AjustesService interface {
	Obtener(ctx context.Context) (*model.Ajustes, error)
	Actualizar(ctx context.Context, req dto.ActualizarAjustesRequest) (*model.Ajustes, error)
}

type ajustesService struct {
	repo repository.AjustesRepository
}

func NewAjustesService(repo repository.AjustesRepository) AjustesService {
	return &ajustesService{repo: repo}
}

// Obtener devuelve la configuración vigente, aprovisionando la
// predeterminada en el primer arranque.
func (s *ajustesService) Obtener(ctx context.Context) (*model.Ajustes, error) {
	ajustes, err := s.repo.Obtener(ctx)
	if err == nil {
		return ajustes, nil
	}
	if !errors.Is(err, store.ErrNoEncontrado) {
		return nil, err
	}
	predeterminados := model.AjustesPredeterminados()
	if err := s.repo.Guardar(ctx, &predeterminados); err != nil {
		return nil, err
	}
	log.Info().Msg("ajustes predeterminados aprovisionados")
	return &predeterminados, nil
}

func (s *ajustesService) Actualizar(ctx context.Context, req dto.ActualizarAjustesRequest) (*model.Ajustes, error) {
	ajustes, err := s.Obtener(ctx)
	if err != nil {
		return nil, err
	}
	if req.NombreEmpresa != nil {
		ajustes.NombreEmpresa = *req.NombreEmpresa
	}
	if req.LogoEmpresa != nil {
		ajustes.LogoEmpresa = req.LogoEmpresa
	}
	if req.RespaldoAutomatico != nil {
		ajustes.RespaldoAutomatico = *req.RespaldoAutomatico
	}
	if req.TipoHuevoDefecto != nil {
		ajustes.TipoHuevoPredeterminado = model.TipoHuevo(*req.TipoHuevoDefecto)
	}
	if req.MostrarAmbosTipos != nil {
		ajustes.MostrarAmbosTipos = *req.MostrarAmbosTipos
	}
	ajustes.PrimerInicio = false
	if err := s.repo.Guardar(ctx, ajustes); err != nil {
		return nil, err
	}
	return ajustes, nil
}
