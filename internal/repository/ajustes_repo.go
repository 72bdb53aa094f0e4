package repository

import (
	"context"
	"encoding/json"

	"avicoladonnas/internal/model"
	"avicoladonnas/internal/store"
)

const (
	ColeccionAjustes = "app_settings"
	ClaveAjustes     = "main"
)

type AjustesRepository interface {
	Obtener(ctx context.Context) (*model.Ajustes, error)
	Guardar(ctx context.Context, ajustes *model.Ajustes) error
}

type ajustesRepo struct{ st store.DocumentStore }

func NewAjustesRepository(st store.DocumentStore) AjustesRepository {
	return &ajustesRepo{st: st}
}

func (r *ajustesRepo) Obtener(ctx context.Context) (*model.Ajustes, error) {
	doc, err := r.st.GetKeyed(ctx, ColeccionAjustes, ClaveAjustes)
	if err != nil {
		return nil, err
	}
	var ajustes model.Ajustes
	if err := json.Unmarshal(doc.Datos, &ajustes); err != nil {
		return nil, store.ErrDecodificacion
	}
	return &ajustes, nil
}

func (r *ajustesRepo) Guardar(ctx context.Context, ajustes *model.Ajustes) error {
	return r.st.PutKeyed(ctx, ColeccionAjustes, ClaveAjustes, ajustes)
}
