package repository

import (
	"context"
	"encoding/json"
	"sort"

	"avicoladonnas/internal/model"
	"avicoladonnas/internal/store"

	"github.com/rs/zerolog/log"
)

const ColeccionMovimientos = "cargo_entries"

// MovimientoRepository is append-only: movements are immutable, so the
// interface offers no update or delete.
type MovimientoRepository interface {
	// Crear appends the movement and fills in its generated id.
	Crear(ctx context.Context, mov *model.Movimiento) error
	// PorFecha returns one day's movements, newest first.
	PorFecha(ctx context.Context, fecha string) ([]model.Movimiento, int, error)
	// PorRango returns movements with date in [desde, hasta], newest first.
	PorRango(ctx context.Context, desde, hasta string) ([]model.Movimiento, int, error)
	// Todos returns the full history, newest first.
	Todos(ctx context.Context) ([]model.Movimiento, int, error)
}

type movimientoRepo struct{ st store.DocumentStore }

func NewMovimientoRepository(st store.DocumentStore) MovimientoRepository {
	return &movimientoRepo{st: st}
}

func (r *movimientoRepo) Crear(ctx context.Context, mov *model.Movimiento) error {
	id, err := r.st.AppendUnkeyed(ctx, ColeccionMovimientos, mov)
	if err != nil {
		return err
	}
	mov.ID = id
	return nil
}

func (r *movimientoRepo) PorFecha(ctx context.Context, fecha string) ([]model.Movimiento, int, error) {
	docs, err := r.st.QueryEquals(ctx, ColeccionMovimientos, "date", fecha)
	if err != nil {
		return nil, 0, err
	}
	return decodificarMovimientos(docs)
}

func (r *movimientoRepo) PorRango(ctx context.Context, desde, hasta string) ([]model.Movimiento, int, error) {
	docs, err := r.st.QueryRange(ctx, ColeccionMovimientos, "date", desde, hasta, "date")
	if err != nil {
		return nil, 0, err
	}
	return decodificarMovimientos(docs)
}

func (r *movimientoRepo) Todos(ctx context.Context) ([]model.Movimiento, int, error) {
	docs, err := r.st.QueryAll(ctx, ColeccionMovimientos, "timestamp", true)
	if err != nil {
		return nil, 0, err
	}
	return decodificarMovimientos(docs)
}

// decodificarMovimientos applies skip-and-log and orders by timestamp
// descending (most recent first).
func decodificarMovimientos(docs []store.Documento) ([]model.Movimiento, int, error) {
	movimientos := make([]model.Movimiento, 0, len(docs))
	omitidos := 0
	for _, doc := range docs {
		var mov model.Movimiento
		if err := json.Unmarshal(doc.Datos, &mov); err != nil {
			omitidos++
			log.Warn().Str("clave", doc.Clave).Err(err).Msg("movimiento ilegible, omitido")
			continue
		}
		if mov.ID == "" {
			mov.ID = doc.Clave
		}
		movimientos = append(movimientos, mov)
	}
	sort.Slice(movimientos, func(i, j int) bool {
		return movimientos[i].Timestamp.After(movimientos[j].Timestamp)
	})
	return movimientos, omitidos, nil
}
