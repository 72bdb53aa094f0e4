package worker

// respaldo_worker.go
// Processes backup jobs from QueueRespaldo: copies every daily stock and
// movement document into the "respaldos" collection under a timestamped key,
// then stamps the backup date in the settings document.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"avicoladonnas/internal/repository"
	"avicoladonnas/internal/store"

	"github.com/rs/zerolog/log"
)

const ColeccionRespaldos = "respaldos"

// RespaldoPayload is the job envelope sent to QueueRespaldo.
type RespaldoPayload struct {
	Fecha string `json:"fecha"`
}

type RespaldoWorker struct {
	st      store.DocumentStore
	ajustes repository.AjustesRepository
}

func NewRespaldoWorker(st store.DocumentStore, ajustes repository.AjustesRepository) *RespaldoWorker {
	return &RespaldoWorker{st: st, ajustes: ajustes}
}

// Process copies the current state of both collections into the backup
// collection. The copy keeps the raw payloads untouched so a backup survives
// model changes.
func (w *RespaldoWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload RespaldoPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("respaldo_worker: invalid payload")
		return
	}

	ahora := time.Now()
	sello := ahora.Format("20060102T150405")
	copiados := 0
	for _, coleccion := range []string{repository.ColeccionStocks, repository.ColeccionMovimientos} {
		n, err := w.copiarColeccion(ctx, coleccion, sello)
		if err != nil {
			log.Error().Err(err).Str("coleccion", coleccion).Msg("respaldo_worker: backup failed")
			return
		}
		copiados += n
	}

	if err := w.sellarRespaldo(ctx, ahora); err != nil {
		log.Warn().Err(err).Msg("respaldo_worker: could not stamp backup date")
	}
	log.Info().Str("sello", sello).Str("fecha", payload.Fecha).Int("documentos", copiados).
		Msg("respaldo_worker: backup completed")
}

func (w *RespaldoWorker) copiarColeccion(ctx context.Context, coleccion, sello string) (int, error) {
	docs, err := w.st.QueryAll(ctx, coleccion, "date", false)
	if err != nil {
		return 0, err
	}
	for _, doc := range docs {
		clave := fmt.Sprintf("%s/%s/%s", sello, coleccion, doc.Clave)
		if err := w.st.PutKeyed(ctx, ColeccionRespaldos, clave, json.RawMessage(doc.Datos)); err != nil {
			return 0, err
		}
	}
	return len(docs), nil
}

func (w *RespaldoWorker) sellarRespaldo(ctx context.Context, ahora time.Time) error {
	ajustes, err := w.ajustes.Obtener(ctx)
	if errors.Is(err, store.ErrNoEncontrado) {
		return nil
	}
	if err != nil {
		return err
	}
	ajustes.UltimoRespaldo = &ahora
	return w.ajustes.Guardar(ctx, ajustes)
}
