// Package repository holds the typed data access layer over the document
// store. It owns the decode policy for historical records: a record that no
// longer parses is logged and dropped from the result set — one corrupt day
// must never block today's workflow — and the dropped count is returned so
// callers can surface it.
package repository

import (
	"context"
	"encoding/json"
	"sort"

	"avicoladonnas/internal/model"
	"avicoladonnas/internal/store"

	"github.com/rs/zerolog/log"
)

const ColeccionStocks = "daily_stocks"

type StockDiarioRepository interface {
	// Guardar upserts the aggregate under its date key.
	Guardar(ctx context.Context, stock *model.StockDiario) error
	// PorFecha loads one day; store.ErrNoEncontrado when the day is empty.
	PorFecha(ctx context.Context, fecha string) (*model.StockDiario, error)
	// PorRango returns days in [desde, hasta] ascending by date, plus the
	// count of records skipped because they no longer decode.
	PorRango(ctx context.Context, desde, hasta string) ([]model.StockDiario, int, error)
	// Historial returns every day ascending by date, plus skipped count.
	Historial(ctx context.Context) ([]model.StockDiario, int, error)
}

type stockDiarioRepo struct{ st store.DocumentStore }

func NewStockDiarioRepository(st store.DocumentStore) StockDiarioRepository {
	return &stockDiarioRepo{st: st}
}

func (r *stockDiarioRepo) Guardar(ctx context.Context, stock *model.StockDiario) error {
	return r.st.PutKeyed(ctx, ColeccionStocks, stock.Fecha, stock)
}

func (r *stockDiarioRepo) PorFecha(ctx context.Context, fecha string) (*model.StockDiario, error) {
	doc, err := r.st.GetKeyed(ctx, ColeccionStocks, fecha)
	if err != nil {
		return nil, err
	}
	var stock model.StockDiario
	if err := json.Unmarshal(doc.Datos, &stock); err != nil {
		return nil, store.ErrDecodificacion
	}
	return &stock, nil
}

func (r *stockDiarioRepo) PorRango(ctx context.Context, desde, hasta string) ([]model.StockDiario, int, error) {
	docs, err := r.st.QueryRange(ctx, ColeccionStocks, "date", desde, hasta, "date")
	if err != nil {
		return nil, 0, err
	}
	return decodificarStocks(docs)
}

func (r *stockDiarioRepo) Historial(ctx context.Context) ([]model.StockDiario, int, error) {
	docs, err := r.st.QueryAll(ctx, ColeccionStocks, "date", false)
	if err != nil {
		return nil, 0, err
	}
	return decodificarStocks(docs)
}

// decodificarStocks applies the skip-and-log policy and guarantees ascending
// date order even if the backend returned documents unsorted.
func decodificarStocks(docs []store.Documento) ([]model.StockDiario, int, error) {
	stocks := make([]model.StockDiario, 0, len(docs))
	omitidos := 0
	for _, doc := range docs {
		var stock model.StockDiario
		if err := json.Unmarshal(doc.Datos, &stock); err != nil {
			omitidos++
			log.Warn().Str("clave", doc.Clave).Err(err).Msg("stock diario ilegible, omitido")
			continue
		}
		stocks = append(stocks, stock)
	}
	sort.Slice(stocks, func(i, j int) bool { return stocks[i].Fecha < stocks[j].Fecha })
	return stocks, omitidos, nil
}
