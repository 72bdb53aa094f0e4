// Package store defines the keyed document persistence collaborator the
// inventory core talks to, plus its Postgres implementation. The interface
// mirrors a document database: collections of JSON records addressed either
// by an explicit key (daily stocks by date, settings) or auto-keyed
// (movement history), with field-based range queries.
package store

import (
	"context"
	"errors"
)

// Error kinds. Repositories and services branch on these with errors.Is.
var (
	// ErrNoDisponible: the persistence backend could not be reached (also
	// returned by the circuit breaker while open). Write failures carrying
	// it propagate to the caller.
	ErrNoDisponible = errors.New("almacenamiento no disponible")
	// ErrNoEncontrado: no record exists for the requested key. For daily
	// stocks this means "empty day", not a fatal condition.
	ErrNoEncontrado = errors.New("registro no encontrado")
	// ErrDecodificacion: a stored record could not be parsed into the
	// expected shape. Range scans skip such records instead of failing.
	ErrDecodificacion = errors.New("registro ilegible")
)

// Documento is one raw record as stored: its key within the collection and
// its JSON payload. Decoding into domain types happens in the repositories
// so that the skip-and-log policy lives in exactly one layer.
type Documento struct {
	Clave string
	Datos []byte
}

// DocumentStore is the persistence collaborator contract.
type DocumentStore interface {
	// PutKeyed upserts a record under an explicit key.
	PutKeyed(ctx context.Context, coleccion, clave string, registro any) error
	// GetKeyed loads one record by key; ErrNoEncontrado when absent.
	GetKeyed(ctx context.Context, coleccion, clave string) (Documento, error)
	// AppendUnkeyed inserts a record under a generated key and returns it.
	AppendUnkeyed(ctx context.Context, coleccion string, registro any) (string, error)
	// QueryRange returns records whose JSON field lies in [desde, hasta],
	// ordered ascending by ordenarPor.
	QueryRange(ctx context.Context, coleccion, campo, desde, hasta, ordenarPor string) ([]Documento, error)
	// QueryEquals returns records whose JSON field equals valor.
	QueryEquals(ctx context.Context, coleccion, campo, valor string) ([]Documento, error)
	// QueryAll returns the whole collection ordered by ordenarPor.
	QueryAll(ctx context.Context, coleccion, ordenarPor string, descendente bool) ([]Documento, error)
}
