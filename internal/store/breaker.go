package store

import (
	"context"
	"errors"
	"fmt"

	"avicoladonnas/internal/infra"
)

// conBreaker wraps a DocumentStore with a circuit breaker so that a dead
// backend fast-fails as ErrNoDisponible instead of stacking up timeouts.
type conBreaker struct {
	interno DocumentStore
	cb      *infra.CircuitBreaker
}

// ConBreaker decorates a store with the given circuit breaker.
func ConBreaker(interno DocumentStore, cb *infra.CircuitBreaker) DocumentStore {
	return &conBreaker{interno: interno, cb: cb}
}

// ejecutar runs fn through the breaker. ErrNoEncontrado and
// ErrDecodificacion are business outcomes, not backend failures — they must
// not trip the breaker open.
func (s *conBreaker) ejecutar(fn func() error) error {
	err := s.cb.Execute(func() error {
		err := fn()
		if errors.Is(err, ErrNoEncontrado) || errors.Is(err, ErrDecodificacion) {
			return nil
		}
		return err
	})
	if errors.Is(err, infra.ErrCircuitOpen) {
		return fmt.Errorf("%w: %v", ErrNoDisponible, err)
	}
	return err
}

func (s *conBreaker) PutKeyed(ctx context.Context, coleccion, clave string, registro any) error {
	var errInterno error
	err := s.ejecutar(func() error {
		errInterno = s.interno.PutKeyed(ctx, coleccion, clave, registro)
		return errInterno
	})
	if err != nil {
		return err
	}
	return errInterno
}

func (s *conBreaker) GetKeyed(ctx context.Context, coleccion, clave string) (Documento, error) {
	var doc Documento
	var errInterno error
	err := s.ejecutar(func() error {
		doc, errInterno = s.interno.GetKeyed(ctx, coleccion, clave)
		return errInterno
	})
	if err != nil {
		return Documento{}, err
	}
	// Business outcomes swallowed by ejecutar still reach the caller.
	return doc, errInterno
}

func (s *conBreaker) AppendUnkeyed(ctx context.Context, coleccion string, registro any) (string, error) {
	var clave string
	var errInterno error
	err := s.ejecutar(func() error {
		clave, errInterno = s.interno.AppendUnkeyed(ctx, coleccion, registro)
		return errInterno
	})
	if err != nil {
		return "", err
	}
	return clave, errInterno
}

func (s *conBreaker) QueryRange(ctx context.Context, coleccion, campo, desde, hasta, ordenarPor string) ([]Documento, error) {
	var docs []Documento
	err := s.ejecutar(func() error {
		var errInterno error
		docs, errInterno = s.interno.QueryRange(ctx, coleccion, campo, desde, hasta, ordenarPor)
		return errInterno
	})
	return docs, err
}

func (s *conBreaker) QueryEquals(ctx context.Context, coleccion, campo, valor string) ([]Documento, error) {
	var docs []Documento
	err := s.ejecutar(func() error {
		var errInterno error
		docs, errInterno = s.interno.QueryEquals(ctx, coleccion, campo, valor)
		return errInterno
	})
	return docs, err
}

func (s *conBreaker) QueryAll(ctx context.Context, coleccion, ordenarPor string, descendente bool) ([]Documento, error) {
	var docs []Documento
	err := s.ejecutar(func() error {
		var errInterno error
		docs, errInterno = s.interno.QueryAll(ctx, coleccion, ordenarPor, descendente)
		return errInterno
	})
	return docs, err
}
