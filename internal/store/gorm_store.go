package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// documento is the single-table document layout: one row per record, payload
// in a JSONB column so field queries stay expressible in SQL.
type documento struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Coleccion string    `gorm:"not null;uniqueIndex:idx_documentos_coleccion_clave,priority:1"`
	Clave     string    `gorm:"not null;uniqueIndex:idx_documentos_coleccion_clave,priority:2"`
	Datos     []byte    `gorm:"type:jsonb;not null"`
}

func (documento) TableName() string { return "documentos" }

type gormStore struct{ db *gorm.DB }

// NewGormStore migrates the documents table and returns a Postgres-backed
// DocumentStore.
func NewGormStore(db *gorm.DB) (DocumentStore, error) {
	if err := db.AutoMigrate(&documento{}); err != nil {
		return nil, fmt.Errorf("migrar documentos: %w", err)
	}
	return &gormStore{db: db}, nil
}

func (s *gormStore) PutKeyed(ctx context.Context, coleccion, clave string, registro any) error {
	datos, err := json.Marshal(registro)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDecodificacion, err)
	}
	doc := documento{ID: uuid.New(), Coleccion: coleccion, Clave: clave, Datos: datos}
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "coleccion"}, {Name: "clave"}},
			DoUpdates: clause.Assignments(map[string]any{"datos": datos}),
		}).
		Create(&doc).Error
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNoDisponible, err)
	}
	return nil
}

func (s *gormStore) GetKeyed(ctx context.Context, coleccion, clave string) (Documento, error) {
	var doc documento
	err := s.db.WithContext(ctx).
		Where("coleccion = ? AND clave = ?", coleccion, clave).
		First(&doc).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return Documento{}, fmt.Errorf("%w: %s/%s", ErrNoEncontrado, coleccion, clave)
	case err != nil:
		return Documento{}, fmt.Errorf("%w: %v", ErrNoDisponible, err)
	}
	return Documento{Clave: doc.Clave, Datos: doc.Datos}, nil
}

func (s *gormStore) AppendUnkeyed(ctx context.Context, coleccion string, registro any) (string, error) {
	datos, err := json.Marshal(registro)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecodificacion, err)
	}
	// Auto-keyed collections share the (coleccion, clave) unique index, so
	// the generated key doubles as the returned document id.
	clave := uuid.NewString()
	doc := documento{ID: uuid.New(), Coleccion: coleccion, Clave: clave, Datos: datos}
	if err := s.db.WithContext(ctx).Create(&doc).Error; err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoDisponible, err)
	}
	return clave, nil
}

func (s *gormStore) QueryRange(ctx context.Context, coleccion, campo, desde, hasta, ordenarPor string) ([]Documento, error) {
	var docs []documento
	err := s.db.WithContext(ctx).
		Where("coleccion = ?", coleccion).
		Where("datos->>? >= ? AND datos->>? <= ?", campo, desde, campo, hasta).
		Order(gorm.Expr("datos->>?", ordenarPor)).
		Find(&docs).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoDisponible, err)
	}
	return convertir(docs), nil
}

func (s *gormStore) QueryEquals(ctx context.Context, coleccion, campo, valor string) ([]Documento, error) {
	var docs []documento
	err := s.db.WithContext(ctx).
		Where("coleccion = ?", coleccion).
		Where("datos->>? = ?", campo, valor).
		Find(&docs).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoDisponible, err)
	}
	return convertir(docs), nil
}

func (s *gormStore) QueryAll(ctx context.Context, coleccion, ordenarPor string, descendente bool) ([]Documento, error) {
	orden := gorm.Expr("datos->>?", ordenarPor)
	if descendente {
		orden = gorm.Expr("datos->>? DESC", ordenarPor)
	}
	var docs []documento
	err := s.db.WithContext(ctx).
		Where("coleccion = ?", coleccion).
		Order(orden).
		Find(&docs).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoDisponible, err)
	}
	return convertir(docs), nil
}

func convertir(docs []documento) []Documento {
	resultado := make([]Documento, 0, len(docs))
	for _, d := range docs {
		resultado = append(resultado, Documento{Clave: d.Clave, Datos: d.Datos})
	}
	return resultado
}
