package repository

import (
	"context"

	"github.com/omegapos/omega-sync-api/internal/domain/schema"
)

// LoadMode modo de carga del Bulk Loader.
type LoadMode string

const (
	// ClearOnly borra las filas dentro del alcance y no inserta nada.
	ClearOnly LoadMode = "clear_only"
	// ChunkInsert inserta sin borrar; para datasets grandes divididos en varias llamadas.
	ChunkInsert LoadMode = "chunk_insert"
	// ClearAndReplace borra e inserta dentro de la misma transacción.
	ClearAndReplace LoadMode = "clear_and_insert"
)

// LoadResult conteos de una operación de carga.
type LoadResult struct {
	Inserted int
	Deleted  int
}

// BulkRepository define el puerto de carga masiva sobre una tabla lógica (DIP).
// Cada llamada ejecuta dentro de una única transacción: ninguna otra transacción
// observa la tabla sin datos viejos ni nuevos.
type BulkRepository interface {
	Load(ctx context.Context, def schema.Definition, mode LoadMode, rows [][]any) (LoadResult, error)
}
