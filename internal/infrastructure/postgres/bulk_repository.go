package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/omegapos/omega-sync-api/internal/domain/repository"
	"github.com/omegapos/omega-sync-api/internal/domain/schema"
)

var _ repository.BulkRepository = (*BulkRepo)(nil)

// DefaultBatchSize filas por sentencia INSERT cuando no se configura otro valor.
const DefaultBatchSize = 1000

// BulkRepo implementación del puerto BulkRepository sobre PostgreSQL.
//
// Toda la operación (borrado + inserción por lotes) corre dentro de una única
// transacción: los límites de lote acotan el costo por sentencia, no la
// atomicidad. Un advisory lock transaccional por tabla serializa cargas
// concurrentes contra la misma entidad, evitando que dos clear-and-replace
// simultáneos entrelacen sus payloads.
type BulkRepo struct {
	pool      *pgxpool.Pool
	batchSize int
}

// NewBulkRepository construye el loader. batchSize <= 0 usa DefaultBatchSize.
func NewBulkRepository(pool *pgxpool.Pool, batchSize int) *BulkRepo {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &BulkRepo{pool: pool, batchSize: batchSize}
}

// Load ejecuta una operación de carga según el modo.
// Política de conflictos: ON CONFLICT DO NOTHING en toda entidad — una clave
// repetida se omite en silencio y no cuenta como insertada.
func (r *BulkRepo) Load(ctx context.Context, def schema.Definition, mode repository.LoadMode, rows [][]any) (repository.LoadResult, error) {
	var res repository.LoadResult

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return res, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Serializa cargas sobre la misma tabla; se libera en commit/rollback.
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, def.Table); err != nil {
		return res, fmt.Errorf("advisory lock %s: %w", def.Table, err)
	}

	if mode == repository.ClearOnly || mode == repository.ClearAndReplace {
		sql, args := deleteSQL(def)
		tag, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			return res, fmt.Errorf("delete %s: %w", def.Table, err)
		}
		res.Deleted = int(tag.RowsAffected())
	}

	if mode != repository.ClearOnly {
		for start := 0; start < len(rows); start += r.batchSize {
			end := start + r.batchSize
			if end > len(rows) {
				end = len(rows)
			}
			batch := rows[start:end]

			sql, args := insertSQL(def, batch)
			tag, err := tx.Exec(ctx, sql, args...)
			if err != nil {
				if isUniqueViolation(err) {
					return res, fmt.Errorf("insert %s: constraint única violada: %w", def.Table, err)
				}
				return res, fmt.Errorf("insert %s: %w", def.Table, err)
			}
			// RowsAffected excluye las filas descartadas por conflicto,
			// así los duplicados no inflan el conteo.
			res.Inserted += int(tag.RowsAffected())
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return repository.LoadResult{}, fmt.Errorf("commit transaction: %w", err)
	}
	return res, nil
}

// deleteSQL arma el DELETE de la entidad, restringido a su filtro de alcance si lo tiene.
func deleteSQL(def schema.Definition) (string, []any) {
	if def.Scope != nil {
		return fmt.Sprintf("DELETE FROM %s WHERE %s = $1", def.Table, def.Scope.Column),
			[]any{def.Scope.Value}
	}
	return "DELETE FROM " + def.Table, nil
}

// insertSQL arma un INSERT multi-fila con ON CONFLICT (pk) DO NOTHING y
// devuelve los argumentos aplanados en orden de placeholder.
func insertSQL(def schema.Definition, rows [][]any) (string, []any) {
	cols := def.Columns()

	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(def.Table)
	b.WriteString(" (")
	b.WriteString(strings.Join(cols, ", "))
	b.WriteString(") VALUES ")

	args := make([]any, 0, len(rows)*len(cols))
	n := 1
	for i, row := range rows {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('(')
		for j := range cols {
			if j > 0 {
				b.WriteString(", ")
			}
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			n++
			args = append(args, row[j])
		}
		b.WriteByte(')')
	}

	b.WriteString(" ON CONFLICT (")
	b.WriteString(def.PrimaryKey())
	b.WriteString(") DO NOTHING")

	return b.String(), args
}
