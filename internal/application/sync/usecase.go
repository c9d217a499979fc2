// Package sync implementa el orquestador de sincronización: expone las
// operaciones clear / chunk-insert / clear-and-replace sobre las cuatro
// entidades registradas y despacha al Bulk Loader.
package sync

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/omegapos/omega-sync-api/internal/application/dto"
	"github.com/omegapos/omega-sync-api/internal/domain/repository"
	"github.com/omegapos/omega-sync-api/internal/domain/schema"
	"github.com/omegapos/omega-sync-api/pkg/logger"
)

// labels etiquetas humanas por entidad para los mensajes de respuesta.
var labels = map[string]string{
	"products":       "Products",
	"productbatches": "Product batches",
	"masters":        "Master records",
	"users":          "Users",
}

// SyncUseCase orquesta las operaciones de sincronización por entidad.
type SyncUseCase struct {
	bulk repository.BulkRepository
	log  *logger.Logger
}

// NewSyncUseCase construye el orquestador.
func NewSyncUseCase(bulk repository.BulkRepository, log *logger.Logger) *SyncUseCase {
	return &SyncUseCase{bulk: bulk, log: log}
}

// Clear borra todas las filas de la entidad dentro de su alcance.
func (uc *SyncUseCase) Clear(ctx context.Context, kind string) (*dto.ClearResponse, error) {
	def, err := schema.Lookup(kind)
	if err != nil {
		return nil, err
	}
	opID := uuid.NewString()

	res, err := uc.bulk.Load(ctx, def, repository.ClearOnly, nil)
	if err != nil {
		uc.log.Error().Err(err).Str("op", opID).Str("entity", kind).Msg("clear falló")
		return nil, err
	}

	uc.log.Info().Str("op", opID).Str("entity", kind).Int("deleted", res.Deleted).Msg("clear completado")
	return &dto.ClearResponse{
		Message: fmt.Sprintf("%s cleared successfully", labels[kind]),
		Deleted: res.Deleted,
	}, nil
}

// ChunkInsert valida e inserta un fragmento del dataset sin borrar nada.
// Existe para que el cliente acote el tamaño de cada request sin pasar por
// una ventana con la tabla vacía.
func (uc *SyncUseCase) ChunkInsert(ctx context.Context, kind string, records []dto.Record) (*dto.SyncResponse, error) {
	return uc.load(ctx, kind, repository.ChunkInsert, records)
}

// Replace borra e inserta el payload completo en una sola transacción:
// tras el commit la tabla contiene exactamente los registros válidos del payload.
func (uc *SyncUseCase) Replace(ctx context.Context, kind string, records []dto.Record) (*dto.SyncResponse, error) {
	return uc.load(ctx, kind, repository.ClearAndReplace, records)
}

func (uc *SyncUseCase) load(ctx context.Context, kind string, mode repository.LoadMode, records []dto.Record) (*dto.SyncResponse, error) {
	def, err := schema.Lookup(kind)
	if err != nil {
		return nil, err
	}
	opID := uuid.NewString()

	// Validación por registro: el rechazo se registra y se cuenta,
	// nunca aborta el lote.
	rows := make([][]any, 0, len(records))
	skipped := 0
	for _, rec := range records {
		row, rerr := def.BuildRow(rec)
		if rerr != nil {
			skipped++
			uc.log.Warn().
				Str("op", opID).
				Str("entity", kind).
				Str("key", rerr.Key).
				Str("field", rerr.Field).
				Str("reason", rerr.Reason).
				Msg("registro omitido")
			continue
		}
		rows = append(rows, row)
	}

	res, err := uc.bulk.Load(ctx, def, mode, rows)
	if err != nil {
		uc.log.Error().Err(err).Str("op", opID).Str("entity", kind).Str("mode", string(mode)).Msg("carga falló")
		return nil, err
	}

	uc.log.Info().
		Str("op", opID).
		Str("entity", kind).
		Str("mode", string(mode)).
		Int("received", len(records)).
		Int("inserted", res.Inserted).
		Int("deleted", res.Deleted).
		Int("skipped", skipped).
		Msg("carga completada")

	return &dto.SyncResponse{
		Message: fmt.Sprintf("%s synced successfully", labels[kind]),
		Count:   res.Inserted,
		Skipped: skipped,
		Method:  string(mode),
	}, nil
}
