package repository

import (
	"context"

	"github.com/omegapos/omega-sync-api/internal/domain/entity"
)

// UserRepository define el puerto de lectura de usuarios para autenticación (DIP).
// La escritura de acc_users pasa por el BulkRepository como cualquier otra entidad.
type UserRepository interface {
	// FindByID devuelve (nil, nil) si el usuario no existe.
	FindByID(ctx context.Context, id string) (*entity.User, error)
	// Upsert inserta o actualiza un usuario individual (solo lo usa el seeder).
	Upsert(ctx context.Context, user *entity.User) error
}
