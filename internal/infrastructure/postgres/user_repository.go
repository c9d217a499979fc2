package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/omegapos/omega-sync-api/internal/domain/entity"
	"github.com/omegapos/omega-sync-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre acc_users.
// Solo lectura para el login; la escritura masiva pasa por BulkRepo.
type UserRepo struct {
	pool *pgxpool.Pool
}

// NewUserRepository construye el adaptador de lectura de usuarios.
func NewUserRepository(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// FindByID obtiene un usuario por su id (nombre de usuario). (nil, nil) si no existe.
func (r *UserRepo) FindByID(ctx context.Context, id string) (*entity.User, error) {
	// role es nullable en el esquema origen
	query := `SELECT id, pass, COALESCE(role, '') FROM acc_users WHERE id = $1`
	var u entity.User
	err := r.pool.QueryRow(ctx, query, id).Scan(&u.ID, &u.Password, &u.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return &u, nil
}

// Upsert inserta o actualiza un usuario individual. Lo usa cmd/seed_users
// para sembrar el usuario administrador con password hasheado.
func (r *UserRepo) Upsert(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO acc_users (id, pass, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET pass = EXCLUDED.pass, role = EXCLUDED.role`
	if _, err := r.pool.Exec(ctx, query, user.ID, user.Password, user.Role); err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}
