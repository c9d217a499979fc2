// seed_users siembra (o actualiza) el usuario administrador en acc_users con
// password hasheado bcrypt, para poder iniciar sesión antes del primer sync.
//
// Uso: SEED_USER=admin SEED_PASSWORD=... go run ./cmd/seed_users
// Requiere la misma configuración de DB que cmd/api.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/omegapos/omega-sync-api/internal/domain/entity"
	"github.com/omegapos/omega-sync-api/internal/infrastructure/postgres"
	"github.com/omegapos/omega-sync-api/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	username := strings.TrimSpace(os.Getenv("SEED_USER"))
	password := strings.TrimSpace(os.Getenv("SEED_PASSWORD"))
	role := strings.TrimSpace(os.Getenv("SEED_ROLE"))
	if role == "" {
		role = entity.RoleAdmin
	}
	if username == "" || password == "" {
		fmt.Fprintln(os.Stderr, "SEED_USER y SEED_PASSWORD son obligatorios")
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hashear password: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	repo := postgres.NewUserRepository(pool)
	if err := repo.Upsert(ctx, &entity.User{ID: username, Password: string(hash), Role: role}); err != nil {
		fmt.Fprintf(os.Stderr, "sembrar usuario: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Usuario %q (%s) sembrado correctamente\n", username, role)
}
