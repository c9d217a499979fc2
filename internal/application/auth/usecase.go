package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/omegapos/omega-sync-api/internal/application/dto"
	"github.com/omegapos/omega-sync-api/internal/domain"
	"github.com/omegapos/omega-sync-api/internal/domain/repository"
	"github.com/omegapos/omega-sync-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret  string
	ExpDays int
	Issuer  string
}

// AuthUseCase caso de uso de autenticación: login contra acc_users.
// No retiene estado por sesión; el token emitido es el único artefacto.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Login verifica username/password y emite un access token de larga vida
// con claims user_id y role.
//
// Campos vacíos (tras recortar espacios) se rechazan con ErrInvalidInput sin
// tocar el storage. Usuario inexistente y password incorrecto devuelven el
// mismo ErrInvalidCredentials para no permitir enumerar usuarios.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	username := strings.TrimSpace(in.Username)
	password := strings.TrimSpace(in.Password)
	if username == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}

	user, err := uc.userRepo.FindByID(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}

	if !passwordMatches(user.Password, password) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpDays)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Message:     "Login successful",
		AccessToken: token,
		User:        dto.LoginUser{ID: user.ID, Role: user.Role},
		ExpiresIn:   fmt.Sprintf("%d days", uc.jwtCfg.ExpDays),
	}, nil
}

// passwordMatches compara el password almacenado con el provisto.
// Filas sembradas por este servicio guardan hash bcrypt; filas replicadas
// desde el ERP legado llegan en texto plano, y para esas se usa comparación
// en tiempo constante sobre los valores recortados.
func passwordMatches(stored, supplied string) bool {
	stored = strings.TrimSpace(stored)
	if isBcryptHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(supplied)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(supplied)) == 1
}

func isBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}
