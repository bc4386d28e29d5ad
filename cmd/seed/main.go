// Comando de bootstrap: crea el primer usuario admin (credencial + perfil).
// Uso: SEED_ADMIN_EMAIL=... SEED_ADMIN_PASSWORD=... go run ./cmd/seed
package main

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/vacaciones-api/internal/domain/entity"
	"github.com/jhoicas/vacaciones-api/internal/infrastructure/postgres"
	"github.com/jhoicas/vacaciones-api/pkg/config"
	"github.com/jhoicas/vacaciones-api/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	email := os.Getenv("SEED_ADMIN_EMAIL")
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	fullName := os.Getenv("SEED_ADMIN_NAME")
	if email == "" || password == "" {
		log.Fatal().Msg("SEED_ADMIN_EMAIL y SEED_ADMIN_PASSWORD son requeridos")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	credRepo := postgres.NewCredentialRepository(pool)
	profileRepo := postgres.NewProfileRepository(pool)

	if existing, err := credRepo.GetByEmail(ctx, email); err != nil {
		log.Fatal().Err(err).Msg("consultar credencial")
	} else if existing != nil {
		log.Info().Str("email", email).Msg("el admin ya existe, nada que hacer")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("hashear password")
	}

	now := time.Now()
	id := uuid.NewString()
	if err := credRepo.Create(ctx, &entity.Credential{
		UserID:       id,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
	}); err != nil {
		log.Fatal().Err(err).Msg("crear credencial")
	}
	if err := profileRepo.Upsert(ctx, &entity.Profile{
		ID:        id,
		Email:     email,
		FullName:  fullName,
		Role:      entity.RoleAdmin,
		CreatedAt: now,
	}); err != nil {
		log.Fatal().Err(err).Msg("crear perfil")
	}

	log.Info().Str("email", email).Str("user_id", id).Msg("admin creado")
}
