package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"bizops/internal/domain/auth"
	"bizops/internal/platform/config"
)

// Seed provisions the initial admin profile so a fresh install can log in.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if cfg.SeedAdminEmail == "" || cfg.SeedAdminPassword == "" {
		return nil
	}
	return ensureAdminProfile(ctx, pool, cfg.SeedAdminEmail, cfg.SeedAdminPassword)
}

func ensureAdminProfile(ctx context.Context, pool *pgxpool.Pool, email, password string) error {
	var id string
	err := pool.QueryRow(ctx, "SELECT id FROM profiles WHERE email = $1", email).Scan(&id)
	if err == nil {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
    INSERT INTO profiles (full_name, email, role, password_hash, is_active)
    VALUES ('Administrator', $1, $2, $3, TRUE)
  `, email, auth.RoleAdmin, hash)
	return err
}
