// Copyright (c) 2026 Anicat. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command seed-admin creates the first admin account.
//
// Usage:
//
//	seed-admin -username root -password 's3cret-pass'
//
// Flags default to ADMIN_USERNAME and ADMIN_PASSWORD. Migrations are applied
// first. Running it again for an existing username changes nothing.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/taibuivan/anicat/internal/auth"
	"github.com/taibuivan/anicat/internal/platform/config"
	"github.com/taibuivan/anicat/internal/platform/migration"
	pgstore "github.com/taibuivan/anicat/internal/platform/postgres"
)

func main() {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil)).With(slog.String("app", "anicat-seed"))

	if err := run(log); err != nil {
		log.Error("seed_admin_failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	cfg, err := config.LoadSeed()
	if err != nil {
		return err
	}

	username := flag.String("username", cfg.AdminUsername, "admin username (ADMIN_USERNAME)")
	password := flag.String("password", cfg.AdminPassword, "admin password (ADMIN_PASSWORD)")
	flag.Parse()

	if *username == "" || *password == "" {
		flag.Usage()
		return errors.New("username and password are required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log); err != nil {
		return err
	}

	pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		return err
	}
	defer pool.Close()

	// Token signing is not needed to create an account.
	service := auth.NewService(auth.NewUserRepository(pool), nil, nil, log)

	created, err := service.EnsureAdmin(ctx, auth.Credentials{Username: *username, Password: *password})
	if err != nil {
		return err
	}

	if created {
		fmt.Printf("Admin user '%s' created successfully with role 'admin'.\n", *username)
	} else {
		fmt.Printf("Admin user '%s' already exists. Skipping creation.\n", *username)
	}
	return nil
}
