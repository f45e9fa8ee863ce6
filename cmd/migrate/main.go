package main

import (
	"context"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"

	"github.com/mahamadoubmaiga/Koraprompt/internal/config"
	"github.com/mahamadoubmaiga/Koraprompt/internal/storage"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx := context.Background()

	var (
		db  *sqlx.DB
		err error
	)
	if cfg.Database.Driver == config.DriverPostgres {
		db, err = storage.NewPostgres(ctx, cfg.Database)
	} else {
		db, err = storage.NewSQLite(cfg.Database)
	}
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := storage.RunMigrations(ctx, db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	log.Println("Migrations applied successfully.")
}
