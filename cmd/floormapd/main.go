package main

import (
	"context"
	"log"
	"os"

	"floormap/internal/config"
	"floormap/internal/repository"
	"floormap/internal/server"
)

func main() {
	path := os.Getenv("FLOORMAP_CONFIG")
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db, err := repository.OpenSQLite(cfg.Storage.DatabasePath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	repo := repository.New(db)
	if err := repo.Init(context.Background()); err != nil {
		log.Fatalf("init db: %v", err)
	}

	app := server.New(repo, server.Options{
		ReadTimeout:    cfg.Server.ReadTimeout.Duration,
		WriteTimeout:   cfg.Server.WriteTimeout.Duration,
		ThumbnailWidth: cfg.Thumbnail.Width,
	})

	log.Printf("Starting floormap share server on %s (db: %s)", cfg.Server.Addr, cfg.Storage.DatabasePath)
	if err := app.Listen(cfg.Server.Addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
