package main

import (
	"context"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"floormap/internal/config"
	"floormap/internal/repository"
	"floormap/internal/tui"
)

func main() {
	if os.Getenv("FLOORMAP_DEBUG") != "" {
		f, err := tea.LogToFile("floormap-debug.log", "floormap")
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
	}

	cfg, err := config.Load(configPath())
	if err != nil {
		log.Fatal(err)
	}

	opts := tui.Options{Config: cfg}
	if cfg.Storage.DatabasePath != "" {
		db, err := repository.OpenSQLite(cfg.Storage.DatabasePath)
		if err != nil {
			log.Fatalf("open db: %v", err)
		}
		defer db.Close()
		repo := repository.New(db)
		if err := repo.Init(context.Background()); err != nil {
			log.Fatalf("init db: %v", err)
		}
		opts.Repo = repo
	}

	zone.NewGlobal()
	defer zone.Close()

	var m tea.Model
	if len(os.Args) > 1 {
		m = tui.NewWithPath(opts, os.Args[1])
	} else {
		m = tui.New(opts)
	}
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run(); err != nil {
		log.Fatal(err)
	}
}

func configPath() string {
	if p := os.Getenv("FLOORMAP_CONFIG"); p != "" {
		return p
	}
	return config.DefaultPath()
}
