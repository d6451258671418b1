package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"floormap/internal/space"
)

// CreatePreset validates p and stores it.
func (r *Repository) CreatePreset(ctx context.Context, p space.Preset) (space.Preset, error) {
	if err := p.Validate(); err != nil {
		return space.Preset{}, err
	}
	settings, err := p.Settings.JSON()
	if err != nil {
		return space.Preset{}, err
	}
	res, err := r.db.ExecContext(ctx, `INSERT INTO presets (name, settings) VALUES (?, ?)`, p.Name, settings)
	if err != nil {
		return space.Preset{}, fmt.Errorf("insert preset: %w", err)
	}
	if p.ID, err = res.LastInsertId(); err != nil {
		return space.Preset{}, err
	}
	log.Printf("[REPO] created preset %d (%s)", p.ID, p.Name)
	return p, nil
}

func (r *Repository) GetPreset(ctx context.Context, id int64) (space.Preset, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, settings FROM presets WHERE id = ?`, id)
	return scanPreset(row)
}

// ListPresets returns every preset in creation order.
func (r *Repository) ListPresets(ctx context.Context) ([]space.Preset, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, settings FROM presets ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []space.Preset
	for rows.Next() {
		p, err := scanPreset(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repository) DeletePreset(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM presets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete preset: %w", err)
	}
	if err := expectRow(res); err != nil {
		return err
	}
	log.Printf("[REPO] deleted preset %d", id)
	return nil
}

func scanPreset(s scanner) (space.Preset, error) {
	var (
		p        space.Preset
		settings string
	)
	if err := s.Scan(&p.ID, &p.Name, &settings); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return space.Preset{}, ErrNotFound
		}
		return space.Preset{}, err
	}
	var err error
	if p.Settings, err = space.ParseSettings(settings); err != nil {
		return space.Preset{}, fmt.Errorf("preset %d: %w", p.ID, err)
	}
	return p, nil
}
