// Package repository is the SQLite backed map library: saved drawings,
// their sharing ids, the reservation spaces placed on them and the
// setting presets spaces start from.
package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"floormap/internal/geom"
	"floormap/internal/space"

	"github.com/google/uuid"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

var ErrNotFound = errors.New("not found")

//go:embed schema.sql
var schema string

// Map is a saved drawing.
type Map struct {
	ID        int64
	SharingID string
	Name      string
	Drawing   geom.Drawing
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Repository struct {
	db  *sql.DB
	now func() time.Time
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db, now: time.Now}
}

// Init creates the tables if they do not exist.
func (r *Repository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// CreateMap stores a new map under a fresh sharing id.
func (r *Repository) CreateMap(ctx context.Context, name string, d geom.Drawing) (*Map, error) {
	d.SharingID = uuid.NewString()
	data, err := geom.EncodeDrawing(d)
	if err != nil {
		return nil, fmt.Errorf("encode drawing: %w", err)
	}
	now := r.now().UTC()
	m := &Map{
		SharingID: d.SharingID,
		Name:      name,
		Drawing:   d,
		CreatedAt: now,
		UpdatedAt: now,
	}
	res, err := r.db.ExecContext(ctx, `
        INSERT INTO maps (sharing_id, name, drawing, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?)
    `, m.SharingID, m.Name, string(data), formatTime(now), formatTime(now))
	if err != nil {
		return nil, fmt.Errorf("insert map: %w", err)
	}
	if m.ID, err = res.LastInsertId(); err != nil {
		return nil, err
	}
	log.Printf("[REPO] created map %d (%s)", m.ID, m.SharingID)
	return m, nil
}

const mapColumns = `id, sharing_id, name, drawing, created_at, updated_at`

func (r *Repository) GetMap(ctx context.Context, id int64) (*Map, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+mapColumns+` FROM maps WHERE id = ?`, id)
	return scanMap(row)
}

func (r *Repository) GetMapBySharingID(ctx context.Context, sharingID string) (*Map, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+mapColumns+` FROM maps WHERE sharing_id = ?`, sharingID)
	return scanMap(row)
}

// ListMaps returns every map, most recently updated first.
func (r *Repository) ListMaps(ctx context.Context) ([]Map, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+mapColumns+` FROM maps ORDER BY updated_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Map
	for rows.Next() {
		m, err := scanMap(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

// UpdateMap saves the name and drawing of m. The drawing keeps the map's
// sharing id.
func (r *Repository) UpdateMap(ctx context.Context, m *Map) error {
	m.Drawing.SharingID = m.SharingID
	data, err := geom.EncodeDrawing(m.Drawing)
	if err != nil {
		return fmt.Errorf("encode drawing: %w", err)
	}
	now := r.now().UTC()
	res, err := r.db.ExecContext(ctx, `
        UPDATE maps SET name = ?, drawing = ?, updated_at = ?
        WHERE id = ?
    `, m.Name, string(data), formatTime(now), m.ID)
	if err != nil {
		return fmt.Errorf("update map: %w", err)
	}
	if err := expectRow(res); err != nil {
		return err
	}
	m.UpdatedAt = now
	return nil
}

// DeleteMap removes a map and its spaces.
func (r *Repository) DeleteMap(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM spaces WHERE map_id = ?`, id); err != nil {
		return fmt.Errorf("delete spaces: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM maps WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete map: %w", err)
	}
	if err := expectRow(res); err != nil {
		return err
	}
	log.Printf("[REPO] deleted map %d", id)
	return tx.Commit()
}

// AddSpace validates sp and stores it on the map.
func (r *Repository) AddSpace(ctx context.Context, mapID int64, sp space.Space) (space.Space, error) {
	if err := sp.Validate(); err != nil {
		return space.Space{}, err
	}
	if _, err := r.GetMap(ctx, mapID); err != nil {
		return space.Space{}, err
	}
	area, err := sp.Area.JSON()
	if err != nil {
		return space.Space{}, err
	}
	settings, err := sp.Settings.JSON()
	if err != nil {
		return space.Space{}, err
	}
	res, err := r.db.ExecContext(ctx, `
        INSERT INTO spaces (map_id, name, color, area, settings)
        VALUES (?, ?, ?, ?, ?)
    `, mapID, sp.Name, sp.Color, area, settings)
	if err != nil {
		return space.Space{}, fmt.Errorf("insert space: %w", err)
	}
	if sp.ID, err = res.LastInsertId(); err != nil {
		return space.Space{}, err
	}
	sp.MapID = mapID
	return sp, nil
}

// ListSpaces returns the spaces of a map in creation order.
func (r *Repository) ListSpaces(ctx context.Context, mapID int64) ([]space.Space, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, map_id, name, color, area, settings
        FROM spaces
        WHERE map_id = ?
        ORDER BY id
    `, mapID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []space.Space
	for rows.Next() {
		var (
			sp             space.Space
			area, settings string
		)
		if err := rows.Scan(&sp.ID, &sp.MapID, &sp.Name, &sp.Color, &area, &settings); err != nil {
			return nil, err
		}
		if sp.Area, err = space.ParseArea(area); err != nil {
			return nil, fmt.Errorf("space %d: %w", sp.ID, err)
		}
		if sp.Settings, err = space.ParseSettings(settings); err != nil {
			return nil, fmt.Errorf("space %d: %w", sp.ID, err)
		}
		out = append(out, sp)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMap(s scanner) (*Map, error) {
	var (
		m                Map
		drawing          string
		created, updated string
	)
	if err := s.Scan(&m.ID, &m.SharingID, &m.Name, &drawing, &created, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	d, err := geom.DecodeDrawing([]byte(drawing))
	if err != nil && !errors.Is(err, geom.ErrEmptyDrawing) {
		return nil, fmt.Errorf("map %d: %w", m.ID, err)
	}
	d.SharingID = m.SharingID
	m.Drawing = d
	m.CreatedAt, _ = time.Parse(timeLayout, created)
	m.UpdatedAt, _ = time.Parse(timeLayout, updated)
	return &m, nil
}

func expectRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// timeLayout is fixed width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string { return t.Format(timeLayout) }

// OpenSQLite opens the database at dbPath, creating its directory.
func OpenSQLite(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000&_pragma=foreign_keys(1)", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
