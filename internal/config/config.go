// Package config loads floormap settings from a TOML file and FLOORMAP_*
// environment variables. Environment values win over the file, the file
// wins over defaults.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"floormap/internal/editor"
	"floormap/internal/geom"

	"github.com/BurntSushi/toml"
)

type Board struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

type Editor struct {
	Stroke string `toml:"stroke"`
	// Mode is the tool selected at start-up.
	Mode string `toml:"mode"`
}

type Storage struct {
	SaveDirectory string `toml:"save_directory"`
	DatabasePath  string `toml:"database_path"`
}

type Server struct {
	Addr         string   `toml:"addr"`
	ReadTimeout  Duration `toml:"read_timeout"`
	WriteTimeout Duration `toml:"write_timeout"`
}

type Thumbnail struct {
	Width int `toml:"width"`
}

type Config struct {
	Board     Board     `toml:"board"`
	Editor    Editor    `toml:"editor"`
	Storage   Storage   `toml:"storage"`
	Server    Server    `toml:"server"`
	Thumbnail Thumbnail `toml:"thumbnail"`
}

// Duration decodes TOML strings like "10s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Board:  Board{Width: 800, Height: 600},
		Editor: Editor{Stroke: geom.DefaultStroke, Mode: editor.ModeSelect.String()},
		Storage: Storage{
			SaveDirectory: ".",
			DatabasePath:  "floormap.db",
		},
		Server: Server{
			Addr:         ":8080",
			ReadTimeout:  Duration{10 * time.Second},
			WriteTimeout: Duration{10 * time.Second},
		},
		Thumbnail: Thumbnail{Width: 480},
	}
}

// DefaultPath is $XDG_CONFIG_HOME/floormap/config.toml, falling back to
// the user config directory.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		d, err := os.UserConfigDir()
		if err != nil {
			return "config.toml"
		}
		dir = d
	}
	return filepath.Join(dir, "floormap", "config.toml")
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := decodeFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	if _, err := toml.Decode(string(data), cfg); err != nil {
		pe := &ParseError{Path: path, Err: err}
		var terr toml.ParseError
		if errors.As(err, &terr) {
			pe.Line = terr.Position.Line
		}
		return pe
	}
	return nil
}

type lookupFunc func(string) (string, bool)

func (c *Config) applyEnv(lookup lookupFunc) error {
	floatVar := func(name string, dst *float64) error {
		v, ok := lookup(name)
		if !ok {
			return nil
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidConfig, name, v)
		}
		*dst = f
		return nil
	}
	stringVar := func(name string, dst *string) {
		if v, ok := lookup(name); ok {
			*dst = v
		}
	}

	if err := floatVar("FLOORMAP_BOARD_WIDTH", &c.Board.Width); err != nil {
		return err
	}
	if err := floatVar("FLOORMAP_BOARD_HEIGHT", &c.Board.Height); err != nil {
		return err
	}
	stringVar("FLOORMAP_STROKE", &c.Editor.Stroke)
	stringVar("FLOORMAP_MODE", &c.Editor.Mode)
	stringVar("FLOORMAP_SAVE_DIR", &c.Storage.SaveDirectory)
	stringVar("FLOORMAP_DB_PATH", &c.Storage.DatabasePath)
	stringVar("FLOORMAP_ADDR", &c.Server.Addr)
	if v, ok := lookup("FLOORMAP_THUMB_WIDTH"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: FLOORMAP_THUMB_WIDTH=%q", ErrInvalidConfig, v)
		}
		c.Thumbnail.Width = n
	}
	return nil
}

// Validate rejects board sizes that are not positive finite numbers,
// strokes outside the palette and unknown modes.
func (c Config) Validate() error {
	if !validSize(c.Board.Width) || !validSize(c.Board.Height) {
		return fmt.Errorf("%w: board size %gx%g", ErrInvalidConfig, c.Board.Width, c.Board.Height)
	}
	if !geom.IsStrokeColor(c.Editor.Stroke) {
		return fmt.Errorf("%w: stroke %q is not a palette color", ErrInvalidConfig, c.Editor.Stroke)
	}
	if _, ok := editor.ParseMode(c.Editor.Mode); !ok {
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, c.Editor.Mode)
	}
	if c.Thumbnail.Width <= 0 {
		return fmt.Errorf("%w: thumbnail width %d", ErrInvalidConfig, c.Thumbnail.Width)
	}
	if c.Server.ReadTimeout.Duration < 0 || c.Server.WriteTimeout.Duration < 0 {
		return fmt.Errorf("%w: negative server timeout", ErrInvalidConfig)
	}
	return nil
}

func validSize(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// SavePath joins name onto the save directory.
func (c Config) SavePath(name string) string {
	return filepath.Join(c.Storage.SaveDirectory, name)
}
