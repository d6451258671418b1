// Package server exposes the map library over HTTP: read-only routes for
// listing maps and sharing them with guests, and the setting presets
// spaces are created from.
package server

import (
	"bytes"
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"floormap/internal/geom"
	"floormap/internal/repository"
	"floormap/internal/space"
	"floormap/internal/thumbnail"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// Store is the part of the map library the API serves.
type Store interface {
	GetMap(ctx context.Context, id int64) (*repository.Map, error)
	GetMapBySharingID(ctx context.Context, sharingID string) (*repository.Map, error)
	ListMaps(ctx context.Context) ([]repository.Map, error)
	ListSpaces(ctx context.Context, mapID int64) ([]space.Space, error)

	CreatePreset(ctx context.Context, p space.Preset) (space.Preset, error)
	GetPreset(ctx context.Context, id int64) (space.Preset, error)
	ListPresets(ctx context.Context) ([]space.Preset, error)
	DeletePreset(ctx context.Context, id int64) error
}

type Options struct {
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	ThumbnailWidth int
	// Quiet disables the request log.
	Quiet bool
}

type Handler struct {
	store      Store
	thumbWidth int
}

// New builds the fiber app with all routes registered.
func New(store Store, opts Options) *fiber.App {
	if opts.ThumbnailWidth <= 0 {
		opts.ThumbnailWidth = 480
	}
	h := &Handler{store: store, thumbWidth: opts.ThumbnailWidth}

	app := fiber.New(fiber.Config{
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
		AppName:      "floormap",
	})

	app.Use(recover.New())
	if !opts.Quiet {
		app.Use(requestLogger())
	}

	app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})

	app.Get("/api/maps", h.ListMaps)
	app.Get("/api/maps/:id", h.GetMap)
	app.Get("/api/guests/maps/:sharingId", h.GetSharedMap)
	app.Get("/api/guests/maps/:sharingId/thumbnail.png", h.GetThumbnail)

	app.Get("/api/presets", h.ListPresets)
	app.Post("/api/presets", h.CreatePreset)
	app.Get("/api/presets/:id", h.GetPreset)
	app.Delete("/api/presets/:id", h.DeletePreset)

	return app
}

func requestLogger() fiber.Handler {
	return logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	})
}

type spacePayload struct {
	ID       int64  `json:"spaceId"`
	Name     string `json:"spaceName"`
	Color    string `json:"color"`
	Area     string `json:"area"`
	Settings any    `json:"settings"`
}

func mapPayload(m *repository.Map, spaces []space.Space) (fiber.Map, error) {
	drawing, err := geom.EncodeDrawing(m.Drawing)
	if err != nil {
		return nil, err
	}
	out := fiber.Map{
		"mapId":        m.ID,
		"mapName":      m.Name,
		"mapDrawing":   string(drawing),
		"sharingMapId": m.SharingID,
		"thumbnail":    "/api/guests/maps/" + m.SharingID + "/thumbnail.png",
		"updatedAt":    m.UpdatedAt.Format(time.RFC3339),
	}
	if spaces != nil {
		list := make([]spacePayload, 0, len(spaces))
		for _, sp := range spaces {
			area, err := sp.Area.JSON()
			if err != nil {
				return nil, err
			}
			settings, err := sp.Settings.JSON()
			if err != nil {
				return nil, err
			}
			list = append(list, spacePayload{
				ID:       sp.ID,
				Name:     sp.Name,
				Color:    sp.Color,
				Area:     area,
				Settings: rawJSON(settings),
			})
		}
		out["spaces"] = list
	}
	return out, nil
}

// rawJSON embeds an already encoded document.
type rawJSON string

func (r rawJSON) MarshalJSON() ([]byte, error) { return []byte(r), nil }

func (h *Handler) ListMaps(c fiber.Ctx) error {
	maps, err := h.store.ListMaps(c.Context())
	if err != nil {
		return h.fail(c, err)
	}
	list := make([]fiber.Map, 0, len(maps))
	for i := range maps {
		p, err := mapPayload(&maps[i], nil)
		if err != nil {
			return h.fail(c, err)
		}
		list = append(list, p)
	}
	return c.JSON(fiber.Map{"maps": list})
}

func (h *Handler) GetMap(c fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid map id"})
	}
	m, err := h.store.GetMap(c.Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return h.sendMap(c, m)
}

func (h *Handler) GetSharedMap(c fiber.Ctx) error {
	m, err := h.sharedMap(c)
	if err != nil {
		return h.fail(c, err)
	}
	return h.sendMap(c, m)
}

func (h *Handler) GetThumbnail(c fiber.Ctx) error {
	m, err := h.sharedMap(c)
	if err != nil {
		return h.fail(c, err)
	}
	spaces, err := h.store.ListSpaces(c.Context(), m.ID)
	if err != nil {
		return h.fail(c, err)
	}
	var buf bytes.Buffer
	if err := thumbnail.WritePNG(&buf, m.Drawing, spaces, h.thumbWidth); err != nil {
		if errors.Is(err, thumbnail.ErrNothingToRender) {
			return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "map is empty"})
		}
		return h.fail(c, err)
	}
	c.Set("Content-Type", "image/png")
	return c.Send(buf.Bytes())
}

var errBadSharingID = errors.New("invalid sharing id")

func (h *Handler) sharedMap(c fiber.Ctx) (*repository.Map, error) {
	sid := c.Params("sharingId")
	if sid == "" || len(sid) > 64 {
		return nil, errBadSharingID
	}
	return h.store.GetMapBySharingID(c.Context(), sid)
}

func (h *Handler) sendMap(c fiber.Ctx, m *repository.Map) error {
	spaces, err := h.store.ListSpaces(c.Context(), m.ID)
	if err != nil {
		return h.fail(c, err)
	}
	if spaces == nil {
		spaces = []space.Space{}
	}
	p, err := mapPayload(m, spaces)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(p)
}

func (h *Handler) fail(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "map not found"})
	case errors.Is(err, errBadSharingID),
		errors.Is(err, space.ErrInvalidPreset),
		errors.Is(err, space.ErrInvalidSettings):
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	log.Printf("[API] %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
}
