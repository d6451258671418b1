package server

import (
	"errors"
	"net/http"
	"strconv"

	"floormap/internal/repository"
	"floormap/internal/space"

	"github.com/gofiber/fiber/v3"
	"github.com/tidwall/gjson"
)

func presetPayload(p space.Preset) (fiber.Map, error) {
	settings, err := p.Settings.JSON()
	if err != nil {
		return nil, err
	}
	return fiber.Map{"id": p.ID, "name": p.Name, "setting": rawJSON(settings)}, nil
}

func (h *Handler) ListPresets(c fiber.Ctx) error {
	presets, err := h.store.ListPresets(c.Context())
	if err != nil {
		return h.fail(c, err)
	}
	list := make([]fiber.Map, 0, len(presets))
	for _, p := range presets {
		v, err := presetPayload(p)
		if err != nil {
			return h.fail(c, err)
		}
		list = append(list, v)
	}
	return c.JSON(fiber.Map{"presets": list})
}

// CreatePreset reads {"name": ..., "setting": {...}}. Setting fields left
// out take their defaults.
func (h *Handler) CreatePreset(c fiber.Ctx) error {
	body := c.Body()
	if !gjson.ValidBytes(body) {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}
	raw := gjson.GetBytes(body, "setting").Raw
	if raw == "" {
		raw = "{}"
	}
	settings, err := space.ParseSettings(raw)
	if err != nil {
		return h.fail(c, err)
	}
	p, err := space.NewPreset(gjson.GetBytes(body, "name").String(), settings)
	if err != nil {
		return h.fail(c, err)
	}
	if p, err = h.store.CreatePreset(c.Context(), p); err != nil {
		return h.fail(c, err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"id": p.ID})
}

func (h *Handler) GetPreset(c fiber.Ctx) error {
	id, ok := presetID(c)
	if !ok {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid preset id"})
	}
	p, err := h.store.GetPreset(c.Context(), id)
	if err != nil {
		return h.failPreset(c, err)
	}
	v, err := presetPayload(p)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(v)
}

func (h *Handler) DeletePreset(c fiber.Ctx) error {
	id, ok := presetID(c)
	if !ok {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid preset id"})
	}
	if err := h.store.DeletePreset(c.Context(), id); err != nil {
		return h.failPreset(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

func presetID(c fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	return id, err == nil && id > 0
}

func (h *Handler) failPreset(c fiber.Ctx, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "preset not found"})
	}
	return h.fail(c, err)
}
