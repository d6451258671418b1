package space

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// JSON encodes the area as {"shape","x","y","width","height"}.
func (a Area) JSON() (string, error) {
	doc := `{}`
	var err error
	for _, kv := range []struct {
		path  string
		value any
	}{
		{"shape", a.Shape},
		{"x", a.X},
		{"y", a.Y},
		{"width", a.Width},
		{"height", a.Height},
	} {
		if doc, err = sjson.Set(doc, kv.path, kv.value); err != nil {
			return "", fmt.Errorf("encode area: %w", err)
		}
	}
	return doc, nil
}

// ParseArea decodes an area document. Only rect areas are supported.
func ParseArea(data string) (Area, error) {
	if !gjson.Valid(data) {
		return Area{}, fmt.Errorf("%w: not json", ErrInvalidArea)
	}
	r := gjson.Parse(data)
	if shape := r.Get("shape").String(); shape != "rect" {
		return Area{}, fmt.Errorf("%w: unsupported shape %q", ErrInvalidArea, shape)
	}
	a := Area{Shape: "rect"}
	for _, f := range []struct {
		path string
		dst  *float64
	}{
		{"x", &a.X}, {"y", &a.Y}, {"width", &a.Width}, {"height", &a.Height},
	} {
		v := r.Get(f.path)
		if v.Type != gjson.Number {
			return Area{}, fmt.Errorf("%w: %s must be a number", ErrInvalidArea, f.path)
		}
		*f.dst = v.Float()
	}
	if a.Width <= 0 || a.Height <= 0 {
		return Area{}, fmt.Errorf("%w: empty rect", ErrInvalidArea)
	}
	return a, nil
}

// JSON encodes the settings in the backend's field names.
func (s Settings) JSON() (string, error) {
	doc := `{}`
	var err error
	for _, kv := range []struct {
		path  string
		value any
	}{
		{"availableStartTime", s.AvailableStartTime},
		{"availableEndTime", s.AvailableEndTime},
		{"reservationTimeUnit", s.ReservationTimeUnit},
		{"reservationMinimumTimeUnit", s.ReservationMinimumTimeUnit},
		{"reservationMaximumTimeUnit", s.ReservationMaximumTimeUnit},
		{"reservationEnable", s.ReservationEnable},
		{"enabledDayOfWeek", s.EnabledDayOfWeek()},
	} {
		if doc, err = sjson.Set(doc, kv.path, kv.value); err != nil {
			return "", fmt.Errorf("encode settings: %w", err)
		}
	}
	return doc, nil
}

// ParseSettings decodes a settings document. Absent fields keep their
// defaults; a null or missing enabledDayOfWeek enables every day.
func ParseSettings(data string) (Settings, error) {
	if !gjson.Valid(data) {
		return Settings{}, fmt.Errorf("%w: not json", ErrInvalidSettings)
	}
	r := gjson.Parse(data)
	s := DefaultSettings()
	if v := r.Get("availableStartTime"); v.Exists() {
		s.AvailableStartTime = v.String()
	}
	if v := r.Get("availableEndTime"); v.Exists() {
		s.AvailableEndTime = v.String()
	}
	if v := r.Get("reservationTimeUnit"); v.Exists() {
		s.ReservationTimeUnit = int(v.Int())
	}
	if v := r.Get("reservationMinimumTimeUnit"); v.Exists() {
		s.ReservationMinimumTimeUnit = int(v.Int())
	}
	if v := r.Get("reservationMaximumTimeUnit"); v.Exists() {
		s.ReservationMaximumTimeUnit = int(v.Int())
	}
	if v := r.Get("reservationEnable"); v.Exists() {
		s.ReservationEnable = v.Bool()
	}
	if v := r.Get("enabledDayOfWeek"); v.Exists() && v.Type != gjson.Null {
		s.EnabledWeekdays = ParseEnabledDayOfWeek(v.String())
	}
	return s, nil
}

// RequestBody builds the create/update request for a space. The area is
// embedded as a JSON encoded string and the name doubles as description.
func RequestBody(sp Space) ([]byte, error) {
	area, err := sp.Area.JSON()
	if err != nil {
		return nil, err
	}
	start, err := NormalizeTime(sp.Settings.AvailableStartTime)
	if err != nil {
		return nil, err
	}
	end, err := NormalizeTime(sp.Settings.AvailableEndTime)
	if err != nil {
		return nil, err
	}
	settings := sp.Settings
	settings.AvailableStartTime, settings.AvailableEndTime = start, end
	settingsJSON, err := settings.JSON()
	if err != nil {
		return nil, err
	}

	body := []byte(`{}`)
	for _, kv := range []struct {
		path  string
		value any
	}{
		{"space.name", sp.Name},
		{"space.color", sp.Color},
		{"space.description", sp.Name},
		{"space.area", area},
	} {
		if body, err = sjson.SetBytes(body, kv.path, kv.value); err != nil {
			return nil, fmt.Errorf("encode space: %w", err)
		}
	}
	if body, err = sjson.SetRawBytes(body, "space.settings", []byte(settingsJSON)); err != nil {
		return nil, fmt.Errorf("encode space: %w", err)
	}
	return body, nil
}
