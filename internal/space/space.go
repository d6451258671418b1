// Package space models reservation spaces: named, colored rectangular
// areas on a map together with their booking settings.
package space

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"floormap/internal/geom"
)

var (
	ErrInvalidArea     = errors.New("invalid area")
	ErrInvalidSettings = errors.New("invalid settings")
)

// Weekdays in week order, as they appear in enabledDayOfWeek.
var Weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// TimeUnits are the accepted reservation time units, in minutes.
var TimeUnits = []int{5, 10, 30, 60}

const (
	DefaultStartTime = "07:00:00"
	DefaultEndTime   = "23:00:00"
	DefaultTimeUnit  = 10
	DefaultMinimum   = 10
	DefaultMaximum   = 1440
)

// Settings are the booking rules of a space. Times are "HH:MM:SS",
// units are minutes.
type Settings struct {
	AvailableStartTime         string
	AvailableEndTime           string
	ReservationTimeUnit        int
	ReservationMinimumTimeUnit int
	ReservationMaximumTimeUnit int
	ReservationEnable          bool
	// EnabledWeekdays is indexed like Weekdays.
	EnabledWeekdays [7]bool
}

// DefaultSettings returns the settings a new space starts with.
func DefaultSettings() Settings {
	return Settings{
		AvailableStartTime:         DefaultStartTime,
		AvailableEndTime:           DefaultEndTime,
		ReservationTimeUnit:        DefaultTimeUnit,
		ReservationMinimumTimeUnit: DefaultMinimum,
		ReservationMaximumTimeUnit: DefaultMaximum,
		ReservationEnable:          true,
		EnabledWeekdays:            [7]bool{true, true, true, true, true, true, true},
	}
}

// EnabledDayOfWeek joins the enabled weekday names with commas.
func (s Settings) EnabledDayOfWeek() string {
	var days []string
	for i, on := range s.EnabledWeekdays {
		if on {
			days = append(days, Weekdays[i])
		}
	}
	return strings.Join(days, ",")
}

// ParseEnabledDayOfWeek reads a comma separated weekday list. Unknown
// names are ignored.
func ParseEnabledDayOfWeek(v string) [7]bool {
	var out [7]bool
	for _, d := range strings.Split(v, ",") {
		if i := slices.Index(Weekdays, strings.ToLower(strings.TrimSpace(d))); i >= 0 {
			out[i] = true
		}
	}
	return out
}

// NormalizeTime accepts "HH:MM" or "HH:MM:SS" and returns "HH:MM:SS".
func NormalizeTime(v string) (string, error) {
	v = strings.TrimSpace(v)
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format("15:04:05"), nil
		}
	}
	return "", fmt.Errorf("%w: time %q", ErrInvalidSettings, v)
}

// Validate checks the availability window and the unit rules.
func (s Settings) Validate() error {
	start, err := NormalizeTime(s.AvailableStartTime)
	if err != nil {
		return err
	}
	end, err := NormalizeTime(s.AvailableEndTime)
	if err != nil {
		return err
	}
	if start >= end {
		return fmt.Errorf("%w: start %s is not before end %s", ErrInvalidSettings, start, end)
	}
	unit := s.ReservationTimeUnit
	if !slices.Contains(TimeUnits, unit) {
		return fmt.Errorf("%w: time unit %d not one of %v", ErrInvalidSettings, unit, TimeUnits)
	}
	minU, maxU := s.ReservationMinimumTimeUnit, s.ReservationMaximumTimeUnit
	if minU <= 0 || maxU <= 0 {
		return fmt.Errorf("%w: minimum and maximum must be positive", ErrInvalidSettings)
	}
	if minU > maxU {
		return fmt.Errorf("%w: minimum %d exceeds maximum %d", ErrInvalidSettings, minU, maxU)
	}
	if minU%unit != 0 || maxU%unit != 0 {
		return fmt.Errorf("%w: minimum and maximum must be multiples of %d", ErrInvalidSettings, unit)
	}
	return nil
}

// Area is the footprint of a space on the map.
type Area struct {
	Shape  string
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// AreaFromRect turns a rect element into an area.
func AreaFromRect(e geom.MapElement) (Area, error) {
	if e.Type != geom.Rect {
		return Area{}, fmt.Errorf("%w: %s is not a rect", ErrInvalidArea, e.Type)
	}
	if e.Width <= 0 || e.Height <= 0 {
		return Area{}, fmt.Errorf("%w: empty rect", ErrInvalidArea)
	}
	return Area{Shape: "rect", X: e.X, Y: e.Y, Width: e.Width, Height: e.Height}, nil
}

// Rect returns the area as a rect element.
func (a Area) Rect(stroke string) geom.MapElement {
	return geom.MapElement{Type: geom.Rect, Stroke: stroke, X: a.X, Y: a.Y, Width: a.Width, Height: a.Height}
}

// Space is a named reservation area on a map.
type Space struct {
	ID       int64
	MapID    int64
	Name     string
	Color    string
	Area     Area
	Settings Settings
}

// New builds a space over a rect with default settings.
func New(name, color string, rect geom.MapElement) (Space, error) {
	area, err := AreaFromRect(rect)
	if err != nil {
		return Space{}, err
	}
	return Space{Name: name, Color: color, Area: area, Settings: DefaultSettings()}, nil
}

// Validate checks name, color, area and settings.
func (s Space) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return errors.New("space: name is required")
	}
	if _, err := geom.ParseHexColor(s.Color); err != nil {
		return fmt.Errorf("space: %w", err)
	}
	if s.Area.Shape != "rect" || s.Area.Width <= 0 || s.Area.Height <= 0 {
		return ErrInvalidArea
	}
	return s.Settings.Validate()
}
