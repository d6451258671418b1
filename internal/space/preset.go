package space

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var ErrInvalidPreset = errors.New("invalid preset")

// MaxPresetName is the longest preset name accepted, in characters.
const MaxPresetName = 20

// Preset is a named set of booking settings new spaces can start from.
type Preset struct {
	ID       int64
	Name     string
	Settings Settings
}

// NewPreset trims the name and validates the result.
func NewPreset(name string, s Settings) (Preset, error) {
	p := Preset{Name: strings.TrimSpace(name), Settings: s}
	if err := p.Validate(); err != nil {
		return Preset{}, err
	}
	return p, nil
}

func (p Preset) Validate() error {
	n := utf8.RuneCountInString(p.Name)
	if n == 0 || n > MaxPresetName {
		return fmt.Errorf("%w: name must be 1 to %d characters", ErrInvalidPreset, MaxPresetName)
	}
	return p.Settings.Validate()
}

// Apply returns sp carrying the preset's settings.
func (p Preset) Apply(sp Space) Space {
	sp.Settings = p.Settings
	return sp
}

// FindPreset looks a preset up by name, ignoring case.
func FindPreset(presets []Preset, name string) (Preset, bool) {
	name = strings.TrimSpace(name)
	for _, p := range presets {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Preset{}, false
}
