// Package prefs persists tool settings between sessions as JSON under the
// user config directory.
package prefs

import (
	"encoding/json"
	"image/color"
	"os"
	"path/filepath"

	"sketchpad/pkg/colorutil"
)

const (
	configDir = "sketchpad"
	prefsFile = "preferences.json"
)

// Prefs is the on-disk preference document. Zero values mean "not set";
// accessors substitute defaults.
type Prefs struct {
	Color       string  `json:"color,omitempty"`
	StrokeWidth float64 `json:"stroke_width,omitempty"`
	EraserSize  float64 `json:"eraser_size,omitempty"`
	FontSize    float64 `json:"font_size,omitempty"`

	WindowWidth  float64 `json:"window_width,omitempty"`
	WindowHeight float64 `json:"window_height,omitempty"`

	path string
}

// Load reads preferences from ~/.config/sketchpad/preferences.json.
// A missing or unreadable file yields empty preferences; corruption never
// blocks startup.
func Load() *Prefs {
	p := &Prefs{}

	base, err := os.UserConfigDir()
	if err != nil {
		base = filepath.Join(os.Getenv("HOME"), ".config")
	}
	p.path = filepath.Join(base, configDir, prefsFile)

	data, err := os.ReadFile(p.path)
	if err != nil {
		return p
	}
	_ = json.Unmarshal(data, p)
	return p
}

// Save writes the preferences to disk, creating the config directory if
// needed.
func (p *Prefs) Save() error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(p.path, data, 0o644)
}

// DrawColor returns the stored drawing color, or black when unset.
func (p *Prefs) DrawColor() color.RGBA {
	if p.Color == "" {
		return colorutil.Black
	}
	return colorutil.FromHex(p.Color)
}

// SetDrawColor stores the drawing color as a hex string.
func (p *Prefs) SetDrawColor(c color.RGBA) {
	p.Color = colorutil.Hex(c)
}

// FloatOr returns v unless it is unset (zero), in which case fallback.
func FloatOr(v, fallback float64) float64 {
	if v <= 0 {
		return fallback
	}
	return v
}
