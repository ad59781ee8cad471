// Package theme holds the fixed presentation policy: palette, fonts,
// animation timing and chart size.
//
// The policy ships as an embedded TOML document and is not user
// configurable. Renderers and the chart engine resolve [view.Color] roles
// and [view.Tone] values through a [Theme].
package theme

import (
	_ "embed"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/numview/numview/pkg/view"
)

//go:embed theme.toml
var defaultTOML []byte

// Theme is the decoded presentation policy.
type Theme struct {
	Font      Font              `toml:"font"`
	Animation Animation         `toml:"animation"`
	Chart     ChartSize         `toml:"chart"`
	Text      Text              `toml:"text"`
	Palette   map[string]Swatch `toml:"palette"`
}

// Font is the chart and page typography.
type Font struct {
	Family     string  `toml:"family"`
	Stack      string  `toml:"stack"` // CSS font-family value
	TitleSize  float64 `toml:"title_size"`
	AxisSize   float64 `toml:"axis_size"`
	TickSize   float64 `toml:"tick_size"`
	LegendSize float64 `toml:"legend_size"`
}

// Animation is the chart entry animation used by the web surface.
type Animation struct {
	DurationMS int    `toml:"duration_ms"`
	Easing     string `toml:"easing"`
}

// ChartSize is the pixel size of rendered charts.
type ChartSize struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// Text holds the neutral colors.
type Text struct {
	Title     string  `toml:"title"`
	Muted     string  `toml:"muted"`
	Tick      string  `toml:"tick"`
	Grid      string  `toml:"grid"`
	GridAlpha float64 `toml:"grid_alpha"`
	Error     string  `toml:"error"`
}

// Swatch is one palette entry.
type Swatch struct {
	Border          string  `toml:"border"`
	BackgroundAlpha float64 `toml:"background_alpha"`
}

// Background returns the translucent fill as a CSS rgba() value.
func (s Swatch) Background() string {
	r, g, b, err := RGB(s.Border)
	if err != nil {
		return "transparent"
	}
	return fmt.Sprintf("rgba(%d,%d,%d,%s)", r, g, b, strconv.FormatFloat(s.BackgroundAlpha, 'f', -1, 64))
}

var (
	defaultTheme *Theme
	defaultOnce  sync.Once
)

// Default returns the embedded theme. It panics if the embedded document is
// invalid, which the package tests rule out.
func Default() *Theme {
	defaultOnce.Do(func() {
		t, err := Load(defaultTOML)
		if err != nil {
			panic(fmt.Sprintf("theme: embedded theme: %v", err))
		}
		defaultTheme = t
	})
	return defaultTheme
}

// Load decodes a theme document and validates its colors.
func Load(data []byte) (*Theme, error) {
	var t Theme
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("decode theme: %w", err)
	}
	for name, sw := range t.Palette {
		if _, _, _, err := RGB(sw.Border); err != nil {
			return nil, fmt.Errorf("palette %s: %w", name, err)
		}
	}
	for _, c := range []string{t.Text.Title, t.Text.Muted, t.Text.Tick, t.Text.Grid, t.Text.Error} {
		if _, _, _, err := RGB(c); err != nil {
			return nil, fmt.Errorf("text colors: %w", err)
		}
	}
	return &t, nil
}

// Swatch resolves a palette role. Unknown roles fall back to the muted text
// color.
func (t *Theme) Swatch(c view.Color) Swatch {
	if sw, ok := t.Palette[string(c)]; ok {
		return sw
	}
	return Swatch{Border: t.Text.Muted}
}

// ColorOf returns the line color of a palette role as #rrggbb.
func (t *Theme) ColorOf(c view.Color) string {
	if c == "" {
		return t.Text.Muted
	}
	return t.Swatch(c).Border
}

// ToneColor returns the color used for a summary tone.
func (t *Theme) ToneColor(tone view.Tone) string {
	switch tone {
	case view.ToneSuccess:
		return t.ColorOf(view.Green)
	case view.ToneWarning:
		return t.ColorOf(view.Orange)
	case view.ToneDanger:
		return t.ColorOf(view.Red)
	default:
		return t.Text.Title
	}
}

// RGB parses a #rrggbb or #rgb color.
func RGB(hex string) (r, g, b uint8, err error) {
	h := strings.TrimPrefix(hex, "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return 0, 0, 0, fmt.Errorf("invalid color %q", hex)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid color %q", hex)
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), nil
}
