package theme

import (
	"testing"

	"github.com/numview/numview/pkg/view"
)

func TestDefault(t *testing.T) {
	th := Default()

	if th.Font.Family != "Inter" {
		t.Errorf("Font.Family = %q, want Inter", th.Font.Family)
	}
	if th.Animation.DurationMS != 700 || th.Animation.Easing != "easeOutQuart" {
		t.Errorf("Animation = %+v", th.Animation)
	}
	if th.Chart.Width <= 0 || th.Chart.Height <= 0 {
		t.Errorf("Chart = %+v, want positive size", th.Chart)
	}
	for _, c := range []view.Color{view.Blue, view.Green, view.Orange, view.Red, view.Purple} {
		if _, ok := th.Palette[string(c)]; !ok {
			t.Errorf("palette missing %q", c)
		}
	}
	if Default() != th {
		t.Error("Default() should return the same theme")
	}
}

func TestSwatch(t *testing.T) {
	th := Default()

	tests := []struct {
		color view.Color
		want  string
	}{
		{view.Blue, "#007aff"},
		{view.Orange, "#ff9f0a"},
		{view.Color("teal"), th.Text.Muted},
		{"", th.Text.Muted},
	}
	for _, tt := range tests {
		if got := th.ColorOf(tt.color); got != tt.want {
			t.Errorf("ColorOf(%q) = %q, want %q", tt.color, got, tt.want)
		}
	}

	if got := th.Swatch(view.Blue).Background(); got != "rgba(0,122,255,0.1)" {
		t.Errorf("Background() = %q", got)
	}
	if got := th.Swatch(view.Orange).Background(); got != "rgba(255,159,10,0.15)" {
		t.Errorf("Background() = %q", got)
	}
}

func TestToneColor(t *testing.T) {
	th := Default()
	if got := th.ToneColor(view.ToneSuccess); got != "#34c759" {
		t.Errorf("success = %q", got)
	}
	if got := th.ToneColor(view.ToneDanger); got != "#ff3b30" {
		t.Errorf("danger = %q", got)
	}
	if got := th.ToneColor(view.ToneNeutral); got != th.Text.Title {
		t.Errorf("neutral = %q", got)
	}
}

func TestLoadRejectsBadColor(t *testing.T) {
	doc := `
[text]
title = "#1d1d1f"
muted = "#6e6e73"
tick = "#aeaeb2"
grid = "#000"
error = "#ff3b30"

[palette.blue]
border = "not-a-color"
`
	if _, err := Load([]byte(doc)); err == nil {
		t.Error("Load() error = nil, want invalid color")
	}
	if _, err := Load([]byte("[font\n")); err == nil {
		t.Error("Load() error = nil, want decode error")
	}
}

func TestRGB(t *testing.T) {
	tests := []struct {
		in      string
		r, g, b uint8
		wantErr bool
	}{
		{"#007aff", 0, 122, 255, false},
		{"ff3b30", 255, 59, 48, false},
		{"#fff", 255, 255, 255, false},
		{"#12345", 0, 0, 0, true},
		{"#gggggg", 0, 0, 0, true},
	}
	for _, tt := range tests {
		r, g, b, err := RGB(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("RGB(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if r != tt.r || g != tt.g || b != tt.b {
			t.Errorf("RGB(%q) = %d,%d,%d", tt.in, r, g, b)
		}
	}
}
