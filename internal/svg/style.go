// Package svg renders a weekview.Scene to an SVG document. It owns only
// presentation: canvas size, fonts and the color assigned to each scene
// color key. Geometry stays in scene coordinates and is mapped to pixels
// here.
package svg

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Style is the visual configuration for SVG output. It maps directly to an
// optional YAML style file; absent fields keep their defaults.
type Style struct {
	Layout struct {
		Width        int `yaml:"width"`
		Height       int `yaml:"height"`
		MarginTop    int `yaml:"margin_top"`
		MarginBottom int `yaml:"margin_bottom"`
		MarginLeft   int `yaml:"margin_left"`
		MarginRight  int `yaml:"margin_right"`
	} `yaml:"layout"`
	Font struct {
		Family string `yaml:"family"`
		Size   int    `yaml:"size"`
	} `yaml:"font"`
	Colors struct {
		Background string            `yaml:"background"`
		Text       string            `yaml:"text"`
		Keys       map[string]string `yaml:"keys"`
	} `yaml:"colors"`
}

// DefaultStyle returns a 1600x900 canvas with the journal's standard
// palette: red work blocks, green exercise, blue dose markers.
func DefaultStyle() Style {
	var s Style
	s.Layout.Width = 1600
	s.Layout.Height = 900
	s.Layout.MarginTop = 60
	s.Layout.MarginBottom = 40
	s.Layout.MarginLeft = 70
	s.Layout.MarginRight = 30
	s.Font.Family = "Arial, sans-serif"
	s.Font.Size = 12
	s.Colors.Background = "#ffffff"
	s.Colors.Text = "#333333"
	s.Colors.Keys = map[string]string{
		"work":      "#d62728",
		"exercise":  "#2ca02c",
		"dose":      "#1f77b4",
		"grid-day":  "#999999",
		"grid-hour": "#dddddd",
	}
	return s
}

// LoadStyle reads a YAML style file, falling back to defaults when the
// path is empty. Color keys are merged over the default palette so a style
// file may override a single color.
func LoadStyle(path string) (Style, error) {
	style := DefaultStyle()
	if path == "" {
		return style, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Style{}, fmt.Errorf("read style file: %w", err)
	}

	var overlay Style
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return Style{}, fmt.Errorf("parse style file: %w", err)
	}

	if overlay.Layout.Width > 0 {
		style.Layout.Width = overlay.Layout.Width
	}
	if overlay.Layout.Height > 0 {
		style.Layout.Height = overlay.Layout.Height
	}
	if overlay.Layout.MarginTop > 0 {
		style.Layout.MarginTop = overlay.Layout.MarginTop
	}
	if overlay.Layout.MarginBottom > 0 {
		style.Layout.MarginBottom = overlay.Layout.MarginBottom
	}
	if overlay.Layout.MarginLeft > 0 {
		style.Layout.MarginLeft = overlay.Layout.MarginLeft
	}
	if overlay.Layout.MarginRight > 0 {
		style.Layout.MarginRight = overlay.Layout.MarginRight
	}
	if overlay.Font.Family != "" {
		style.Font.Family = overlay.Font.Family
	}
	if overlay.Font.Size > 0 {
		style.Font.Size = overlay.Font.Size
	}
	if overlay.Colors.Background != "" {
		style.Colors.Background = overlay.Colors.Background
	}
	if overlay.Colors.Text != "" {
		style.Colors.Text = overlay.Colors.Text
	}
	for k, v := range overlay.Colors.Keys {
		style.Colors.Keys[k] = v
	}

	return style, nil
}

func (s Style) colorFor(key string) string {
	if c, ok := s.Colors.Keys[key]; ok {
		return c
	}
	return s.Colors.Text
}
