// Package weekview turns a week of journal records into a renderable scene:
// seven day columns against an hour axis, populated with work and exercise
// blocks, medication dose markers, note cartouches and a per-day summary
// bandeau. The scene is a passive description in day/hour coordinates;
// drawing surfaces (SVG, terminal) consume it without further derivation.
package weekview

import "time"

// Align controls horizontal text anchoring within a primitive.
type Align int

const (
	AlignStart Align = iota
	AlignCenter
)

// Primitive is one drawable element of a scene. Coordinates are in scene
// space: x in [0,7) with one unit per day column (Monday=0), y in hours of
// day with the axis inverted (smaller hour at the top).
type Primitive interface {
	primitive()
}

// FilledRect is a filled rectangle, optionally with a centered label.
// Interval blocks use partial opacity so overlapping elements stay legible.
type FilledRect struct {
	X0, Y0, X1, Y1 float64
	ColorKey       string
	Alpha          float64
	Label          string
}

// Line is a straight stroke, used for grid lines and dose tick lines.
type Line struct {
	X0, Y0, X1, Y1 float64
	ColorKey       string
	Width          float64
}

// PointTag is an opaque labeled tag box centered vertically on Hour,
// marking a point-in-time event such as a medication intake.
type PointTag struct {
	X0, X1   float64
	Hour     float64
	Height   float64
	ColorKey string
	Label    string
}

// TextBox is a text annotation. When Boxed, the text sits in an outlined
// box spanning [X0,X1] horizontally with the given Height centered on Y.
type TextBox struct {
	X, Y   float64
	Text   string
	Align  Align
	Boxed  bool
	X0, X1 float64
	Height float64
}

func (FilledRect) primitive() {}
func (Line) primitive()       {}
func (PointTag) primitive()   {}
func (TextBox) primitive()    {}

// Tick is one axis tick position with its label.
type Tick struct {
	Pos   float64
	Label string
}

// DayHeader labels one of the seven day columns.
type DayHeader struct {
	Date  time.Time
	Label string
}

// Scene is the complete weekly layout. Primitives are ordered back to
// front: grid, interval blocks, dose markers, cartouches, bandeau. Later
// elements occlude earlier ones where they overlap; there is deliberately
// no collision resolution beyond this fixed stacking.
type Scene struct {
	Title            string
	Days             [7]DayHeader
	HourMin, HourMax int
	XTicks, YTicks   []Tick
	Primitives       []Primitive
}

// Config holds the tunable parts of the scene geometry. The per-element
// margins are fixed constants: they are a visual contract, not knobs.
type Config struct {
	HourMin, HourMax int
}

// DefaultConfig returns the standard 06:00-24:00 visible range.
func DefaultConfig() Config {
	return Config{HourMin: 6, HourMax: 24}
}
