package svg

import (
	"fmt"
	"io"
	"strings"

	"github.com/aberthier/semainier/internal/weekview"
)

// canvas maps scene coordinates (day units, hours) onto the pixel plot
// area. The hour axis is inverted: the earliest visible hour sits at the
// top of the canvas.
type canvas struct {
	style            Style
	plotX, plotY     float64
	plotW, plotH     float64
	hourMin, hourMax float64
}

func newCanvas(style Style, s weekview.Scene) canvas {
	return canvas{
		style:   style,
		plotX:   float64(style.Layout.MarginLeft),
		plotY:   float64(style.Layout.MarginTop),
		plotW:   float64(style.Layout.Width - style.Layout.MarginLeft - style.Layout.MarginRight),
		plotH:   float64(style.Layout.Height - style.Layout.MarginTop - style.Layout.MarginBottom),
		hourMin: float64(s.HourMin),
		hourMax: float64(s.HourMax),
	}
}

func (c canvas) x(sceneX float64) float64 {
	return c.plotX + sceneX/7*c.plotW
}

func (c canvas) y(hour float64) float64 {
	return c.plotY + (hour-c.hourMin)/(c.hourMax-c.hourMin)*c.plotH
}

// Write renders the scene as a standalone SVG document. The scene's
// primitive order is preserved, so its z-order contract carries through.
func Write(w io.Writer, s weekview.Scene, style Style) error {
	var b strings.Builder
	c := newCanvas(style, s)

	fmt.Fprintf(&b, `<?xml version="1.0" encoding="UTF-8"?>
<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">
<rect width="100%%" height="100%%" fill="%s"/>
`, style.Layout.Width, style.Layout.Height, style.Colors.Background)

	// Clip day content to the plot area so off-range hours do not spill
	// into the margins.
	fmt.Fprintf(&b, `<defs><clipPath id="plot"><rect x="%.1f" y="%.1f" width="%.1f" height="%.1f"/></clipPath></defs>
`, c.plotX, c.plotY, c.plotW, c.plotH)

	writeTitle(&b, c, s.Title)
	writeAxes(&b, c, s)

	b.WriteString(`<g clip-path="url(#plot)">` + "\n")
	for _, p := range s.Primitives {
		switch v := p.(type) {
		case weekview.Line:
			writeLine(&b, c, v)
		case weekview.FilledRect:
			writeRect(&b, c, v)
		case weekview.PointTag:
			writeTag(&b, c, v)
		case weekview.TextBox:
			writeText(&b, c, v)
		}
	}
	b.WriteString("</g>\n</svg>\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func writeTitle(b *strings.Builder, c canvas, title string) {
	fmt.Fprintf(b, `<text x="%.1f" y="%.1f" font-family="%s" font-size="%d" font-weight="bold" fill="%s" text-anchor="middle">%s</text>
`, c.plotX+c.plotW/2, c.plotY-30, c.style.Font.Family, c.style.Font.Size+4, c.style.Colors.Text, escape(title))
}

func writeAxes(b *strings.Builder, c canvas, s weekview.Scene) {
	for _, t := range s.XTicks {
		fmt.Fprintf(b, `<text x="%.1f" y="%.1f" font-family="%s" font-size="%d" fill="%s" text-anchor="middle">%s</text>
`, c.x(t.Pos), c.plotY-8, c.style.Font.Family, c.style.Font.Size, c.style.Colors.Text, escape(t.Label))
	}
	for _, t := range s.YTicks {
		fmt.Fprintf(b, `<text x="%.1f" y="%.1f" font-family="%s" font-size="%d" fill="%s" text-anchor="end">%s</text>
`, c.plotX-8, c.y(t.Pos)+4, c.style.Font.Family, c.style.Font.Size, c.style.Colors.Text, escape(t.Label))
	}
}

func writeLine(b *strings.Builder, c canvas, l weekview.Line) {
	fmt.Fprintf(b, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="%.1f"/>
`, c.x(l.X0), c.y(l.Y0), c.x(l.X1), c.y(l.Y1), c.style.colorFor(l.ColorKey), l.Width)
}

func writeRect(b *strings.Builder, c canvas, r weekview.FilledRect) {
	color := c.style.colorFor(r.ColorKey)
	fmt.Fprintf(b, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="%s" fill-opacity="%.2f"/>
`, c.x(r.X0), c.y(r.Y0), c.x(r.X1)-c.x(r.X0), c.y(r.Y1)-c.y(r.Y0), color, color, r.Alpha)
	if r.Label != "" {
		fmt.Fprintf(b, `<text x="%.1f" y="%.1f" font-family="%s" font-size="%d" fill="%s" text-anchor="middle">%s</text>
`, (c.x(r.X0)+c.x(r.X1))/2, (c.y(r.Y0)+c.y(r.Y1))/2+4, c.style.Font.Family, c.style.Font.Size-3, color, escape(r.Label))
	}
}

func writeTag(b *strings.Builder, c canvas, t weekview.PointTag) {
	color := c.style.colorFor(t.ColorKey)
	y0 := c.y(t.Hour - t.Height/2)
	y1 := c.y(t.Hour + t.Height/2)
	fmt.Fprintf(b, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" fill-opacity="0.95"/>
`, c.x(t.X0), y0, c.x(t.X1)-c.x(t.X0), y1-y0, color)
	fmt.Fprintf(b, `<text x="%.1f" y="%.1f" font-family="%s" font-size="%d" fill="#ffffff" text-anchor="middle">%s</text>
`, (c.x(t.X0)+c.x(t.X1))/2, c.y(t.Hour)+3, c.style.Font.Family, c.style.Font.Size-4, escape(t.Label))
}

func writeText(b *strings.Builder, c canvas, t weekview.TextBox) {
	if t.Boxed {
		y0 := c.y(t.Y - t.Height/2)
		y1 := c.y(t.Y + t.Height/2)
		fmt.Fprintf(b, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="#ffffff" stroke="#000000" stroke-width="0.7" fill-opacity="0.9"/>
`, c.x(t.X0), y0, c.x(t.X1)-c.x(t.X0), y1-y0)
	}

	anchor := "start"
	if t.Align == weekview.AlignCenter {
		anchor = "middle"
	}
	fmt.Fprintf(b, `<text x="%.1f" y="%.1f" font-family="%s" font-size="%d" fill="%s" text-anchor="%s">%s</text>
`, c.x(t.X), c.y(t.Y)+3, c.style.Font.Family, c.style.Font.Size-3, c.style.Colors.Text, anchor, escape(t.Text))
}

func escape(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}
