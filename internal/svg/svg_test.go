package svg

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aberthier/semainier/internal/journal"
	"github.com/aberthier/semainier/internal/weekview"
)

func sampleScene() weekview.Scene {
	r := journal.NewRecord(time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC))
	r.Work.Start = "09:00"
	r.Work.LunchBreakStart = "12:30"
	r.Doses[0].Time = "08:00"
	r.Doses[0].DoseMG = 20
	r.Doses[0].Note = "good <morning>"
	r.Sleep.Duration = "7h45"
	return weekview.RenderWeek([]journal.Record{r}, r.Date, weekview.DefaultConfig())
}

// ============================================================
// Style
// ============================================================

func TestDefaultStyle(t *testing.T) {
	s := DefaultStyle()
	if s.Layout.Width <= 0 || s.Layout.Height <= 0 {
		t.Fatal("default canvas has no size")
	}
	for _, key := range []string{"work", "exercise", "dose", "grid-day", "grid-hour"} {
		if s.Colors.Keys[key] == "" {
			t.Fatalf("default palette missing key %q", key)
		}
	}
}

func TestLoadStyleEmptyPath(t *testing.T) {
	s, err := LoadStyle("")
	if err != nil {
		t.Fatal(err)
	}
	if s.Layout.Width != DefaultStyle().Layout.Width {
		t.Fatal("empty path should yield defaults")
	}
}

func TestLoadStyleOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "style.yaml")
	content := "layout:\n  width: 800\ncolors:\n  keys:\n    work: \"#000000\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadStyle(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.Layout.Width != 800 {
		t.Fatalf("width = %d, want 800", s.Layout.Width)
	}
	if s.Colors.Keys["work"] != "#000000" {
		t.Fatalf("work color not overridden: %q", s.Colors.Keys["work"])
	}
	// Untouched fields keep defaults.
	if s.Layout.Height != DefaultStyle().Layout.Height {
		t.Fatal("height should keep its default")
	}
	if s.Colors.Keys["dose"] == "" {
		t.Fatal("default palette entries should survive the overlay")
	}
}

func TestLoadStyleMissingFile(t *testing.T) {
	if _, err := LoadStyle("/nonexistent/style.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadStyleBadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	os.WriteFile(path, []byte("layout: [not a map"), 0o644)
	if _, err := LoadStyle(path); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}

// ============================================================
// Writer
// ============================================================

func TestWriteProducesSVG(t *testing.T) {
	var b strings.Builder
	if err := Write(&b, sampleScene(), DefaultStyle()); err != nil {
		t.Fatal(err)
	}
	out := b.String()

	if !strings.HasPrefix(out, `<?xml version="1.0"`) {
		t.Fatal("missing XML prolog")
	}
	if !strings.Contains(out, "<svg") || !strings.Contains(out, "</svg>") {
		t.Fatal("not an SVG document")
	}
	if !strings.Contains(out, "Work morning") {
		t.Fatal("work block label missing")
	}
	if !strings.Contains(out, "20 mg") {
		t.Fatal("dose tag label missing")
	}
	if !strings.Contains(out, "Week of 10/03/2025 to 16/03/2025") {
		t.Fatal("title missing")
	}
}

func TestWriteEscapesText(t *testing.T) {
	var b strings.Builder
	if err := Write(&b, sampleScene(), DefaultStyle()); err != nil {
		t.Fatal(err)
	}
	out := b.String()
	if strings.Contains(out, "<morning>") {
		t.Fatal("raw angle brackets leaked into markup")
	}
	if !strings.Contains(out, "good &lt;morning&gt;") {
		t.Fatal("note text missing or not escaped")
	}
}

func TestWriteUsesStyleColors(t *testing.T) {
	style := DefaultStyle()
	style.Colors.Keys["work"] = "#123456"

	var b strings.Builder
	if err := Write(&b, sampleScene(), style); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(b.String(), "#123456") {
		t.Fatal("work color key not applied")
	}
}

func TestWriteEmptyScene(t *testing.T) {
	s := weekview.RenderWeek(nil, time.Now(), weekview.DefaultConfig())
	var b strings.Builder
	if err := Write(&b, s, DefaultStyle()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(b.String(), "</svg>") {
		t.Fatal("empty scene should still produce a document")
	}
}
