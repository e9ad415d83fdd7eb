package resolve

import (
	"context"
	"sync"
	"testing"

	"github.com/matzehuels/figmajson/pkg/errors"
	"github.com/matzehuels/figmajson/pkg/host/memhost"
	"github.com/matzehuels/figmajson/pkg/scene"
)

// fontLoader loads the fonts in ok and records every attempt.
type fontLoader struct {
	mu       sync.Mutex
	ok       map[scene.FontName]bool
	attempts []scene.FontName
}

func (l *fontLoader) LoadFont(_ context.Context, f scene.FontName) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.attempts = append(l.attempts, f)
	if l.ok[f] {
		return nil
	}
	return errors.New(errors.ErrCodeFontNotFound, "no font %s", f)
}

var (
	interRegular = scene.FontName{Family: "Inter", Style: "Regular"}
	interBold    = scene.FontName{Family: "Inter", Style: "Bold"}
	roboto       = scene.FontName{Family: "Roboto", Style: "Regular"}
	robotoBold   = scene.FontName{Family: "Roboto", Style: "Bold"}
	robotoWide   = scene.FontName{Family: "Roboto", Style: "Condensed Oblique"}
)

func TestFontReplacement(t *testing.T) {
	tests := []struct {
		missing scene.FontName
		want    scene.FontName
	}{
		{robotoBold, interBold},
		{roboto, interRegular},
		{robotoWide, interRegular},
	}
	for _, tt := range tests {
		got, ok := FontReplacement(tt.missing, FallbackFonts)
		if !ok || got != tt.want {
			t.Errorf("FontReplacement(%v) = %v, %v, want %v", tt.missing, got, ok, tt.want)
		}
	}
	if _, ok := FontReplacement(roboto, nil); ok {
		t.Error("FontReplacement with no fallbacks should report false")
	}
}

func TestLoadFonts(t *testing.T) {
	loader := &fontLoader{ok: map[scene.FontName]bool{interRegular: true, interBold: true}}
	requested := []scene.FontName{interRegular, robotoBold, robotoWide}

	res, err := LoadFonts(context.Background(), loader, requested, FallbackFonts, nil)
	if err != nil {
		t.Fatalf("LoadFonts: %v", err)
	}
	if len(res.Available) != 1 || res.Available[0] != interRegular {
		t.Errorf("Available = %v", res.Available)
	}
	if len(res.Missing) != 2 || res.Missing[0] != robotoBold || res.Missing[1] != robotoWide {
		t.Errorf("Missing = %v, want request order", res.Missing)
	}
	want := map[string]string{
		"Roboto|Bold":              "Inter|Bold",
		"Roboto|Condensed Oblique": "Inter|Regular",
	}
	for k, v := range want {
		if res.Replacements[k] != v {
			t.Errorf("Replacements[%s] = %q, want %q", k, res.Replacements[k], v)
		}
	}
	if _, ok := res.Replacements["Inter|Regular"]; ok {
		t.Error("available fonts should not be replaced")
	}
	if got := res.Report.Count(StatusSubstituted); got != 2 {
		t.Errorf("substituted = %d, want 2", got)
	}
	if res.Report.Outcomes[0].Subject != "Inter|Regular" {
		t.Errorf("outcomes should follow request order: %v", res.Report.Outcomes)
	}
}

func TestLoadFontsReplacementFails(t *testing.T) {
	loader := &fontLoader{ok: map[scene.FontName]bool{}}
	res, err := LoadFonts(context.Background(), loader, []scene.FontName{robotoBold}, FallbackFonts, nil)
	if err != nil {
		t.Fatalf("LoadFonts: %v", err)
	}
	if got := res.Replacements["Roboto|Bold"]; got != "Inter|Regular" {
		t.Errorf("replacement = %q, want first fallback", got)
	}
	if res.Report.OK() {
		t.Error("report should contain the failure")
	}
	if len(loader.attempts) != 2 {
		t.Errorf("attempts = %v, want the font and its replacement", loader.attempts)
	}
}

func TestLoadFontsInvalidName(t *testing.T) {
	loader := &fontLoader{}
	_, err := LoadFonts(context.Background(), loader, []scene.FontName{{Family: "A|B", Style: "Regular"}}, FallbackFonts, nil)
	if !errors.Is(err, errors.ErrCodeInvalidFont) {
		t.Errorf("error = %v, want INVALID_FONT", err)
	}
	if len(loader.attempts) != 0 {
		t.Error("nothing should be loaded when a name cannot be encoded")
	}
}

func TestLoadComponents(t *testing.T) {
	ctx := context.Background()
	d := memhost.New()

	lib := scene.NewNode(scene.TypeComponent)
	lib.Set("id", "L:1")
	lib.Set("key", "remote-key")
	if _, err := d.AddLibraryComponent(lib); err != nil {
		t.Fatalf("AddLibraryComponent: %v", err)
	}
	local, _ := d.Create(scene.TypeComponent)

	components := scene.ComponentMap{
		"L:1":      {Key: "remote-key", Name: "Remote"},
		local.ID(): {Key: "unpublished", Name: "Local"},
		"gone:1":   {Key: "missing", Name: "Gone"},
		"nokey:1":  {Name: "No key"},
	}
	res := LoadComponents(ctx, d, components, nil)

	if c := res.Available["L:1"]; c == nil || c.ID() != "L:1" {
		t.Errorf("L:1 = %v, want library component", c)
	}
	if c := res.Available[local.ID()]; c == nil || c.ID() != local.ID() {
		t.Errorf("local = %v, want local component", c)
	}
	if _, ok := res.Available["gone:1"]; ok {
		t.Error("missing component should be absent")
	}
	if got := res.Report.Count(StatusLoaded); got != 1 {
		t.Errorf("loaded = %d, want 1", got)
	}
	if got := res.Report.Count(StatusLocal); got != 1 {
		t.Errorf("local = %d, want 1", got)
	}
	failed := res.Report.Failed()
	if len(failed) != 2 {
		t.Fatalf("failed = %v, want 2", failed)
	}
	for _, f := range failed {
		if !errors.Is(f.Err, errors.ErrCodeComponentNotFound) {
			t.Errorf("%s error = %v, want COMPONENT_NOT_FOUND", f.Subject, f.Err)
		}
	}
}

func TestLoadStyles(t *testing.T) {
	d := memhost.New()
	d.AddLibraryStyle(memhost.NewStyle("S:1", scene.StyleInfo{Key: "k1", Name: "Red", StyleType: scene.StylePaint}))

	report := LoadStyles(context.Background(), d, scene.StyleMap{
		"S:1": {Key: "k1", Name: "Red"},
		"S:2": {Key: "k2", Name: "Blue"},
		"S:3": {Name: "Keyless"},
	}, nil)

	want := []Status{StatusLoaded, StatusFailed, StatusSkipped}
	for i, o := range report.Outcomes {
		if o.Status != want[i] {
			t.Errorf("outcome %d = %v, want %s", i, o, want[i])
		}
	}
	if _, ok := d.StyleByID("S:1"); !ok {
		t.Error("imported style should be available by id")
	}
}
