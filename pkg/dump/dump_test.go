package dump

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/figmajson/pkg/errors"
	"github.com/matzehuels/figmajson/pkg/host"
	"github.com/matzehuels/figmajson/pkg/host/memhost"
	"github.com/matzehuels/figmajson/pkg/observability"
	"github.com/matzehuels/figmajson/pkg/scene"
)

func load(t *testing.T, snapshot string) *memhost.Document {
	t.Helper()
	var s memhost.Snapshot
	if err := json.Unmarshal([]byte(snapshot), &s); err != nil {
		t.Fatalf("Unmarshal snapshot: %v", err)
	}
	d, err := memhost.FromSnapshot(&s)
	if err != nil {
		t.Fatalf("FromSnapshot: %v", err)
	}
	return d
}

func roots(d *memhost.Document) []host.Node {
	return d.CurrentPage().Children()
}

func TestDumpSingleRectangle(t *testing.T) {
	d := load(t, `{"pages":[{"name":"P","children":[{"type":"RECTANGLE","id":"1:1"}]}]}`)

	doc, err := Dump(context.Background(), d, roots(d), DefaultOptions())
	if err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if len(doc.Objects) != 1 {
		t.Fatalf("objects = %d, want 1", len(doc.Objects))
	}
	rect := doc.Objects[0]
	if rect.Type != scene.TypeRectangle || rect.Width() != 100 || rect.Height() != 100 {
		t.Errorf("rect = %s %vx%v", rect.Type, rect.Width(), rect.Height())
	}
	if rect.ID() != "1:1" {
		t.Errorf("id = %q, want 1:1", rect.ID())
	}
	for _, f := range []string{"parent", "removed", "absoluteBoundingBox", "fillGeometry", "strokeGeometry", "relativeTransform", "fillStyleId", "strokeStyleId"} {
		if _, ok := rect.Fields[f]; ok {
			t.Errorf("field %q should not be serialized", f)
		}
	}
	if _, ok := rect.Fields["fills"]; !ok {
		t.Error("fills should be serialized")
	}
	if len(doc.Components) != 0 || len(doc.ComponentSets) != 0 || len(doc.Styles) != 0 || len(doc.Images) != 0 {
		t.Errorf("side tables should be empty: %+v", doc)
	}
}

func TestDumpVisibility(t *testing.T) {
	d := load(t, `{"pages":[{"name":"P","children":[
		{"type":"FRAME","id":"1:1","children":[
			{"type":"RECTANGLE","id":"1:2"},
			{"type":"RECTANGLE","id":"1:3","opacity":0.0005},
			{"type":"RECTANGLE","id":"1:4","visible":false}
		]},
		{"type":"FRAME","id":"1:5","visible":false,"children":[{"type":"RECTANGLE","id":"1:6"}]}
	]}]}`)

	tests := []struct {
		name      string
		skip      bool
		wantRoots int
		wantKids  int
	}{
		{"skip invisible", true, 1, 1},
		{"keep invisible", false, 2, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.SkipInvisibleNodes = tt.skip
			doc, err := Dump(context.Background(), d, roots(d), opts)
			if err != nil {
				t.Fatalf("Dump: %v", err)
			}
			if len(doc.Objects) != tt.wantRoots {
				t.Fatalf("objects = %d, want %d", len(doc.Objects), tt.wantRoots)
			}
			if got := len(doc.Objects[0].Children); got != tt.wantKids {
				t.Errorf("children = %d, want %d", got, tt.wantKids)
			}
			if tt.skip && doc.Objects[0].Find("1:6") != nil {
				t.Error("descendant of an invisible root should be absent")
			}
		})
	}
}

func TestDumpMixedSentinel(t *testing.T) {
	d := load(t, `{"pages":[{"name":"P","children":[
		{"type":"TEXT","id":"1:1","characters":"ab","fontName":"__Symbol(figma.mixed)__","fontSize":"__Symbol(figma.mixed)__"}
	]}]}`)

	doc, err := Dump(context.Background(), d, roots(d), DefaultOptions())
	if err != nil {
		t.Fatalf("Dump: %v", err)
	}
	text := doc.Objects[0]
	for _, f := range []string{"fontName", "fontSize"} {
		if text.Fields[f] != scene.MixedValue {
			t.Errorf("%s = %v, want sentinel", f, text.Fields[f])
		}
	}
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(data), `"fontSize":"__Symbol(figma.mixed)__"`) {
		t.Errorf("JSON should carry the sentinel: %s", data)
	}
}

func TestDumpGeometry(t *testing.T) {
	d := load(t, `{"pages":[{"name":"P","children":[{"type":"RECTANGLE","id":"1:1"}]}]}`)
	opts := DefaultOptions()
	opts.Geometry = "paths"

	doc, err := Dump(context.Background(), d, roots(d), opts)
	if err != nil {
		t.Fatalf("Dump: %v", err)
	}
	for _, f := range []string{"fillGeometry", "strokeGeometry", "relativeTransform"} {
		if _, ok := doc.Objects[0].Fields[f]; !ok {
			t.Errorf("field %q should be serialized with geometry=paths", f)
		}
	}

	opts.Geometry = "bezier"
	if _, err := Dump(context.Background(), d, roots(d), opts); !errors.Is(err, errors.ErrCodeInvalidGeometry) {
		t.Errorf("Dump(geometry=bezier) error = %v, want INVALID_GEOMETRY", err)
	}
}

func TestDumpStyles(t *testing.T) {
	d := load(t, `{
		"pages":[{"name":"P","children":[
			{"type":"RECTANGLE","id":"1:1","fillStyleId":"S:1","strokeStyleId":"S:missing"}
		]}],
		"styles":[{"id":"S:1","key":"k1","name":"Brand/Red","styleType":"PAINT"}]
	}`)

	opts := DefaultOptions()
	doc, err := Dump(context.Background(), d, roots(d), opts)
	if err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if len(doc.Styles) != 0 {
		t.Errorf("styles = %v, want none without Styles", doc.Styles)
	}

	opts.Styles = true
	doc, err = Dump(context.Background(), d, roots(d), opts)
	if err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if got := doc.Styles["S:1"]; got.Key != "k1" || got.StyleType != scene.StylePaint {
		t.Errorf("styles[S:1] = %+v", got)
	}
	if _, ok := doc.Styles["S:missing"]; ok {
		t.Error("missing style should not be recorded")
	}
	if doc.Objects[0].Fields["fillStyleId"] != "S:1" {
		t.Errorf("fillStyleId = %v", doc.Objects[0].Fields["fillStyleId"])
	}
}

func TestDumpImages(t *testing.T) {
	png := []byte("\x89PNG fake")
	hash := memhost.ImageHash(png)
	d := memhost.New()
	d.AddImage(png)
	rect, _ := d.Create(scene.TypeRectangle)
	paints := []any{map[string]any{"type": "IMAGE", "imageHash": hash, "scaleMode": "FILL"}}
	if err := d.SetField(rect, "fills", paints); err != nil {
		t.Fatalf("SetField: %v", err)
	}

	opts := DefaultOptions()
	doc, err := Dump(context.Background(), d, roots(d), opts)
	if err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if len(doc.Images) != 0 {
		t.Errorf("images = %d, want 0 without Images", len(doc.Images))
	}

	opts.Images = true
	doc, err = Dump(context.Background(), d, roots(d), opts)
	if err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if string(doc.Images[hash]) != string(png) {
		t.Errorf("images[%s] = %q, want %q", hash, doc.Images[hash], png)
	}

	missing, _ := d.Create(scene.TypeEllipse)
	_ = d.SetField(missing, "fills", []any{map[string]any{"type": "IMAGE", "imageHash": "deadbeef"}})
	doc, err = Dump(context.Background(), d, roots(d), opts)
	if !errors.Is(err, errors.ErrCodeImageNotFound) {
		t.Fatalf("Dump error = %v, want IMAGE_NOT_FOUND", err)
	}
	if !strings.Contains(err.Error(), "deadbeef") {
		t.Errorf("error %q should name the hash", err)
	}
	if doc != nil {
		t.Error("a failed dump should not return a document")
	}
}

func TestDumpInstance(t *testing.T) {
	d := load(t, `{"pages":[{"name":"P","children":[
		{"type":"COMPONENT_SET","id":"5:0","name":"Button","key":"set-key","children":[
			{"type":"COMPONENT","id":"5:1","name":"State=Default","key":"btn-key","description":"Primary"}
		]},
		{"type":"INSTANCE","id":"6:1","componentId":"5:1"}
	]}]}`)
	inst, _ := d.NodeByID("6:1")

	doc, err := Dump(context.Background(), d, []host.Node{inst}, DefaultOptions())
	if err != nil {
		t.Fatalf("Dump: %v", err)
	}
	obj := doc.Objects[0]
	if obj.ComponentID() != "5:1" {
		t.Errorf("componentId = %q, want 5:1", obj.ComponentID())
	}
	if _, ok := obj.Fields["mainComponent"]; ok {
		t.Error("mainComponent should be rewritten to componentId")
	}
	c, ok := doc.Components["5:1"]
	if !ok {
		t.Fatal("component missing from side table")
	}
	if c.Key != "btn-key" || c.Description != "Primary" || c.ComponentSetID != "5:0" {
		t.Errorf("component = %+v", c)
	}
	if c.DocumentationLinks == nil {
		t.Error("documentationLinks should be an empty list, not nil")
	}
	if s := doc.ComponentSets["5:0"]; s.Key != "set-key" || s.Name != "Button" {
		t.Errorf("component set = %+v", s)
	}
}

type fakeNode struct {
	id     string
	fields map[string]any
}

func (f *fakeNode) ID() string            { return f.id }
func (f *fakeNode) Type() scene.NodeType  { return scene.TypeRectangle }
func (f *fakeNode) Children() []host.Node { return nil }
func (f *fakeNode) Parent() host.Node     { return nil }

func (f *fakeNode) Field(name string) (any, bool) {
	v, ok := f.fields[name]
	return v, ok
}

func TestValueConversion(t *testing.T) {
	d := &dumper{opts: Options{SkipInvisibleNodes: true}}
	visible := &fakeNode{id: "1", fields: map[string]any{"visible": true, "opacity": 1.0}}
	hidden := &fakeNode{id: "2", fields: map[string]any{"visible": false, "opacity": 1.0}}

	tests := []struct {
		name string
		in   any
		want string
		keep bool
	}{
		{"nil", nil, `null`, true},
		{"number", 1.5, `1.5`, true},
		{"marker", scene.Mixed, `"__Symbol(figma.mixed)__"`, true},
		{"node", visible, `"1"`, true},
		{"node list", []any{visible, hidden, 2.0}, `["1",2]`, true},
		{"typed node list", []host.Node{hidden, visible}, `["1"]`, true},
		{"nested", map[string]any{"a": []any{scene.Mixed}, "f": func() {}}, `{"a":["__Symbol(figma.mixed)__"]}`, true},
		{"function", func() {}, ``, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, keep := d.value(tt.in)
			if keep != tt.keep {
				t.Fatalf("keep = %v, want %v", keep, tt.keep)
			}
			if !keep {
				return
			}
			data, err := json.Marshal(got)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("value = %s, want %s", data, tt.want)
			}
		})
	}
}

func TestVisible(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]any
		want   bool
	}{
		{"visible", map[string]any{"visible": true, "opacity": 1.0, "removed": false}, true},
		{"hidden", map[string]any{"visible": false, "opacity": 1.0}, false},
		{"transparent", map[string]any{"visible": true, "opacity": 0.001}, false},
		{"faint", map[string]any{"visible": true, "opacity": 0.002}, true},
		{"removed", map[string]any{"visible": true, "opacity": 1.0, "removed": true}, false},
		{"no visibility fields", map[string]any{}, true},
	}
	for _, tt := range tests {
		if got := Visible(&fakeNode{fields: tt.fields}); got != tt.want {
			t.Errorf("%s: Visible = %v, want %v", tt.name, got, tt.want)
		}
	}
}

type countingHooks struct {
	observability.NoopDumpHooks
	mu       sync.Mutex
	started  int
	finished int
	lastErr  error
}

func (h *countingHooks) OnDumpStart(context.Context, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.started++
}

func (h *countingHooks) OnDumpComplete(_ context.Context, _, _ int, _ time.Duration, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.finished++
	h.lastErr = err
}

func TestDumpHooks(t *testing.T) {
	hooks := &countingHooks{}
	observability.SetDumpHooks(hooks)
	defer observability.Reset()

	d := memhost.New()
	if _, err := Dump(context.Background(), d, roots(d), DefaultOptions()); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if hooks.started != 1 || hooks.finished != 1 || hooks.lastErr != nil {
		t.Errorf("hooks = %d/%d (%v), want 1/1", hooks.started, hooks.finished, hooks.lastErr)
	}
}
