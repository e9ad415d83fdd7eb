package memhost

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/matzehuels/figmajson/pkg/errors"
	"github.com/matzehuels/figmajson/pkg/host"
	"github.com/matzehuels/figmajson/pkg/scene"
)

func mustCreate(t *testing.T, d *Document, typ scene.NodeType) host.Node {
	t.Helper()
	n, err := d.Create(typ)
	if err != nil {
		t.Fatalf("Create(%s): %v", typ, err)
	}
	return n
}

func TestCreateSeedsDefaults(t *testing.T) {
	d := New()
	n := mustCreate(t, d, scene.TypeRectangle)

	if n.Parent() == nil || n.Parent().ID() != d.CurrentPage().ID() {
		t.Error("created node should be on the current page")
	}
	if w, _ := n.Field("width"); w != 100.0 {
		t.Errorf("width = %v, want 100", w)
	}
	if name, _ := n.Field("name"); name != "Rectangle" {
		t.Errorf("name = %v, want Rectangle", name)
	}
	if removed, ok := n.Field("removed"); !ok || removed != false {
		t.Errorf("removed = %v, %v, want false, true", removed, ok)
	}

	if _, err := d.Create(scene.TypeGroup); !errors.Is(err, errors.ErrCodeUnsupportedNode) {
		t.Errorf("Create(GROUP) error = %v, want UNSUPPORTED_NODE", err)
	}
}

func TestSetFieldValidation(t *testing.T) {
	d := New()
	rect := mustCreate(t, d, scene.TypeRectangle)
	frame := mustCreate(t, d, scene.TypeFrame)

	tests := []struct {
		name    string
		node    host.Node
		field   string
		value   any
		wantErr bool
	}{
		{"plain field", rect, "name", "Box", false},
		{"paint list", rect, "fills", []any{}, false},
		{"read-only", rect, "width", 10.0, true},
		{"unknown field", rect, "layoutMode", "VERTICAL", true},
		{"mixed marker", rect, "opacity", scene.Mixed, true},
		{"mixed sentinel", rect, "opacity", scene.MixedValue, true},
		{"wrong type", rect, "visible", "yes", true},
		{"opacity range", rect, "opacity", 2.0, true},
		{"needs auto layout", frame, "itemReverseZIndex", true, true},
		{"bad layout mode", frame, "layoutMode", "DIAGONAL", true},
		{"layout mode", frame, "layoutMode", "VERTICAL", false},
		{"with auto layout", frame, "itemReverseZIndex", true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := d.SetField(tt.node, tt.field, tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SetField(%s) error = %v, wantErr %v", tt.field, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeHostRejected) {
				t.Errorf("error code = %v, want HOST_REJECTED", errors.GetCode(err))
			}
		})
	}
}

func TestTextNeedsLoadedFont(t *testing.T) {
	ctx := context.Background()
	d := New()
	text := mustCreate(t, d, scene.TypeText)

	if err := d.SetField(text, "characters", "hi"); err == nil {
		t.Fatal("setting characters before loading the font should fail")
	}
	if err := d.LoadFont(ctx, scene.FontName{Family: "Inter", Style: "Regular"}); err != nil {
		t.Fatalf("LoadFont: %v", err)
	}
	if err := d.SetField(text, "characters", "hi"); err != nil {
		t.Fatalf("SetField(characters): %v", err)
	}

	bold := map[string]any{"family": "Inter", "style": "Bold"}
	if err := d.SetField(text, "fontName", bold); err == nil {
		t.Error("assigning an unloaded font should fail")
	}
	if err := d.LoadFont(ctx, scene.FontName{Family: "Inter", Style: "Bold"}); err != nil {
		t.Fatalf("LoadFont: %v", err)
	}
	if err := d.SetField(text, "fontName", bold); err != nil {
		t.Fatalf("SetField(fontName): %v", err)
	}
	if f, _ := text.Field("fontName"); f != (scene.FontName{Family: "Inter", Style: "Bold"}) {
		t.Errorf("fontName = %v", f)
	}

	err := d.LoadFont(ctx, scene.FontName{Family: "Comic", Style: "Regular"})
	if !errors.Is(err, errors.ErrCodeFontNotFound) {
		t.Errorf("LoadFont(missing) error = %v, want FONT_NOT_FOUND", err)
	}
}

func TestResize(t *testing.T) {
	d := New()
	rect := mustCreate(t, d, scene.TypeRectangle)
	if err := d.Resize(rect, 40, 20, false); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if w, _ := rect.Field("width"); w != 40.0 {
		t.Errorf("width = %v, want 40", w)
	}
	if err := d.Resize(rect, 0, 20, true); err == nil {
		t.Error("Resize to zero width should fail")
	}
}

func TestGroupAndAppend(t *testing.T) {
	d := New()
	page := d.CurrentPage()
	a := mustCreate(t, d, scene.TypeRectangle)
	b := mustCreate(t, d, scene.TypeEllipse)
	_ = d.SetField(b, "x", 150.0)

	if _, err := d.Group(nil, page); err == nil {
		t.Error("Group(nil) should fail")
	}
	g, err := d.Group([]host.Node{a, b}, page)
	if err != nil {
		t.Fatalf("Group: %v", err)
	}
	if got := len(page.Children()); got != 1 {
		t.Errorf("page children = %d, want 1", got)
	}
	if got := len(g.Children()); got != 2 {
		t.Errorf("group children = %d, want 2", got)
	}
	if w, _ := g.Field("width"); w != 250.0 {
		t.Errorf("group width = %v, want 250", w)
	}

	rect := mustCreate(t, d, scene.TypeRectangle)
	if err := d.AppendChild(rect, g); err == nil {
		t.Error("appending to a leaf should fail")
	}
	frame := mustCreate(t, d, scene.TypeFrame)
	if err := d.AppendChild(frame, rect); err != nil {
		t.Fatalf("AppendChild: %v", err)
	}
	if rect.Parent().ID() != frame.ID() {
		t.Error("rect should be moved into the frame")
	}
	if err := d.AppendChild(rect, frame); err == nil {
		t.Error("appending a node below its own descendant should fail")
	}
}

func TestCreateInstance(t *testing.T) {
	d := New()
	comp := mustCreate(t, d, scene.TypeComponent)
	_ = d.SetField(comp, "name", "Button")
	label := mustCreate(t, d, scene.TypeRectangle)
	if err := d.AppendChild(comp, label); err != nil {
		t.Fatalf("AppendChild: %v", err)
	}
	d.mu.Lock()
	comp.(*Node).fields["componentPropertyDefinitions"] = map[string]any{
		"Show#1:0": map[string]any{"type": "BOOLEAN", "defaultValue": true},
	}
	d.mu.Unlock()

	c, ok := d.ComponentByID(comp.ID())
	if !ok {
		t.Fatal("ComponentByID should find the local component")
	}
	inst, err := d.CreateInstance(c)
	if err != nil {
		t.Fatalf("CreateInstance: %v", err)
	}
	if inst.Type() != scene.TypeInstance {
		t.Errorf("Type = %s, want INSTANCE", inst.Type())
	}
	kids := inst.Children()
	if len(kids) != 1 || kids[0].ID() != "I"+inst.ID()+";"+label.ID() {
		t.Errorf("instance children = %v", kids)
	}
	if main, _ := inst.Field("mainComponent"); main.(host.Node).ID() != comp.ID() {
		t.Errorf("mainComponent = %v", main)
	}

	if err := d.SetInstanceProperties(inst, map[string]any{"Show#1:0": false}); err != nil {
		t.Fatalf("SetInstanceProperties: %v", err)
	}
	props, _ := inst.Field("componentProperties")
	if v := props.(map[string]any)["Show#1:0"].(map[string]any)["value"]; v != false {
		t.Errorf("Show#1:0 = %v, want false", v)
	}
	if err := d.SetInstanceProperties(inst, map[string]any{"Nope": 1}); err == nil {
		t.Error("unknown component property should fail")
	}
}

func TestRegistries(t *testing.T) {
	ctx := context.Background()
	d := New()

	lib := scene.NewNode(scene.TypeComponent)
	lib.Set("id", "L:1")
	lib.Set("key", "lib-key")
	lib.Set("name", "Remote Button")
	if _, err := d.AddLibraryComponent(lib); err != nil {
		t.Fatalf("AddLibraryComponent: %v", err)
	}
	c, err := d.ImportComponentByKey(ctx, "lib-key")
	if err != nil {
		t.Fatalf("ImportComponentByKey: %v", err)
	}
	if m := c.Meta(); m.Name != "Remote Button" || !m.Remote {
		t.Errorf("Meta = %+v", m)
	}
	if _, ok := d.ComponentByID("L:1"); ok {
		t.Error("library components are not local")
	}
	if _, err := d.ImportComponentByKey(ctx, "missing"); !errors.Is(err, errors.ErrCodeComponentNotFound) {
		t.Errorf("ImportComponentByKey(missing) error = %v", err)
	}

	d.AddLibraryStyle(NewStyle("S:1", scene.StyleInfo{Key: "style-key", Name: "Brand", StyleType: scene.StylePaint}))
	if _, ok := d.StyleByID("S:1"); ok {
		t.Error("library style should not be local before import")
	}
	if _, err := d.ImportStyleByKey(ctx, "style-key"); err != nil {
		t.Fatalf("ImportStyleByKey: %v", err)
	}
	if s, ok := d.StyleByID("S:1"); !ok || s.Info().Name != "Brand" {
		t.Errorf("StyleByID after import = %v, %v", s, ok)
	}

	hash, err := d.CreateImage(ctx, []byte("png"))
	if err != nil {
		t.Fatalf("CreateImage: %v", err)
	}
	if hash != ImageHash([]byte("png")) {
		t.Errorf("hash = %s, want content hash", hash)
	}
	data, err := d.ImageBytes(ctx, hash)
	if err != nil || string(data) != "png" {
		t.Errorf("ImageBytes = %q, %v", data, err)
	}
	if _, err := d.ImageBytes(ctx, "nope"); !errors.Is(err, errors.ErrCodeImageNotFound) {
		t.Errorf("ImageBytes(missing) error = %v", err)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	const in = `{
		"pages": [{"name": "Design", "children": [
			{"type": "COMPONENT", "id": "2:1", "name": "Chip", "key": "chip"},
			{"type": "INSTANCE", "id": "2:2", "componentId": "2:1"},
			{"type": "TEXT", "id": "2:3", "fontName": "__Symbol(figma.mixed)__", "pluginData": {"k": "v"}}
		]}],
		"selection": ["2:3"],
		"fonts": [{"family": "Roboto", "style": "Regular"}],
		"images": {"ignored": "aGVsbG8="},
		"styles": [{"id": "S:1", "key": "s", "name": "Red", "styleType": "PAINT"}]
	}`
	var s Snapshot
	if err := json.Unmarshal([]byte(in), &s); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	d, err := FromSnapshot(&s)
	if err != nil {
		t.Fatalf("FromSnapshot: %v", err)
	}

	inst, ok := d.NodeByID("2:2")
	if !ok {
		t.Fatal("instance missing")
	}
	if main, _ := inst.(*Node).MainComponent(); main == nil || main.ID() != "2:1" {
		t.Errorf("instance main = %v", main)
	}
	text, _ := d.NodeByID("2:3")
	if f, _ := text.Field("fontName"); !scene.IsMixed(f) {
		t.Errorf("fontName = %v, want mixed", f)
	}
	if got := text.(*Node).PluginData("k"); got != "v" {
		t.Errorf("pluginData k = %q", got)
	}
	if sel := d.Selection(); len(sel) != 1 || sel[0].ID() != "2:3" {
		t.Errorf("Selection = %v", sel)
	}
	if _, err := d.ImageBytes(context.Background(), ImageHash([]byte("hello"))); err != nil {
		t.Errorf("images should be rehashed by content: %v", err)
	}
	if _, ok := d.StyleByID("S:1"); !ok {
		t.Error("local style missing")
	}

	out := d.Snapshot()
	if len(out.Pages) != 1 || len(out.Pages[0].Children) != 3 {
		t.Fatalf("snapshot pages = %+v", out.Pages)
	}
	if got := out.Pages[0].Children[1].ComponentID(); got != "2:1" {
		t.Errorf("exported componentId = %q", got)
	}
	if out.CurrentPage != "Design" {
		t.Errorf("CurrentPage = %q", out.CurrentPage)
	}
	if len(out.Fonts) != 1 {
		t.Errorf("Fonts = %v", out.Fonts)
	}
}

func TestPageIDs(t *testing.T) {
	d := New()
	if id := d.CurrentPage().ID(); id != "0:1" {
		t.Errorf("first page id = %q, want 0:1", id)
	}
	rect, err := d.Create(scene.TypeRectangle)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rect.ID() != "1:1" {
		t.Errorf("first node id = %q, want 1:1", rect.ID())
	}
	if id := d.AddPage("P2").ID(); id != "0:2" {
		t.Errorf("second page id = %q, want 0:2", id)
	}

	s := Snapshot{Pages: []PageSnapshot{{Name: "P", Children: []*scene.Node{scene.NewNode(scene.TypeRectangle)}}}}
	s.Pages[0].Children[0].Set("id", "1:1")
	loaded, err := FromSnapshot(&s)
	if err != nil {
		t.Fatalf("FromSnapshot: %v", err)
	}
	if _, ok := loaded.NodeByID("1:1"); !ok {
		t.Error("node 1:1 missing after load")
	}
}

func TestSnapshotKeepsIDsAcrossPages(t *testing.T) {
	d := New()
	rect, err := d.Create(scene.TypeRectangle)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	p2 := d.AddPage("P2")
	if err := d.AppendChild(p2, rect); err != nil {
		t.Fatalf("AppendChild: %v", err)
	}
	frame, err := d.Create(scene.TypeFrame)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	data, err := json.Marshal(d.Snapshot())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	loaded, err := FromSnapshot(&s)
	if err != nil {
		t.Fatalf("FromSnapshot: %v", err)
	}

	pages := loaded.Pages()
	if len(pages) != 2 || pages[0].ID() != d.Pages()[0].ID() || pages[1].ID() != p2.ID() {
		t.Fatalf("pages = %v, want the original ids", pages)
	}
	moved, ok := loaded.NodeByID(rect.ID())
	if !ok || moved.Parent().ID() != p2.ID() {
		t.Errorf("rect %s should be on %s", rect.ID(), p2.ID())
	}
	if _, ok := loaded.NodeByID(frame.ID()); !ok {
		t.Errorf("frame %s missing", frame.ID())
	}
	fresh, err := loaded.Create(scene.TypeEllipse)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if fresh.ID() == rect.ID() || fresh.ID() == frame.ID() {
		t.Errorf("fresh id %s reuses a loaded id", fresh.ID())
	}
}

func TestSnapshotFreshIDsAvoidExplicitOnes(t *testing.T) {
	const in = `{"pages":[
		{"name":"A","children":[{"type":"RECTANGLE"}]},
		{"name":"B","children":[{"type":"RECTANGLE","id":"1:1"}]}
	]}`
	var s Snapshot
	if err := json.Unmarshal([]byte(in), &s); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	d, err := FromSnapshot(&s)
	if err != nil {
		t.Fatalf("FromSnapshot: %v", err)
	}
	a := d.Pages()[0].Children()
	if len(a) != 1 || a[0].ID() == "1:1" {
		t.Errorf("page A children = %v, want a fresh id", a)
	}
}

func TestSnapshotErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"unknown type", `{"pages":[{"name":"P","children":[{"type":"BLOB"}]}]}`},
		{"duplicate id", `{"pages":[{"name":"P","children":[{"type":"FRAME","id":"1"},{"type":"FRAME","id":"1"}]}]}`},
		{"bad selection", `{"pages":[{"name":"P","children":[]}],"selection":["x"]}`},
		{"bad page", `{"pages":[{"name":"P","children":[]}],"currentPage":"Q"}`},
		{"page and node share an id", `{"pages":[{"id":"0:1","name":"P","children":[{"type":"FRAME","id":"0:1"}]}]}`},
		{"null child", `{"pages":[{"name":"P","children":[{"type":"FRAME","children":[null]}]}]}`},
		{"keyless library", `{"pages":[],"library":{"components":[{"type":"COMPONENT"}]}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Snapshot
			if err := json.Unmarshal([]byte(tt.in), &s); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if _, err := FromSnapshot(&s); !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Errorf("FromSnapshot error = %v, want INVALID_FORMAT", err)
			}
		})
	}
}
