package memhost

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"sort"
	"sync"

	"github.com/matzehuels/figmajson/pkg/errors"
	"github.com/matzehuels/figmajson/pkg/host"
	"github.com/matzehuels/figmajson/pkg/scene"
)

// DefaultFonts are available in a new document.
var DefaultFonts = []scene.FontName{
	{Family: "Inter", Style: "Regular"},
	{Family: "Inter", Style: "Thin"},
	{Family: "Inter", Style: "Extra Light"},
	{Family: "Inter", Style: "Light"},
	{Family: "Inter", Style: "Medium"},
	{Family: "Inter", Style: "Semi Bold"},
	{Family: "Inter", Style: "Bold"},
	{Family: "Inter", Style: "Extra Bold"},
	{Family: "Inter", Style: "Black"},
}

// Document is an in-memory design document. It is safe for concurrent use.
type Document struct {
	mu sync.RWMutex

	seq       int
	pageSeq   int
	reserved  map[string]bool
	pages     []*Node
	current   *Node
	nodes     map[string]*Node
	selection []string

	fonts  map[string]bool
	loaded map[string]bool
	images map[string][]byte

	styles        map[string]*Style
	libraryStyles map[string]*Style
	library       map[string]*Node
}

var _ host.Host = (*Document)(nil)

// New returns a document with a single empty page and [DefaultFonts].
func New() *Document {
	d := newDocument()
	d.current = d.addPageLocked("", "Page 1")
	for _, f := range DefaultFonts {
		d.addFontLocked(f)
	}
	return d
}

func newDocument() *Document {
	return &Document{
		nodes:         make(map[string]*Node),
		fonts:         make(map[string]bool),
		loaded:        make(map[string]bool),
		images:        make(map[string][]byte),
		styles:        make(map[string]*Style),
		libraryStyles: make(map[string]*Style),
		library:       make(map[string]*Node),
	}
}

// AddPage appends a page and returns it.
func (d *Document) AddPage(name string) host.Node {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.addPageLocked("", name)
}

// addPageLocked appends a page. An empty id takes the next free page id.
func (d *Document) addPageLocked(id, name string) *Node {
	if id == "" {
		id = d.nextPageIDLocked()
	}
	p := d.newNodeWithIDLocked(scene.TypePage, id)
	p.fields["name"] = name
	d.pages = append(d.pages, p)
	if d.current == nil {
		d.current = p
	}
	return p
}

// Pages returns the document's pages.
func (d *Document) Pages() []host.Node {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]host.Node, len(d.pages))
	for i, p := range d.pages {
		out[i] = p
	}
	return out
}

// CurrentPage returns the page new nodes are created on.
func (d *Document) CurrentPage() host.Node {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.current
}

// SetCurrentPage switches the current page by name.
func (d *Document) SetCurrentPage(name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, p := range d.pages {
		if p.fields["name"] == name {
			d.current = p
			return nil
		}
	}
	return errors.New(errors.ErrCodeNotFound, "page not found: %s", name)
}

// NodeByID looks up a node by id.
func (d *Document) NodeByID(id string) (host.Node, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	n, ok := d.nodes[id]
	if !ok {
		return nil, false
	}
	return n, true
}

// Select replaces the selection.
func (d *Document) Select(ids ...string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, id := range ids {
		if _, ok := d.nodes[id]; !ok {
			return errors.New(errors.ErrCodeNotFound, "node not found: %s", id)
		}
	}
	d.selection = append([]string(nil), ids...)
	return nil
}

// Selection returns the selected nodes. With an empty selection it returns
// the children of the current page.
func (d *Document) Selection() []host.Node {
	d.mu.RLock()
	defer d.mu.RUnlock()
	var out []host.Node
	for _, id := range d.selection {
		if n, ok := d.nodes[id]; ok {
			out = append(out, n)
		}
	}
	if len(out) == 0 && d.current != nil {
		for _, c := range d.current.children {
			out = append(out, c)
		}
	}
	return out
}

// AddFont makes a font loadable.
func (d *Document) AddFont(f scene.FontName) error {
	if _, err := scene.EncodeFont(f); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.addFontLocked(f)
	return nil
}

func (d *Document) addFontLocked(f scene.FontName) {
	enc, err := scene.EncodeFont(f)
	if err != nil {
		return
	}
	d.fonts[enc] = true
}

// Fonts returns the available fonts sorted by encoded name.
func (d *Document) Fonts() []scene.FontName {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.fontsLocked()
}

func (d *Document) fontsLocked() []scene.FontName {
	keys := make([]string, 0, len(d.fonts))
	for k := range d.fonts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]scene.FontName, 0, len(keys))
	for _, k := range keys {
		if f, err := scene.DecodeFont(k); err == nil {
			out = append(out, f)
		}
	}
	return out
}

// FontLoaded reports whether a font has been loaded.
func (d *Document) FontLoaded(f scene.FontName) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.fontLoadedLocked(f)
}

func (d *Document) fontLoadedLocked(f scene.FontName) bool {
	enc, err := scene.EncodeFont(f)
	return err == nil && d.loaded[enc]
}

// ImageHash returns the hash the document assigns to image bytes.
func ImageHash(data []byte) string {
	sum := sha1.Sum(data)
	return hex.EncodeToString(sum[:])
}

// AddImage stores image bytes and returns their hash.
func (d *Document) AddImage(data []byte) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.addImageLocked(data)
}

func (d *Document) addImageLocked(data []byte) string {
	hash := ImageHash(data)
	d.images[hash] = append([]byte(nil), data...)
	return hash
}

// ImageCount returns the number of stored images.
func (d *Document) ImageCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.images)
}

// Pages are numbered 0:N and other nodes 1:N, so pages never take the id
// of a layer.
func (d *Document) nextIDLocked() string {
	for {
		d.seq++
		if id := fmt.Sprintf("1:%d", d.seq); d.freeLocked(id) {
			return id
		}
	}
}

func (d *Document) nextPageIDLocked() string {
	for {
		d.pageSeq++
		if id := fmt.Sprintf("0:%d", d.pageSeq); d.freeLocked(id) {
			return id
		}
	}
}

func (d *Document) freeLocked(id string) bool {
	_, taken := d.nodes[id]
	return !taken && !d.reserved[id]
}

func (d *Document) newNodeLocked(t scene.NodeType) *Node {
	return d.newNodeWithIDLocked(t, d.nextIDLocked())
}

func (d *Document) newNodeWithIDLocked(t scene.NodeType, id string) *Node {
	n := &Node{doc: d, id: id, typ: t, fields: make(map[string]any)}
	if def, ok := scene.DefaultNode(t); ok {
		for k, v := range def.Fields {
			if k == "id" {
				continue
			}
			n.fields[k] = normalize(k, v)
		}
	}
	d.nodes[n.id] = n
	return n
}

// own resolves a host.Node to a node of this document.
func (d *Document) own(hn host.Node) (*Node, error) {
	n, ok := hn.(*Node)
	if !ok || n == nil || n.doc != d {
		return nil, errors.New(errors.ErrCodeInvalidInput, "node does not belong to this document")
	}
	return n, nil
}

// normalize converts field values to the representation the document keeps.
func normalize(name string, v any) any {
	if s, ok := v.(string); ok && s == scene.MixedValue {
		return scene.Mixed
	}
	if name == "fontName" {
		if f, ok := scene.FontNameOf(v); ok {
			return f
		}
	}
	return scene.CloneValue(v)
}
