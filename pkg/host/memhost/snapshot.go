package memhost

import (
	"sort"

	"github.com/matzehuels/figmajson/pkg/errors"
	"github.com/matzehuels/figmajson/pkg/scene"
)

// Snapshot is the JSON form of a [Document].
type Snapshot struct {
	Pages       []PageSnapshot   `json:"pages"`
	CurrentPage string           `json:"currentPage,omitempty"`
	Selection   []string         `json:"selection,omitempty"`
	Fonts       []scene.FontName `json:"fonts,omitempty"`
	Images      scene.ImageMap   `json:"images,omitempty"`
	Styles      []StyleSnapshot  `json:"styles,omitempty"`
	Library     LibrarySnapshot  `json:"library"`
}

// PageSnapshot is one page and its top-level nodes. Nodes use the dump
// wire format plus "id", "pluginData" and, on instances, "componentId".
type PageSnapshot struct {
	ID       string        `json:"id,omitempty"`
	Name     string        `json:"name"`
	Children []*scene.Node `json:"children"`
}

// StyleSnapshot is a style with its id.
type StyleSnapshot struct {
	ID string `json:"id"`
	scene.StyleInfo
}

// LibrarySnapshot holds published components and styles importable by key.
type LibrarySnapshot struct {
	Components []*scene.Node   `json:"components,omitempty"`
	Styles     []StyleSnapshot `json:"styles,omitempty"`
}

// FromSnapshot builds a document. Missing fields of known kinds are filled
// from the default layers; an empty font list means [DefaultFonts]. Pages
// and nodes without an id get fresh ones that avoid every id in s.
func FromSnapshot(s *Snapshot) (*Document, error) {
	d := newDocument()
	d.mu.Lock()
	defer d.mu.Unlock()

	reserved, err := reserveIDs(s)
	if err != nil {
		return nil, err
	}
	d.reserved = reserved
	defer func() { d.reserved = nil }()

	l := &loader{doc: d}
	for _, ps := range s.Pages {
		page := d.addPageLocked(ps.ID, ps.Name)
		for _, sn := range ps.Children {
			if _, err := l.node(sn, page); err != nil {
				return nil, err
			}
		}
	}
	if len(d.pages) == 0 {
		d.addPageLocked("", "Page 1")
	}
	for _, sn := range s.Library.Components {
		if sn == nil || sn.Type != scene.TypeComponent || sn.StringField("key") == "" {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "library entries must be COMPONENT nodes with a key")
		}
		n, err := l.node(sn, nil)
		if err != nil {
			return nil, err
		}
		n.fields["remote"] = true
		d.library[sn.StringField("key")] = n
	}
	l.link()

	if s.CurrentPage != "" {
		found := false
		for _, p := range d.pages {
			if p.fields["name"] == s.CurrentPage {
				d.current, found = p, true
			}
		}
		if !found {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "current page %q does not exist", s.CurrentPage)
		}
	}
	for _, id := range s.Selection {
		if _, ok := d.nodes[id]; !ok {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "selected node %q does not exist", id)
		}
	}
	d.selection = append([]string(nil), s.Selection...)

	fonts := s.Fonts
	if len(fonts) == 0 {
		fonts = DefaultFonts
	}
	for _, f := range fonts {
		if _, err := scene.EncodeFont(f); err != nil {
			return nil, err
		}
		d.addFontLocked(f)
	}
	for _, data := range s.Images {
		d.addImageLocked(data)
	}
	for _, st := range s.Styles {
		d.styles[st.ID] = &Style{id: st.ID, info: st.StyleInfo}
	}
	for _, st := range s.Library.Styles {
		info := st.StyleInfo
		info.Remote = true
		d.libraryStyles[info.Key] = &Style{id: st.ID, info: info}
	}
	return d, nil
}

// reserveIDs collects the explicit page and node ids of s and rejects
// duplicates.
func reserveIDs(s *Snapshot) (map[string]bool, error) {
	ids := make(map[string]bool)
	add := func(id string) error {
		if id == "" {
			return nil
		}
		if ids[id] {
			return errors.New(errors.ErrCodeInvalidFormat, "duplicate node id %q", id)
		}
		ids[id] = true
		return nil
	}
	var err error
	visit := func(n *scene.Node) bool {
		if err == nil {
			err = add(n.ID())
		}
		return err == nil
	}
	for _, ps := range s.Pages {
		if err := add(ps.ID); err != nil {
			return nil, err
		}
		for _, sn := range ps.Children {
			sn.Walk(visit)
		}
	}
	for _, sn := range s.Library.Components {
		sn.Walk(visit)
	}
	return ids, err
}

type pendingLink struct {
	inst        *Node
	componentID string
}

// loader builds nodes from their serialized form and links instances to
// their main components once every node exists.
type loader struct {
	doc     *Document
	pending []pendingLink
}

func (l *loader) node(sn *scene.Node, parent *Node) (*Node, error) {
	if sn == nil {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "null node")
	}
	if !sn.Type.Known() {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown node type %q", sn.Type)
	}
	d := l.doc

	id := sn.ID()
	if id == "" {
		id = d.nextIDLocked()
	} else if _, dup := d.nodes[id]; dup {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "duplicate node id %q", id)
	}

	n := &Node{doc: d, id: id, typ: sn.Type, fields: make(map[string]any)}
	if def, ok := scene.DefaultNode(sn.Type); ok {
		for k, v := range def.Fields {
			if k != "id" {
				n.fields[k] = normalize(k, v)
			}
		}
	}
	for k, v := range sn.Fields {
		switch k {
		case "id", "componentId":
		case "pluginData":
			n.pluginData = sn.PluginData()
		default:
			n.fields[k] = normalize(k, v)
		}
	}
	d.nodes[id] = n
	if parent != nil {
		d.appendLocked(parent, n)
	}
	if sn.Type == scene.TypeInstance && sn.ComponentID() != "" {
		l.pending = append(l.pending, pendingLink{inst: n, componentID: sn.ComponentID()})
	}
	if sn.Type.HasChildren() {
		for _, c := range sn.Children {
			if _, err := l.node(c, n); err != nil {
				return nil, err
			}
		}
	}
	return n, nil
}

// link resolves componentId references. Unresolvable ids leave the
// instance detached from any component.
func (l *loader) link() {
	for _, p := range l.pending {
		if c, ok := l.doc.nodes[p.componentID]; ok && c.typ == scene.TypeComponent {
			p.inst.main = c
		}
	}
	l.pending = nil
}

// Snapshot captures the document.
func (d *Document) Snapshot() *Snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()

	s := &Snapshot{
		Selection: append([]string(nil), d.selection...),
		Fonts:     d.fontsLocked(),
		Images:    scene.ImageMap{},
	}
	for _, p := range d.pages {
		ps := PageSnapshot{ID: p.id, Children: []*scene.Node{}}
		ps.Name, _ = p.fields["name"].(string)
		for _, c := range p.children {
			ps.Children = append(ps.Children, c.exportLocked())
		}
		s.Pages = append(s.Pages, ps)
	}
	if d.current != nil {
		s.CurrentPage, _ = d.current.fields["name"].(string)
	}
	for hash, data := range d.images {
		s.Images[hash] = append([]byte(nil), data...)
	}

	for _, id := range sortedKeys(d.styles) {
		st := d.styles[id]
		if st.info.Remote {
			continue
		}
		s.Styles = append(s.Styles, StyleSnapshot{ID: st.id, StyleInfo: st.info})
	}
	for _, key := range sortedKeys(d.library) {
		s.Library.Components = append(s.Library.Components, d.library[key].exportLocked())
	}
	for _, key := range sortedKeys(d.libraryStyles) {
		st := d.libraryStyles[key]
		s.Library.Styles = append(s.Library.Styles, StyleSnapshot{ID: st.id, StyleInfo: st.info})
	}
	return s
}

func (n *Node) exportLocked() *scene.Node {
	out := scene.NewNode(n.typ)
	for k, v := range n.fields {
		out.Fields[k] = scene.CloneValue(v)
	}
	out.Fields["id"] = n.id
	if len(n.pluginData) > 0 {
		pd := make(map[string]any, len(n.pluginData))
		for k, v := range n.pluginData {
			pd[k] = v
		}
		out.Fields["pluginData"] = pd
	}
	if n.main != nil {
		out.Fields["componentId"] = n.main.id
	}
	if n.typ.HasChildren() {
		out.Children = make([]*scene.Node, 0, len(n.children))
		for _, c := range n.children {
			out.Children = append(out.Children, c.exportLocked())
		}
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
