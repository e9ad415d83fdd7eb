package memhost

import (
	"context"

	"github.com/matzehuels/figmajson/pkg/errors"
	"github.com/matzehuels/figmajson/pkg/host"
	"github.com/matzehuels/figmajson/pkg/scene"
)

// Style is a shared style of a [Document].
type Style struct {
	id   string
	info scene.StyleInfo
}

var _ host.Style = (*Style)(nil)

// NewStyle returns a style with the given id and metadata.
func NewStyle(id string, info scene.StyleInfo) *Style {
	return &Style{id: id, info: info}
}

func (s *Style) ID() string { return s.id }

func (s *Style) Info() scene.StyleInfo { return s.info }

// LoadFont marks an available font as loaded.
func (d *Document) LoadFont(ctx context.Context, f scene.FontName) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	enc, err := scene.EncodeFont(f)
	if err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.fonts[enc] {
		return errors.New(errors.ErrCodeFontNotFound, "font not available: %s", f)
	}
	d.loaded[enc] = true
	return nil
}

// AddLibraryComponent publishes a component to the library so it can be
// imported by key. The node must be a COMPONENT with a non-empty key.
func (d *Document) AddLibraryComponent(sn *scene.Node) (host.Component, error) {
	if sn == nil || sn.Type != scene.TypeComponent {
		return nil, errors.New(errors.ErrCodeInvalidInput, "library entries must be COMPONENT nodes")
	}
	key := sn.StringField("key")
	if key == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "library component %q has no key", sn.Name())
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	l := &loader{doc: d}
	n, err := l.node(sn, nil)
	if err != nil {
		return nil, err
	}
	l.link()
	n.fields["remote"] = true
	d.library[key] = n
	return n, nil
}

// ImportComponentByKey returns a library component, or a local component
// published under key.
func (d *Document) ImportComponentByKey(ctx context.Context, key string) (host.Component, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	if key != "" {
		if n, ok := d.library[key]; ok {
			return n, nil
		}
		for _, n := range d.nodes {
			if n.typ == scene.TypeComponent && n.fields["key"] == key && n.inDocumentLocked() {
				return n, nil
			}
		}
	}
	return nil, errors.New(errors.ErrCodeComponentNotFound, "component not found for key %q", key)
}

// ComponentByID returns a COMPONENT node of this document's pages.
func (d *Document) ComponentByID(id string) (host.Component, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	n, ok := d.nodes[id]
	if !ok || n.typ != scene.TypeComponent || !n.inDocumentLocked() {
		return nil, false
	}
	return n, true
}

// AddStyle registers a local style.
func (d *Document) AddStyle(s *Style) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.styles[s.id] = s
}

// AddLibraryStyle publishes a style to the library.
func (d *Document) AddLibraryStyle(s *Style) {
	d.mu.Lock()
	defer d.mu.Unlock()
	s.info.Remote = true
	d.libraryStyles[s.info.Key] = s
}

// ImportStyleByKey imports a library style into the document, or returns
// a local style published under key.
func (d *Document) ImportStyleByKey(ctx context.Context, key string) (host.Style, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if s, ok := d.libraryStyles[key]; ok && key != "" {
		d.styles[s.id] = s
		return s, nil
	}
	for _, s := range d.styles {
		if key != "" && s.info.Key == key {
			return s, nil
		}
	}
	return nil, errors.New(errors.ErrCodeStyleNotFound, "style not found for key %q", key)
}

// StyleByID looks up a local or imported style.
func (d *Document) StyleByID(id string) (host.Style, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	s, ok := d.styles[id]
	if !ok {
		return nil, false
	}
	return s, true
}

// ImageBytes returns a copy of the stored image bytes.
func (d *Document) ImageBytes(ctx context.Context, hash string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	data, ok := d.images[hash]
	if !ok {
		return nil, errors.New(errors.ErrCodeImageNotFound, "image not found: %s", hash)
	}
	return append([]byte(nil), data...), nil
}

// CreateImage stores bytes under their content hash.
func (d *Document) CreateImage(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", errors.New(errors.ErrCodeHostRejected, "image data is empty")
	}
	return d.AddImage(data), nil
}
