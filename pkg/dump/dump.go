package dump

import (
	"context"
	"reflect"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/figmajson/pkg/errors"
	"github.com/matzehuels/figmajson/pkg/host"
	"github.com/matzehuels/figmajson/pkg/observability"
	"github.com/matzehuels/figmajson/pkg/policy"
	"github.com/matzehuels/figmajson/pkg/scene"
)

// opacityThreshold is the opacity at or below which a node is invisible.
const opacityThreshold = 0.001

// Dump serializes nodes and everything they reference.
//
// The only error conditions are invalid options, a cancelled context and
// an image that cannot be fetched when Options.Images is set. A dump never
// mutates the host.
func Dump(ctx context.Context, h host.DumpHost, nodes []host.Node, opts Options) (doc *scene.Document, err error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	hooks := observability.Dump()
	hooks.OnDumpStart(ctx, len(nodes))
	defer func() {
		count, images := 0, 0
		if doc != nil {
			count, images = doc.NodeCount(), len(doc.Images)
		}
		hooks.OnDumpComplete(ctx, count, images, time.Since(start), err)
	}()

	d := &dumper{
		host:   h,
		opts:   opts,
		read:   opts.readOptions(),
		logger: opts.logger(),
		doc:    scene.NewDocument(),
		images: make(map[string]struct{}),
	}

	for _, n := range nodes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if n == nil || d.skip(n) {
			continue
		}
		d.doc.Objects = append(d.doc.Objects, d.node(n))
	}

	if opts.Images {
		if err := d.fetchImages(ctx); err != nil {
			return nil, err
		}
	}

	d.logger.Debug("dump complete",
		"objects", len(d.doc.Objects),
		"components", len(d.doc.Components),
		"styles", len(d.doc.Styles),
		"images", len(d.images))
	return d.doc, nil
}

type dumper struct {
	host   host.DumpHost
	opts   Options
	read   policy.ReadOptions
	logger *log.Logger
	doc    *scene.Document
	images map[string]struct{}
}

// Visible reports whether a live node is visible. Nodes that do not report
// visible or opacity are treated as visible; removed defaults to false.
func Visible(n host.Node) bool {
	v, okV := n.Field("visible")
	o, okO := n.Field("opacity")
	visible, isBool := v.(bool)
	opacity, isNum := scene.ToFloat(o)
	if !okV || !okO || !isBool || !isNum {
		return true
	}
	removed := false
	if r, ok := n.Field("removed"); ok {
		removed, _ = r.(bool)
	}
	return visible && opacity > opacityThreshold && !removed
}

func (d *dumper) skip(n host.Node) bool {
	return d.opts.SkipInvisibleNodes && !Visible(n)
}

func (d *dumper) node(n host.Node) *scene.Node {
	t := n.Type()
	out := scene.NewNode(t)

	if !t.Known() {
		d.logger.Debug("unknown node type, keeping id and name only", "type", t, "id", n.ID())
	}

	for _, field := range scene.Schema(t).Names() {
		if !policy.KeepOnRead(field, t, d.read) {
			continue
		}
		v, ok := n.Field(field)
		if !ok {
			continue
		}

		switch {
		case field == "mainComponent":
			if t == scene.TypeInstance {
				if id, ok := d.component(v); ok {
					out.Fields["componentId"] = id
				}
			}
			continue
		case scene.IsStyleIDField(field):
			d.style(field, v)
		case scene.IsPaintField(field):
			for _, hash := range scene.ImageHashes(v) {
				d.images[hash] = struct{}{}
			}
			if scene.HasVideo(v) {
				d.logger.Warn("video paints are not embedded", "field", field, "id", n.ID())
			}
		}

		if val, keep := d.value(v); keep {
			out.Fields[field] = val
		}
	}

	if t.HasChildren() {
		out.Children = []*scene.Node{}
		for _, c := range n.Children() {
			if d.skip(c) {
				continue
			}
			out.Children = append(out.Children, d.node(c))
		}
	}
	return out
}

// value converts a field value into its serialized form. It reports false
// for values that have no serialized form.
func (d *dumper) value(v any) (any, bool) {
	switch x := v.(type) {
	case nil:
		return nil, true
	case scene.MixedMarker, *scene.MixedMarker:
		return scene.MixedValue, true
	case host.Node:
		return x.ID(), true
	case []host.Node:
		out := make([]any, 0, len(x))
		for _, n := range x {
			if d.skip(n) {
				continue
			}
			out = append(out, n.ID())
		}
		return out, true
	case []any:
		out := make([]any, 0, len(x))
		for _, e := range x {
			if n, ok := e.(host.Node); ok && d.skip(n) {
				continue
			}
			if val, keep := d.value(e); keep {
				out = append(out, val)
			}
		}
		return out, true
	case []map[string]any:
		out := make([]any, 0, len(x))
		for _, e := range x {
			val, _ := d.value(e)
			out = append(out, val)
		}
		return out, true
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			if val, keep := d.value(e); keep {
				out[k] = val
			}
		}
		return out, true
	}
	if reflect.TypeOf(v).Kind() == reflect.Func {
		return nil, false
	}
	return v, true
}

// component records the main component of an instance and its set.
func (d *dumper) component(v any) (string, bool) {
	c, ok := v.(host.Component)
	if !ok || c == nil {
		return "", false
	}
	meta := c.Meta()
	info := scene.ComponentInfo{
		Key:                meta.Key,
		Name:               meta.Name,
		Description:        meta.Description,
		Remote:             meta.Remote,
		DocumentationLinks: links(meta.DocumentationLinks),
	}
	if set := c.ComponentSet(); set != nil {
		sm := set.Meta()
		d.doc.ComponentSets[set.ID()] = scene.ComponentSetInfo{
			Key:                sm.Key,
			Name:               sm.Name,
			Description:        sm.Description,
			Remote:             sm.Remote,
			DocumentationLinks: links(sm.DocumentationLinks),
		}
		info.ComponentSetID = set.ID()
	}
	d.doc.Components[c.ID()] = info
	return c.ID(), true
}

// style records the style named by a style-id field.
func (d *dumper) style(field string, v any) {
	id, ok := v.(string)
	if !ok || id == "" || scene.IsMixed(id) {
		return
	}
	if _, seen := d.doc.Styles[id]; seen {
		return
	}
	s, ok := d.host.StyleByID(id)
	if !ok {
		d.logger.Warn("style not found", "field", field, "id", id)
		return
	}
	d.doc.Styles[s.ID()] = s.Info()
}

// fetchImages fetches every recorded image concurrently. The first failure
// cancels the rest.
func (d *dumper) fetchImages(ctx context.Context) error {
	hashes := make([]string, 0, len(d.images))
	for h := range d.images {
		hashes = append(hashes, h)
	}
	sort.Strings(hashes)

	data := make([][]byte, len(hashes))
	g, gctx := errgroup.WithContext(ctx)
	for i, hash := range hashes {
		g.Go(func() error {
			b, err := d.host.ImageBytes(gctx, hash)
			if err != nil {
				return errors.Wrap(errors.ErrCodeImageNotFound, err, "image not found: %s", hash)
			}
			if b == nil {
				return errors.New(errors.ErrCodeImageNotFound, "image not found: %s", hash)
			}
			data[i] = b
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for i, hash := range hashes {
		d.doc.Images[hash] = data[i]
	}
	return nil
}

func links(in []scene.DocumentationLink) []scene.DocumentationLink {
	out := make([]scene.DocumentationLink, len(in))
	copy(out, in)
	return out
}
