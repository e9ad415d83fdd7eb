package insert

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/figmajson/pkg/errors"
	"github.com/matzehuels/figmajson/pkg/host"
	"github.com/matzehuels/figmajson/pkg/observability"
	"github.com/matzehuels/figmajson/pkg/resolve"
	"github.com/matzehuels/figmajson/pkg/scene"
)

// Skip records a node or field insert could not recreate.
type Skip struct {
	NodeID string
	Type   scene.NodeType
	// Field is empty for a skipped node.
	Field  string
	Reason string
	Err    error
}

// Result describes what an insert did.
type Result struct {
	// Nodes are the created root nodes in document order.
	Nodes      []host.Node
	Fonts      *resolve.FontResult
	Components resolve.Report
	Styles     resolve.Report
	// Images maps document image hashes to host hashes.
	Images map[string]string
	// Skipped lists nodes that were not created.
	Skipped []Skip
	// Rejected lists fields the host refused.
	Rejected []Skip
}

// Insert recreates doc through h and returns the created root nodes.
func Insert(ctx context.Context, h host.Host, doc *scene.Document, opts Options) (res *Result, err error) {
	if doc == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "document is nil")
	}

	start := time.Now()
	hooks := observability.Insert()
	hooks.OnInsertStart(ctx, len(doc.Objects))
	defer func() {
		created := 0
		if res != nil {
			created = len(res.Nodes)
		}
		hooks.OnInsertComplete(ctx, created, time.Since(start), err)
	}()

	logger := opts.logger()
	res = &Result{Images: make(map[string]string)}

	// Phase 1: fonts, components and styles.
	var components *resolve.ComponentResult
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		fonts, err := resolve.LoadFonts(gctx, h, FontsToLoad(doc.Objects, logger), opts.fallbacks(), logger)
		if err != nil {
			return err
		}
		res.Fonts = fonts
		return nil
	})
	g.Go(func() error {
		components = resolve.LoadComponents(gctx, h, doc.Components, logger)
		return nil
	})
	g.Go(func() error {
		res.Styles = resolve.LoadStyles(gctx, h, doc.Styles, logger)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	res.Components = components.Report

	// Phase 2: images.
	objects := doc.CloneObjects()
	for _, hash := range sortedKeys(doc.Images) {
		created, err := h.CreateImage(ctx, doc.Images[hash])
		if err != nil {
			logger.Error("couldn't create image", "hash", hash, "err", err)
			res.Rejected = append(res.Rejected, Skip{Field: "imageHash", Reason: "image " + hash, Err: err})
			continue
		}
		res.Images[hash] = created
	}
	if len(res.Images) > 0 {
		for _, obj := range objects {
			scene.RewriteImageHashes(obj, res.Images)
		}
	}

	// Phase 3: nodes.
	target := opts.Target
	if target == nil {
		target = h.CurrentPage()
	}
	b := &builder{
		ctx:          ctx,
		host:         h,
		logger:       logger,
		replacements: res.Fonts.Replacements,
		components:   components.Available,
		result:       res,
	}
	for _, obj := range objects {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		n := b.insert(obj, target)
		if n == nil {
			if obj != nil {
				logger.Error("returned nothing for node", "type", obj.Type, "id", obj.ID())
			}
			continue
		}
		b.finishRoot(n, opts)
		res.Nodes = append(res.Nodes, n)
	}

	logger.Debug("insert complete",
		"roots", len(res.Nodes),
		"skipped", len(res.Skipped),
		"rejected", len(res.Rejected))
	return res, nil
}

// finishRoot applies the offset and the name suffix to a created root.
func (b *builder) finishRoot(n host.Node, opts Options) {
	if opts.Offset.X != 0 || opts.Offset.Y != 0 {
		for field, delta := range map[string]float64{"x": opts.Offset.X, "y": opts.Offset.Y} {
			v, ok := n.Field(field)
			cur, isNum := scene.ToFloat(v)
			if !ok || !isNum {
				continue
			}
			b.set(n, field, cur+delta)
		}
	}
	if opts.NameSuffix != "" {
		name, _ := n.Field("name")
		s, _ := name.(string)
		b.set(n, "name", s+opts.NameSuffix)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
