package bridge

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/figmajson/pkg/dump"
	"github.com/matzehuels/figmajson/pkg/errors"
	"github.com/matzehuels/figmajson/pkg/host"
	"github.com/matzehuels/figmajson/pkg/insert"
	"github.com/matzehuels/figmajson/pkg/message"
	"github.com/matzehuels/figmajson/pkg/observability"
	"github.com/matzehuels/figmajson/pkg/scene"
	"github.com/matzehuels/figmajson/pkg/store"
)

// Scene is a host with a selection.
type Scene interface {
	host.Host
	Selection() []host.Node
	Select(ids ...string) error
}

// Options configures a dispatcher.
type Options struct {
	Dump   dump.Options
	Insert insert.Options

	// Clipboard receives every inserted document. Nil disables it.
	Clipboard *store.Clipboard

	// Persist is called after every successful insert, typically to save
	// the scene. Nil disables it.
	Persist func(ctx context.Context) error

	Logger *log.Logger
}

// Dispatcher handles messages one at a time.
type Dispatcher struct {
	scene Scene
	opts  Options

	mu         sync.Mutex
	recentText string
}

// NewDispatcher creates a dispatcher for s.
func NewDispatcher(s Scene, opts Options) *Dispatcher {
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if opts.Dump.Logger == nil {
		opts.Dump.Logger = opts.Logger
	}
	if opts.Insert.Logger == nil {
		opts.Insert.Logger = opts.Logger
	}
	return &Dispatcher{scene: s, opts: opts}
}

// Handle processes one message and returns the replies.
func (d *Dispatcher) Handle(ctx context.Context, msg message.Message) (replies []message.Message, err error) {
	start := time.Now()
	hooks := observability.Bridge()
	hooks.OnMessage(ctx, string(msg.Type))
	defer func() {
		hooks.OnMessageHandled(ctx, string(msg.Type), time.Since(start), err)
	}()

	if err := msg.Validate(); err != nil {
		return nil, err
	}
	if !msg.Type.FromUI() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s is not a UI message", msg.Type)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	switch msg.Type {
	case message.TypeReady:
		return d.ready(ctx)
	case message.TypeInsert:
		return d.insert(ctx, msg.Data)
	case message.TypeLogDefaults:
		d.logDefaults()
		return nil, nil
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unhandled message type %s", msg.Type)
}

func (d *Dispatcher) ready(ctx context.Context) ([]message.Message, error) {
	update, err := d.update(ctx)
	if err != nil {
		return nil, err
	}
	return []message.Message{update, message.UpdateInsertText(d.insertText(ctx))}, nil
}

// update dumps the current selection.
func (d *Dispatcher) update(ctx context.Context) (message.Message, error) {
	doc, err := dump.Dump(ctx, d.scene, d.scene.Selection(), d.opts.Dump)
	if err != nil {
		return message.Message{}, err
	}
	return message.Update(doc), nil
}

// insertText is the text of the most recent insert, falling back to the
// newest clipboard entry.
func (d *Dispatcher) insertText(ctx context.Context) string {
	if d.recentText != "" || d.opts.Clipboard == nil {
		return d.recentText
	}
	_, data, err := d.opts.Clipboard.Latest(ctx)
	if err != nil {
		if !errors.Is(err, errors.ErrCodeNotFound) {
			d.opts.Logger.Warn("couldn't read clipboard", "err", err)
		}
		return ""
	}
	return string(data)
}

func (d *Dispatcher) insert(ctx context.Context, doc *scene.Document) ([]message.Message, error) {
	logger := d.opts.Logger
	text, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode document")
	}

	res, err := insert.Insert(ctx, d.scene, doc, d.opts.Insert)
	if err != nil {
		return nil, err
	}
	logger.Info("inserted", "roots", len(res.Nodes), "skipped", len(res.Skipped), "rejected", len(res.Rejected))
	d.recentText = string(text)

	ids := make([]string, len(res.Nodes))
	for i, n := range res.Nodes {
		ids[i] = n.ID()
	}
	if err := d.scene.Select(ids...); err != nil {
		logger.Warn("couldn't select inserted nodes", "err", err)
	}
	if d.opts.Clipboard != nil {
		if _, err := d.opts.Clipboard.Copy(ctx, doc); err != nil {
			logger.Warn("couldn't copy to clipboard", "err", err)
		}
	}
	if d.opts.Persist != nil {
		if err := d.opts.Persist(ctx); err != nil {
			return nil, err
		}
	}

	update, err := d.update(ctx)
	if err != nil {
		return nil, err
	}
	return []message.Message{
		message.DidInsert(),
		message.UpdateInsertText(d.recentText),
		update,
	}, nil
}

func (d *Dispatcher) logDefaults() {
	for _, t := range scene.DefaultTypes {
		n, _ := scene.DefaultNode(t)
		data, err := json.Marshal(n)
		if err != nil {
			d.opts.Logger.Error("couldn't encode default", "type", t, "err", err)
			continue
		}
		d.opts.Logger.Info("default layer", "type", t, "node", string(data))
	}
}
