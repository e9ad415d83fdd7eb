package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/figmajson/pkg/errors"
	"github.com/matzehuels/figmajson/pkg/scene"
)

const (
	// DefaultClipboardTTL is how long copied documents are kept.
	DefaultClipboardTTL = 7 * 24 * time.Hour

	// DefaultClipboardSize is how many entries the history keeps.
	DefaultClipboardSize = 20

	indexKey    = "clipboard:index"
	entryPrefix = "clipboard:entry:"
)

// Entry describes one copied document.
type Entry struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt,omitempty"`
	Roots     []string  `json:"roots"`
	Nodes     int       `json:"nodes"`
	Images    int       `json:"images"`
	Size      int       `json:"size"`
	Hash      string    `json:"hash"`
}

// Expired reports whether the entry has expired at now.
func (e Entry) Expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && now.After(e.ExpiresAt)
}

// Clipboard is a history of copied documents, newest first. It is not
// safe for concurrent writers.
type Clipboard struct {
	store Store
	ttl   time.Duration
	size  int
	now   func() time.Time
}

// NewClipboard creates a clipboard on s. Non-positive ttl and size select
// the defaults.
func NewClipboard(s Store, ttl time.Duration, size int) *Clipboard {
	if ttl <= 0 {
		ttl = DefaultClipboardTTL
	}
	if size <= 0 {
		size = DefaultClipboardSize
	}
	return &Clipboard{store: s, ttl: ttl, size: size, now: time.Now}
}

// Copy stores doc as the newest entry.
func (c *Clipboard) Copy(ctx context.Context, doc *scene.Document) (Entry, error) {
	if doc == nil {
		return Entry{}, errors.New(errors.ErrCodeInvalidInput, "document is nil")
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return Entry{}, fmt.Errorf("encode document: %w", err)
	}

	now := c.now()
	e := Entry{
		ID:        uuid.NewString(),
		CreatedAt: now,
		ExpiresAt: now.Add(c.ttl),
		Roots:     make([]string, 0, len(doc.Objects)),
		Nodes:     doc.NodeCount(),
		Images:    len(doc.Images),
		Size:      len(data),
		Hash:      Hash(data),
	}
	for _, obj := range doc.Objects {
		e.Roots = append(e.Roots, obj.Name())
	}

	if err := c.store.Set(ctx, entryPrefix+e.ID, data, c.ttl); err != nil {
		return Entry{}, err
	}
	index, err := c.index(ctx)
	if err != nil {
		return Entry{}, err
	}
	index = append([]Entry{e}, index...)
	for len(index) > c.size {
		dropped := index[len(index)-1]
		index = index[:len(index)-1]
		_ = c.store.Delete(ctx, entryPrefix+dropped.ID)
	}
	return e, c.writeIndex(ctx, index)
}

// List returns the live entries, newest first.
func (c *Clipboard) List(ctx context.Context) ([]Entry, error) {
	return c.index(ctx)
}

// Latest returns the newest live entry and its raw document JSON.
func (c *Clipboard) Latest(ctx context.Context) (Entry, []byte, error) {
	index, err := c.index(ctx)
	if err != nil {
		return Entry{}, nil, err
	}
	for _, e := range index {
		data, ok, err := c.store.Get(ctx, entryPrefix+e.ID)
		if err != nil {
			return Entry{}, nil, err
		}
		if ok {
			return e, data, nil
		}
	}
	return Entry{}, nil, errors.New(errors.ErrCodeNotFound, "clipboard is empty")
}

// Get returns the raw document JSON of an entry.
func (c *Clipboard) Get(ctx context.Context, id string) ([]byte, error) {
	data, ok, err := c.store.Get(ctx, entryPrefix+id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "clipboard entry %s not found", id)
	}
	return data, nil
}

// Clear removes every entry.
func (c *Clipboard) Clear(ctx context.Context) error {
	index, err := c.index(ctx)
	if err != nil {
		return err
	}
	for _, e := range index {
		if err := c.store.Delete(ctx, entryPrefix+e.ID); err != nil {
			return err
		}
	}
	return c.store.Delete(ctx, indexKey)
}

// index reads the entry list, dropping expired entries.
func (c *Clipboard) index(ctx context.Context) ([]Entry, error) {
	data, ok, err := c.store.Get(ctx, indexKey)
	if err != nil || !ok {
		return nil, err
	}
	var all []Entry
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, nil
	}
	now := c.now()
	live := all[:0]
	for _, e := range all {
		if !e.Expired(now) {
			live = append(live, e)
		}
	}
	return live, nil
}

func (c *Clipboard) writeIndex(ctx context.Context, index []Entry) error {
	data, err := json.Marshal(index)
	if err != nil {
		return fmt.Errorf("encode clipboard index: %w", err)
	}
	return c.store.Set(ctx, indexKey, data, 0)
}
