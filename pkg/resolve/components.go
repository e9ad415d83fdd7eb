package resolve

import (
	"context"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/figmajson/pkg/errors"
	"github.com/matzehuels/figmajson/pkg/host"
	"github.com/matzehuels/figmajson/pkg/scene"
)

// ComponentResult is the outcome of [LoadComponents].
type ComponentResult struct {
	// Available maps serialized component ids to live components.
	Available map[string]host.Component
	Report    Report
}

// LoadComponents resolves every component of a document: by publish key
// first, then by id among the local components.
func LoadComponents(ctx context.Context, registry host.ComponentRegistry, components scene.ComponentMap, logger *log.Logger) *ComponentResult {
	logger = orDiscard(logger)

	ids := sortedIDs(components)
	outcomes := make([]Outcome, len(ids))
	res := &ComponentResult{Available: make(map[string]host.Component, len(ids))}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for i, id := range ids {
		info := components[id]
		wg.Add(1)
		go func() {
			defer wg.Done()
			c, outcome := loadComponent(ctx, registry, id, info, logger)
			outcomes[i] = outcome
			if c != nil {
				mu.Lock()
				res.Available[id] = c
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	res.Report.Outcomes = outcomes
	return res
}

func loadComponent(ctx context.Context, registry host.ComponentRegistry, id string, info scene.ComponentInfo, logger *log.Logger) (host.Component, Outcome) {
	var importErr error
	if info.Key != "" {
		c, err := registry.ImportComponentByKey(ctx, info.Key)
		if err == nil && c != nil {
			return c, Outcome{Subject: id, Status: StatusLoaded, Detail: info.Name}
		}
		importErr = err
	}

	if c, ok := registry.ComponentByID(id); ok && c.Type() == scene.TypeComponent {
		logger.Debug("component resolved locally", "id", id, "name", info.Name)
		return c, Outcome{Subject: id, Status: StatusLocal, Detail: info.Name}
	}

	var err error = errors.New(errors.ErrCodeComponentNotFound, "couldn't find component %q (%s)", info.Name, id)
	if importErr != nil {
		err = errors.Wrap(errors.ErrCodeComponentNotFound, importErr, "couldn't find component %q (%s)", info.Name, id)
	}
	logger.Error("couldn't find component", "id", id, "key", info.Key, "name", info.Name)
	return nil, Outcome{Subject: id, Status: StatusFailed, Detail: info.Name, Err: err}
}

// LoadStyles imports every style of a document by key. A style without a
// key cannot be imported and is skipped.
func LoadStyles(ctx context.Context, registry host.StyleRegistry, styles scene.StyleMap, logger *log.Logger) Report {
	logger = orDiscard(logger)

	ids := sortedIDs(styles)
	outcomes := make([]Outcome, len(ids))
	var wg sync.WaitGroup
	for i, id := range ids {
		info := styles[id]
		wg.Add(1)
		go func() {
			defer wg.Done()
			if info.Key == "" {
				outcomes[i] = Outcome{Subject: id, Status: StatusSkipped, Detail: "no key"}
				return
			}
			if _, err := registry.ImportStyleByKey(ctx, info.Key); err != nil {
				logger.Warn("couldn't import style", "id", id, "key", info.Key, "name", info.Name, "err", err)
				outcomes[i] = Outcome{Subject: id, Status: StatusFailed, Detail: info.Name, Err: err}
				return
			}
			outcomes[i] = Outcome{Subject: id, Status: StatusLoaded, Detail: info.Name}
		}()
	}
	wg.Wait()
	return Report{Outcomes: outcomes}
}

func sortedIDs[V any](m map[string]V) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
