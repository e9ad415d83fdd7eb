// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about dumps, inserts, clipboard store operations and
// bridge messages.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, never by libraries, so no import cycles
// arise and the core packages stay free of any observability framework.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetInsertHooks(&myInsertHooks{})
//	    observability.SetStoreHooks(&myStoreHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Dump().OnDumpStart(ctx, len(nodes))
//	// ... walk the tree ...
//	observability.Dump().OnDumpComplete(ctx, objects, images, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Dump Hooks
// =============================================================================

// DumpHooks receives events from the serializer.
type DumpHooks interface {
	OnDumpStart(ctx context.Context, roots int)
	OnDumpComplete(ctx context.Context, nodes, images int, duration time.Duration, err error)
}

// =============================================================================
// Insert Hooks
// =============================================================================

// InsertHooks receives events from the deserializer.
type InsertHooks interface {
	OnInsertStart(ctx context.Context, roots int)

	// OnNodeSkipped records a node that could not be recreated.
	OnNodeSkipped(ctx context.Context, nodeType, reason string)

	OnInsertComplete(ctx context.Context, created int, duration time.Duration, err error)
}

// =============================================================================
// Store Hooks
// =============================================================================

// StoreHooks receives events from clipboard store operations.
type StoreHooks interface {
	// OnStoreHit records a successful read.
	OnStoreHit(ctx context.Context, backend string)

	// OnStoreMiss records a read of a missing or expired entry.
	OnStoreMiss(ctx context.Context, backend string)

	// OnStoreSet records a write.
	OnStoreSet(ctx context.Context, backend string, size int)
}

// =============================================================================
// Bridge Hooks
// =============================================================================

// BridgeHooks receives events from the message bridge.
type BridgeHooks interface {
	// OnMessage records an incoming message.
	OnMessage(ctx context.Context, msgType string)

	// OnMessageHandled records the outcome of handling a message.
	OnMessageHandled(ctx context.Context, msgType string, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopDumpHooks is a no-op implementation of DumpHooks.
type NoopDumpHooks struct{}

func (NoopDumpHooks) OnDumpStart(context.Context, int)                               {}
func (NoopDumpHooks) OnDumpComplete(context.Context, int, int, time.Duration, error) {}

// NoopInsertHooks is a no-op implementation of InsertHooks.
type NoopInsertHooks struct{}

func (NoopInsertHooks) OnInsertStart(context.Context, int)                          {}
func (NoopInsertHooks) OnNodeSkipped(context.Context, string, string)               {}
func (NoopInsertHooks) OnInsertComplete(context.Context, int, time.Duration, error) {}

// NoopStoreHooks is a no-op implementation of StoreHooks.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnStoreHit(context.Context, string)      {}
func (NoopStoreHooks) OnStoreMiss(context.Context, string)     {}
func (NoopStoreHooks) OnStoreSet(context.Context, string, int) {}

// NoopBridgeHooks is a no-op implementation of BridgeHooks.
type NoopBridgeHooks struct{}

func (NoopBridgeHooks) OnMessage(context.Context, string)                              {}
func (NoopBridgeHooks) OnMessageHandled(context.Context, string, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	dumpHooks   DumpHooks   = NoopDumpHooks{}
	insertHooks InsertHooks = NoopInsertHooks{}
	storeHooks  StoreHooks  = NoopStoreHooks{}
	bridgeHooks BridgeHooks = NoopBridgeHooks{}
	hooksMu     sync.RWMutex
)

// SetDumpHooks registers custom dump hooks.
// This should be called once at application startup before any dump.
func SetDumpHooks(h DumpHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		dumpHooks = h
	}
}

// SetInsertHooks registers custom insert hooks.
// This should be called once at application startup before any insert.
func SetInsertHooks(h InsertHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		insertHooks = h
	}
}

// SetStoreHooks registers custom store hooks.
// This should be called once at application startup before any store operations.
func SetStoreHooks(h StoreHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storeHooks = h
	}
}

// SetBridgeHooks registers custom bridge hooks.
func SetBridgeHooks(h BridgeHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		bridgeHooks = h
	}
}

// Dump returns the registered dump hooks.
func Dump() DumpHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return dumpHooks
}

// Insert returns the registered insert hooks.
func Insert() InsertHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return insertHooks
}

// Store returns the registered store hooks.
func Store() StoreHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storeHooks
}

// Bridge returns the registered bridge hooks.
func Bridge() BridgeHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return bridgeHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	dumpHooks = NoopDumpHooks{}
	insertHooks = NoopInsertHooks{}
	storeHooks = NoopStoreHooks{}
	bridgeHooks = NoopBridgeHooks{}
}
