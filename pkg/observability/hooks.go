// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about template application, wrapping, embedded document
// loading, and store operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, so library packages never
// import a logging or metrics backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetRenderHooks(&myRenderHooks{})
//	    observability.SetStoreHooks(&myStoreHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	start := time.Now()
//	ok := apply(...)
//	observability.Render().OnApply(ctx, targetID, ok, time.Since(start))
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Render Hooks
// =============================================================================

// RenderHooks receives events from template application and wrapping.
type RenderHooks interface {
	// OnApply records a template or field write into a target element.
	OnApply(ctx context.Context, target string, applied bool, duration time.Duration)

	// OnDeferred records a write postponed until an embedded document loads.
	OnDeferred(ctx context.Context, target, source string)

	// OnWrap records a completed or failed wrap of a text element.
	OnWrap(ctx context.Context, target string, lines int, duration time.Duration, err error)
}

// =============================================================================
// Embed Hooks
// =============================================================================

// EmbedHooks receives events from embedded document loading.
type EmbedHooks interface {
	// OnEmbedLoad records a load attempt of an embedded document.
	OnEmbedLoad(ctx context.Context, source string, duration time.Duration, err error)
}

// =============================================================================
// Store Hooks
// =============================================================================

// StoreHooks receives events from profile store operations.
type StoreHooks interface {
	// OnGet records a read. hit is false for missing keys.
	OnGet(ctx context.Context, backend, key string, hit bool, duration time.Duration, err error)

	// OnSet records a write of size bytes.
	OnSet(ctx context.Context, backend, key string, size int, duration time.Duration, err error)

	// OnRemove records a delete.
	OnRemove(ctx context.Context, backend, key string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnApply(context.Context, string, bool, time.Duration)       {}
func (NoopRenderHooks) OnDeferred(context.Context, string, string)                 {}
func (NoopRenderHooks) OnWrap(context.Context, string, int, time.Duration, error) {}

// NoopEmbedHooks is a no-op implementation of EmbedHooks.
type NoopEmbedHooks struct{}

func (NoopEmbedHooks) OnEmbedLoad(context.Context, string, time.Duration, error) {}

// NoopStoreHooks is a no-op implementation of StoreHooks.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnGet(context.Context, string, string, bool, time.Duration, error) {}
func (NoopStoreHooks) OnSet(context.Context, string, string, int, time.Duration, error)  {}
func (NoopStoreHooks) OnRemove(context.Context, string, string, error)                   {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	renderHooks RenderHooks = NoopRenderHooks{}
	embedHooks  EmbedHooks  = NoopEmbedHooks{}
	storeHooks  StoreHooks  = NoopStoreHooks{}
	hooksMu     sync.RWMutex
)

// SetRenderHooks registers custom render hooks.
// This should be called once at application startup.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// SetEmbedHooks registers custom embed hooks.
func SetEmbedHooks(h EmbedHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		embedHooks = h
	}
}

// SetStoreHooks registers custom store hooks.
func SetStoreHooks(h StoreHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storeHooks = h
	}
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Embed returns the registered embed hooks.
func Embed() EmbedHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return embedHooks
}

// Store returns the registered store hooks.
func Store() StoreHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storeHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	renderHooks = NoopRenderHooks{}
	embedHooks = NoopEmbedHooks{}
	storeHooks = NoopStoreHooks{}
}
