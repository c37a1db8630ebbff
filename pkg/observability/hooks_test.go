package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	r := NoopRenderHooks{}
	r.OnApply(ctx, "fullName", true, time.Millisecond)
	r.OnDeferred(ctx, "fullName", "card.svg")
	r.OnWrap(ctx, "college", 2, time.Millisecond, nil)

	e := NoopEmbedHooks{}
	e.OnEmbedLoad(ctx, "card.svg", time.Millisecond, errors.New("boom"))

	s := NoopStoreHooks{}
	s.OnGet(ctx, "file", "studentUser", true, time.Millisecond, nil)
	s.OnSet(ctx, "file", "fullName", 7, time.Millisecond, nil)
	s.OnRemove(ctx, "file", "studentUser", nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Error("Render() should return NoopRenderHooks by default")
	}
	if _, ok := Embed().(NoopEmbedHooks); !ok {
		t.Error("Embed() should return NoopEmbedHooks by default")
	}
	if _, ok := Store().(NoopStoreHooks); !ok {
		t.Error("Store() should return NoopStoreHooks by default")
	}

	// Set custom hooks
	customRender := &testRenderHooks{}
	SetRenderHooks(customRender)
	if Render() != customRender {
		t.Error("SetRenderHooks should set custom hooks")
	}

	customEmbed := &testEmbedHooks{}
	SetEmbedHooks(customEmbed)
	if Embed() != customEmbed {
		t.Error("SetEmbedHooks should set custom hooks")
	}

	customStore := &testStoreHooks{}
	SetStoreHooks(customStore)
	if Store() != customStore {
		t.Error("SetStoreHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Error("Reset() should restore NoopRenderHooks")
	}
	if _, ok := Store().(NoopStoreHooks); !ok {
		t.Error("Reset() should restore NoopStoreHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testRenderHooks{}
	SetRenderHooks(custom)

	// Setting nil should be ignored
	SetRenderHooks(nil)
	SetEmbedHooks(nil)
	SetStoreHooks(nil)

	if Render() != custom {
		t.Error("SetRenderHooks(nil) should be ignored")
	}
	if _, ok := Store().(NoopStoreHooks); !ok {
		t.Error("SetStoreHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testRenderHooks struct{ NoopRenderHooks }
type testEmbedHooks struct{ NoopEmbedHooks }
type testStoreHooks struct{ NoopStoreHooks }
