package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/pyprac/profilesvg/pkg/observability"
)

// logHooks reports observability events as debug log lines.
type logHooks struct {
	logger *log.Logger
}

func newLogHooks(l *log.Logger) *logHooks {
	return &logHooks{logger: l.WithPrefix("hooks")}
}

func (h *logHooks) OnApply(_ context.Context, target string, applied bool, d time.Duration) {
	h.logger.Debug("apply", "target", target, "applied", applied, "took", d.Round(time.Microsecond))
}

func (h *logHooks) OnDeferred(_ context.Context, target, source string) {
	h.logger.Debug("deferred", "target", target, "source", source)
}

func (h *logHooks) OnWrap(_ context.Context, target string, lines int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("wrap failed", "target", target, "err", err)
		return
	}
	h.logger.Debug("wrap", "target", target, "lines", lines, "took", d.Round(time.Microsecond))
}

func (h *logHooks) OnEmbedLoad(_ context.Context, source string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("embed load failed", "source", source, "err", err)
		return
	}
	h.logger.Debug("embed loaded", "source", source, "took", d.Round(time.Microsecond))
}

func (h *logHooks) OnGet(_ context.Context, backend, key string, hit bool, d time.Duration, err error) {
	h.logger.Debug("store get", "backend", backend, "key", key, "hit", hit, "took", d.Round(time.Microsecond), "err", err)
}

func (h *logHooks) OnSet(_ context.Context, backend, key string, size int, d time.Duration, err error) {
	h.logger.Debug("store set", "backend", backend, "key", key, "bytes", size, "took", d.Round(time.Microsecond), "err", err)
}

func (h *logHooks) OnRemove(_ context.Context, backend, key string, err error) {
	h.logger.Debug("store remove", "backend", backend, "key", key, "err", err)
}

var (
	_ observability.RenderHooks = (*logHooks)(nil)
	_ observability.EmbedHooks  = (*logHooks)(nil)
	_ observability.StoreHooks  = (*logHooks)(nil)
)
