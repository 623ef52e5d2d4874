package profiler

import (
	"log/slog"
	"time"

	"github.com/Carmen-Shannon/oxy-gl/engine/renderer"
)

// ProfilerOption is a functional option for configuring a Profiler.
type ProfilerOption func(*Profiler)

// WithInterval sets how often statistics are logged.
//
// Parameters:
//   - d: the interval
//
// Returns:
//   - ProfilerOption: option function to apply
func WithInterval(d time.Duration) ProfilerOption {
	return func(p *Profiler) {
		p.updateInterval = d
	}
}

// WithRenderer includes the renderer's draw counters in every sample and resets them after
// each interval.
//
// Parameters:
//   - r: the renderer
//
// Returns:
//   - ProfilerOption: option function to apply
func WithRenderer(r renderer.Renderer) ProfilerOption {
	return func(p *Profiler) {
		p.renderer = r
	}
}

// WithLogger sets the logger samples are written to. The default is common.Logger().
//
// Parameters:
//   - logger: the logger
//
// Returns:
//   - ProfilerOption: option function to apply
func WithLogger(logger *slog.Logger) ProfilerOption {
	return func(p *Profiler) {
		p.logger = logger
	}
}

// WithClock replaces time.Now.
//
// Parameters:
//   - now: the clock
//
// Returns:
//   - ProfilerOption: option function to apply
func WithClock(now func() time.Time) ProfilerOption {
	return func(p *Profiler) {
		p.now = now
	}
}
