package renderer

import "log/slog"

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithLogger sets the logger draw failures are reported to. The default is common.Logger().
//
// Parameters:
//   - logger: the logger
//
// Returns:
//   - RendererBuilderOption: a function that applies the logger option to a renderer
func WithLogger(logger *slog.Logger) RendererBuilderOption {
	return func(r *renderer) {
		r.logger = logger
	}
}

// WithDrawHook registers a function called after every successful draw with the number of
// indices submitted.
//
// Parameters:
//   - hook: the callback
//
// Returns:
//   - RendererBuilderOption: a function that applies the hook option to a renderer
func WithDrawHook(hook func(indices int)) RendererBuilderOption {
	return func(r *renderer) {
		r.onDraw = hook
	}
}
