package engine

import (
	"maps"
	"slices"
	"time"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/camera"
	"github.com/Carmen-Shannon/oxy-gl/engine/profiler"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer"
	"github.com/Carmen-Shannon/oxy-gl/engine/scene"
	"github.com/Carmen-Shannon/oxy-gl/engine/window"
)

// maxTicksPerFrame bounds how many fixed ticks one frame may run to catch up after a stall.
const maxTicksPerFrame = 5

// engine implements the Engine interface.
// Everything runs on the goroutine that owns the GL context.
type engine struct {
	window   window.Window
	renderer renderer.Renderer
	cameras  []camera.Camera
	scenes   map[int]scene.Scene

	profiler         *profiler.Profiler
	profilingEnabled bool

	engineTickRate time.Duration
	tickCallback   func(deltaTime float32)
	renderCallback func(deltaTime float32)

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped

	accumulator time.Duration
	lastFrame   time.Time
	started     bool
	quit        bool
	frames      uint64

	now   func() time.Time
	sleep func(time.Duration)
}

// Engine drives the frame loop: fixed-rate ticks, a render callback, buffer swaps and
// optional profiling, all on the thread that owns the window's GL context.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Renderer returns the renderer passed with WithRenderer, nil if none was set.
	Renderer() renderer.Renderer

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the engine tick rate in ticks per second.
	// The tick callback will be called at this rate for game logic updates.
	//
	// Parameters:
	//   - fps: target ticks per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers the function called each engine tick.
	// Use this for input handling, camera controllers and animation.
	//
	// Parameters:
	//   - callback: function called at the configured tick rate, receiving the tick length in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderCallback registers the function called once per frame, before the buffers are swapped.
	// Clear and Draw calls belong here.
	//
	// Parameters:
	//   - callback: function called each frame, receiving the time since the previous frame in seconds
	SetRenderCallback(callback func(deltaTime float32))

	// SetRenderFrameLimit sets an optional frame rate cap in frames per second.
	// Pass 0 to uncap the loop (default).
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// AddCamera registers a camera that follows the window size and whose controller is
	// applied every frame.
	//
	// Parameters:
	//   - c: the camera
	AddCamera(c camera.Camera)

	// AddScene registers a scene at the given z-index key. Each frame the active scenes are
	// drawn with the engine's renderer in ascending key order, before the render callback.
	//
	// Parameters:
	//   - key: the z-index determining draw order (lower draws first)
	//   - s: the Scene to register
	AddScene(key int, s scene.Scene)

	// RemoveScene removes the scene at the given z-index key.
	RemoveScene(key int)

	// Scene retrieves the scene registered at the given z-index key, or nil.
	Scene(key int) scene.Scene

	// Scenes returns a copy of all registered scenes keyed by z-index.
	Scenes() map[int]scene.Scene

	// Frames returns the number of frames run so far.
	Frames() uint64

	// Run drives frames until the window closes. It blocks and must be called on the
	// goroutine that created the window.
	Run()

	// Quit asks the window to close; Run returns after the current frame.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine instance with the provided options.
//
// Parameters:
//   - options: functional options for engine configuration (window, renderer, tick rate, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		engineTickRate: time.Second / 60,
		scenes:         make(map[int]scene.Scene),
		now:            time.Now,
		sleep:          time.Sleep,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.profiler == nil {
		popts := []profiler.ProfilerOption{profiler.WithClock(e.now)}
		if e.renderer != nil {
			popts = append(popts, profiler.WithRenderer(e.renderer))
		}
		e.profiler = profiler.NewProfiler(popts...)
	}

	if e.window != nil {
		e.window.SetResizeCallback(e.resize)
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Renderer() renderer.Renderer {
	return e.renderer
}

func (e *engine) Run() {
	if e.window == nil {
		common.Logger().Warn("engine: run without a window")
		return
	}
	e.window.SetUpdateCallback(e.frame)
	common.Logger().Info("engine: running", "tick", e.engineTickRate, "frame_limit", e.renderFrameLimit)
	e.window.ProcessMessages()
	common.Logger().Info("engine: stopped", "frames", e.frames)
}

func (e *engine) Quit() {
	if e.quit {
		return
	}
	e.quit = true
	if e.window != nil {
		e.window.RequestClose()
	}
}

func (e *engine) Frames() uint64 {
	return e.frames
}

// frame runs one iteration of the loop: pending fixed ticks, camera controllers, the render
// callback, the buffer swap, profiling and the frame cap.
func (e *engine) frame() {
	now := e.now()
	if !e.started {
		e.started = true
		e.lastFrame = now
	}
	elapsed := now.Sub(e.lastFrame)
	e.lastFrame = now

	e.accumulator += elapsed
	ticks := 0
	for e.accumulator >= e.engineTickRate {
		if ticks == maxTicksPerFrame {
			// Drop the backlog instead of spiralling.
			e.accumulator = 0
			break
		}
		if e.tickCallback != nil {
			e.tickCallback(float32(e.engineTickRate.Seconds()))
		}
		e.accumulator -= e.engineTickRate
		ticks++
	}

	for _, c := range e.cameras {
		c.Update()
	}

	e.drawScenes()
	if e.renderCallback != nil {
		e.renderCallback(float32(elapsed.Seconds()))
	}
	if e.window != nil {
		e.window.SwapBuffers()
	}
	e.frames++

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick()
	}

	if e.renderFrameLimit > 0 {
		if remaining := e.renderFrameLimit - e.now().Sub(now); remaining > 0 {
			e.sleep(remaining)
		}
	}
}

// drawScenes draws the active scenes in ascending z-index order.
func (e *engine) drawScenes() {
	if e.renderer == nil || len(e.scenes) == 0 {
		return
	}
	for _, key := range slices.Sorted(maps.Keys(e.scenes)) {
		s := e.scenes[key]
		if !s.Active() {
			continue
		}
		if err := s.Draw(e.renderer); err != nil {
			common.Logger().Debug("engine: scene draw", "scene", key, "err", err)
		}
	}
}

// resize keeps every registered camera in step with the window's framebuffer size.
func (e *engine) resize(width, height int) {
	if width <= 0 || height <= 0 {
		// Minimized.
		return
	}
	for _, c := range e.cameras {
		c.Resize(int32(width), int32(height))
	}
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) SetTickRate(fps float64) {
	e.engineTickRate = tickDuration(fps)
}

func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.renderCallback = callback
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	e.renderFrameLimit = frameDuration(fps)
}

func (e *engine) AddCamera(c camera.Camera) {
	if c == nil {
		return
	}
	e.cameras = append(e.cameras, c)
}

func (e *engine) AddScene(key int, s scene.Scene) {
	e.scenes[key] = s
}

func (e *engine) RemoveScene(key int) {
	delete(e.scenes, key)
}

func (e *engine) Scene(key int) scene.Scene {
	return e.scenes[key]
}

func (e *engine) Scenes() map[int]scene.Scene {
	return maps.Clone(e.scenes)
}

func tickDuration(fps float64) time.Duration {
	if fps <= 0 {
		fps = 60
	}
	return time.Duration(float64(time.Second) / fps)
}

func frameDuration(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
