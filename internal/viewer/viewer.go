// Package viewer runs the interactive scene viewer: window, input, demo
// scene and the draw loop.
package viewer

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/sceneview/internal/config"
	"github.com/Faultbox/sceneview/internal/engine/camera"
	"github.com/Faultbox/sceneview/internal/engine/gpu/glcore"
	"github.com/Faultbox/sceneview/internal/engine/input"
	"github.com/Faultbox/sceneview/internal/engine/render"
	"github.com/Faultbox/sceneview/internal/engine/resource"
	"github.com/Faultbox/sceneview/internal/engine/scene"
	"github.com/Faultbox/sceneview/internal/engine/window"
	"github.com/Faultbox/sceneview/pkg/math"
)

// Spin speed of the demo's orbiting group, radians per second.
const spinSpeed = 0.6

// Viewer is the running application.
type Viewer struct {
	cfg *config.Config
	log *zap.Logger

	window  *window.Window
	device  *glcore.Device
	input   *input.Input
	res     *resource.Manager
	scene   *scene.Scene
	draw    *render.DrawScene
	watcher *resource.Watcher
	orbit   *camera.Orbit
	demo    *Demo

	running bool
	angle   float32
}

// New opens the window and builds the demo scene.
func New(cfg *config.Config, log *zap.Logger) (*Viewer, error) {
	v := &Viewer{cfg: cfg, log: log.Named("viewer"), input: input.New()}

	var err error
	v.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The device needs the window's GL context to be current.
	v.device, err = glcore.New(log)
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create GPU device: %w", err)
	}

	v.res = resource.NewManager(v.device, log)
	v.scene = scene.New(v.res, log)
	v.draw = render.New(v.res, v.scene, v.device, log)
	v.draw.SetDrawBoundingBoxes(cfg.Render.DrawBoundingBoxes)

	custom := v.loadCustomShader()

	w, h := v.window.Size()
	v.demo, err = BuildDemo(v.res, v.scene, cfg.Camera, aspect(w, h), custom)
	if err != nil {
		v.Close()
		return nil, err
	}
	v.orbit = camera.NewOrbitFrom(vec3(cfg.Camera.Eye), vec3(cfg.Camera.Target))

	if cfg.Shaders.HotReload && !custom.IsZero() {
		v.watcher, err = v.res.Watch()
		if err != nil {
			v.log.Warn("shader hot reload disabled", zap.Error(err))
		}
	}

	v.log.Info("viewer initialized", zap.Int("nodes", v.scene.Len()))
	return v, nil
}

// loadCustomShader loads scene.vert.glsl/scene.frag.glsl from the shader
// directory. Missing files are not an error.
func (v *Viewer) loadCustomShader() resource.ShaderID {
	dir := v.cfg.Shaders.Dir
	if dir == "" {
		return resource.ShaderID{}
	}
	vs := filepath.Join(dir, "scene.vert.glsl")
	fs := filepath.Join(dir, "scene.frag.glsl")
	if _, err := os.Stat(vs); err != nil {
		return resource.ShaderID{}
	}
	id, err := v.res.LoadShaderFiles("scene", vs, fs)
	if err != nil {
		v.log.Warn("custom shader unavailable, using stock shader", zap.String("dir", dir), zap.Error(err))
		return resource.ShaderID{}
	}
	return id
}

// Run executes the main loop until the window is closed.
func (v *Viewer) Run() error {
	v.running = true

	lastTime := time.Now()
	frameCount := 0
	statsTimer := time.Now()

	v.log.Info("starting render loop")

	for v.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		v.handleInput(v.input.Update())
		if !v.running {
			break
		}

		if v.watcher != nil {
			v.watcher.Apply()
		}
		v.update(dt)

		if err := v.render(); err != nil {
			return fmt.Errorf("render error: %w", err)
		}
		v.window.SwapBuffers()

		frameCount++
		if v.cfg.Render.LogStats && time.Since(statsTimer) >= time.Second {
			s := v.draw.Stats()
			v.log.Debug("frame stats",
				zap.Int("fps", frameCount),
				zap.Int("draw_calls", s.DrawCalls),
				zap.Int("meshes", s.MeshesDrawn),
				zap.Int("lights", s.LightsUsed),
				zap.Int("gpu_errors", s.GPUErrors),
			)
			frameCount = 0
			statsTimer = time.Now()
		}
	}
	return nil
}

func (v *Viewer) handleInput(f input.Frame) {
	if f.Quit {
		v.running = false
		return
	}
	if f.Resized {
		v.resize()
	}
	if f.Pressed(sdl.SCANCODE_B) {
		on := !v.draw.DrawBoundingBoxes()
		v.draw.SetDrawBoundingBoxes(on)
		v.log.Info("bounding boxes", zap.Bool("enabled", on))
	}
	if f.Pressed(sdl.SCANCODE_P) {
		v.toggleSpinner()
	}

	v.orbit.HandleDrag(f.DragX, f.DragY)
	if f.Wheel != 0 {
		v.orbit.HandleZoom(f.Wheel)
	}
	if f.Forward != 0 || f.Right != 0 || f.Up != 0 {
		v.orbit.HandleMovement(f.Forward, f.Right, f.Up)
	}
}

func (v *Viewer) toggleSpinner() {
	n, err := v.scene.Node(v.demo.Spinner)
	if err != nil {
		return
	}
	n.SetVisible(!n.Visible())
}

func (v *Viewer) resize() {
	w, h := v.window.Size()
	if n, err := v.scene.Node(v.demo.Camera); err == nil {
		n.Camera().Aspect = aspect(w, h)
	}
}

func (v *Viewer) update(dt float32) {
	v.angle += spinSpeed * dt
	if n, err := v.scene.Node(v.demo.Spinner); err == nil {
		n.SetRotation(math.QuatFromAxisAngle(math.Vec3{Y: 1}, v.angle))
	}
	if n, err := v.scene.Node(v.demo.Camera); err == nil {
		v.orbit.Apply(n.Camera())
	}
}

func (v *Viewer) render() error {
	w, h := v.window.Size()
	v.device.Viewport(w, h)
	v.device.Clear(math.Vec4(v.cfg.Render.ClearColor))
	return v.draw.Draw(v.demo.Camera)
}

// Close releases every resource in reverse creation order.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")
	if v.watcher != nil {
		v.watcher.Close()
	}
	if v.draw != nil {
		v.draw.Close()
	}
	if v.res != nil {
		v.res.Close()
	}
	if v.device != nil {
		v.device.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}

func aspect(w, h int) float32 {
	if h == 0 {
		return 1
	}
	return float32(w) / float32(h)
}
