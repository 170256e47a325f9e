// Package viewer implements the main loop of the mesh viewer.
package viewer

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/orbitview/internal/config"
	"github.com/Faultbox/orbitview/internal/engine/camera"
	"github.com/Faultbox/orbitview/internal/engine/debug"
	"github.com/Faultbox/orbitview/internal/engine/input"
	"github.com/Faultbox/orbitview/internal/engine/meshbank"
	"github.com/Faultbox/orbitview/internal/engine/picking"
	"github.com/Faultbox/orbitview/internal/engine/renderer"
	"github.com/Faultbox/orbitview/internal/engine/viewport"
	"github.com/Faultbox/orbitview/internal/engine/window"
	"github.com/Faultbox/orbitview/internal/logger"
	"github.com/Faultbox/orbitview/pkg/math"
)

// Viewer is the main viewer instance.
type Viewer struct {
	config  *config.Config
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input

	camera       *camera.Camera
	controller   *viewport.Controller
	gesture      viewport.Gesture
	rotateButton uint8

	bank    *meshbank.Bank
	bounds  picking.AABB
	hovered bool

	screenshots       *debug.ScreenshotCapture
	pendingScreenshot bool
}

// New creates the window, renderer and scene.
func New(cfg *config.Config) (*Viewer, error) {
	logger.Info("initializing viewer",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	button, err := input.ParseButton(cfg.Controls.RotateButton)
	if err != nil {
		return nil, err
	}

	v := &Viewer{
		config:       cfg,
		input:        input.New(),
		bank:         meshbank.New(nil),
		rotateButton: button,
		screenshots:  debug.NewScreenshotCapture(cfg.Controls.ScreenshotDir, "orbitview"),
	}

	// The viewport size is unknown until the first frame.
	v.camera = camera.NewWithSettings(0, 0, camera.Settings{
		FOV:      math.Degrees(cfg.Camera.FOVDegrees),
		ZNear:    cfg.Camera.ZNear,
		ZFar:     cfg.Camera.ZFar,
		Distance: cfg.Camera.Distance,
	})
	v.controller = viewport.New(v.camera, viewport.Options{
		ResetAbortedGesture: cfg.Controls.ResetAbortedGesture,
	})

	// Create window (this also creates OpenGL context)
	v.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	dw, dh := v.window.DrawableSize()
	v.renderer, err = renderer.New(renderer.Config{
		Width:         dw,
		Height:        dh,
		ShowWireframe: cfg.Controls.ShowWireframe,
	})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	if err := v.loadScene(); err != nil {
		v.Close()
		return nil, err
	}

	logger.Info("viewer initialized successfully")
	return v, nil
}

func (v *Viewer) loadScene() error {
	cube, err := v.bank.Get(meshbank.Cube)
	if err != nil {
		return fmt.Errorf("load cube: %w", err)
	}
	if err := v.renderer.AddMesh(cube); err != nil {
		return err
	}
	bounds, ok := picking.BoundsOf(cube.Topology.Positions())
	if ok {
		v.bounds = bounds
	}
	return nil
}

// Run starts the main loop.
func (v *Viewer) Run() error {
	v.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting main loop")

	for v.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		// 1. Process input
		if v.input.Update() {
			v.running = false
			break
		}
		v.handleEvents()

		// 2. Resize, rotate, commit
		if err := v.controller.Frame(v.gesture.Frame(v.window.ViewportSize())); err != nil {
			logger.Debug("viewport frame skipped", zap.Error(err))
		}

		// 3. Render
		v.render()

		// 4. Present
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps", zap.Int("count", frameCount), zap.String("dt", fmt.Sprintf("%.2fms", dt*1000)))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (v *Viewer) handleEvents() {
	for _, event := range v.input.Events() {
		pointer := math.Vec2{X: float32(event.MouseX), Y: float32(event.MouseY)}

		switch event.Type {
		case input.EventWindowResize:
			v.renderer.Resize(v.window.DrawableSize())

		case input.EventMouseDown:
			if event.Button == v.rotateButton {
				v.gesture.Press(pointer)
			}

		case input.EventMouseUp:
			if event.Button == v.rotateButton {
				v.gesture.Release()
			}

		case input.EventMouseMove:
			v.gesture.Move(pointer)
			if !v.gesture.Active() {
				v.updateHover(pointer)
			}

		case input.EventFocusLost:
			v.gesture.Abort()
		}
	}

	if v.input.IsKeyPressed(sdl.SCANCODE_ESCAPE) {
		v.running = false
	}
	if v.input.IsKeyPressed(sdl.SCANCODE_F12) {
		v.pendingScreenshot = true
	}
}

// updateHover casts a ray under the pointer and reports when it starts or
// stops touching the mesh bounds.
func (v *Viewer) updateHover(pointer math.Vec2) {
	size := v.controller.Size()
	if size.X <= 0 || size.Y <= 0 {
		return
	}
	inv, err := v.camera.ViewProjectionMatrixInverse()
	if err != nil {
		return
	}

	ray := picking.ScreenToRay(pointer.X, pointer.Y, size.X, size.Y, inv)
	_, hit := ray.IntersectAABB(v.bounds)
	if hit == v.hovered {
		return
	}
	v.hovered = hit

	var outline [][2]math.Vec3
	title := v.config.Window.Title
	if hit {
		title += " - cube"
		outline = debug.BoxEdges(debug.Inflate(v.bounds.Min, v.bounds.Max, 0.02))
	}
	v.window.SetTitle(title)
	if err := v.renderer.SetHighlight(outline); err != nil {
		logger.Warn("failed to update highlight", zap.Error(err))
	}
	logger.Debug("hover changed", zap.Bool("hovered", hit))
}

func (v *Viewer) render() {
	if err := v.renderer.SetCamera(v.camera); err != nil {
		logger.Debug("camera uniforms partially updated", zap.Error(err))
	}

	v.renderer.Begin()
	v.renderer.Draw()
	v.renderer.End()

	if v.pendingScreenshot {
		v.pendingScreenshot = false
		pixels, w, h := v.renderer.ReadPixels()
		path, err := v.screenshots.CaptureFromPixels(pixels, w, h)
		if err != nil {
			logger.Warn("screenshot failed", zap.Error(err))
			return
		}
		logger.Info("screenshot saved", zap.String("path", path))
	}
}

// Close cleans up viewer resources.
func (v *Viewer) Close() {
	logger.Info("closing viewer")

	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
