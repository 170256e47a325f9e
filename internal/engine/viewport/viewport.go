// Package viewport drives the camera from per-frame viewport state.
//
// Each frame runs in a fixed order: the camera is resized when the viewport
// size changed, then rotated while a gesture is active, then committed on the
// frame the gesture ends. Matrices read after Frame reflect all three steps.
package viewport

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/orbitview/internal/logger"
	"github.com/Faultbox/orbitview/pkg/math"
)

// Camera is the part of the camera the controller drives. *camera.Camera
// satisfies it.
type Camera interface {
	HandleResize(width, height float32) error
	TurntableRotate(delta math.Vec2, viewportWidth, viewportHeight float32) error
	SolidifyViewInfo()
	CancelRotation()
}

// Options configures the controller.
type Options struct {
	// ResetAbortedGesture drops the pending rotation when a gesture ends
	// without a release. When false the pending rotation is committed.
	ResetAbortedGesture bool
}

// DefaultOptions returns the default controller options.
func DefaultOptions() Options {
	return Options{ResetAbortedGesture: true}
}

// FrameInput is the viewport state for one frame.
type FrameInput struct {
	Size         math.Vec2 // Viewport size in pixels
	Active       bool      // Rotate gesture held
	Delta        math.Vec2 // Pointer offset from the gesture's press origin
	PointerValid bool      // Delta is meaningful
	Aborted      bool      // Gesture ended without a release
}

// Controller applies FrameInput to a camera.
type Controller struct {
	cam  Camera
	opts Options

	size     math.Vec2
	rotating bool
}

// New creates a controller for cam. The camera is assumed to have been
// created without a known viewport size.
func New(cam Camera, opts Options) *Controller {
	return &Controller{cam: cam, opts: opts}
}

// Size returns the last viewport size applied to the camera.
func (c *Controller) Size() math.Vec2 {
	return c.size
}

// Rotating reports whether a gesture was active in the last frame.
func (c *Controller) Rotating() bool {
	return c.rotating
}

// Frame applies one frame of input. Failed steps are skipped and reported
// together; the remaining steps still run.
func (c *Controller) Frame(in FrameInput) error {
	var errs []error

	if !in.Size.ApproxEqual(c.size) {
		if err := c.cam.HandleResize(in.Size.X, in.Size.Y); err != nil {
			errs = append(errs, fmt.Errorf("resize: %w", err))
		} else {
			c.size = in.Size
		}
	}

	active := in.Active && !in.Aborted
	if active {
		c.rotating = true
		if in.PointerValid {
			if err := c.cam.TurntableRotate(in.Delta, in.Size.X, in.Size.Y); err != nil {
				errs = append(errs, fmt.Errorf("rotate: %w", err))
			}
		}
		return errors.Join(errs...)
	}

	if c.rotating {
		c.rotating = false
		if in.Aborted && c.opts.ResetAbortedGesture {
			c.cam.CancelRotation()
			logger.Debug("rotation gesture aborted")
		} else {
			c.cam.SolidifyViewInfo()
			logger.Debug("rotation committed", zap.Bool("aborted", in.Aborted))
		}
	}

	return errors.Join(errs...)
}
