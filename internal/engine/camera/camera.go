// Package camera provides the orbiting viewport camera.
//
// The camera keeps its orientation as two quaternions: the committed rotation
// and a pending modifier that previews an in-progress turntable gesture. The
// view, projection and combined view-projection matrices are derived state and
// are rebuilt eagerly whenever an input changes.
package camera

import (
	"errors"
	"fmt"
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/orbitview/internal/logger"
	"github.com/Faultbox/orbitview/pkg/math"
)

var (
	// ErrInvalidViewport is returned for zero or negative viewport dimensions.
	ErrInvalidViewport = errors.New("invalid viewport size")
	// ErrInvalidProjection is returned for unusable projection parameters.
	ErrInvalidProjection = errors.New("invalid projection parameters")
)

// Settings holds the initial camera parameters.
type Settings struct {
	FOV      math.Degrees // Vertical field of view
	ZNear    float32
	ZFar     float32
	Distance float32 // Offset from the look-at point along +Z
}

// DefaultSettings returns the default camera parameters.
func DefaultSettings() Settings {
	return Settings{
		FOV:      45,
		ZNear:    0.1,
		ZFar:     100.0,
		Distance: 3.0,
	}
}

// Camera composes the view and projection state with the cached
// view-projection matrix (including the depth remap).
type Camera struct {
	view       ViewState
	projection ProjectionState

	viewProjection math.Mat4
}

// New creates a camera with default settings for the given screen size.
func New(screenWidth, screenHeight float32) *Camera {
	return NewWithSettings(screenWidth, screenHeight, DefaultSettings())
}

// NewWithSettings creates a camera for the given screen size. The viewport is
// often unknown when the camera is created, so non-positive dimensions fall
// back to an aspect ratio of 1 until the first HandleResize.
func NewWithSettings(screenWidth, screenHeight float32, s Settings) *Camera {
	aspect := float32(1.0)
	if screenWidth > 0 && screenHeight > 0 {
		aspect = screenWidth / screenHeight
	} else {
		logger.Debug("camera created without a viewport size, using aspect 1",
			zap.Float32("width", screenWidth),
			zap.Float32("height", screenHeight),
		)
	}

	c := &Camera{
		view:       newViewState(math.Vec3{Z: s.Distance}, math.Vec3{}),
		projection: newProjectionState(s.FOV, aspect, s.ZNear, s.ZFar),
	}
	c.rebuild()
	return c
}

// HandleResize updates the aspect ratio to width/height and rebuilds the
// projection and combined matrices.
func (c *Camera) HandleResize(width, height float32) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %gx%g", ErrInvalidViewport, width, height)
	}
	c.projection.setAspect(width / height)
	c.rebuild()
	return nil
}

// TurntableRotate computes the rotation for a pointer delta measured from the
// start of the gesture and stores it as the pending modifier. The committed
// rotation is not changed; see SolidifyViewInfo.
//
// Horizontal motion turns around world up by 2π per viewport width. Vertical
// motion turns around the camera's horizontal axis by π per viewport height.
func (c *Camera) TurntableRotate(delta math.Vec2, viewportWidth, viewportHeight float32) error {
	if viewportWidth <= 0 || viewportHeight <= 0 {
		return fmt.Errorf("%w: %gx%g", ErrInvalidViewport, viewportWidth, viewportHeight)
	}

	horizontalScale := float32(2*gomath.Pi) / viewportWidth
	verticalScale := float32(gomath.Pi) / viewportHeight

	rotation, err := c.view.currentRotation.ToMat3().Inverse()
	if err != nil {
		return fmt.Errorf("turntable vertical axis: %w", err)
	}
	verticalAxis := rotation.Col(0)
	verticalAngle := verticalScale * delta.Y

	horizontalAngle := horizontalScale * delta.X
	if c.view.shouldReverseHorizontal {
		horizontalAngle = -horizontalAngle
	}

	vertical := math.QuatFromAxisAngle(verticalAxis, verticalAngle)
	horizontal := math.QuatFromAxisAngle(math.UnitY, horizontalAngle)

	c.view.setRotationModifier(vertical.Mul(horizontal).Normalize())
	c.rebuild()
	return nil
}

// SolidifyViewInfo commits the pending rotation. Call it once when a rotation
// gesture ends. Calling it again without a new rotation changes nothing.
func (c *Camera) SolidifyViewInfo() {
	c.view.commit()
	c.rebuild()
}

// CancelRotation discards the pending rotation without committing it.
func (c *Camera) CancelRotation() {
	c.view.setRotationModifier(math.QuatIdentity())
	c.rebuild()
}

// SetFOV sets the vertical field of view.
func (c *Camera) SetFOV(fov math.Degrees) error {
	if fov <= 0 || fov >= 180 {
		return fmt.Errorf("%w: fov %g", ErrInvalidProjection, float32(fov))
	}
	c.projection.setFOV(fov)
	c.rebuild()
	return nil
}

// SetClipPlanes sets the near and far clip distances.
func (c *Camera) SetClipPlanes(near, far float32) error {
	if near <= 0 || far <= near {
		return fmt.Errorf("%w: near %g far %g", ErrInvalidProjection, near, far)
	}
	c.projection.setClipPlanes(near, far)
	c.rebuild()
	return nil
}

// ViewProjectionMatrix returns DepthRemap * projection * view.
func (c *Camera) ViewProjectionMatrix() math.Mat4 {
	return c.viewProjection
}

// ViewProjectionMatrixInverse returns the inverse of the view-projection
// matrix, or math.ErrSingularMatrix.
func (c *Camera) ViewProjectionMatrixInverse() (math.Mat4, error) {
	inv, err := c.viewProjection.Inverse()
	if err != nil {
		return math.Mat4{}, fmt.Errorf("view-projection inverse: %w", err)
	}
	return inv, nil
}

// ViewMatrix returns the cached world to camera transform.
func (c *Camera) ViewMatrix() math.Mat4 { return c.view.matrix }

// ProjectionMatrix returns the cached projection matrix (OpenGL depth range).
func (c *Camera) ProjectionMatrix() math.Mat4 { return c.projection.matrix }

// Rotation returns the committed rotation.
func (c *Camera) Rotation() math.Quat { return c.view.currentRotation }

// RotationModifier returns the pending gesture rotation.
func (c *Camera) RotationModifier() math.Quat { return c.view.rotationModifier }

// ShouldReverseHorizontal reports whether horizontal drags are mirrored
// because the camera is upside down relative to world up.
func (c *Camera) ShouldReverseHorizontal() bool { return c.view.shouldReverseHorizontal }

// ZNear returns the near clip distance.
func (c *Camera) ZNear() float32 { return c.projection.zNear }

// ZFar returns the far clip distance.
func (c *Camera) ZFar() float32 { return c.projection.zFar }

// Aspect returns the current aspect ratio.
func (c *Camera) Aspect() float32 { return c.projection.aspect }

// FOV returns the vertical field of view.
func (c *Camera) FOV() math.Degrees { return c.projection.fov }

func (c *Camera) rebuild() {
	c.viewProjection = math.DepthRemap.Mul(c.projection.matrix).Mul(c.view.matrix)
}
