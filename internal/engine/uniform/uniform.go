// Package uniform holds the camera-derived uniform blocks shared with shaders,
// serialized in std140 layout.
package uniform

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/orbitview/internal/logger"
	"github.com/Faultbox/orbitview/pkg/math"
)

// Block sizes in bytes.
const (
	CameraBlockSize = 64
	GridBlockSize   = 144
)

// Source provides the camera state the uniform blocks are built from.
// *camera.Camera satisfies it.
type Source interface {
	ViewProjectionMatrix() math.Mat4
	ViewProjectionMatrixInverse() (math.Mat4, error)
	ZNear() float32
	ZFar() float32
}

// CameraUniform feeds mesh and wireframe shaders.
type CameraUniform struct {
	ViewProjection math.Mat4
}

// NewCameraUniform captures the camera's current matrices.
func NewCameraUniform(cam Source) CameraUniform {
	var u CameraUniform
	u.Update(cam)
	return u
}

// Update copies the camera's view-projection matrix.
func (u *CameraUniform) Update(cam Source) {
	u.ViewProjection = cam.ViewProjectionMatrix()
}

// Bytes returns the block in std140 layout.
func (u CameraUniform) Bytes() []byte {
	buf := bytes.NewBuffer(make([]byte, 0, CameraBlockSize))
	mustWrite(buf, u.ViewProjection)
	return buf.Bytes()
}

// GridUniform feeds the infinite ground grid, which unprojects screen
// positions back to world space and fades with depth.
//
// In std140 the two floats pack next to each other after the matrices and the
// block ends on a 16-byte boundary, so only 8 bytes of padding follow them.
type GridUniform struct {
	ViewProjection        math.Mat4
	ViewProjectionInverse math.Mat4
	ZNear                 float32
	ZFar                  float32
	_                     [2]int32
}

// NewGridUniform captures the camera's current state.
func NewGridUniform(cam Source) (GridUniform, error) {
	var u GridUniform
	if err := u.Update(cam); err != nil {
		return u, err
	}
	return u, nil
}

// Update copies the camera's matrices and clip planes. When the
// view-projection matrix is not invertible both matrices keep their previous
// values, so the block never pairs a matrix with a stale inverse.
func (u *GridUniform) Update(cam Source) error {
	u.ZNear = cam.ZNear()
	u.ZFar = cam.ZFar()

	inv, err := cam.ViewProjectionMatrixInverse()
	if err != nil {
		logger.Warn("grid uniform keeps previous matrices", zap.Error(err))
		return fmt.Errorf("update grid uniform: %w", err)
	}
	u.ViewProjection = cam.ViewProjectionMatrix()
	u.ViewProjectionInverse = inv
	return nil
}

// Bytes returns the block in std140 layout.
func (u GridUniform) Bytes() []byte {
	buf := bytes.NewBuffer(make([]byte, 0, GridBlockSize))
	mustWrite(buf, u.ViewProjection)
	mustWrite(buf, u.ViewProjectionInverse)
	mustWrite(buf, [4]float32{u.ZNear, u.ZFar, 0, 0})
	return buf.Bytes()
}

// mustWrite encodes fixed-size data; it cannot fail on a bytes.Buffer.
func mustWrite(buf *bytes.Buffer, data any) {
	if err := binary.Write(buf, binary.LittleEndian, data); err != nil {
		panic(err)
	}
}
