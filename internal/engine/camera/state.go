package camera

import "github.com/Faultbox/orbitview/pkg/math"

// ViewState is the camera orientation around its look-at point.
type ViewState struct {
	zOffset math.Vec3 // Offset from lookAt before rotation
	lookAt  math.Vec3

	currentRotation  math.Quat // Committed
	rotationModifier math.Quat // Pending gesture, identity when idle

	shouldReverseHorizontal bool

	// Always Translate(-(zOffset+lookAt)) * Rotate(currentRotation*rotationModifier).
	matrix math.Mat4
}

func newViewState(zOffset, lookAt math.Vec3) ViewState {
	v := ViewState{
		zOffset:          zOffset,
		lookAt:           lookAt,
		currentRotation:  math.QuatIdentity(),
		rotationModifier: math.QuatIdentity(),
	}
	v.rebuild()
	return v
}

func (v *ViewState) setRotationModifier(q math.Quat) {
	v.rotationModifier = q
	v.rebuild()
}

// commit folds the modifier into the committed rotation and refreshes the
// reverse flag from the resulting view matrix.
func (v *ViewState) commit() {
	if v.rotationModifier != math.QuatIdentity() {
		v.currentRotation = v.currentRotation.Mul(v.rotationModifier).Normalize()
		v.rotationModifier = math.QuatIdentity()
		v.rebuild()
	}

	up := v.matrix.Mat3().Col(1)
	v.shouldReverseHorizontal = up.Dot(math.UnitY) < 0
}

func (v *ViewState) rebuild() {
	v.matrix = viewMatrix(v.zOffset, v.lookAt, v.currentRotation, v.rotationModifier)
}

func viewMatrix(zOffset, lookAt math.Vec3, rotation, modifier math.Quat) math.Mat4 {
	translation := math.TranslateVec3(zOffset.Add(lookAt).Neg())
	return translation.Mul(rotation.Mul(modifier).ToMat4())
}

// ProjectionState holds the perspective parameters.
type ProjectionState struct {
	fov    math.Degrees
	aspect float32
	zNear  float32
	zFar   float32

	matrix math.Mat4
}

func newProjectionState(fov math.Degrees, aspect, zNear, zFar float32) ProjectionState {
	p := ProjectionState{
		fov:    fov,
		aspect: aspect,
		zNear:  zNear,
		zFar:   zFar,
	}
	p.rebuild()
	return p
}

func (p *ProjectionState) setAspect(aspect float32) {
	p.aspect = aspect
	p.rebuild()
}

func (p *ProjectionState) setFOV(fov math.Degrees) {
	p.fov = fov
	p.rebuild()
}

func (p *ProjectionState) setClipPlanes(zNear, zFar float32) {
	p.zNear = zNear
	p.zFar = zFar
	p.rebuild()
}

func (p *ProjectionState) rebuild() {
	p.matrix = math.Perspective(p.fov.Radians(), p.aspect, p.zNear, p.zFar)
}
