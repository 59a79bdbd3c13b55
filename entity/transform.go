package entity

import "github.com/go-gl/mathgl/mgl32"

// Transform is a position/rotation/scale triple placing an instance relative to its parent, or to the world
// if it has none.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

// NewTransform returns an identity transform at the position passed.
func NewTransform(pos mgl32.Vec3) Transform {
	return Transform{
		Position: pos,
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// LocalToParent returns the matrix taking points from the local space of the transform into its parent's
// space: scale, then rotate, then translate.
func (t Transform) LocalToParent() mgl32.Mat4 {
	return mgl32.Translate3D(t.Position[0], t.Position[1], t.Position[2]).
		Mul4(t.Rotation.Mat4()).
		Mul4(mgl32.Scale3D(t.Scale[0], t.Scale[1], t.Scale[2]))
}

// Frame returns the scaled local axes of the transform expressed in its parent's space. These are the first
// three columns of LocalToParent.
func (t Transform) Frame() (x, y, z mgl32.Vec3) {
	return t.Rotation.Rotate(mgl32.Vec3{t.Scale[0], 0, 0}),
		t.Rotation.Rotate(mgl32.Vec3{0, t.Scale[1], 0}),
		t.Rotation.Rotate(mgl32.Vec3{0, 0, t.Scale[2]})
}

// ToWorldDir transforms a direction from the local space of a root transform into world space. Translation
// does not apply to directions.
func (t Transform) ToWorldDir(v mgl32.Vec3) mgl32.Vec3 {
	return t.LocalToParent().Mul4x1(v.Vec4(0)).Vec3()
}

// Hidden returns a copy of the transform parked at pos with zero scale, so that it is no longer visible.
func (t Transform) Hidden(pos mgl32.Vec3) Transform {
	t.Position = pos
	t.Scale = mgl32.Vec3{}
	return t
}
