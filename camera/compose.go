package camera

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/monument"
)

// State is the mutable part of the camera.
type State struct {
	Rotation    mgl32.Quat
	Translation mgl32.Vec3
}

// InitialState returns the state a camera starts in for cfg: no rotation,
// translated to cfg.Position.
func InitialState(cfg monument.CameraConfig) State {
	return State{
		Rotation:    mgl32.QuatIdent(),
		Translation: mgl32.Vec3(cfg.Position),
	}
}

// Projection returns the perspective projection for the given aspect ratio.
func Projection(aspect float32, cfg monument.CameraConfig) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(cfg.FOV), aspect, cfg.Near, cfg.Far)
}

// Compose returns the full view transform of state.
func Compose(state State, aspect float32, cfg monument.CameraConfig) mgl32.Mat4 {
	modelview := mgl32.Ident4()
	modelview = modelview.Mul4(state.Rotation.Normalize().Mat4())
	modelview = modelview.Mul4(mgl32.Translate3D(state.Translation[0], state.Translation[1], state.Translation[2]))
	modelview = modelview.Mul4(mgl32.Scale3D(cfg.Scale[0], cfg.Scale[1], cfg.Scale[2]))
	return Projection(aspect, cfg).Mul4(modelview)
}
