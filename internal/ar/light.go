package ar

import (
	"github.com/Faultbox/markerlens/internal/engine/scene"
)

// BindAmbientLight subscribes the scene to the session's frame updates:
// whenever the platform produces an ambient light estimate, the latest
// value overwrites the scene's sample. Frames without an estimate leave
// the previous sample in place.
func BindAmbientLight(session Session, sc *scene.Scene) {
	session.OnFrameUpdate(func(f FrameUpdate) {
		if f.LightEstimate != nil {
			sc.SetAmbientLight(*f.LightEstimate)
		}
	})
}
