package game

import (
	"math"

	"github.com/solarlune/tetra3d"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"hardware-lab/internal/app"
)

// frameDuration is how long the camera glide between framings takes,
// in seconds.
const frameDuration = 0.75

const (
	minPitch = -0.2
	maxPitch = 1.2
)

// framing is one named camera setup as spherical coordinates around a
// look-at target.
type framing struct {
	target     tetra3d.Vector3
	yaw, pitch float64
	distance   float64
}

var framings = map[app.CameraFraming]framing{
	app.FramingIntro: {
		target:   tetra3d.NewVector3(0, 1.6, 0),
		distance: 4,
	},
	app.FramingStage: {
		target:   tetra3d.NewVector3(0, 1, 0),
		pitch:    0.12,
		distance: 5,
	},
}

// OrbitRig owns the scene camera. It orbits a look-at target on yaw
// and pitch, and glides between the named framings with a tween
// instead of snapping.
type OrbitRig struct {
	Camera *tetra3d.Camera

	current framing
	from    framing
	to      framing
	tween   *gween.Tween
}

func NewOrbitRig(width, height int) *OrbitRig {
	rig := &OrbitRig{
		Camera:  tetra3d.NewCamera(width, height),
		current: framings[app.FramingIntro],
	}
	rig.apply()
	return rig
}

// Frame starts a glide toward the named framing from wherever the
// camera is now.
func (r *OrbitRig) Frame(f app.CameraFraming) {
	r.from = r.current
	r.to = framings[f]
	r.tween = gween.New(0, 1, frameDuration, ease.OutQuad)
}

// Orbit adjusts yaw and pitch by the given radians, clamping pitch so
// the camera never dives under the table or flips over the top.
func (r *OrbitRig) Orbit(dyaw, dpitch float64) {
	r.current.yaw += dyaw
	r.current.pitch += dpitch
	if r.current.pitch < minPitch {
		r.current.pitch = minPitch
	}
	if r.current.pitch > maxPitch {
		r.current.pitch = maxPitch
	}
	r.apply()
}

// Update advances the framing glide.
func (r *OrbitRig) Update(dt float64) {
	if r.tween == nil {
		return
	}
	t, done := r.tween.Update(float32(dt))
	f := float64(t)
	r.current = framing{
		target:   lerpVec(r.from.target, r.to.target, f),
		yaw:      lerp(r.from.yaw, r.to.yaw, f),
		pitch:    lerp(r.from.pitch, r.to.pitch, f),
		distance: lerp(r.from.distance, r.to.distance, f),
	}
	r.apply()
	if done {
		r.tween = nil
	}
}

func (r *OrbitRig) apply() {
	c := r.current
	offset := tetra3d.NewVector3(
		float32(c.distance*math.Sin(c.yaw)*math.Cos(c.pitch)),
		float32(c.distance*math.Sin(c.pitch)),
		float32(c.distance*math.Cos(c.yaw)*math.Cos(c.pitch)),
	)
	pos := c.target.Add(offset)
	r.Camera.SetWorldPositionVec(pos)
	r.Camera.SetWorldRotation(tetra3d.NewLookAtMatrix(pos, c.target, tetra3d.WorldUp))
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func lerpVec(a, b tetra3d.Vector3, t float64) tetra3d.Vector3 {
	return a.Add(b.Sub(a).Scale(float32(t)))
}
