package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/solarlune/tetra3d"
	"github.com/solarlune/tetra3d/math32"
)

// PoseProvider reports a VR controller's pointing pose and buttons.
// A real OpenXR binding and the DesktopRig emulation both satisfy it.
type PoseProvider interface {
	// Pose returns the controller's world position and aim direction.
	// ok is false while tracking is lost.
	Pose() (origin, direction tetra3d.Vector3, ok bool)
	TriggerPressed() bool
	GripPressed() bool
}

// ControllerSource adapts a PoseProvider into per-frame Pointers:
// trigger edges become press/release, and grip motion becomes the
// grab-yaw used to turn the displayed model.
type ControllerSource struct {
	pose PoseProvider

	lastTrigger bool
	lastDir     tetra3d.Vector3
	hasLast     bool
}

func NewControllerSource(pose PoseProvider) *ControllerSource {
	return &ControllerSource{pose: pose}
}

func (c *ControllerSource) Poll() (Pointer, bool) {
	origin, dir, ok := c.pose.Pose()
	if !ok {
		c.hasLast = false
		c.lastTrigger = false
		return Pointer{}, false
	}

	trigger := c.pose.TriggerPressed()
	grip := c.pose.GripPressed()

	p := Pointer{
		Ray: Ray{
			From: origin,
			To:   origin.Add(dir.Unit().Scale(rayReach)),
		},
		Pressed:  trigger && !c.lastTrigger,
		Held:     trigger,
		Released: !trigger && c.lastTrigger,
		Grab:     grip,
	}
	if grip && c.hasLast {
		p.GrabYaw = float64(math32.Atan2(dir.X, dir.Z) - math32.Atan2(c.lastDir.X, c.lastDir.Z))
	}

	c.lastDir = dir
	c.hasLast = true
	c.lastTrigger = trigger
	return p, true
}

// DesktopRig emulates a VR controller with the mouse so VR mode can be
// exercised without a headset: the aim follows the cursor, the left
// button is the trigger and the right button is the grip.
type DesktopRig struct {
	camera *tetra3d.Camera
}

func NewDesktopRig(camera *tetra3d.Camera) *DesktopRig {
	return &DesktopRig{camera: camera}
}

func (r *DesktopRig) Pose() (tetra3d.Vector3, tetra3d.Vector3, bool) {
	x, y := ebiten.CursorPosition()
	from := r.camera.WorldPosition()
	to := r.camera.ScreenToWorldPixels(x, y, rayReach)
	return from, to.Sub(from).Unit(), true
}

func (r *DesktopRig) TriggerPressed() bool {
	return ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}

func (r *DesktopRig) GripPressed() bool {
	return ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
}
