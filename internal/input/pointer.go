// Package input turns mouse or VR controller state into pointer rays,
// resolves what those rays hit, and dispatches widget presses as
// actions. The dispatcher and hit tester work purely on interfaces so
// the interaction rules are testable without a window or headset.
package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/solarlune/tetra3d"
)

// rayReach is how far pointer rays extend into the scene, in world
// units. The lab stage is a few units deep, so this is generous.
const rayReach = 50.0

// Ray is a world-space segment to test against the scene.
type Ray struct {
	From, To tetra3d.Vector3
}

// Pointer is one frame of pointer state, normalized across sources.
// DragX/DragY carry pointer motion while the button is held, for
// turning the displayed model. Grab and GrabYaw are only produced by
// VR sources: the grip button held, and the hand's yaw change since
// the previous frame.
type Pointer struct {
	Ray Ray

	Pressed  bool
	Held     bool
	Released bool

	DragX, DragY float64

	Grab    bool
	GrabYaw float64
}

// Source produces one Pointer per frame. ok is false when the source
// has no pose this frame (e.g. the headset lost controller tracking).
type Source interface {
	Poll() (p Pointer, ok bool)
}

// MouseSource derives pointer rays from the OS cursor through the
// scene camera.
type MouseSource struct {
	camera       *tetra3d.Camera
	lastX, lastY int
}

func NewMouseSource(camera *tetra3d.Camera) *MouseSource {
	return &MouseSource{camera: camera}
}

func (m *MouseSource) Poll() (Pointer, bool) {
	x, y := ebiten.CursorPosition()

	p := Pointer{
		Pressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		Held:     ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		Released: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
	}
	if p.Held && !p.Pressed {
		p.DragX = float64(x - m.lastX)
		p.DragY = float64(y - m.lastY)
	}
	m.lastX, m.lastY = x, y

	p.Ray = Ray{
		From: m.camera.WorldPosition(),
		To:   m.camera.ScreenToWorldPixels(x, y, rayReach),
	}
	return p, true
}
