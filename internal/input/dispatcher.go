package input

import (
	"hardware-lab/internal/app"
	"hardware-lab/internal/ui"
)

// dragSensitivity converts pixels of mouse drag into radians of model
// rotation.
const dragSensitivity = 0.01

// ActionSink receives confirmed widget actions.
type ActionSink interface {
	HandleAction(action string)
}

// SoundPlayer plays press feedback.
type SoundPlayer interface {
	PlaySound(name string)
}

// ModelRotator is the slice of the display manager the dispatcher
// drives: manual rotation, and whether the model is currently held
// (which pauses its idle spin).
type ModelRotator interface {
	RotateByDrag(dx, dy float64)
	RotateByGrab(yaw float64)
	SetHeld(held bool)
}

// Dispatcher applies the interaction rules to each frame's pointer:
// hover highlighting, press/release confirmation, model drag sessions,
// and local handling of scroll and locked bindings.
//
// Mouse and VR confirm differently. With a mouse, a press arms the
// widget under the cursor and the action fires only if the release
// lands on the same widget. In VR the trigger fires the hovered widget
// immediately, and the grip turns the model regardless of what the
// laser touches.
type Dispatcher struct {
	tester  Tester
	widgets WidgetLookup
	sink    ActionSink
	sounds  SoundPlayer
	rotator ModelRotator
	vr      bool

	hovered  *ui.Widget
	pressing *ui.Widget
	dragging bool
	grabbing bool
}

func NewDispatcher(tester Tester, widgets WidgetLookup, sink ActionSink, sounds SoundPlayer, rotator ModelRotator, vr bool) *Dispatcher {
	return &Dispatcher{
		tester:  tester,
		widgets: widgets,
		sink:    sink,
		sounds:  sounds,
		rotator: rotator,
		vr:      vr,
	}
}

// Busy reports whether a drag or grab session is in progress; the
// camera rig suspends orbiting while one is.
func (d *Dispatcher) Busy() bool {
	return d.dragging || d.grabbing
}

// Update processes one frame of pointer state.
func (d *Dispatcher) Update(p Pointer) {
	if p.Grab {
		if !d.grabbing {
			d.grabbing = true
			d.rotator.SetHeld(true)
			d.setHovered(nil)
		}
		d.rotator.RotateByGrab(p.GrabYaw)
	} else if d.grabbing {
		d.grabbing = false
		d.rotator.SetHeld(false)
	}
	if d.grabbing {
		// The grip owns the pointer until release: no hover, no
		// trigger.
		return
	}

	hit := d.tester.Test(p.Ray)
	d.setHovered(hit.Widget)

	if d.vr {
		if p.Pressed && hit.Widget != nil {
			d.activate(hit.Widget)
		}
		return
	}

	if p.Pressed {
		if hit.Widget != nil {
			d.pressing = hit.Widget
		} else if hit.Model {
			d.dragging = true
			d.rotator.SetHeld(true)
		}
	}
	if d.dragging && p.Held {
		d.rotator.RotateByDrag(p.DragX*dragSensitivity, p.DragY*dragSensitivity)
	}
	if p.Released {
		if d.pressing != nil && d.pressing == hit.Widget {
			d.activate(d.pressing)
		}
		d.pressing = nil
		if d.dragging {
			d.dragging = false
			d.rotator.SetHeld(false)
		}
	}
}

// Reset ends any interaction session; called when the pointer source
// loses tracking so the model doesn't stay held.
func (d *Dispatcher) Reset() {
	d.setHovered(nil)
	d.pressing = nil
	if d.dragging || d.grabbing {
		d.dragging = false
		d.grabbing = false
		d.rotator.SetHeld(false)
	}
}

func (d *Dispatcher) setHovered(w *ui.Widget) {
	if w == d.hovered {
		return
	}
	if d.hovered != nil {
		d.hovered.SetHovered(false)
	}
	if w != nil {
		w.SetHovered(true)
	}
	d.hovered = w
}

// activate fires a widget's binding. Scroll buttons act locally on
// their target panel, locked entries are inert, and everything else is
// forwarded with press feedback. Forwarding can rebuild the whole
// widget set, so local references are dropped first.
func (d *Dispatcher) activate(w *ui.Widget) {
	switch action := w.Action(); action {
	case "", app.ActionLocked:

	case app.ActionScrollUp, app.ActionScrollDown:
		if target := d.widgets.Widget(w.Spec.ScrollOf); target != nil {
			if target.ScrollBy(action == app.ActionScrollUp) {
				d.sounds.PlaySound(app.SoundPress)
			}
		}

	default:
		d.hovered = nil
		d.pressing = nil
		d.sounds.PlaySound(app.SoundPress)
		d.sink.HandleAction(action)
	}
}
