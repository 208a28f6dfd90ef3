package ui

import (
	"github.com/solarlune/tetra3d"

	"hardware-lab/internal/app"
)

// uiDistance is how far in front of the stage origin the widget plane
// floats, between the model and the camera.
const uiDistance = 2.5

// Builder realizes Plans as live scene nodes. Exactly one screen's
// widget group exists at a time; Set tears down the previous group
// before building the next, so ray tests never see stale widgets.
type Builder struct {
	parent  tetra3d.INode
	planner *Planner

	group   *tetra3d.Node
	widgets []*Widget
	byHit   map[tetra3d.INode]*Widget
	byName  map[string]*Widget
}

func NewBuilder(parent tetra3d.INode, planner *Planner) *Builder {
	return &Builder{
		parent:  parent,
		planner: planner,
		byHit:   map[tetra3d.INode]*Widget{},
		byName:  map[string]*Widget{},
	}
}

// Set replaces the active widget group with the layout for screen.
func (b *Builder) Set(screen app.Screen, s *app.Session) {
	b.Clear()

	plan := b.planner.Plan(screen, s)
	if len(plan.Widgets) == 0 {
		return
	}

	b.group = tetra3d.NewNode("ui")
	b.group.SetLocalPosition(0, 0, uiDistance)

	for _, spec := range plan.Widgets {
		w := newWidget(spec)
		b.group.AddChildren(w.Model)
		if w.Bounds != nil {
			// Hit volumes sit beside the rotated plane, not under it,
			// so their dimensions stay axis-aligned.
			w.Bounds.SetLocalPosition(float32(spec.X), float32(spec.Y), 0)
			b.group.AddChildren(w.Bounds)
			b.byHit[w.Bounds] = w
		}
		b.widgets = append(b.widgets, w)
		b.byName[spec.Name] = w
	}
	b.parent.AddChildren(b.group)
}

// Clear removes and disposes the active widget group, if any.
func (b *Builder) Clear() {
	for _, w := range b.widgets {
		w.Dispose()
	}
	if b.group != nil {
		b.group.Unparent()
		b.group = nil
	}
	b.widgets = nil
	b.byHit = map[tetra3d.INode]*Widget{}
	b.byName = map[string]*Widget{}
}

// Group returns the active widget group node, or nil between screens.
// Ray tests run against its bounding children.
func (b *Builder) Group() *tetra3d.Node {
	return b.group
}

// WidgetAt maps a hit bounding node back to its widget.
func (b *Builder) WidgetAt(node tetra3d.INode) *Widget {
	return b.byHit[node]
}

// Widget looks a widget up by its plan name.
func (b *Builder) Widget(name string) *Widget {
	return b.byName[name]
}

// Widgets returns the active widgets in plan order.
func (b *Builder) Widgets() []*Widget {
	return b.widgets
}

// ClearHover unhighlights every widget; used when the pointer leaves
// all interactive surfaces.
func (b *Builder) ClearHover() {
	for _, w := range b.widgets {
		w.SetHovered(false)
	}
}
