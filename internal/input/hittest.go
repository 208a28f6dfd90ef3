package input

import (
	"github.com/solarlune/tetra3d"

	"hardware-lab/internal/ui"
)

// Hit is the result of resolving a pointer ray: the interactive widget
// it struck, or whether it struck the displayed model instead. Widgets
// occlude the model.
type Hit struct {
	Widget *ui.Widget
	Model  bool
}

// Tester resolves pointer rays against the scene.
type Tester interface {
	Test(ray Ray) Hit
}

// WidgetLookup is the slice of the UI builder the hit tester needs.
type WidgetLookup interface {
	Group() *tetra3d.Node
	WidgetAt(node tetra3d.INode) *ui.Widget
	Widget(name string) *ui.Widget
}

// ModelHittable is the slice of the display manager the hit tester
// needs: the node holding the displayed model's bounds, or nil while
// nothing is shown.
type ModelHittable interface {
	HitRoot() tetra3d.INode
}

// SceneTester ray-tests the live scene: first the widget hit volumes,
// then, if no widget was struck, the displayed model's bounds. Both
// roots may be nil mid-rebuild; that resolves as no hit.
type SceneTester struct {
	widgets WidgetLookup
	model   ModelHittable
}

func NewSceneTester(widgets WidgetLookup, model ModelHittable) *SceneTester {
	return &SceneTester{widgets: widgets, model: model}
}

func (t *SceneTester) Test(ray Ray) Hit {
	var hit Hit

	if group := t.widgets.Group(); group != nil {
		tetra3d.RayTest(tetra3d.RayTestOptions{
			From:        ray.From,
			To:          ray.To,
			TestAgainst: group.SearchTree().IBoundingObjects(),
			OnHit: func(rayHit tetra3d.RayHit, index, count int) bool {
				// Hits arrive near to far; the first known widget wins.
				if w := t.widgets.WidgetAt(rayHit.Object); w != nil {
					hit.Widget = w
					return false
				}
				return true
			},
		})
	}
	if hit.Widget != nil {
		return hit
	}

	if root := t.model.HitRoot(); root != nil {
		tetra3d.RayTest(tetra3d.RayTestOptions{
			From:        ray.From,
			To:          ray.To,
			TestAgainst: root.SearchTree().IBoundingObjects(),
			OnHit: func(rayHit tetra3d.RayHit, index, count int) bool {
				hit.Model = true
				return false
			},
		})
	}
	return hit
}
