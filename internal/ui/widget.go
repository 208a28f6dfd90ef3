package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/solarlune/tetra3d"
	"github.com/solarlune/tetra3d/colors"
	"github.com/solarlune/tetra3d/math32"
)

// hitDepth is the thickness of widget hit volumes. Rays approach the UI
// plane nearly head-on, so a thin box is enough.
const hitDepth = 0.1

// Widget is one realized UI element: a textured plane model plus, for
// interactive widgets, an axis-aligned hit volume the ray tester sees.
// The hit volume is kept unrotated and parented by the Builder, since
// the plane model itself is rotated to face the camera.
type Widget struct {
	Spec   WidgetSpec
	Model  *tetra3d.Model
	Bounds *tetra3d.BoundingAABB
	Scroll *ScrollRegion

	label   *tetra3d.Text
	surface *ebiten.Image
	content *ebiten.Image
	hovered bool
}

func toColor(c RGBA) tetra3d.Color {
	return tetra3d.NewColor(float32(c.R), float32(c.G), float32(c.B), float32(c.A))
}

func bindTexture(mesh *tetra3d.Mesh, img *ebiten.Image) {
	mat := mesh.MeshParts[0].Material
	mat.Shadeless = true
	mat.TransparencyMode = tetra3d.TransparencyModeTransparent
	mat.Texture = img
}

// widgetPlane builds a w x h quad centered on its origin. The stock
// plane spans 0.5 units off-center, so the vertices are recentered
// before scaling.
func widgetPlane(w, h float32) *tetra3d.Mesh {
	mesh := tetra3d.NewPlaneMesh(2, 2)
	sel := mesh.Select()
	sel.Move(-0.5, 0, -0.5)
	sel.ApplyMatrix(tetra3d.NewMatrix4Scale(w/2, 1, h/2))
	mesh.UpdateBounds()
	return mesh
}

func newWidget(spec WidgetSpec) *Widget {
	mesh := widgetPlane(float32(spec.W), float32(spec.H))

	model := tetra3d.NewModel("widget_"+spec.Name, mesh)
	// Planes spawn facing up; turn them toward the camera the same way
	// sprite planes are set up.
	model.Rotate(1, 0, 0, math32.ToRadians(90))
	model.Rotate(0, 1, 0, math32.ToRadians(180))
	model.SetLocalPosition(float32(spec.X), float32(spec.Y), 0)

	w := &Widget{Spec: spec, Model: model}

	switch {
	case spec.Shape == ShapeCircle:
		px := int(spec.W * pixelsPerUnit)
		w.surface = ebiten.NewImage(px, px)
		drawCircleButton(w.surface, spec.Text, spec.Color)
		bindTexture(mesh, w.surface)

	case spec.Scrollable:
		widthPx := int(spec.W * pixelsPerUnit)
		heightPx := int(spec.H * pixelsPerUnit)
		w.surface = ebiten.NewImage(widthPx, heightPx)
		w.content = renderParagraph(spec.Text, widthPx, spec.FontPx)
		w.Scroll = &ScrollRegion{
			Content: float64(w.content.Bounds().Dy()) / pixelsPerUnit,
			Frame:   spec.H,
		}
		bindTexture(mesh, w.surface)
		w.blit()

	default:
		style := tetra3d.TextStyle{
			Font:                 face(spec.FontPx),
			FGColor:              colors.White(),
			BGColor:              toColor(spec.Color),
			AlignmentHorizontal:  tetra3d.TextAlignHorizontalCenter,
			AlignmentVertical:    tetra3d.TextAlignVerticalCenter,
			LineHeightMultiplier: 1,
		}
		if spec.Panel {
			style.AlignmentHorizontal = tetra3d.TextAlignHorizontalLeft
			style.AlignmentVertical = tetra3d.TextAlignVerticalTop
		}
		label, err := tetra3d.NewText(mesh.MeshParts[0], int(spec.W*pixelsPerUnit))
		if err != nil {
			panic(err)
		}
		w.label = label
		w.label.SetStyle(style)
		w.label.SetText(spec.Text)
	}

	if spec.Action != "" {
		w.Bounds = tetra3d.NewBoundingAABB("hit_"+spec.Name, float32(spec.W), float32(spec.H), hitDepth)
	}
	return w
}

// Action returns the action this widget fires, or "" for decoration.
func (w *Widget) Action() string {
	return w.Spec.Action
}

func (w *Widget) Hovered() bool {
	return w.hovered
}

// SetHovered restyles the widget for its hover state. Repeated calls
// with the same value are free; widgets whose hover color matches their
// base color never redraw.
func (w *Widget) SetHovered(hovered bool) {
	if w.hovered == hovered {
		return
	}
	w.hovered = hovered
	if w.Spec.HoverColor == w.Spec.Color {
		return
	}
	c := w.Spec.Color
	if hovered {
		c = w.Spec.HoverColor
	}
	switch {
	case w.Spec.Shape == ShapeCircle && w.surface != nil:
		drawCircleButton(w.surface, w.Spec.Text, c)
	case w.label != nil:
		style := w.label.Style()
		style.BGColor = toColor(c)
		w.label.SetStyle(style)
	}
}

// ScrollBy moves this widget's scroll window one step and reports
// whether anything moved. Non-scrollable widgets refuse.
func (w *Widget) ScrollBy(up bool) bool {
	if w.Scroll == nil {
		return false
	}
	var moved bool
	if up {
		moved = w.Scroll.ScrollUp()
	} else {
		moved = w.Scroll.ScrollDown()
	}
	if moved {
		w.blit()
	}
	return moved
}

// blit repaints the visible window of a scrollable panel.
func (w *Widget) blit() {
	if w.surface == nil || w.content == nil {
		return
	}
	w.surface.Fill(w.Spec.Color.toNRGBA())
	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Translate(0, -w.Scroll.Offset*pixelsPerUnit)
	w.surface.DrawImage(w.content, opts)
}

// Dispose releases the widget's textures and detaches its nodes.
func (w *Widget) Dispose() {
	if w.label != nil {
		w.label.Dispose()
		w.label = nil
	}
	if w.surface != nil {
		w.surface.Deallocate()
		w.surface = nil
	}
	if w.content != nil {
		w.content.Deallocate()
		w.content = nil
	}
	w.Model.Unparent()
	if w.Bounds != nil {
		w.Bounds.Unparent()
	}
}
