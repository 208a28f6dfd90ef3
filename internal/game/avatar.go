package game

import (
	"github.com/solarlune/tetra3d"
	"github.com/solarlune/tetra3d/colors"
)

// Avatar is the lab assistant figure standing beside the panels on the
// talking screens. It is assembled from primitives so it needs no model
// asset.
type Avatar struct {
	root *tetra3d.Node
}

func NewAvatar(parent *tetra3d.Node) *Avatar {
	root := tetra3d.NewNode("avatar")
	root.SetLocalPosition(1.8, 0, 1.2)

	body := part(tetra3d.NewCubeMesh(), 0.5, 0.8, 0.3, colors.SkyBlue())
	body.SetLocalPosition(0, 0.9, 0)
	root.AddChildren(body)

	head := part(tetra3d.NewIcosphereMesh(2), 0.35, 0.35, 0.35, colors.Orange())
	head.SetLocalPosition(0, 1.5, 0)
	root.AddChildren(head)

	parent.AddChildren(root)
	a := &Avatar{root: root}
	a.SetVisible(false)
	return a
}

func part(mesh *tetra3d.Mesh, w, h, d float32, color tetra3d.Color) *tetra3d.Model {
	mesh.Select().ApplyMatrix(tetra3d.NewMatrix4Scale(w, h, d))
	mesh.UpdateBounds()
	mat := mesh.MeshParts[0].Material
	mat.Shadeless = true
	mat.Color = color
	return tetra3d.NewModel("avatar part", mesh)
}

func (a *Avatar) SetVisible(visible bool) {
	a.root.SetVisible(visible, true)
}
