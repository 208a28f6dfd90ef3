package game

import (
	"github.com/solarlune/tetra3d"
	"github.com/solarlune/tetra3d/colors"
)

// Celebration is the confetti burst shown on the completion screen:
// colored flakes raining down over the table.
type Celebration struct {
	root   *tetra3d.Model
	system *tetra3d.ParticleSystem
	active bool
}

func NewCelebration(parent *tetra3d.Node) *Celebration {
	root := tetra3d.NewModel("confetti emitter", tetra3d.NewCubeMesh())
	rootMat := root.Mesh.MeshParts[0].Material
	rootMat.TransparencyMode = tetra3d.TransparencyModeTransparent
	rootMat.Color = tetra3d.NewColor(0, 0, 0, 0)
	root.SetLocalPosition(0, 3.2, 0)
	parent.AddChildren(root)

	flakes := []*tetra3d.Model{
		flake("confetti red", colors.Red()),
		flake("confetti yellow", colors.Yellow()),
		flake("confetti green", colors.Green()),
		flake("confetti blue", colors.SkyBlue()),
		flake("confetti white", colors.White()),
	}

	system := tetra3d.NewParticleSystem(root, flakes...)
	settings := system.Settings
	settings.SpawnRate.Set(0.05, 0.05)
	settings.SpawnCount.Set(3, 3)
	settings.Lifetime.Set(2, 3.5)
	settings.Scale.SetRanges(0.4, 1)
	settings.Scale.Uniform = true
	settings.SpawnOffset.SetRangeX(-1.5, 1.5)
	settings.SpawnOffset.SetRangeZ(-0.5, 0.5)
	settings.Velocity.SetRangeX(-0.01, 0.01)
	settings.Velocity.SetRangeY(-0.03, -0.015)
	settings.RotationAdd.SetRangeZ(0.05, 0.15)

	c := &Celebration{root: root, system: system}
	c.Stop()
	return c
}

func flake(name string, color tetra3d.Color) *tetra3d.Model {
	mesh := tetra3d.NewCubeMesh()
	mesh.Select().ApplyMatrix(tetra3d.NewMatrix4Scale(0.06, 0.06, 0.01))
	mesh.UpdateBounds()
	mat := mesh.MeshParts[0].Material
	mat.Name = name
	mat.Shadeless = true
	mat.Color = color
	return tetra3d.NewModel(name, mesh)
}

func (c *Celebration) Start() {
	c.active = true
	c.root.SetVisible(true, true)
}

func (c *Celebration) Stop() {
	c.active = false
	c.root.SetVisible(false, true)
}

// Update advances the simulation while the celebration runs.
func (c *Celebration) Update(dt float64) {
	if c.active {
		c.system.Update(float32(dt))
	}
}
