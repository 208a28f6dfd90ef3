// Package game assembles the lab: scene, camera rig, widget builder,
// model manager, audio, and the pointer pipeline, glued to the screen
// state machine through the app.Stage interface.
package game

import (
	"context"
	"log"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/solarlune/tetra3d"
	"github.com/solarlune/tetra3d/colors"

	"hardware-lab/internal/app"
	"hardware-lab/internal/config"
	"hardware-lab/internal/content"
	"hardware-lab/internal/display"
	"hardware-lab/internal/input"
	"hardware-lab/internal/sound"
	"hardware-lab/internal/ui"
)

// orbitSensitivity converts pixels of right-button drag into radians
// of camera orbit.
const orbitSensitivity = 0.005

var backgroundColor = tetra3d.NewColor(0.13, 0.13, 0.13, 1)

// Game is the ebiten root object and the controller's Stage.
type Game struct {
	cfg *config.Config
	lib *content.Library

	scene    *tetra3d.Scene
	rig      *OrbitRig
	builder  *ui.Builder
	models   *display.Manager
	sounds   *sound.Player
	avatar   *Avatar
	confetti *Celebration

	controller *app.Controller
	dispatcher *input.Dispatcher
	source     input.Source
	vr         bool

	system       SystemHandler
	lastX, lastY int
}

func New(cfg *config.Config, lib *content.Library, playerName string, vr bool) *Game {
	g := &Game{cfg: cfg, lib: lib, vr: vr}

	g.scene = tetra3d.NewScene("lab")
	g.scene.World.LightingOn = false
	buildRoom(g.scene.Root)

	g.rig = NewOrbitRig(cfg.Window.Width, cfg.Window.Height)
	g.scene.Root.AddChildren(g.rig.Camera)

	planner := ui.NewPlanner(lib, func() bool { return rand.Intn(2) == 0 })
	g.builder = ui.NewBuilder(g.scene.Root, planner)

	g.models = display.NewManager(
		g.scene.Root,
		display.DiskLoader(cfg.Assets.Dir),
		cfg.Lab.ModelSize,
		cfg.Lab.TableHeight,
	)
	g.sounds = sound.NewPlayer(cfg.Assets.Dir, cfg.Audio.NarrationVolume)
	g.avatar = NewAvatar(g.scene.Root)
	g.confetti = NewCelebration(g.scene.Root)

	session := app.NewSession(playerName, time.Now)
	g.controller = app.NewController(lib, session, g, cfg.Debounce())

	tester := input.NewSceneTester(g.builder, g.models)
	g.dispatcher = input.NewDispatcher(tester, g.builder, g.controller, g.sounds, g.models, vr)
	if vr {
		g.source = input.NewControllerSource(input.NewDesktopRig(g.rig.Camera))
	} else {
		g.source = input.NewMouseSource(g.rig.Camera)
	}

	g.warmCaches()
	g.controller.Start()
	return g
}

// warmCaches preloads every component's model and narration in the
// background; first use falls back to loading on demand if this has
// not finished.
func (g *Game) warmCaches() {
	var models, clips []string
	for _, comp := range g.lib.Components {
		models = append(models, comp.Model)
		clips = append(clips, comp.Audio)
	}
	go func() {
		if err := g.models.Preload(context.Background(), models); err != nil {
			log.Printf("game: preloading models: %v", err)
		}
		if err := g.sounds.Preload(context.Background(), clips); err != nil {
			log.Printf("game: preloading narration: %v", err)
		}
	}()
}

// buildRoom places the static scenery: floor and table.
func buildRoom(root *tetra3d.Node) {
	floor := slab(20, 0.1, 20, colors.DarkGray())
	floor.SetLocalPosition(0, -1.05, 0)
	root.AddChildren(floor)

	table := slab(3, 1, 1.6, colors.Gray())
	table.SetLocalPosition(0, -0.5, 0)
	root.AddChildren(table)
}

func slab(w, h, d float32, color tetra3d.Color) *tetra3d.Model {
	mesh := tetra3d.NewCubeMesh()
	mesh.Select().ApplyMatrix(tetra3d.NewMatrix4Scale(w/2, h/2, d/2))
	mesh.UpdateBounds()
	mat := mesh.MeshParts[0].Material
	mat.Shadeless = true
	mat.Color = color
	return tetra3d.NewModel("slab", mesh)
}

func (g *Game) Update() error {
	const dt = 1.0 / 60.0

	if p, ok := g.source.Poll(); ok {
		g.dispatcher.Update(p)
	} else {
		g.dispatcher.Reset()
	}
	g.updateOrbit()

	g.models.Update()
	g.rig.Update(dt)
	g.confetti.Update(dt)

	return g.system.Update()
}

// updateOrbit drives the camera with the right mouse button. In VR
// mode the right button belongs to the grip emulation, and during a
// model drag the camera stays put.
func (g *Game) updateOrbit() {
	x, y := ebiten.CursorPosition()
	if !g.vr && !g.dispatcher.Busy() && ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
		g.rig.Orbit(
			float64(x-g.lastX)*orbitSensitivity,
			float64(y-g.lastY)*orbitSensitivity,
		)
	}
	g.lastX, g.lastY = x, y
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor.ToRGBA64())

	camera := g.rig.Camera
	camera.Clear()
	camera.RenderScene(g.scene)
	screen.DrawImage(camera.ColorTexture(), nil)

	g.system.Draw(screen, camera)
}

func (g *Game) Layout(w, h int) (int, int) {
	return g.cfg.Window.Width, g.cfg.Window.Height
}

// app.Stage implementation.

func (g *Game) ShowScreen(screen app.Screen) {
	g.builder.Set(screen, g.controller.Session())
}

func (g *Game) LoadModel(ref string) { g.models.Show(ref) }

func (g *Game) UnloadModel() { g.models.Unload() }

func (g *Game) PlayNarration(ref string) { g.sounds.PlayNarration(ref) }

func (g *Game) StopNarration() { g.sounds.StopNarration() }

func (g *Game) PlaySound(name string) { g.sounds.PlaySound(name) }

func (g *Game) SetAvatarVisible(v bool) { g.avatar.SetVisible(v) }

func (g *Game) FrameCamera(f app.CameraFraming) { g.rig.Frame(f) }

func (g *Game) StartCelebration() { g.confetti.Start() }

func (g *Game) StopCelebration() { g.confetti.Stop() }

// EnterVR swaps the pointer pipeline over to the controller adapter.
// Without a headset runtime the DesktopRig emulates the controller.
func (g *Game) EnterVR() {
	if g.vr {
		return
	}
	g.vr = true
	g.source = input.NewControllerSource(input.NewDesktopRig(g.rig.Camera))
	tester := input.NewSceneTester(g.builder, g.models)
	g.dispatcher = input.NewDispatcher(tester, g.builder, g.controller, g.sounds, g.models, true)
}
