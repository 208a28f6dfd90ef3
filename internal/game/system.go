package game

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/solarlune/tetra3d"
	"github.com/solarlune/tetra3d/colors"
)

// ErrQuit signals an orderly shutdown from inside the game loop.
var ErrQuit = errors.New("quit")

// SystemHandler covers the window-level keys: quitting, fullscreen,
// and the debug overlay.
type SystemHandler struct {
	DrawDebugText bool
}

func (s *SystemHandler) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ErrQuit
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF4) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		s.DrawDebugText = !s.DrawDebugText
	}
	return nil
}

func (s *SystemHandler) Draw(screen *ebiten.Image, camera *tetra3d.Camera) {
	if s.DrawDebugText {
		camera.DrawDebugRenderInfo(screen, 1, colors.White())
	}
}
