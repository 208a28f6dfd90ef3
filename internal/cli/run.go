package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"hardware-lab/internal/config"
	"hardware-lab/internal/content"
	"hardware-lab/internal/game"
)

// defaultName stands in for learners who skip the name prompt.
const defaultName = "Tamu"

// NewRunCmd builds the subcommand that opens the lab window.
func NewRunCmd(configPath, playerName *string, vrMode *bool, contentDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Open the lab",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLab(*configPath, *playerName, *vrMode, *contentDir)
		},
	}
}

func runLab(configPath, playerName string, vrMode bool, contentDir string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	lib, err := content.Default()
	if err != nil {
		return fmt.Errorf("loading built-in content: %w", err)
	}
	if contentDir != "" {
		lib, err = content.Load(contentDir)
		if err != nil {
			return fmt.Errorf("loading content: %w", err)
		}
	}

	if playerName == "" {
		playerName = promptName(os.Stdin)
	}
	if cfg.Audio.Muted {
		cfg.Audio.NarrationVolume = 0
	}

	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(cfg.Window.Fullscreen)

	g := game.New(&cfg, lib, playerName, vrMode)
	if err := ebiten.RunGame(g); err != nil && err != game.ErrQuit {
		return err
	}
	return nil
}

// promptName asks for the learner's name on stdin; empty input falls
// back to the guest name.
func promptName(in *os.File) string {
	fmt.Print("Siapa nama kamu? ")
	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		return defaultName
	}
	name := strings.TrimSpace(scanner.Text())
	if name == "" {
		return defaultName
	}
	return name
}
