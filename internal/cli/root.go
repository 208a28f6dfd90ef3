package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	playerName string
	vrMode     bool
	contentDir string
)

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	envConfig := os.Getenv("CONFIG_PATH")
	if envConfig == "" {
		envConfig = "config/config.yaml"
	}

	cmd := &cobra.Command{
		Use:   "hardware-lab",
		Short: "Virtual computer hardware lab for learning PC components in 3D",
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", envConfig, "path to YAML config")
	cmd.PersistentFlags().StringVar(&playerName, "name", "", "learner name (prompted when empty)")
	cmd.PersistentFlags().BoolVar(&vrMode, "vr", false, "start in VR mode")
	cmd.PersistentFlags().StringVar(&contentDir, "content", "", "directory overriding the built-in lesson content")
	cmd.AddCommand(NewRunCmd(&configPath, &playerName, &vrMode, &contentDir))
	return cmd
}
