package cmd

import (
	"fmt"

	"camdeck/v0/internal/config"
	"camdeck/v0/internal/tui"
	"github.com/spf13/cobra"
)

func handlePanelCmd(cmd *cobra.Command, args []string) error {
	// Bound on run, the client command binds the same keys to its own flags.
	bindings := map[string]string{
		config.KeyServerHost:     "server",
		config.KeyServerPort:     "port",
		config.KeyStatusInterval: "statusInterval",
		config.KeyFrameInterval:  "frameInterval",
		config.KeyLogFile:        "logFile",
		config.KeyOpenCommand:    "open",
	}
	for key, name := range bindings {
		if err := vip.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
			return fmt.Errorf("failed to bind flag '%s': %v", name, err)
		}
	}

	if err := tui.Run(*rootCtx.Context, config.NewPanelConfig(vip)); err != nil {
		return fmt.Errorf("failed panel command: %v", err)
	}
	return nil
}

// NewPanelCommand creates the panel sub-command, the interactive terminal viewer.
func NewPanelCommand() *cobra.Command {
	panelCmd := &cobra.Command{
		Use:   "panel",
		Short: "Opens the camera viewer control panel",
		Args:  cobra.NoArgs,
		RunE:  handlePanelCmd,
	}

	flags := panelCmd.Flags()
	flags.String("server", "localhost", "Host endpoint for a running camdeck server")
	flags.Uint("port", 3000, "Listening port on a running camdeck server")
	flags.Duration("statusInterval", 0, "(Optional) Status ribbon refresh interval")
	flags.Duration("frameInterval", 0, "(Optional) Fullscreen frame refresh interval")
	flags.String("logFile", "", "(Optional) File the panel logs to")
	flags.String("open", "", "(Optional) Command opening recording links, ie. xdg-open")

	return panelCmd
}
