package clientcmd

import (
	"fmt"
	"log"

	setif "camdeck/v0/server/route/settings/interfaces"
	"github.com/spf13/cobra"
)

func handleClientSettingsApplyCommand(cmd *cobra.Command, args []string) error {
	req := setif.ApplySettingsRequest{
		RecordLength: cmd.Flags().Lookup("recordLength").Value.String(),
		FileSize:     cmd.Flags().Lookup("fileSize").Value.String(),
	}

	if err := clientContext.ApplySettings(*rootContext, args[0], req); err != nil {
		return fmt.Errorf("failed to apply settings to camera '%s': %v", args[0], err)
	}

	log.Printf("Applied settings to camera '%s'\n", args[0])
	return nil
}

func handleClientSettingsGetCommand(cmd *cobra.Command, args []string) error {
	settings, err := clientContext.GetSettings(*rootContext, args[0])
	if err != nil {
		return fmt.Errorf("failed to get settings of camera '%s': %v", args[0], err)
	}

	fmt.Printf("recordLength: %s\nfileSize: %s\n", settings.RecordLength, settings.FileSize)
	return nil
}

// NewClientSettingsCommand creates the settings sub-command with its apply & get
// children.
func NewClientSettingsCommand() *cobra.Command {
	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Applies or reads a camera's recording settings",
	}

	applyCmd := &cobra.Command{
		Use:   "apply <cameraId>",
		Short: "Applies recording settings to a camera",
		Args:  cobra.ExactArgs(1),
		RunE:  handleClientSettingsApplyCommand,
	}
	applyCmd.Flags().String("recordLength", "", "Recording length, sent verbatim")
	applyCmd.MarkFlagRequired("recordLength")
	applyCmd.Flags().String("fileSize", "", "Recording file size, sent verbatim")
	applyCmd.MarkFlagRequired("fileSize")

	getCmd := &cobra.Command{
		Use:   "get <cameraId>",
		Short: "Prints the settings last applied to a camera",
		Args:  cobra.ExactArgs(1),
		RunE:  handleClientSettingsGetCommand,
	}

	settingsCmd.AddCommand(applyCmd)
	settingsCmd.AddCommand(getCmd)
	return settingsCmd
}
