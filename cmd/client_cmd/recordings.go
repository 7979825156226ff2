package clientcmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"camdeck/v0/internal/client"
	fileio "camdeck/v0/utils/fileIO"
	"github.com/spf13/cobra"
)

func handleClientRecordingsCommand(cmd *cobra.Command, args []string) error {
	names, err := clientContext.ListRecordings(*rootContext)
	if err != nil {
		return fmt.Errorf("/recordings failed: %v", err)
	}

	for _, name := range names {
		fmt.Printf("%s\t%s\n", name, clientContext.URL(client.RecordingPath(name)))
	}
	return nil
}

func handleClientRecordingsGetCommand(cmd *cobra.Command, args []string) error {
	name := args[0]
	output := cmd.Flags().Lookup("output").Value.String()
	if output == "" {
		output = filepath.Base(name)
	}

	force, _ := cmd.Flags().GetBool("force")
	if fileio.FileExists(output) && !force {
		return fmt.Errorf("'%s' already exists, use --force to overwrite", output)
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create '%s': %v", output, err)
	}
	defer f.Close()

	n, err := clientContext.DownloadRecording(*rootContext, name, f)
	if err != nil {
		os.Remove(output)
		return fmt.Errorf("failed to download recording '%s': %v", name, err)
	}

	log.Printf("Saved '%s' to '%s' (%d bytes)\n", name, output, n)
	return nil
}

// NewClientRecordingsCommand creates the recordings sub-command, listing recordings
// or downloading one with get.
func NewClientRecordingsCommand() *cobra.Command {
	recordingsCmd := &cobra.Command{
		Use:   "recordings",
		Short: "Lists recordings & their download links",
		Args:  cobra.NoArgs,
		RunE:  handleClientRecordingsCommand,
	}

	getCmd := &cobra.Command{
		Use:   "get <name>",
		Short: "Downloads a recording",
		Args:  cobra.ExactArgs(1),
		RunE:  handleClientRecordingsGetCommand,
	}
	getCmd.Flags().StringP("output", "o", "", "(Optional) Output file path, defaults to the recording's name")
	getCmd.Flags().BoolP("force", "f", false, "Overwrite an existing output file")

	recordingsCmd.AddCommand(getCmd)
	return recordingsCmd
}
