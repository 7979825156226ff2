// cmd package provide a version sub-command for... showing the compiled app
// version :). Version is set during compile time via ldflags.
// ie. go build -ldflags "-X 'main.version=1.2.3'"
package cmd

import (
	"fmt"

	cobra "github.com/spf13/cobra"
)

var (
	binVersion = "dev"
)

// NewVersionCommand creates a version sub-command which prints the application version.
func NewVersionCommand() *cobra.Command {
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Prints the application's version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("camdeck %s\n", binVersion)
			return nil
		},
	}
	return versionCmd
}
