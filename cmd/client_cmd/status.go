package clientcmd

import (
	"fmt"

	"camdeck/v0/pkg/status"
	"github.com/spf13/cobra"
)

func printRibbon(r status.Ribbon) {
	fmt.Printf("frame rate: %s\tstream rate: %s\tsignal: %s [%s]\n",
		orDash(r.FrameRate), orDash(r.StreamRate), orDash(r.SignalStrength), r.Indicator.ClassName())
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func handleClientStatusCommand(cmd *cobra.Command, args []string) error {
	watch, err := cmd.Flags().GetBool("watch")
	if err != nil {
		return err
	}

	if !watch {
		poller := status.NewPoller(clientContext, status.PollerOptions{})
		poller.Tick(*rootContext)
		printRibbon(poller.Ribbon())
		return nil
	}

	poller := status.NewPoller(clientContext, status.PollerOptions{
		Interval: clientConfig.StatusInterval,
		OnUpdate: printRibbon,
	})
	poller.Run(*rootContext)
	return nil
}

// NewClientStatusCommand creates a sub-command printing the status ribbon.
func NewClientStatusCommand() *cobra.Command {
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Prints the frame rate, stream rate & signal strength",
		Args:  cobra.NoArgs,
		RunE:  handleClientStatusCommand,
	}
	statusCmd.Flags().BoolP("watch", "w", false, "Keep polling on the panel's status interval")

	return statusCmd
}
