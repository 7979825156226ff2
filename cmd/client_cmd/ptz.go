package clientcmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"camdeck/v0/pkg/camera"
	"camdeck/v0/pkg/panel"
	"github.com/spf13/cobra"
)

// dispatch sends the given commands to one camera through an ordered command
// dispatcher, waiting on each result.
// This returns the first command failure.
func dispatch(cameraId string, send func(d *camera.CommandDispatcher)) error {
	ctx, cancel := context.WithCancel(*rootContext)
	defer cancel()

	results := make(chan camera.CommandResult, 4)
	d := camera.NewCommandDispatcher(ctx, clientContext, camera.CommandDispatcherOptions{
		RequestTimeout: clientConfig.Server.Timeout,
		OnResult:       func(res camera.CommandResult) { results <- res },
	})

	send(d)

	res := <-results
	if res.Err != nil {
		return fmt.Errorf("ptz %s on camera '%s' failed: %v", res.Command.Kind, cameraId, res.Err)
	}
	log.Printf("Sent ptz %s to camera '%s'\n", res.Command.Kind, cameraId)
	return nil
}

func handleClientPtzMoveCommand(cmd *cobra.Command, args []string) error {
	cameraId := args[0]
	dir, err := panel.ParseDirection(args[1])
	if err != nil {
		return err
	}

	hold, err := cmd.Flags().GetDuration("hold")
	if err != nil {
		return fmt.Errorf("failed to parse hold: %v", err)
	}

	if err := dispatch(cameraId, func(d *camera.CommandDispatcher) {
		d.Move(cameraId, dir.Vector().Command())
	}); err != nil {
		return err
	}
	if hold <= 0 {
		return nil
	}

	// Motion is continuous, release after holding.
	select {
	case <-time.After(hold):
	case <-(*rootContext).Done():
	}
	return dispatch(cameraId, func(d *camera.CommandDispatcher) {
		d.Stop(cameraId)
	})
}

func handleClientPtzStopCommand(cmd *cobra.Command, args []string) error {
	return dispatch(args[0], func(d *camera.CommandDispatcher) {
		d.Stop(args[0])
	})
}

// NewClientPtzCommand creates the ptz sub-command with its move & stop children.
func NewClientPtzCommand() *cobra.Command {
	ptzCmd := &cobra.Command{
		Use:   "ptz",
		Short: "Sends pan-tilt-zoom commands to a camera",
	}

	moveCmd := &cobra.Command{
		Use:       "move <cameraId> <direction>",
		Short:     "Starts continuous motion: left, up, down, right, zoom-in or zoom-out",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"left", "up", "down", "right", "zoom-in", "zoom-out"},
		RunE:      handleClientPtzMoveCommand,
	}
	moveCmd.Flags().Duration("hold", 0, "(Optional) Stop the camera after holding the motion for this long")

	stopCmd := &cobra.Command{
		Use:   "stop <cameraId>",
		Short: "Stops a camera's motion",
		Args:  cobra.ExactArgs(1),
		RunE:  handleClientPtzStopCommand,
	}

	ptzCmd.AddCommand(moveCmd)
	ptzCmd.AddCommand(stopCmd)
	return ptzCmd
}
