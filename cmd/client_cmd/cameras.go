package clientcmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	checkFeeds   bool
	checkTimeout time.Duration
)

func handleClientCamerasCommand(cmd *cobra.Command, args []string) error {
	cameras, err := clientContext.ListCameras(*rootContext)
	if err != nil {
		return fmt.Errorf("/cameras failed: %v", err)
	}

	if len(cameras) == 0 {
		fmt.Println("No cameras configured")
		return nil
	}

	if !checkFeeds {
		for _, cam := range cameras {
			fmt.Printf("%d\t%s\t%s\n", cam.Id, cam.Name, clientContext.URL(cam.Feed))
		}
		return nil
	}

	failed := 0
	for _, check := range clientContext.CheckFeeds(*rootContext, cameras, checkTimeout) {
		cam := check.Camera
		if check.Err != nil {
			failed++
			fmt.Printf("%d\t%s\tunreachable: %v\n", cam.Id, cam.Name, check.Err)
			continue
		}
		fmt.Printf("%d\t%s\tok %dx%d\n", cam.Id, cam.Name, check.Bounds.Dx(), check.Bounds.Dy())
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d cameras unreachable", failed, len(cameras))
	}
	return nil
}

// NewClientCamerasCommand creates a sub-command listing the server's cameras.
func NewClientCamerasCommand() *cobra.Command {
	camerasCmd := &cobra.Command{
		Use:   "cameras",
		Short: "Lists the cameras & their feed urls",
		Args:  cobra.NoArgs,
		RunE:  handleClientCamerasCommand,
	}

	camerasCmd.Flags().BoolVar(&checkFeeds, "check", false, "Grab a frame from every camera feed to test its connection")
	camerasCmd.Flags().DurationVar(&checkTimeout, "checkTimeout", 5*time.Second, "Time allowed per camera when checking")
	return camerasCmd
}
