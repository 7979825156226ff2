package cmd

import (
	"fmt"
	"strconv"

	"camdeck/v0/server"
	"github.com/spf13/cobra"
)

func handleServerCmd(cmd *cobra.Command, args []string) error {
	// Extract & construct server options.
	port, err := strconv.ParseUint(cmd.PersistentFlags().Lookup("port").Value.String(), 10, 16)
	if err != nil {
		return fmt.Errorf("failed to parse port: %v", err)
	}

	opts := &server.ServerOpts{
		ConfigPath:        cmd.PersistentFlags().Lookup("srvConfig").Value.String(),
		ServerCertificate: cmd.PersistentFlags().Lookup("srvCrt").Value.String(),
		ServerKey:         cmd.PersistentFlags().Lookup("srvKey").Value.String(),
		HostEndpoint:      cmd.PersistentFlags().Lookup("host").Value.String(),
		PortEndpoint:      uint16(port),
	}
	if err := server.Run(*rootCtx.Context, opts); err != nil {
		return fmt.Errorf("failed server command: %v", err)
	}
	return nil
}

func NewServerCommand() *cobra.Command {
	srvCmd := &cobra.Command{
		Use:   "server",
		Short: "Starts the reference camera server on given endpoint with options.",
		RunE:  handleServerCmd,
	}

	srvCmd.PersistentFlags().String("srvConfig", "camdeck-server.yaml", "Path to the server's cameras & storage YAML config.")
	srvCmd.PersistentFlags().String("srvCrt", "", "(Optional) Path to server's TLS certificate.")
	srvCmd.PersistentFlags().String("srvKey", "", "(Optional) Path to server's TLS key.")
	srvCmd.PersistentFlags().String("host", "localhost", "Server hostname to serve on.")
	srvCmd.PersistentFlags().Uint("port", 3000, "Server port to serve on.")

	return srvCmd
}
