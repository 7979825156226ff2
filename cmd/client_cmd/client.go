// clientcmd package provides a client sub-command for interacting directly with
// the camera server API, one sub-command per endpoint.
package clientcmd

import (
	"context"
	"fmt"
	"log"

	"camdeck/v0/internal/client"
	"camdeck/v0/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Shared client variables.
var (
	clientContext *client.ClientHttpContext
	clientConfig  config.PanelConfig
	rootContext   *context.Context
)

// setupClient configures a client instance, with TLS when the scheme is https, for
// which to be used within client sub-commands.
// This returns an error instance reflecting the state of failure for
// configuring a client instance.
func setupClient(v *viper.Viper) error {
	var err error
	clientConfig = config.NewPanelConfig(v)

	if config.Verbose {
		log.Printf("Constructing %s client instance for %s\n", clientConfig.Server.Scheme, clientConfig.Server.Endpoint())
	}
	clientContext, err = client.NewClientContextFromConfig(clientConfig.Server)
	if err != nil {
		return fmt.Errorf("failed to create client context: %v", err)
	}

	return nil
}

// bindFlags binds the client's persistent flags to their configuration keys so
// flags take precedence over the config file & environment.
// Flags are bound on run, the panel command binds the same keys to its own flags.
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	flags := cmd.Flags()
	bindings := map[string]string{
		config.KeyServerHost:    "server",
		config.KeyServerPort:    "port",
		config.KeyServerScheme:  "scheme",
		config.KeyServerCert:    "certificate",
		config.KeyServerKey:     "key",
		config.KeyServerCA:      "trustedCa",
		config.KeyServerTimeout: "timeout",
	}
	for key, name := range bindings {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return fmt.Errorf("failed to bind flag '%s': %v", name, err)
		}
	}
	return nil
}

// NewClientCommand creates a client sub-command, returning a pointer to
// the command instance.
func NewClientCommand(ctx *context.Context, v *viper.Viper) *cobra.Command {
	rootContext = ctx

	clientCmd := &cobra.Command{
		Use:   "client",
		Short: "Client API interface with a running camdeck server instance",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := bindFlags(cmd, v); err != nil {
				return err
			}

			// Setup a client instance to be shared with the client sub-commands.
			return setupClient(v)
		},
	}

	// Server API flags.
	clientCmd.PersistentFlags().String("server", "localhost", "Host endpoint for a running camdeck server")
	clientCmd.PersistentFlags().Uint("port", 3000, "Listening port on a running camdeck server")
	clientCmd.PersistentFlags().String("scheme", "http", "Server scheme, http or https")
	clientCmd.PersistentFlags().Duration("timeout", 0, "(Optional) Per request timeout")

	// Optional TLS flags.
	clientCmd.PersistentFlags().String("certificate", "", "(Optional) Client TLS Certificate file path")
	clientCmd.PersistentFlags().String("key", "", "(Optional) Client TLS Key file path")
	clientCmd.PersistentFlags().String("trustedCa", "", "(Optional) Client trusted CA bundle file path")

	// Add client sub-commands.
	clientCmd.AddCommand(NewClientPingCommand())
	clientCmd.AddCommand(NewClientCamerasCommand())
	clientCmd.AddCommand(NewClientSettingsCommand())
	clientCmd.AddCommand(NewClientPtzCommand())
	clientCmd.AddCommand(NewClientStatusCommand())
	clientCmd.AddCommand(NewClientRecordingsCommand())

	return clientCmd
}
