package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	clientcmd "camdeck/v0/cmd/client_cmd"
	"camdeck/v0/internal/config"
	cobra "github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RootContext is a shared cancellation context for which is shared up
// the call hierarchy.
type RootContext struct {
	Context *context.Context
	Cancel  *context.CancelFunc
}

// Shared among all commands.
var (
	rootCtx RootContext
	vip     = viper.New()
)

// initRootContext instantiates a root context for which to be
// used in sub-commands.
// This returns an error instance reflecting the failure state.
func initRootContext() error {
	ctx, cancel := context.WithCancel(context.Background())
	rootCtx.Context = &ctx
	rootCtx.Cancel = &cancel

	// Register termination signal to clean up.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Spin up clean up listener. A second signal forces the exit.
	go func() {
		sig := <-sigChan
		log.Printf("%v: Cleaning up...\n", sig)
		cancel()

		select {
		case <-sigChan:
		case <-time.After(5 * time.Second):
		}
		os.Exit(1)
	}()

	return nil
}

// Execute initializes all of the commands, then runs the main cobra command
// execution function.
// The application version is passed into the execution from the main package.
// This returns an error instance reflecting the failure state of any sub-command.
func Execute(version string) error {
	// Set the version.
	binVersion = version

	// Let sub-commands add their own pre-run hooks without masking the root's.
	cobra.EnableTraverseRunHooks = true

	var cfgFile string
	rootCmd := &cobra.Command{
		Use:          "camdeck",
		Short:        "camdeck is a webcam viewer control panel with its reference server",
		SilenceUsage: true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.InitConfig(vip, cfgFile)
		},

		// Create a post-hook to nominally clean up.
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			// Shutdown the root context so that upstream threads can clean up.
			if config.Verbose {
				log.Println("Shutting down root context")
			}
			(*rootCtx.Cancel)()
			return nil
		},
	}

	// Instantiate a root cancellation deadline.
	if err := initRootContext(); err != nil {
		return err
	}

	// Global args.
	rootCmd.PersistentFlags().BoolVarP(&config.Verbose, "verbose", "v", false, "Verbose mode")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default is $HOME/.camdeck.yaml)")

	rootCmd.AddCommand(NewServerCommand())
	rootCmd.AddCommand(clientcmd.NewClientCommand(rootCtx.Context, vip))
	rootCmd.AddCommand(NewPanelCommand())
	rootCmd.AddCommand(NewBotCommand())
	rootCmd.AddCommand(NewVersionCommand())
	return rootCmd.Execute()
}
