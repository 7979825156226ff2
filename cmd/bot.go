package cmd

import (
	"fmt"

	"camdeck/v0/internal/client"
	"camdeck/v0/internal/config"
	"camdeck/v0/pkg/bot"
	"github.com/spf13/cobra"
)

func handleBotCmd(cmd *cobra.Command, args []string) error {
	cfg := config.NewPanelConfig(vip)

	clientContext, err := client.NewClientContextFromConfig(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to create client context: %v", err)
	}

	b, err := bot.New(*rootCtx.Context, cfg.TelegramToken, clientContext)
	if err != nil {
		return fmt.Errorf("failed to instantiate the telegram bot: %v", err)
	}
	b.Run()
	return nil
}

// NewBotCommand creates the bot sub-command, serving the telegram bridge until
// interrupted. The token is read from telegram.token or TELEGRAM_TOKEN.
func NewBotCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Runs the telegram bot reporting on a running camdeck server",
		Args:  cobra.NoArgs,
		RunE:  handleBotCmd,
	}
}
