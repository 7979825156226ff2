package tui

import (
	"context"
	"errors"
	"fmt"
	"log"

	"camdeck/v0/internal/client"
	"camdeck/v0/internal/config"
	"camdeck/v0/pkg/camera"
	"camdeck/v0/pkg/panel"
	"camdeck/v0/pkg/status"
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the control panel against the configured server, blocking until the
// user quits or ctx is cancelled.
func Run(ctx context.Context, cfg config.PanelConfig) error {
	// Logging to the terminal would corrupt the display.
	logFile, err := tea.LogToFile(cfg.LogFile, "camdeck ")
	if err != nil {
		return fmt.Errorf("failed to open log file '%s': %v", cfg.LogFile, err)
	}
	defer logFile.Close()

	clientContext, err := client.NewClientContextFromConfig(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to create client context: %v", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	dispatcher := camera.NewCommandDispatcher(ctx, clientContext, camera.CommandDispatcherOptions{
		IdleTimeout:    cfg.PtzIdleTimeout,
		RequestTimeout: cfg.Server.Timeout,
	})

	p, err := panel.New(panel.Options{
		API: clientContext,
		PTZ: dispatcher,
	})
	if err != nil {
		return fmt.Errorf("failed to create panel: %v", err)
	}

	program := tea.NewProgram(
		NewModel(Options{
			Context:       ctx,
			Panel:         p,
			Client:        clientContext,
			FrameInterval: cfg.FrameInterval,
			PtzRelease:    cfg.PtzRelease,
			OpenCommand:   cfg.OpenCommand,
		}),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	poller := status.NewPoller(clientContext, status.PollerOptions{
		Interval: cfg.StatusInterval,
		OnUpdate: func(r status.Ribbon) { program.Send(RibbonMsg(r)) },
	})
	go poller.Run(ctx)

	log.Printf("Starting panel against %s\n", clientContext.URL("/"))
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("panel failed: %v", err)
	}
	return nil
}
