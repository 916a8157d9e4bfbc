package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/at-ishikawa/bookcompanion/internal/bootstrap"
	"github.com/at-ishikawa/bookcompanion/internal/config"
	"github.com/at-ishikawa/bookcompanion/internal/form"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

const formLogFile = "bookcompanion.log"

func newFormCommand(debugMode *bool) *cobra.Command {
	var overrides clientOverrides
	command := &cobra.Command{
		Use:   "form",
		Short: "Open the question form",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			overrides.apply(cmd.Flags(), cfg)

			// Logs would corrupt the screen, so they go to a file or nowhere
			logOutput, closeLog, err := openFormLog(*debugMode)
			if err != nil {
				return err
			}
			defer closeLog()
			setupLogger(*debugMode, logOutput)

			return runForm(cmd.Context(), cfg, tea.WithAltScreen())
		},
	}
	overrides.register(command.Flags())
	return command
}

func runForm(ctx context.Context, cfg *config.Config, opts ...tea.ProgramOption) error {
	model, err := form.NewModel(ctx, newController(cfg), form.Options{
		BookTitle:      cfg.Book.Title,
		SampleQuestion: cfg.Book.SampleQuestion,
	})
	if err != nil {
		return fmt.Errorf("form.NewModel() > %w", err)
	}

	program := tea.NewProgram(model, opts...)
	app := bootstrap.New()
	app.AddShutdownHook(func(ctx context.Context) error {
		program.Quit()
		return nil
	})

	return app.Run(ctx, func(ctx context.Context) error {
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("program.Run() > %w", err)
		}
		return nil
	})
}

func openFormLog(debugMode bool) (io.Writer, func(), error) {
	if !debugMode {
		return io.Discard, func() {}, nil
	}

	f, err := os.OpenFile(formLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", formLogFile, err)
	}
	return f, func() {
		_ = f.Close()
	}, nil
}
