package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newCheckCommand() *cobra.Command {
	var overrides clientOverrides
	command := &cobra.Command{
		Use:   "check",
		Short: "Check the answering client with the sample question",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			overrides.apply(cmd.Flags(), cfg)

			w := cmd.OutOrStdout()
			client := newClient(cfg, cfg.PolicyOptions().Queries)
			fmt.Fprintln(w, "Testing answering client connection...")
			response, err := client.Ask(cmd.Context(), cfg.Book.SampleQuestion)
			if err != nil {
				color.New(color.FgRed).Fprintf(w, "✗ Answering client connection failed: %v\n", err)
				return fmt.Errorf("client.Ask() > %w", err)
			}

			color.New(color.FgGreen).Fprintln(w, "✓ Answering client connection successful")
			return printAnswer(w, response)
		},
	}
	overrides.register(command.Flags())
	return command
}
