package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/at-ishikawa/bookcompanion/internal/bookqa"
	"github.com/at-ishikawa/bookcompanion/internal/form"
	"github.com/at-ishikawa/bookcompanion/internal/validation"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newAskCommand() *cobra.Command {
	var overrides clientOverrides
	command := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a single question and print the answer",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			overrides.apply(cmd.Flags(), cfg)

			validate, trans, err := validation.New()
			if err != nil {
				return fmt.Errorf("validation.New() > %w", err)
			}
			question := form.NewQuestionForm(strings.Join(args, " "))
			if err := question.Validate(validate); err != nil {
				return errors.New(strings.Join(validation.Messages(err, trans), ", "))
			}

			response, err := newController(cfg).Mutate(cmd.Context(), question.Question)
			if err != nil {
				return fmt.Errorf("failed to get an answer: %w", err)
			}
			return printAnswer(cmd.OutOrStdout(), response)
		},
	}
	overrides.register(command.Flags())
	return command
}

func printAnswer(w io.Writer, response bookqa.QuestionResponse) error {
	bold := color.New(color.Bold)
	if _, err := bold.Fprintln(w, "Answer:"); err != nil {
		return fmt.Errorf("failed to write the answer: %w", err)
	}
	if _, err := fmt.Fprintln(w, response.Answer); err != nil {
		return fmt.Errorf("failed to write the answer: %w", err)
	}
	return nil
}
