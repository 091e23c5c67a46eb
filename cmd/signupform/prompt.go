package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	signupform "github.com/goliatone/go-signupform"
	"github.com/goliatone/go-signupform/pkg/renderers/tui"
)

var (
	promptReveal      bool
	promptMaxAttempts int
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Fill the signup form in the terminal",
	RunE:  runPrompt,
}

func init() {
	promptCmd.Flags().BoolVar(&promptReveal, "reveal-password", false, "echo the password while typing")
	promptCmd.Flags().IntVar(&promptMaxAttempts, "max-attempts", 0, "re-prompts allowed per field (0 = unlimited)")
}

func runPrompt(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	specs, err := buildFieldSpecs(ctx, cfg)
	if err != nil {
		return err
	}
	recorder := buildRecorder(cfg, logger)

	sess, err := tui.NewSession(signupform.NewMachine(),
		tui.WithFieldSpecs(specs),
		tui.WithOutput(cmd.OutOrStdout()),
		tui.WithRevealPassword(promptReveal),
		tui.WithMaxAttempts(promptMaxAttempts),
	)
	if err != nil {
		return err
	}

	accounts, runErr := sess.Run(ctx)
	for _, values := range accounts {
		rec, err := recorder.Record(ctx, values)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Recorded submission %s\n", rec.ID)
	}
	if errors.Is(runErr, tui.ErrAborted) {
		logger.Debug("prompt aborted", zap.Int("accounts", len(accounts)))
		return nil
	}
	return runErr
}
