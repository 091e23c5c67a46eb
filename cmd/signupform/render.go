package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	signupform "github.com/goliatone/go-signupform"
	"github.com/goliatone/go-signupform/pkg/render"
)

var (
	renderOutput string
	renderAction string
	renderLocale string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the empty signup form as static HTML",
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "output file (stdout if empty)")
	renderCmd.Flags().StringVar(&renderAction, "action", "/signup", "URL the form posts to")
	renderCmd.Flags().StringVar(&renderLocale, "locale", "", "locale used for labels (defaults to ui.locale)")
}

func runRender(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	specs, err := buildFieldSpecs(ctx, cfg)
	if err != nil {
		return err
	}
	resolvedTheme, err := buildTheme(cfg)
	if err != nil {
		return err
	}
	catalog, err := buildTranslator(cfg)
	if err != nil {
		return err
	}
	renderer, err := buildRenderer(cfg)
	if err != nil {
		return err
	}

	locale := renderLocale
	if locale == "" {
		locale = cfg.UI.Locale
	}
	html, err := renderer.Render(ctx, signupform.NewMachine().View(specs), render.RenderOptions{
		Action:     renderAction,
		Theme:      resolvedTheme,
		Locale:     locale,
		Translator: catalog,
	})
	if err != nil {
		return fmt.Errorf("render form: %w", err)
	}

	if renderOutput == "" {
		_, err = cmd.OutOrStdout().Write(html)
		return err
	}
	if err := os.WriteFile(renderOutput, html, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Form written to %s\n", renderOutput)
	return nil
}
