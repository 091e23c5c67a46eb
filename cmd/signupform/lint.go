package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-signupform/pkg/contract"
	"github.com/goliatone/go-signupform/pkg/uischema"
)

var lintSchemaDir string

var lintCmd = &cobra.Command{
	Use:   "lint [openapi files...]",
	Short: "Check a signup contract and UI schema for unsupported hints",
	Long: `Lint loads each OpenAPI document (the embedded contract when none is
given), checks the createSignup request schema for missing fields and unknown
x-signupform hints, and applies the UI schema to the derived field specs.`,
	RunE: runLint,
}

func init() {
	lintCmd.Flags().StringVar(&lintSchemaDir, "ui-schema", "", "UI schema directory (embedded schema when empty)")
}

func runLint(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	type source struct {
		name string
		raw  []byte
	}
	var sources []source
	if len(args) == 0 {
		sources = append(sources, source{name: "embedded", raw: contract.Document()})
	}
	for _, path := range args {
		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		sources = append(sources, source{name: path, raw: raw})
	}

	schemaFS := uischema.EmbeddedFS()
	if lintSchemaDir != "" {
		schemaFS = os.DirFS(lintSchemaDir)
	}
	store, err := uischema.LoadFS(schemaFS)
	if err != nil {
		return err
	}
	decorator := uischema.NewDecorator(store, uischema.DefaultOperation)

	failed := 0
	for _, src := range sources {
		doc, err := contract.Load(ctx, src.raw)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", src.name, err)
			failed++
			continue
		}
		for _, v := range doc.Lint() {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", src.name, v)
			failed++
		}
		specs, err := doc.FieldSpecs()
		if err == nil {
			err = decorator.Decorate(specs)
		}
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", src.name, err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d lint problem(s)", failed)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d document(s) ok\n", len(sources))
	return nil
}
