package main

import (
	"github.com/spf13/cobra"

	"docmapper/internal/analyze"
	"docmapper/internal/logging"
	"docmapper/internal/schema"
)

func newSchemaCmd(a *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:     "schema <package>...",
		Short:   "Extract an entity schema from Go packages",
		Example: `  docmapper schema ./store ./warehouse --out entities.yaml`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := analyze.NewAnalyzer().LoadPackages(args...)
			if err != nil {
				return err
			}

			diags := schema.Validate(f)
			logging.Get().Debug("extracted schema", "entities", len(f.Entities), "diagnostics", len(diags.All()))
			printDiagnostics(cmd.ErrOrStderr(), diags)

			if err := diags.Error(); err != nil {
				return err
			}

			if out != "" {
				return schema.WriteFile(f, out)
			}

			data, err := schema.Marshal(f)
			if err != nil {
				return err
			}

			_, err = a.out.Write(data)

			return err
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "write the schema to a file instead of stdout")

	return cmd
}
