package main

import (
	"github.com/spf13/cobra"

	"docmapper/internal/analyze"
	"docmapper/internal/logging"
	"docmapper/internal/query"
)

func newMapCmd(a *app) *cobra.Command {
	var (
		schemaPath string
		entityName string
		packages   []string
	)

	cmd := &cobra.Command{
		Use:   "map [document]",
		Short: "Map a criteria document against an entity",
		Example: `  docmapper map --schema entities.yaml --entity Sample '{"foo": "x"}'
  docmapper map --package ./store --entity Order '{"customer.fullName": "Dave"}'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var arg string
			if len(args) == 1 {
				arg = args[0]
			}

			doc, err := readDocument(arg, a.in)
			if err != nil {
				return err
			}

			r, err := a.loadRegistry(schemaPath)
			if err != nil {
				return err
			}

			if len(packages) > 0 {
				if err := analyze.NewAnalyzer().Register(r, packages...); err != nil {
					return err
				}
			}

			e, err := lookupEntity(r, entityName)
			if err != nil {
				return err
			}

			mapper := query.NewMapper(r, query.WithLogger(logging.Get()))

			mapped, diags := mapper.MapDocumentWithDiagnostics(doc, e)
			printDiagnostics(cmd.ErrOrStderr(), diags)

			return a.writeDocument(mapped)
		},
	}

	cmd.Flags().StringVar(&schemaPath, "schema", "", "entity schema file")
	cmd.Flags().StringVar(&entityName, "entity", "", "entity to map against (none maps without metadata)")
	cmd.Flags().StringSliceVar(&packages, "package", nil, "Go packages to extract entities from")

	return cmd
}
