package main

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"docmapper/internal/analyze"
	"docmapper/internal/entity"
)

func newDescribeCmd(a *app) *cobra.Command {
	var (
		schemaPath string
		packages   []string
	)

	cmd := &cobra.Command{
		Use:     "describe [entity]...",
		Short:   "Show the properties and field names of entities",
		Example: `  docmapper describe --schema entities.yaml Sample`,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.loadRegistry(schemaPath)
			if err != nil {
				return err
			}

			if len(packages) > 0 {
				if err := analyze.NewAnalyzer().Register(r, packages...); err != nil {
					return err
				}
			}

			names := args
			if len(names) == 0 {
				names = r.Names()
			}

			for _, name := range names {
				e, err := lookupEntity(r, name)
				if err != nil {
					return err
				}

				a.describe(e)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&schemaPath, "schema", "", "entity schema file")
	cmd.Flags().StringSliceVar(&packages, "package", nil, "Go packages to extract entities from")

	return cmd
}

func (a *app) describe(e *entity.PersistentEntity) {
	fmt.Fprintf(a.out, "%s (collection %s)\n", e.Name, e.Collection)

	table := tablewriter.NewWriter(a.out)
	table.SetHeader([]string{"Property", "Field", "Type", "Flags"})
	table.SetAutoWrapText(false)

	for _, p := range e.Properties() {
		typeName := p.TypeName
		if typeName == "" {
			typeName = "-"
		}

		table.Append([]string{p.Name, p.FieldName, typeName, propertyFlags(p)})
	}

	table.Render()
}

func propertyFlags(p *entity.PersistentProperty) string {
	var flags []string

	if p.ID {
		flags = append(flags, "id")
	}

	if p.Reference {
		flags = append(flags, "ref")
	}

	if p.Many {
		flags = append(flags, "many")
	}

	return strings.Join(flags, ",")
}
