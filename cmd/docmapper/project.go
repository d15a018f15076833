package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"docmapper/internal/aggregation"
)

func newProjectCmd(a *app) *cobra.Command {
	var (
		schemaPath string
		entityName string
		include    []string
		fields     []string
		expr       string
		alias      string
		params     []string
		excludeID  bool
	)

	cmd := &cobra.Command{
		Use:   "project",
		Short: "Render a $project stage",
		Example: `  docmapper project --expr '(netPrice + surCharge) * taxrate * [0]' --param 2 --as grossSalesPrice --field bar=foo
  docmapper project --include name,total --exclude-id`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			op := aggregation.Project(include...)

			if expr != "" {
				if alias == "" {
					return fmt.Errorf("--expr requires --as")
				}

				values := make([]any, len(params))
				for i, p := range params {
					values[i] = parseParam(p)
				}

				op = op.AndExpression(expr, values...).As(alias)
			}

			for _, f := range fields {
				name, target, ok := strings.Cut(f, "=")
				if !ok || name == "" || target == "" {
					return fmt.Errorf("invalid --field %q, expected name=target", f)
				}

				op = op.And(target).As(name)
			}

			if excludeID {
				op = op.AndExclude(aggregation.UnderscoreID)
			}

			ctx := aggregation.DefaultContext

			if entityName != "" {
				r, err := a.loadRegistry(schemaPath)
				if err != nil {
					return err
				}

				e, err := lookupEntity(r, entityName)
				if err != nil {
					return err
				}

				ctx = aggregation.NewTypedContext(e)
			}

			doc, err := op.ToDocument(ctx)
			if err != nil {
				return err
			}

			return a.writeDocument(doc)
		},
	}

	cmd.Flags().StringVar(&schemaPath, "schema", "", "entity schema file")
	cmd.Flags().StringVar(&entityName, "entity", "", "entity whose field names are used")
	cmd.Flags().StringSliceVar(&include, "include", nil, "fields to include as they are")
	cmd.Flags().StringArrayVar(&fields, "field", nil, "aliased field as name=target (repeatable)")
	cmd.Flags().StringVar(&expr, "expr", "", "arithmetic expression, [i] refers to the i-th --param")
	cmd.Flags().StringVar(&alias, "as", "", "output name of --expr")
	cmd.Flags().StringArrayVar(&params, "param", nil, "expression parameter (repeatable)")
	cmd.Flags().BoolVar(&excludeID, "exclude-id", false, "exclude _id")

	return cmd
}

// parseParam reads a parameter as an integer, a float or a boolean, falling
// back to the string itself.
func parseParam(s string) any {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}

	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}

	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}

	return s
}
