// Package main provides the CLI entrypoint for docmapper.
//
// docmapper maps query documents and builds projection stages from the
// command line:
//   - map: rewrites a criteria document against entity metadata
//   - project: renders a $project stage from fields and expressions
//   - schema: extracts an entity schema from Go packages
//   - describe: prints entity properties and their field names
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"docmapper/internal/config"
	"docmapper/internal/logging"
)

// app is the state shared by all commands.
type app struct {
	cfg *config.Config
	out io.Writer
	in  io.Reader

	configPath string
	logLevel   string
}

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	a := &app{in: in, out: out}

	root := &cobra.Command{
		Use:           "docmapper",
		Short:         "Map MongoDB query documents and build projection stages",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default ./docmapper.yaml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: DEBUG, INFO, WARN, ERROR")

	root.AddCommand(newMapCmd(a), newProjectCmd(a), newSchemaCmd(a), newDescribeCmd(a))

	return root
}

func (a *app) init() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}

	a.cfg = cfg
	logging.Init(cfg.Log)

	return nil
}

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
