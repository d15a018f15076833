package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"go.mongodb.org/mongo-driver/v2/bson"

	"docmapper/internal/diagnostic"
	"docmapper/internal/entity"
	"docmapper/internal/match"
	"docmapper/internal/schema"
)

var (
	colorErr  = color.New(color.FgRed, color.Bold).SprintFunc()
	colorWarn = color.New(color.FgYellow, color.Bold).SprintFunc()
	colorInfo = color.New(color.FgBlue).SprintFunc()
)

// printDiagnostics writes one line per diagnostic, errors first.
func printDiagnostics(w io.Writer, diags *diagnostic.Diagnostics) {
	for _, d := range diags.All() {
		var label string

		switch d.Severity {
		case diagnostic.SeverityError:
			label = colorErr("error:")
		case diagnostic.SeverityWarning:
			label = colorWarn("warning:")
		default:
			label = colorInfo("info:")
		}

		fmt.Fprintln(w, label, d.String())
	}
}

// readDocument parses Extended JSON from arg, or from in when arg is empty
// or "-".
func readDocument(arg string, in io.Reader) (bson.D, error) {
	data := []byte(arg)

	if arg == "" || arg == "-" {
		var err error
		if data, err = io.ReadAll(in); err != nil {
			return nil, fmt.Errorf("failed to read document: %w", err)
		}
	}

	var doc bson.D
	if err := bson.UnmarshalExtJSON(data, false, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}

	return doc, nil
}

// writeDocument prints v as Extended JSON followed by a newline.
func (a *app) writeDocument(v any) error {
	var (
		out []byte
		err error
	)

	if a.cfg.Output.Indent {
		out, err = bson.MarshalExtJSONIndent(v, a.cfg.Output.Canonical, false, "", "  ")
	} else {
		out, err = bson.MarshalExtJSON(v, a.cfg.Output.Canonical, false)
	}

	if err != nil {
		return fmt.Errorf("failed to render document: %w", err)
	}

	_, err = fmt.Fprintln(a.out, string(out))

	return err
}

// loadRegistry builds a registry from the schema file (flag or config).
func (a *app) loadRegistry(schemaPath string) (*entity.Registry, error) {
	if schemaPath == "" {
		schemaPath = a.cfg.Schema
	}

	if schemaPath == "" {
		return entity.NewRegistry(), nil
	}

	f, err := schema.LoadFile(schemaPath)
	if err != nil {
		return nil, err
	}

	return schema.BuildRegistry(f)
}

// lookupEntity finds an entity by name; an empty name means none.
func lookupEntity(r *entity.Registry, name string) (*entity.PersistentEntity, error) {
	if name == "" {
		return nil, nil
	}

	if e, ok := r.ByName(name); ok {
		return e, nil
	}

	msg := fmt.Sprintf("unknown entity %q", name)
	if suggestions := match.Suggest(name, r.Names(), 3); len(suggestions) > 0 {
		msg += " (did you mean " + strings.Join(suggestions, ", ") + "?)"
	}

	return nil, errors.New(msg)
}
