package cli

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/store"
)

type yamlExport struct {
	Todos []model.Record `yaml:"todos"`
}

func newExportCmd(app *App) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print the whole list in the storage format (json) or as yaml",
		Args:  exactArgs(0, "tada export [--format json|yaml]"),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != "json" && format != "yaml" {
				return usagef("export: unknown format %q (want json or yaml)", format)
			}
			s, err := app.setup(cmd)
			if err != nil {
				return err
			}
			todos := s.Todos()

			if format == "yaml" {
				enc := yaml.NewEncoder(app.Out)
				enc.SetIndent(2)
				if err := enc.Encode(yamlExport{Todos: model.ToRecords(todos)}); err != nil {
					return fmt.Errorf("yaml encode: %w", err)
				}
				return enc.Close()
			}

			b, err := store.EncodeSnapshot(todos)
			if err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := json.Indent(&buf, b, "", "  "); err != nil {
				return fmt.Errorf("json indent: %w", err)
			}
			buf.WriteByte('\n')
			_, err = buf.WriteTo(app.Out)
			return err
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "json or yaml")
	return cmd
}
