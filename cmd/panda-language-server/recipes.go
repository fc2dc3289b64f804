package main

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/PallasUI/panda-vscode-pallas/internal/documents"
	"github.com/PallasUI/panda-vscode-pallas/internal/recipes"
	"github.com/PallasUI/panda-vscode-pallas/internal/uriutil"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// fileRecipes is one file's entry in the recipes command output
type fileRecipes struct {
	File    string                `json:"file" yaml:"file"`
	Recipes []*recipes.Definition `json:"recipes" yaml:"recipes"`
}

func newRecipesCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "recipes <file>...",
		Short: "Print the recipes declared in source files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			found, err := extractRecipes(afero.NewOsFs(), args)
			if err != nil {
				return err
			}
			return writeRecipes(cmd.OutOrStdout(), format, found)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format: yaml or json")
	return cmd
}

func extractRecipes(fsys afero.Fs, paths []string) ([]fileRecipes, error) {
	out := make([]fileRecipes, 0, len(paths))
	for _, path := range paths {
		content, err := afero.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		doc := documents.NewDocument(uriutil.PathToURI(abs), "", 1, string(content))
		defs := recipes.ExtractDocument(doc)
		if defs == nil {
			defs = []*recipes.Definition{}
		}
		out = append(out, fileRecipes{File: path, Recipes: defs})
	}
	return out, nil
}

func writeRecipes(w io.Writer, format string, found []fileRecipes) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(found)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(found); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
