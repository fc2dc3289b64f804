package panda

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"bennypowers.dev/asimonim/config"
	asimonimFS "bennypowers.dev/asimonim/fs"
	asimonimParser "bennypowers.dev/asimonim/parser"
	"github.com/PallasUI/panda-vscode-pallas/internal/log"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// typeCategories maps DTCG $type to the category a token lands in when its
// path does not already start with one
var typeCategories = map[string]string{
	"color":       "colors",
	"dimension":   "sizes",
	"fontFamily":  "fonts",
	"fontWeight":  "fontWeights",
	"duration":    "durations",
	"cubicBezier": "easings",
	"shadow":      "shadows",
	"number":      "lineHeights",
}

// categoryAliases maps common DTCG group names onto categories
var categoryAliases = map[string]string{
	"color":         "colors",
	"space":         "spacing",
	"size":          "sizes",
	"radius":        "radii",
	"font":          "fonts",
	"fontSize":      "fontSizes",
	"fontWeight":    "fontWeights",
	"lineHeight":    "lineHeights",
	"letterSpacing": "letterSpacings",
	"shadow":        "shadows",
	"duration":      "durations",
	"easing":        "easings",
	"animation":     "animations",
	"blur":          "blurs",
}

var knownCategories = []string{
	"colors", "spacing", "sizes", "radii", "fonts", "fontSizes", "fontWeights",
	"lineHeights", "letterSpacings", "shadows", "durations", "easings",
	"animations", "blurs", "zIndex", "borders", "gradients", "assets", "aspectRatios",
}

// DesignTokensFiles lists the token files named by .config/design-tokens.*
// under root, globs expanded. It returns nil when the project has no such config.
func DesignTokensFiles(root string) ([]string, []string, error) {
	if root == "" {
		return nil, nil, nil
	}
	filesystem := asimonimFS.NewOSFileSystem()
	cfg, err := config.Load(filesystem, root)
	if err != nil {
		return nil, nil, err
	}
	if cfg == nil {
		return nil, nil, nil
	}
	paths, err := cfg.ExpandFiles(filesystem, root)
	if err != nil {
		log.Warn("Failed to expand design token globs: %v", err)
		for _, spec := range cfg.Files {
			paths = append(paths, spec.Path)
		}
	}
	return paths, cfg.GroupMarkers, nil
}

// importTokenFiles resolves each pattern against root and adds the DTCG
// tokens it names. Files that fail to load are reported together; the rest
// still load.
func (d *Dictionary) importTokenFiles(fsys afero.Fs, root string, patterns, groupMarkers []string) error {
	var files []string
	iofs := afero.NewIOFS(afero.NewBasePathFs(fsys, root))
	for _, pattern := range patterns {
		pattern = strings.TrimPrefix(filepath.ToSlash(pattern), "./")
		if filepath.IsAbs(pattern) {
			files = append(files, pattern)
			continue
		}
		matches, err := doublestar.Glob(iofs, pattern)
		if err != nil {
			return fmt.Errorf("invalid tokensFiles pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			files = append(files, filepath.Join(root, filepath.FromSlash(m)))
		}
	}
	slices.Sort(files)
	files = slices.Compact(files)

	var errs []error
	for _, path := range files {
		data, err := afero.ReadFile(fsys, path)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to read %s: %w", path, err))
			continue
		}
		n, err := d.importDTCG(data, path, groupMarkers)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to load %s: %w", path, err))
			continue
		}
		log.Info("Loaded %d tokens from %s", n, path)
	}
	return errors.Join(errs...)
}

// importDTCG adds the tokens of one DTCG document and returns how many were added.
func (d *Dictionary) importDTCG(data []byte, source string, groupMarkers []string) (int, error) {
	switch strings.ToLower(filepath.Ext(source)) {
	case ".yaml", ".yml":
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return 0, err
		}
		converted, err := json.Marshal(doc)
		if err != nil {
			return 0, err
		}
		data = converted
	}

	parsed, err := asimonimParser.NewJSONParser().Parse(data, asimonimParser.Options{
		GroupMarkers: groupMarkers,
		SkipSort:     true,
	})
	if err != nil {
		return 0, err
	}

	renames := map[string]string{}
	imported := make([]*Token, 0, len(parsed))
	for _, pt := range parsed {
		path := dtcgPath(pt.Path, pt.Type)
		if len(path) < 2 {
			continue
		}
		renames[strings.Join(pt.Path, ".")] = strings.Join(path, ".")
		t := newToken(d.prefix, path, pt.Value, false)
		t.Description = pt.Description
		t.Deprecated = pt.Deprecated
		t.Extensions.Source = source
		imported = append(imported, t)
	}

	// references are written against the document's own paths
	for _, t := range imported {
		t.OriginalValue = curlyReference.ReplaceAllStringFunc(t.OriginalValue, func(m string) string {
			if renamed, ok := renames[m[1:len(m)-1]]; ok {
				return "{" + renamed + "}"
			}
			return m
		})
		d.Add(t)
	}
	return len(imported), nil
}

// dtcgPath places a DTCG token path under a category
func dtcgPath(path []string, typ string) []string {
	if len(path) == 0 {
		return nil
	}
	head := path[0]
	if slices.Contains(knownCategories, head) {
		return slices.Clone(path)
	}
	if alias, ok := categoryAliases[head]; ok {
		return append([]string{alias}, path[1:]...)
	}
	if cat, ok := typeCategories[typ]; ok {
		return append([]string{cat}, path...)
	}
	return slices.Clone(path)
}
