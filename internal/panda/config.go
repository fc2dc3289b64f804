package panda

import (
	_ "embed"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/PallasUI/panda-vscode-pallas/internal/log"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

//go:embed preset.yaml
var presetYAML []byte

// ConfigFileNames are the declarative config files, in lookup order
var ConfigFileNames = []string{
	"panda.config.json",
	"panda.config.jsonc",
	"panda.config.yaml",
	"panda.config.yml",
}

// ScriptConfigFileNames are recognized but never evaluated
var ScriptConfigFileNames = []string{
	"panda.config.ts",
	"panda.config.mts",
	"panda.config.cts",
	"panda.config.js",
	"panda.config.mjs",
	"panda.config.cjs",
}

// defaultInclude mirrors what `panda init` generates
var defaultInclude = []string{"./src/**/*.{js,jsx,ts,tsx}", "./pages/**/*.{js,jsx,ts,tsx}"}

// Config is a resolved project configuration: the project file merged over
// the base preset.
type Config struct {
	// Path is the config file the project was loaded from, or "" when only the
	// preset is in effect.
	Path string
	// Evaluated is false when Path names a script config that could not be read.
	Evaluated bool
	Root      string
	Prefix    string
	Include   []string
	Exclude   []string
	Eject     bool
	// TokensFiles are extra DTCG token files, relative to Root.
	TokensFiles []string

	conditions *yaml.Node
	theme      *yaml.Node
	utilities  *yaml.Node
}

var (
	presetOnce sync.Once
	presetNode *yaml.Node
	presetErr  error
)

func preset() (*yaml.Node, error) {
	presetOnce.Do(func() {
		var doc yaml.Node
		if err := yaml.Unmarshal(presetYAML, &doc); err != nil {
			presetErr = fmt.Errorf("failed to parse preset: %w", err)
			return
		}
		presetNode = deref(&doc)
	})
	if presetErr != nil {
		return nil, presetErr
	}
	return clone(presetNode), nil
}

// FindConfig returns the config file under root, preferring declarative files.
// The boolean reports whether the file can be read without evaluating code.
func FindConfig(fsys afero.Fs, root string) (string, bool) {
	for _, name := range ConfigFileNames {
		p := filepath.Join(root, name)
		if ok, _ := afero.Exists(fsys, p); ok {
			return p, true
		}
	}
	for _, name := range ScriptConfigFileNames {
		p := filepath.Join(root, name)
		if ok, _ := afero.Exists(fsys, p); ok {
			return p, false
		}
	}
	return "", false
}

// LoadConfig finds and parses the project config under root. A project with no
// config, or with only a script config, gets the preset.
func LoadConfig(fsys afero.Fs, root string) (*Config, error) {
	path, declarative := FindConfig(fsys, root)
	if path == "" || !declarative {
		cfg, err := ParseConfig(nil, "")
		if err != nil {
			return nil, err
		}
		cfg.Root = root
		cfg.Path = path
		cfg.Evaluated = path == ""
		if path != "" {
			log.Warn("%s is not evaluated; using the base preset. Add a panda.config.json to describe the theme.", filepath.Base(path))
		}
		return cfg, nil
	}

	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	cfg, err := ParseConfig(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	cfg.Root = root
	cfg.Path = path
	cfg.Evaluated = true
	return cfg, nil
}

// ParseConfig parses config file contents. ext selects the dialect: .json and
// .jsonc allow comments and trailing commas; anything else is read as YAML.
func ParseConfig(data []byte, ext string) (*Config, error) {
	var doc yaml.Node
	switch strings.ToLower(ext) {
	case ".json", ".jsonc":
		data = jsonc.ToJSON(data)
	}
	if len(strings.TrimSpace(string(data))) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	}
	raw := deref(&doc)
	if raw == nil {
		raw = emptyMapping()
	}
	if raw.Kind != yaml.MappingNode {
		return nil, errors.New("config must be an object")
	}

	cfg := &Config{
		Include:    defaultInclude,
		conditions: emptyMapping(),
		theme:      emptyMapping(),
		utilities:  emptyMapping(),
	}

	if v, ok := scalar(lookup(raw, "eject")); ok {
		cfg.Eject = v == "true"
	}
	if !cfg.Eject {
		base, err := preset()
		if err != nil {
			return nil, err
		}
		if c := lookup(base, "conditions"); c != nil {
			cfg.conditions = c
		}
		if t := lookup(base, "theme"); t != nil {
			cfg.theme = t
		}
	}

	if v, ok := scalar(lookup(raw, "prefix")); ok {
		cfg.Prefix = v
	}
	if inc := lookup(raw, "include"); inc != nil {
		cfg.Include = stringList(inc)
	}
	cfg.Exclude = stringList(lookup(raw, "exclude"))
	cfg.TokensFiles = stringList(lookup(raw, "tokensFiles"))

	if conditions := lookup(raw, "conditions"); conditions != nil {
		override(cfg.conditions, without(conditions, "extend"), 1)
		merge(cfg.conditions, lookup(conditions, "extend"))
	}
	if theme := lookup(raw, "theme"); theme != nil {
		override(cfg.theme, without(theme, "extend"), 2)
		merge(cfg.theme, lookup(theme, "extend"))
	}
	if utilities := lookup(raw, "utilities"); utilities != nil {
		merge(cfg.utilities, without(utilities, "extend"))
		merge(cfg.utilities, lookup(utilities, "extend"))
	}

	return cfg, nil
}

// override replaces entries of dst with those of src. Below depth, whole
// values are swapped rather than merged, so `theme.tokens.colors` in a project
// replaces the preset palette while `theme.extend` adds to it.
func override(dst, src *yaml.Node, depth int) {
	if depth <= 1 {
		for _, m := range members(src) {
			set(dst, m.Key, clone(m.Value))
		}
		return
	}
	for _, m := range members(src) {
		existing := lookup(dst, m.Key)
		if existing == nil || !isMapping(existing) || !isMapping(m.Value) {
			set(dst, m.Key, clone(m.Value))
			continue
		}
		override(existing, m.Value, depth-1)
	}
}

func set(n *yaml.Node, key string, value *yaml.Node) {
	n = deref(n)
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			n.Content[i+1] = value
			return
		}
	}
	n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}, value)
}

func without(n *yaml.Node, key string) *yaml.Node {
	out := emptyMapping()
	for _, m := range members(n) {
		if m.Key != key {
			out.Content = append(out.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: m.Key}, m.Value)
		}
	}
	return out
}

// Matches reports whether a file is covered by the project's include globs and
// not excluded. Paths outside Root never match.
func (c *Config) Matches(path string) bool {
	if c == nil {
		return false
	}
	rel := path
	if c.Root != "" {
		r, err := filepath.Rel(c.Root, path)
		if err != nil || strings.HasPrefix(r, "..") {
			return false
		}
		rel = r
	}
	rel = filepath.ToSlash(rel)

	matches := func(patterns []string) bool {
		return slices.ContainsFunc(patterns, func(pattern string) bool {
			pattern = strings.TrimPrefix(filepath.ToSlash(pattern), "./")
			ok, err := doublestar.Match(pattern, rel)
			return err == nil && ok
		})
	}
	return matches(c.Include) && !matches(c.Exclude)
}

// WatchPatterns lists the files whose changes invalidate the project.
func (c *Config) WatchPatterns() []string {
	patterns := make([]string, 0, len(ConfigFileNames)+len(ScriptConfigFileNames)+len(c.TokensFiles))
	for _, name := range slices.Concat(ConfigFileNames, ScriptConfigFileNames) {
		patterns = append(patterns, "**/"+name)
	}
	for _, f := range c.TokensFiles {
		if filepath.IsAbs(f) {
			patterns = append(patterns, filepath.ToSlash(f))
			continue
		}
		patterns = append(patterns, "**/"+strings.TrimPrefix(filepath.ToSlash(f), "./"))
	}
	return patterns
}
