// Package panda models a Panda CSS project: its resolved config, token
// dictionary, conditions and utilities, and the CSS they produce.
package panda

import (
	"errors"
	"fmt"

	"github.com/PallasUI/panda-vscode-pallas/internal/log"
	"github.com/spf13/afero"
)

// Context is a loaded project. It is immutable once built; reloads produce a
// new Context.
type Context struct {
	Config     *Config
	Tokens     *Dictionary
	Conditions *Conditions
	Utilities  *Utilities
}

// LoadOptions tune project loading
type LoadOptions struct {
	// DesignTokensConfig also imports files listed in .config/design-tokens.*
	DesignTokensConfig bool
}

// Load reads the project rooted at root. When some token files fail to
// import, the returned Context is still usable and err describes the failures.
func Load(fsys afero.Fs, root string, opts LoadOptions) (*Context, error) {
	cfg, err := LoadConfig(fsys, root)
	if err != nil {
		return nil, err
	}

	var groupMarkers []string
	if opts.DesignTokensConfig {
		files, markers, err := DesignTokensFiles(root)
		if err != nil {
			log.Warn("Failed to read design tokens config: %v", err)
		}
		cfg.TokensFiles = append(cfg.TokensFiles, files...)
		groupMarkers = markers
	}

	return NewContext(fsys, cfg, groupMarkers)
}

// NewContext builds a Context from a parsed config.
func NewContext(fsys afero.Fs, cfg *Config, groupMarkers []string) (*Context, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	ctx := &Context{
		Config:     cfg,
		Tokens:     NewDictionary(cfg.Prefix),
		Conditions: newConditions(cfg),
		Utilities:  newUtilities(cfg),
	}

	var errs []error
	if err := ctx.Tokens.addTheme(lookup(cfg.theme, "tokens"), false); err != nil {
		errs = append(errs, err)
	}
	if err := ctx.Tokens.addTheme(lookup(cfg.theme, "semanticTokens"), true); err != nil {
		errs = append(errs, err)
	}
	if len(cfg.TokensFiles) > 0 && fsys != nil {
		if err := ctx.Tokens.importTokenFiles(fsys, cfg.Root, cfg.TokensFiles, groupMarkers); err != nil {
			errs = append(errs, err)
		}
	}
	ctx.Tokens.finalize()

	log.Debug("Loaded %d tokens in %d categories", ctx.Tokens.Len(), len(ctx.Tokens.Categories()))
	if len(errs) > 0 {
		return ctx, fmt.Errorf("project loaded with errors: %w", errors.Join(errs...))
	}
	return ctx, nil
}

// Theme lists a token category as utility entries: each token's in-category
// path mapped to its variable. "keyframes" lists the keyframe names.
func (c *Context) Theme(category string) []Entry {
	if category == "keyframes" {
		var out []Entry
		for _, m := range members(lookup(c.Config.theme, "keyframes")) {
			out = append(out, Entry{Name: m.Key, Value: m.Key})
		}
		return out
	}
	tokens := c.Tokens.Category(category)
	out := make([]Entry, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, Entry{Name: t.Extensions.Prop, Value: t.Extensions.VarRef})
	}
	return out
}

// PropertyValues returns what a property accepts; see Utilities.Values.
func (c *Context) PropertyValues(prop string) (string, []Entry) {
	return c.Utilities.Values(prop, c.Theme)
}

// Matches reports whether a file belongs to the project
func (c *Context) Matches(path string) bool {
	return c != nil && c.Config.Matches(path)
}
