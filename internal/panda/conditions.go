package panda

import (
	"strings"
)

// Conditions maps condition names as written in style objects (`_hover`,
// `md`, `_dark`) to their CSS selector or at-rule.
type Conditions struct {
	names       []string
	byName      map[string]string
	breakpoints map[string]bool
}

func newConditions(cfg *Config) *Conditions {
	c := &Conditions{byName: map[string]string{}, breakpoints: map[string]bool{}}
	for _, m := range members(cfg.conditions) {
		if raw, ok := scalar(m.Value); ok {
			c.add("_"+strings.TrimPrefix(m.Key, "_"), raw)
		}
	}
	for _, m := range members(lookup(cfg.theme, "breakpoints")) {
		if width, ok := scalar(m.Value); ok {
			c.add(m.Key, "@media screen and (min-width: "+width+")")
			c.breakpoints[m.Key] = true
		}
	}
	return c
}

func (c *Conditions) add(name, raw string) {
	if _, ok := c.byName[name]; !ok {
		c.names = append(c.names, name)
	}
	c.byName[name] = raw
}

// Get returns the raw selector or at-rule for a condition
func (c *Conditions) Get(name string) (string, bool) {
	if c == nil {
		return "", false
	}
	raw, ok := c.byName[name]
	return raw, ok
}

// Has reports whether name is a condition. `base` always is.
func (c *Conditions) Has(name string) bool {
	if name == "base" {
		return true
	}
	_, ok := c.Get(name)
	return ok
}

// IsBreakpoint reports whether name is a responsive breakpoint
func (c *Conditions) IsBreakpoint(name string) bool {
	return c != nil && c.breakpoints[name]
}

// Names returns every condition in definition order, `base` excluded
func (c *Conditions) Names() []string {
	if c == nil {
		return nil
	}
	return c.names
}

// IsAtRule reports whether a condition wraps rules rather than extending the selector
func IsAtRule(raw string) bool {
	return strings.HasPrefix(raw, "@")
}
