package finder

import (
	"cmp"
	"slices"
	"strings"

	"github.com/PallasUI/panda-vscode-pallas/internal/panda"
	"github.com/agext/levenshtein"
)

// Suggest lists up to limit token names close to path, nearest first. When
// path starts with a known category only that category is searched.
func Suggest(ctx *panda.Context, path string, limit int) []string {
	if ctx == nil || path == "" || limit <= 0 {
		return nil
	}

	candidates := ctx.Tokens.All()
	if category, _, ok := strings.Cut(path, "."); ok {
		if inCategory := ctx.Tokens.Category(category); len(inCategory) > 0 {
			candidates = inCategory
		}
	}

	maxDistance := max(2, len(path)/3)
	type scored struct {
		name     string
		distance int
	}
	var found []scored
	for _, t := range candidates {
		if t.Name == path {
			continue
		}
		if d := levenshtein.Distance(path, t.Name, nil); d <= maxDistance {
			found = append(found, scored{t.Name, d})
		}
	}
	slices.SortFunc(found, func(a, b scored) int {
		return cmp.Or(cmp.Compare(a.distance, b.distance), strings.Compare(a.name, b.name))
	})

	names := make([]string, 0, min(limit, len(found)))
	for _, s := range found[:min(limit, len(found))] {
		names = append(names, s.name)
	}
	return names
}
