package hover

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/PallasUI/panda-vscode-pallas/internal/finder"
	"github.com/PallasUI/panda-vscode-pallas/internal/recipes"
	"github.com/PallasUI/panda-vscode-pallas/lsp/helpers"
	"github.com/PallasUI/panda-vscode-pallas/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

var recipeTemplate = template.Must(template.New("recipe").Parse(`🐼 **{{.Name}}** ` + "`{{.Kind}}`" + `
{{if .Slots}}
Slots: {{.Slots}}
{{end}}{{if .Variants}}
{{.Variants}}
{{end}}
{{.Count}} style {{if eq .Count 1}}property{{else}}properties{{end}}`))

type recipeData struct {
	Name     string
	Kind     recipes.Kind
	Slots    string
	Variants string
	Count    int
}

// recipeHover summarizes the recipe whose factory call is under the cursor
func recipeHover(req *types.RequestContext, src *helpers.Source, pos protocol.Position) *protocol.Hover {
	for _, def := range req.Server.Recipes().Parse(src.Doc) {
		r := helpers.Range(def.CalleeRange)
		if !helpers.RangeContains(r, pos) {
			continue
		}
		summary, err := renderRecipe(def)
		if err != nil {
			req.AddWarning(err)
			return nil
		}
		return markdown(summary, r)
	}
	return nil
}

func renderRecipe(def *recipes.Definition) (string, error) {
	data := recipeData{
		Name:  def.Name,
		Kind:  def.Kind,
		Count: def.PropertyCount(),
	}
	if len(def.Slots) > 0 {
		data.Slots = codeList(def.Slots)
	}
	if len(def.Variants) > 0 {
		rows := [][]string{{"Variant", "Values"}}
		for _, group := range def.Variants {
			names := make([]string, 0, len(group.Values))
			for _, v := range group.Values {
				names = append(names, v.Name)
			}
			rows = append(rows, []string{"**" + group.Name + "**", codeList(names)})
		}
		data.Variants = finder.Table(rows)
	}

	var buf bytes.Buffer
	if err := recipeTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func codeList(names []string) string {
	return "`" + strings.Join(names, "`, `") + "`"
}
