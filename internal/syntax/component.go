package syntax

import (
	"fmt"
	"strings"
	"sync"

	"github.com/PallasUI/panda-vscode-pallas/internal/position"
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// ScriptBlock is the body of a <script> element in a component
type ScriptBlock struct {
	// Lang is the grammar named by the lang attribute, JavaScript by default
	Lang       Language
	Start, End int
}

var scriptQuery = sync.OnceValues(func() (*sitter.Query, error) {
	q, qerr := sitter.NewQuery(grammars[HTML], `(script_element (start_tag) @tag (raw_text) @script)`)
	if qerr != nil {
		return nil, fmt.Errorf("failed to compile script query: %s", qerr.Message)
	}
	return q, nil
})

// ScriptBlocks finds the <script> elements of a component's markup, in
// source order
func ScriptBlocks(source string) ([]ScriptBlock, error) {
	query, err := scriptQuery()
	if err != nil {
		return nil, err
	}
	src := []byte(source)

	p := AcquireParser(HTML)
	defer ReleaseParser(p)
	tree := p.parser.Parse(src, nil)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse %s source", HTML)
	}
	defer tree.Close()

	cursor := sitter.NewQueryCursor()
	defer cursor.Close()

	var blocks []ScriptBlock
	names := query.CaptureNames()
	matches := cursor.Matches(query, tree.RootNode(), src)
	for match := matches.Next(); match != nil; match = matches.Next() {
		block := ScriptBlock{Lang: JavaScript}
		found := false
		for _, capture := range match.Captures {
			node := capture.Node
			switch names[capture.Index] {
			case "tag":
				block.Lang = scriptLang(&node, src)
			case "script":
				block.Start, block.End = int(node.StartByte()), int(node.EndByte())
				found = true
			}
		}
		if found {
			blocks = append(blocks, block)
		}
	}
	return blocks, nil
}

// scriptLang reads the lang attribute of a <script> start tag
func scriptLang(tag *sitter.Node, src []byte) Language {
	for i := range tag.NamedChildCount() {
		attr := tag.NamedChild(i)
		if attr == nil || attr.Kind() != "attribute" || attr.NamedChildCount() < 2 {
			continue
		}
		if attr.NamedChild(0).Utf8Text(src) != "lang" {
			continue
		}
		value := strings.Trim(attr.NamedChild(1).Utf8Text(src), `"'`)
		switch strings.ToLower(value) {
		case "ts", "typescript":
			return TypeScript
		case "tsx":
			return TSX
		}
	}
	return JavaScript
}

// ParseComponent parses the script blocks of a Vue or Svelte component as one
// program. Everything outside them is blanked to spaces, newlines kept, so
// byte offsets and positions in the tree are those of the whole file. The
// tree's language is the richest grammar any block asks for.
func ParseComponent(source string) (*Tree, error) {
	blocks, err := ScriptBlocks(source)
	if err != nil {
		return nil, err
	}

	lang := JavaScript
	keep := make([]bool, len(source))
	for _, b := range blocks {
		lang = max(lang, b.Lang)
		for i := b.Start; i < b.End; i++ {
			keep[i] = true
		}
	}
	masked := []byte(source)
	for i, c := range masked {
		if !keep[i] && c != '\n' && c != '\r' {
			masked[i] = ' '
		}
	}

	p := AcquireParser(lang)
	defer ReleaseParser(p)
	tree := p.parser.Parse(masked, nil)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse component scripts as %s", lang)
	}
	return &Tree{
		tree:   tree,
		source: masked,
		text:   string(masked),
		lang:   lang,
		index:  position.NewIndex(source),
	}, nil
}
