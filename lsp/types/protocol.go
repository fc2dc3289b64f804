package types

import (
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// The types below are LSP 3.17 additions that glsp v0.2.2 (LSP 3.16) lacks.

// CompletionItemLabelDetails shows extra text next to a completion label
type CompletionItemLabelDetails struct {
	Detail      *string `json:"detail,omitempty"`
	Description *string `json:"description,omitempty"`
}

// CompletionItem is protocol.CompletionItem plus labelDetails
type CompletionItem struct {
	protocol.CompletionItem
	LabelDetails *CompletionItemLabelDetails `json:"labelDetails,omitempty"`
}

// InlayHintKind distinguishes type hints from parameter hints
type InlayHintKind int

const (
	InlayHintKindType      InlayHintKind = 1
	InlayHintKindParameter InlayHintKind = 2
)

// InlayHintParams are the params of textDocument/inlayHint
type InlayHintParams struct {
	TextDocument protocol.TextDocumentIdentifier `json:"textDocument"`
	Range        protocol.Range                  `json:"range"`
}

// InlayHint is a label rendered inline in the editor
type InlayHint struct {
	Position     protocol.Position `json:"position"`
	Label        string            `json:"label"`
	Kind         InlayHintKind     `json:"kind,omitempty"`
	PaddingLeft  bool              `json:"paddingLeft,omitempty"`
	PaddingRight bool              `json:"paddingRight,omitempty"`
}
