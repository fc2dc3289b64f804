package documents

import (
	"sync"

	"github.com/PallasUI/panda-vscode-pallas/internal/position"
)

// Document is an immutable snapshot of an open text document.
// The Manager swaps in a new Document on every change, so a snapshot handed
// to a request stays consistent even if the editor keeps typing.
type Document struct {
	uri        string
	languageID string
	content    string
	version    int

	indexOnce sync.Once
	index     *position.Index
}

// NewDocument creates a new document
func NewDocument(uri, languageID string, version int, content string) *Document {
	return &Document{
		uri:        uri,
		languageID: languageID,
		version:    version,
		content:    content,
	}
}

// URI returns the document's URI
func (d *Document) URI() string {
	return d.uri
}

// LanguageID returns the document's language identifier
func (d *Document) LanguageID() string {
	return d.languageID
}

// Version returns the document's version
func (d *Document) Version() int {
	return d.version
}

// Content returns the document's content
func (d *Document) Content() string {
	return d.content
}

// Index returns the line index of the content, built on first use.
func (d *Document) Index() *position.Index {
	d.indexOnce.Do(func() {
		d.index = position.NewIndex(d.content)
	})
	return d.index
}

// OffsetAt converts an LSP (line, UTF-16 character) position to a byte offset.
func (d *Document) OffsetAt(line, character uint32) int {
	return d.Index().Offset(int(line), int(character))
}
