package documents

import (
	"fmt"
	"strings"
	"sync"

	"github.com/PallasUI/panda-vscode-pallas/internal/position"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Manager tracks the documents the editor has open
type Manager struct {
	documents map[string]*Document
	mu        sync.RWMutex
}

// NewManager creates a new document manager
func NewManager() *Manager {
	return &Manager{
		documents: make(map[string]*Document),
	}
}

// Get retrieves the current snapshot of a document, or nil
func (m *Manager) Get(uri string) *Document {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.documents[uri]
}

// GetAll returns the current snapshot of every open document
func (m *Manager) GetAll() []*Document {
	m.mu.RLock()
	defer m.mu.RUnlock()

	docs := make([]*Document, 0, len(m.documents))
	for _, doc := range m.documents {
		docs = append(docs, doc)
	}
	return docs
}

// DidOpen handles the textDocument/didOpen notification
func (m *Manager) DidOpen(uri, languageID string, version int, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.documents[uri] = NewDocument(uri, languageID, version, content)
	return nil
}

// DidClose handles the textDocument/didClose notification
func (m *Manager) DidClose(uri string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.documents[uri]; !exists {
		return fmt.Errorf("document not found: %s", uri)
	}

	delete(m.documents, uri)
	return nil
}

// DidChange applies content changes and replaces the document snapshot.
// Updates older than the current version are rejected.
func (m *Manager) DidChange(uri string, version int, changes []protocol.TextDocumentContentChangeEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, exists := m.documents[uri]
	if !exists {
		return fmt.Errorf("document not found: %s", uri)
	}
	if version < doc.Version() {
		return fmt.Errorf("rejected stale update: document version is %d but update version is %d", doc.Version(), version)
	}

	content := doc.Content()
	for _, change := range changes {
		if change.Range == nil {
			content = change.Text
			continue
		}
		next, err := applyIncrementalChange(content, *change.Range, change.Text)
		if err != nil {
			return fmt.Errorf("failed to apply changes: %w", err)
		}
		content = next
	}

	m.documents[uri] = NewDocument(uri, doc.LanguageID(), version, content)
	return nil
}

// applyIncrementalChange replaces the UTF-16 range r of content with text.
func applyIncrementalChange(content string, r protocol.Range, text string) (string, error) {
	index := position.NewIndex(content)

	if int(r.Start.Line) > index.LineCount() {
		return "", fmt.Errorf("start line %d out of bounds (total lines: %d)", r.Start.Line, index.LineCount())
	}
	if int(r.End.Line) > index.LineCount() {
		return "", fmt.Errorf("end line %d out of bounds (total lines: %d)", r.End.Line, index.LineCount())
	}

	start := index.Offset(int(r.Start.Line), int(r.Start.Character))
	end := index.Offset(int(r.End.Line), int(r.End.Character))
	if end < start {
		return "", fmt.Errorf("range end %d:%d precedes start %d:%d",
			r.End.Line, r.End.Character, r.Start.Line, r.Start.Character)
	}

	var b strings.Builder
	b.Grow(len(content) - (end - start) + len(text))
	b.WriteString(content[:start])
	b.WriteString(text)
	b.WriteString(content[end:])
	return b.String(), nil
}
