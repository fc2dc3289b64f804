package diagnostic

import (
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Pull diagnostics arrived in LSP 3.17, which glsp v0.2.2 does not model.

// DocumentDiagnosticParams are the textDocument/diagnostic request params
type DocumentDiagnosticParams struct {
	TextDocument     protocol.TextDocumentIdentifier `json:"textDocument"`
	Identifier       string                          `json:"identifier,omitempty"`
	PreviousResultID string                          `json:"previousResultId,omitempty"`
}

// DocumentDiagnosticReportKind tells full reports from unchanged ones
type DocumentDiagnosticReportKind string

// DiagnosticFull is the only kind produced; results are never cached
const DiagnosticFull DocumentDiagnosticReportKind = "full"

// RelatedFullDocumentDiagnosticReport is a full diagnostic report
type RelatedFullDocumentDiagnosticReport struct {
	Kind     string                `json:"kind"`
	ResultID string                `json:"resultId,omitempty"`
	Items    []protocol.Diagnostic `json:"items"`
}

// DiagnosticOptions is the diagnosticProvider server capability
type DiagnosticOptions struct {
	InterFileDependencies bool `json:"interFileDependencies"`
	WorkspaceDiagnostics  bool `json:"workspaceDiagnostics"`
}
