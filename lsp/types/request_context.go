package types

import (
	"github.com/tliron/glsp"
)

// RequestContext carries the request-scoped state of one LSP method call:
// the server, the protocol context, and warnings collected along the way.
type RequestContext struct {
	Server   ServerContext
	GLSP     *glsp.Context // nil in tests without a connection
	warnings []error
}

// NewRequestContext creates a new request context
func NewRequestContext(server ServerContext, glsp *glsp.Context) *RequestContext {
	return &RequestContext{
		Server: server,
		GLSP:   glsp,
	}
}

// AddWarning records a non-fatal problem. Middleware logs warnings once the
// handler has returned successfully.
func (r *RequestContext) AddWarning(err error) {
	if err != nil {
		r.warnings = append(r.warnings, err)
	}
}

// Warnings returns the warnings collected so far, or nil
func (r *RequestContext) Warnings() []error {
	return r.warnings
}

// HasWarnings returns true if any warnings were collected
func (r *RequestContext) HasWarnings() bool {
	return len(r.warnings) > 0
}

// Settings is a shortcut for r.Server.Settings()
func (r *RequestContext) Settings() Settings {
	return r.Server.Settings()
}
