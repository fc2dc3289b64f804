package lsp

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/PallasUI/panda-vscode-pallas/internal/log"
	"github.com/PallasUI/panda-vscode-pallas/lsp/methods/workspace"
	"github.com/PallasUI/panda-vscode-pallas/lsp/types"
	"github.com/tliron/glsp"
)

// method wraps an LSP request handler with panic recovery, logging and error
// context. It returns the function type protocol.Handler fields expect.
func method[P, R any](
	s types.ServerContext,
	methodName string,
	handler func(*types.RequestContext, P) (R, error),
) func(*glsp.Context, P) (R, error) {
	return func(ctx *glsp.Context, params P) (result R, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = recovered(ctx, methodName, r)
				var zero R
				result = zero
			}
		}()

		log.Debug("[LSP] %s started", methodName)
		req := types.NewRequestContext(s, ctx)
		result, err = handler(req, params)
		if err != nil {
			return result, failed(ctx, methodName, err)
		}
		succeeded(req, methodName)
		return result, nil
	}
}

// feature wraps the request handler of an editor feature (hover, completion,
// colors, hints, code actions). Errors and panics are reported like method
// does, but the client receives an empty result instead of an error.
func feature[P, R any](
	s types.ServerContext,
	methodName string,
	handler func(*types.RequestContext, P) (R, error),
) func(*glsp.Context, P) (R, error) {
	h := method(s, methodName, handler)
	return func(ctx *glsp.Context, params P) (R, error) {
		result, err := h(ctx, params)
		if err != nil {
			log.Warn("[LSP] %s: empty result after %v", methodName, err)
			var zero R
			return zero, nil
		}
		return result, nil
	}
}

// notify wraps an LSP notification handler
func notify[P any](
	s types.ServerContext,
	methodName string,
	handler func(*types.RequestContext, P) error,
) func(*glsp.Context, P) error {
	return func(ctx *glsp.Context, params P) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = recovered(ctx, methodName, r)
			}
		}()

		log.Debug("[LSP] %s started", methodName)
		req := types.NewRequestContext(s, ctx)
		if err = handler(req, params); err != nil {
			return failed(ctx, methodName, err)
		}
		succeeded(req, methodName)
		return nil
	}
}

// noParam wraps an LSP handler that takes no params (like Shutdown)
func noParam(
	s types.ServerContext,
	methodName string,
	handler func(*types.RequestContext) error,
) func(*glsp.Context) error {
	return func(ctx *glsp.Context) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = recovered(ctx, methodName, r)
			}
		}()

		log.Debug("[LSP] %s started", methodName)
		req := types.NewRequestContext(s, ctx)
		if err = handler(req); err != nil {
			return failed(ctx, methodName, err)
		}
		succeeded(req, methodName)
		return nil
	}
}

// recovered reports a handler panic to stderr and the client
func recovered(ctx *glsp.Context, methodName string, r any) error {
	fmt.Fprintf(os.Stderr, "[LSP] PANIC in %s: %v\nStack trace:\n%s", methodName, r, debug.Stack())
	workspace.LogError(ctx, "Internal error in %s: %v", methodName, r)
	return fmt.Errorf("internal error in %s", methodName)
}

func failed(ctx *glsp.Context, methodName string, err error) error {
	workspace.LogError(ctx, "%s: %v", methodName, err)
	return fmt.Errorf("%s: %w", methodName, err)
}

// succeeded forwards the warnings a handler collected
func succeeded(req *types.RequestContext, methodName string) {
	for _, w := range req.Warnings() {
		workspace.LogWarning(req.GLSP, "%s: %v", methodName, w)
	}
	log.Debug("[LSP] %s completed successfully", methodName)
}
