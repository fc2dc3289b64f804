package lifecycle

import (
	"github.com/PallasUI/panda-vscode-pallas/internal/log"
	"github.com/PallasUI/panda-vscode-pallas/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// SetTrace handles the $/setTrace notification by mapping the trace value
// onto the stderr log level: "verbose" logs debug lines, "off" only errors.
func SetTrace(req *types.RequestContext, params *protocol.SetTraceParams) error {
	level, err := log.ParseLevel(string(params.Value))
	if err != nil {
		return err
	}
	log.SetLevel(level)
	log.Info("Trace level set to: %s", params.Value)
	return nil
}
