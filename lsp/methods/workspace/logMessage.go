package workspace

import (
	"fmt"

	"github.com/PallasUI/panda-vscode-pallas/internal/log"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// LogError logs an error to stderr and, when connected, to the client
func LogError(context *glsp.Context, format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	log.Error("%s", message)
	logMessage(context, protocol.MessageTypeError, message)
}

// LogWarning logs a warning to stderr and, when connected, to the client
func LogWarning(context *glsp.Context, format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	log.Warn("%s", message)
	logMessage(context, protocol.MessageTypeWarning, message)
}

// LogInfo sends an informational line to the client's output channel
func LogInfo(context *glsp.Context, format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	log.Info("%s", message)
	logMessage(context, protocol.MessageTypeInfo, "🐼 "+message)
}

// ShowMessage sends a message to be displayed to the user
func ShowMessage(context *glsp.Context, messageType protocol.MessageType, message string) {
	if context == nil || context.Notify == nil {
		return
	}
	go context.Notify(protocol.ServerWindowShowMessage, &protocol.ShowMessageParams{
		Type:    messageType,
		Message: message,
	})
}

func logMessage(context *glsp.Context, messageType protocol.MessageType, message string) {
	if context == nil || context.Notify == nil {
		return
	}
	go context.Notify(protocol.ServerWindowLogMessage, &protocol.LogMessageParams{
		Type:    messageType,
		Message: message,
	})
}
