package logging

import (
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/util"
)

// MCPLogger adapts an slog.Logger to the mcp-go util.Logger interface so that
// MCP protocol-level logs (session errors, notification failures) land in the
// same structured stream as the rest of the process. Formatted messages are
// emitted as the slog message with a component marker, since the protocol
// layer has no structured attributes of its own.
type MCPLogger struct {
	logger *slog.Logger
}

// NewMCPLogger wraps the given slog.Logger. A nil logger falls back to
// slog.Default().
func NewMCPLogger(logger *slog.Logger) *MCPLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &MCPLogger{logger: logger.With(slog.String("component", "mcp"))}
}

// Infof logs an informational protocol message.
func (l *MCPLogger) Infof(format string, v ...any) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

// Errorf logs a protocol error.
func (l *MCPLogger) Errorf(format string, v ...any) {
	l.logger.Error(fmt.Sprintf(format, v...))
}

// Logger returns the underlying slog.Logger.
func (l *MCPLogger) Logger() *slog.Logger {
	return l.logger
}

var _ util.Logger = (*MCPLogger)(nil)
