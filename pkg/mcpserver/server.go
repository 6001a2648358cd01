package mcpserver

import (
	"context"
	stdlog "log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/entrhq/surf/pkg/logging"
)

const (
	// ServerName is advertised to clients during the initialize handshake.
	ServerName = "browser-automation"
	// ServerVersion is advertised alongside the server name.
	ServerVersion = "0.1.0"
)

// NewServer builds the MCP server with every registry tool routed through the
// dispatcher. Tool calls and protocol handling run over stdio; all diagnostic
// output goes to the session log file so stdout stays protocol-clean.
func NewServer(dispatcher *Dispatcher, log *logging.Logger) *server.MCPServer {
	srv := server.NewMCPServer(ServerName, ServerVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	for _, tool := range Tools() {
		srv.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return dispatcher.Dispatch(ctx, req.Params.Name, req.GetArguments()), nil
		})
		log.Debugf("registered tool %s", tool.Name)
	}

	return srv
}

// Serve runs the stdio transport until the client disconnects. Transport
// errors are routed to the session log, never to stdout.
func Serve(srv *server.MCPServer, log *logging.Logger) error {
	errLog := stdlog.New(log.Writer(), "mcp: ", stdlog.LstdFlags)
	return server.ServeStdio(srv, server.WithErrorLogger(errLog))
}
