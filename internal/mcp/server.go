// ABOUTME: MCP server setup for the vitals store.
// ABOUTME: Wraps MCP server with storage Repository, alert notifier, and logger.
package mcp

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/harperreed/vitals/internal/notify"
	"github.com/harperreed/vitals/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Version is reported to MCP clients.
const Version = "1.0.0"

// Server wraps the MCP server with storage access.
type Server struct {
	mcpServer  *mcp.Server
	repo       storage.Repository
	notifier   notify.Notifier
	logger     *log.Logger
	reportKeep int
}

// NewServer creates a new MCP server with the given storage. A nil notifier
// disables alerts and a nil logger falls back to the default logger.
func NewServer(repo storage.Repository, notifier notify.Notifier, logger *log.Logger) (*Server, error) {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	if logger == nil {
		logger = log.Default()
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "vitals",
			Version: Version,
		},
		nil,
	)

	s := &Server{
		mcpServer:  mcpServer,
		repo:       repo,
		notifier:   notifier,
		logger:     logger.WithPrefix("mcp"),
		reportKeep: storage.DefaultReportKeep,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// SetReportKeep sets how many saved reports analyze_report retains.
// Zero or less keeps every report.
func (s *Server) SetReportKeep(keep int) {
	s.reportKeep = keep
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("serving over stdio")
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
