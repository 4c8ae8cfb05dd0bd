package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/dexview/internal/catalog"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Resolver resolves evolution chains.
type Resolver interface {
	Resolve(ctx context.Context, chainURL string) ([]catalog.Stage, error)
}

// StatusSource reports catalog loading progress.
type StatusSource interface {
	Status() catalog.Status
}

// Options tune how records are searched and described.
type Options struct {
	SearchMinChars int
	NewsEntryIndex int
}

// Server wraps an MCP server that exposes the loaded catalog.
type Server struct {
	cache    *catalog.Cache
	resolver Resolver
	status   StatusSource
	opts     Options
	mcp      *server.MCPServer
}

// NewServer creates a new MCP server with the given dependencies.
func NewServer(cache *catalog.Cache, resolver Resolver, status StatusSource, opts Options) *Server {
	s := &Server{
		cache:    cache,
		resolver: resolver,
		status:   status,
		opts:     opts,
	}

	s.mcp = server.NewMCPServer(
		"dexview",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(getRecordTool, s.handleGetRecord)
	s.mcp.AddTool(searchRecordsTool, s.handleSearchRecords)
	s.mcp.AddTool(getEvolutionTool, s.handleGetEvolution)
	s.mcp.AddTool(catalogStatusTool, s.handleCatalogStatus)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
