// Package mcp exposes the converter as Model Context Protocol tools.
package mcp

import (
	"context"
	"fmt"
	"log/slog"

	"retodfa/internal/dto"
	"retodfa/internal/logging"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"
)

// Converter is the part of service.Converter the tools need.
type Converter interface {
	Convert(ctx context.Context, alphabet, expression string) (*dto.Document, error)
	Match(ctx context.Context, alphabet, expression string, inputs []string) ([]dto.MatchResult, error)
}

// MatchResponse wraps the per-input verdicts; structured tool output must be
// an object.
type MatchResponse struct {
	Results []dto.MatchResult `json:"results" jsonschema_description:"One verdict per input, in request order"`
}

type convertArgs struct {
	Alphabet   string `mapstructure:"alphabet"`
	Expression string `mapstructure:"expression"`
}

type matchArgs struct {
	Alphabet   string   `mapstructure:"alphabet"`
	Expression string   `mapstructure:"expression"`
	Inputs     []string `mapstructure:"inputs"`
}

type Server struct {
	conv      Converter
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

func NewServer(conv Converter, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{
		conv:      conv,
		logger:    logger,
		mcpServer: server.NewMCPServer("retodfa-mcp", version),
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer { return s.mcpServer }

func (s *Server) registerTools() {
	convertTool := mcp.NewTool("convert_regex",
		mcp.WithDescription("Convert a regular expression over a finite alphabet into a DFA. Operators: '+' union, '.' concatenation (may be implicit), postfix '*' closure, parentheses for grouping."),
		mcp.WithString("alphabet", mcp.Required(), mcp.Description("Comma separated alphabet symbols, e.g. \"a,b\"")),
		mcp.WithString("expression", mcp.Required(), mcp.Description("Regular expression, e.g. \"(a+b)*a\"")),
		mcp.WithOutputSchema[dto.Document](),
	)
	s.mcpServer.AddTool(convertTool, mcp.NewStructuredToolHandler(s.handleConvert))

	matchTool := mcp.NewTool("match_regex",
		mcp.WithDescription("Convert a regular expression and run each input string through the resulting DFA."),
		mcp.WithString("alphabet", mcp.Required(), mcp.Description("Comma separated alphabet symbols")),
		mcp.WithString("expression", mcp.Required(), mcp.Description("Regular expression")),
		mcp.WithArray("inputs", mcp.Required(), mcp.WithStringItems(), mcp.Description("Strings to test; whitespace is ignored")),
		mcp.WithOutputSchema[MatchResponse](),
	)
	s.mcpServer.AddTool(matchTool, mcp.NewStructuredToolHandler(s.handleMatch))
}

func (s *Server) handleConvert(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (dto.Document, error) {
	var in convertArgs
	if err := mapstructure.Decode(args, &in); err != nil {
		return dto.Document{}, fmt.Errorf("invalid arguments: %w", err)
	}
	doc, err := s.conv.Convert(ctx, in.Alphabet, in.Expression)
	if err != nil {
		s.logger.Debug("MCP convert_regex rejected", "error", err)
		return dto.Document{}, err
	}
	return *doc, nil
}

func (s *Server) handleMatch(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (MatchResponse, error) {
	var in matchArgs
	if err := mapstructure.Decode(args, &in); err != nil {
		return MatchResponse{}, fmt.Errorf("invalid arguments: %w", err)
	}
	results, err := s.conv.Match(ctx, in.Alphabet, in.Expression, in.Inputs)
	if err != nil {
		s.logger.Debug("MCP match_regex rejected", "error", err)
		return MatchResponse{}, err
	}
	return MatchResponse{Results: results}, nil
}
