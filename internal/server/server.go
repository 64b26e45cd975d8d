// Package server exposes every registered command as an MCP tool.
package server

import (
	"context"
	"io"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/SiriusScan/mcp-redis/internal/commands"
	apperrors "github.com/SiriusScan/mcp-redis/internal/errors"
	"github.com/SiriusScan/mcp-redis/internal/jsoncodec"
	"github.com/SiriusScan/mcp-redis/internal/metrics"
)

// Name is the server name announced during MCP initialization.
const Name = "mcp-redis"

// Outcome labels reported to the metrics collector.
const (
	OutcomeOK           = "ok"
	OutcomeInvalidInput = "invalid_input"
	OutcomeInternal     = "internal"
)

const instructions = `Read-only inspection of Redis-compatible servers.
Call list_connections first when several instances are configured and pass the
chosen name as the connection parameter. scan_keys and search_keys are bounded
by a server-side cap; narrow the pattern rather than raising count.`

// Server wraps an MCP server whose tools dispatch into the command registry.
type Server struct {
	mcp     *server.MCPServer
	env     commands.Env
	metrics metrics.Collector
	logger  *zap.Logger
	tools   []mcp.Tool
}

// New builds the MCP server and registers one tool per command.
func New(env commands.Env, collector metrics.Collector, version string) *Server {
	if collector == nil {
		collector = metrics.Noop()
	}
	if env.Logger == nil {
		env.Logger = zap.NewNop()
	}

	s := &Server{
		mcp: server.NewMCPServer(
			Name,
			version,
			server.WithToolCapabilities(false),
			server.WithRecovery(),
			server.WithInstructions(instructions),
		),
		env:     env,
		metrics: collector,
		logger:  env.Logger.Named("mcp"),
	}

	for _, cmd := range commands.All() {
		tool := ToolFor(cmd.Definition())
		s.tools = append(s.tools, tool)
		s.mcp.AddTool(tool, s.handler(tool.Name))
	}
	return s
}

// MCP returns the underlying mcp-go server.
func (s *Server) MCP() *server.MCPServer {
	return s.mcp
}

// Tools returns the advertised tool definitions in registration order.
func (s *Server) Tools() []mcp.Tool {
	return append([]mcp.Tool(nil), s.tools...)
}

// ServeStdio serves MCP over in and out until ctx is cancelled or in closes.
// Logs go to the zap logger; out carries protocol messages only.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(zap.NewStdLog(s.logger))
	return stdio.Listen(ctx, in, out)
}

// ToolFor converts a command definition to an MCP tool. Every tool is
// annotated read-only.
func ToolFor(def commands.Definition) mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription(def.Description),
		mcp.WithReadOnlyHintAnnotation(true),
	}
	for _, p := range def.Params {
		props := []mcp.PropertyOption{mcp.Description(p.Description)}
		if p.Required {
			props = append(props, mcp.Required())
		}
		switch p.Type {
		case commands.ParamNumber:
			opts = append(opts, mcp.WithNumber(p.Name, props...))
		default:
			opts = append(opts, mcp.WithString(p.Name, props...))
		}
	}
	return mcp.NewTool(def.Name, opts...)
}

func (s *Server) handler(name string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return s.Call(ctx, name, req.GetArguments())
	}
}

// Call runs the named command and converts the outcome into an MCP result.
// Caller-correctable failures become tool results flagged as errors;
// everything else is returned as an error and surfaces as a JSON-RPC error.
func (s *Server) Call(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error) {
	start := time.Now()

	out, err := commands.Dispatch(ctx, s.env, name, commands.Args(args))
	if err == nil {
		var result *mcp.CallToolResult
		result, err = encode(out)
		if err == nil {
			s.observe(name, OutcomeOK, start, nil)
			return result, nil
		}
	}

	if apperrors.Classify(err) == apperrors.ClassInvalidInput {
		s.observe(name, OutcomeInvalidInput, start, err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.observe(name, OutcomeInternal, start, err)
	return nil, err
}

func (s *Server) observe(tool, outcome string, start time.Time, err error) {
	elapsed := time.Since(start)
	s.metrics.ObserveCall(tool, outcome, elapsed)

	fields := []zap.Field{
		zap.String("tool", tool),
		zap.String("outcome", outcome),
		zap.Duration("elapsed", elapsed),
	}
	switch outcome {
	case OutcomeOK:
		s.logger.Debug("Tool call completed", fields...)
	case OutcomeInvalidInput:
		s.logger.Info("Tool call rejected", append(fields, zap.Error(err))...)
	default:
		s.logger.Error("Tool call failed", append(fields, zap.Error(err))...)
	}
}

// encode returns strings verbatim and everything else as indented JSON.
func encode(out any) (*mcp.CallToolResult, error) {
	if text, ok := out.(string); ok {
		return mcp.NewToolResultText(text), nil
	}
	text, err := jsoncodec.MarshalPretty(out)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(text), nil
}
