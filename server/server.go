// Package server runs the MCP stdio serving loop: newline-delimited
// JSON-RPC 2.0 requests in, responses out. Requests are processed one at a
// time; the only suspension point is the backend round-trip inside a
// tools/call.
package server

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/opensvm/osvm-mcp/audit"
	"github.com/opensvm/osvm-mcp/rpc"
	"github.com/opensvm/osvm-mcp/tools"
)

// maxLineBytes bounds a single inbound request line.
const maxLineBytes = 10 * 1024 * 1024

// Config wires the server's collaborators.
type Config struct {
	Name       string
	Version    string
	Registry   *tools.Registry
	Dispatcher *tools.Dispatcher
	In         io.Reader
	Out        io.Writer
	Logger     *slog.Logger
	// Audit, when non-nil, receives one entry per tools/call.
	Audit *audit.Store
}

// Server is the stdio MCP server.
type Server struct {
	name       string
	version    string
	registry   *tools.Registry
	dispatcher *tools.Dispatcher
	in         io.Reader
	out        io.Writer
	logger     *slog.Logger
	audit      *audit.Store
}

// New creates a server from config.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		name:       cfg.Name,
		version:    cfg.Version,
		registry:   cfg.Registry,
		dispatcher: cfg.Dispatcher,
		in:         cfg.In,
		out:        cfg.Out,
		logger:     logger,
		audit:      cfg.Audit,
	}
}

// Run processes requests until the input closes, the context is canceled,
// or a transport-level fault occurs. Client disconnect and cancellation
// return nil; a malformed outer envelope is fatal and returns an error.
func (s *Server) Run(ctx context.Context) error {
	lines := make(chan []byte)
	readErr := make(chan error, 1)

	go func() {
		scanner := bufio.NewScanner(s.in)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
		for scanner.Scan() {
			line := make([]byte, len(scanner.Bytes()))
			copy(line, scanner.Bytes())
			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	s.logger.Info("server started", "name", s.name, "version", s.version, "tools", s.registry.Len())

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("server stopping")
			return nil
		case err := <-readErr:
			if err != nil {
				return fmt.Errorf("server: read request: %w", err)
			}
			s.logger.Info("client disconnected")
			return nil
		case line := <-lines:
			if len(line) == 0 {
				continue
			}
			if err := s.handleLine(ctx, line); err != nil {
				return err
			}
		}
	}
}

func (s *Server) handleLine(ctx context.Context, line []byte) error {
	var msg rpc.Message
	if err := json.Unmarshal(line, &msg); err != nil {
		// A malformed outer envelope is a transport fault, fatal to the
		// connection; per-call failures never reach this path.
		return fmt.Errorf("server: parse request envelope: %w", err)
	}

	switch msg.Method {
	case "initialize":
		return s.handleInitialize(msg)
	case "notifications/initialized":
		return nil
	case "ping":
		return s.writeResult(msg.ID, map[string]any{})
	case "tools/list":
		return s.handleToolsList(msg)
	case "tools/call":
		return s.handleToolsCall(ctx, msg)
	default:
		if msg.IsNotification() {
			return nil
		}
		s.logger.Warn("unknown method", "method", msg.Method)
		return s.writeError(msg.ID, rpc.MethodNotFoundf("method not found: %s", msg.Method))
	}
}

func (s *Server) handleInitialize(msg rpc.Message) error {
	var params rpc.InitializeParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.writeError(msg.ID, rpc.InvalidParamsf("invalid initialize params: %v", err))
		}
	}
	s.logger.Info("client connected", "client", params.ClientInfo.Name, "client_version", params.ClientInfo.Version)

	return s.writeResult(msg.ID, rpc.InitializeResult{
		ProtocolVersion: rpc.ProtocolVersion,
		Capabilities: map[string]any{
			"tools": map[string]any{},
		},
		ServerInfo: rpc.ServerInfo{Name: s.name, Version: s.version},
	})
}

type toolDescriptor struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	InputSchema tools.Schema `json:"inputSchema"`
}

func (s *Server) handleToolsList(msg rpc.Message) error {
	defs := s.registry.List()
	descriptors := make([]toolDescriptor, 0, len(defs))
	for _, def := range defs {
		descriptors = append(descriptors, toolDescriptor{
			Name:        def.Name,
			Description: def.Description,
			InputSchema: def.InputSchema,
		})
	}
	return s.writeResult(msg.ID, map[string]any{"tools": descriptors})
}

func (s *Server) handleToolsCall(ctx context.Context, msg rpc.Message) error {
	var params rpc.ToolsCallParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.writeError(msg.ID, rpc.InvalidParamsf("invalid tools/call params: %v", err))
	}
	if params.Name == "" {
		return s.writeError(msg.ID, rpc.InvalidParamsf("missing tool name"))
	}

	start := time.Now()
	result, rpcErr := s.dispatcher.Handle(ctx, params.Name, params.Arguments)
	s.recordCall(ctx, params.Name, result, rpcErr, time.Since(start))

	if rpcErr != nil {
		s.logger.Warn("tool call rejected", "tool", params.Name, "code", rpcErr.Code, "message", rpcErr.Message)
		return s.writeError(msg.ID, rpcErr)
	}

	if result.IsError {
		s.logger.Warn("tool call failed", "tool", params.Name)
	} else {
		s.logger.Info("tool call completed", "tool", params.Name)
	}
	return s.writeResult(msg.ID, result)
}

func (s *Server) recordCall(ctx context.Context, tool string, result rpc.ToolsCallResult, rpcErr *rpc.Error, duration time.Duration) {
	if s.audit == nil {
		return
	}
	entry := audit.Entry{Tool: tool, Outcome: tools.OutcomeOK, DurationMS: duration.Milliseconds()}
	switch {
	case rpcErr != nil:
		entry.Outcome = tools.OutcomeProtocolError
		entry.ErrorCode = rpcErr.Code
	case result.IsError:
		entry.Outcome = tools.OutcomeToolError
		entry.ErrorCode = rpc.CodeInternalError
	}
	if err := s.audit.Record(ctx, entry); err != nil {
		s.logger.Warn("audit record failed", "tool", tool, "error", err)
	}
}

func (s *Server) writeResult(id any, result any) error {
	return s.writeMessage(rpc.Message{JSONRPC: rpc.Version, ID: id, Result: result})
}

func (s *Server) writeError(id any, rpcErr *rpc.Error) error {
	return s.writeMessage(rpc.Message{JSONRPC: rpc.Version, ID: id, Error: rpcErr})
}

func (s *Server) writeMessage(msg rpc.Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("server: encode response: %w", err)
	}
	data = append(data, '\n')
	if _, err := s.out.Write(data); err != nil {
		return fmt.Errorf("server: write response: %w", err)
	}
	return nil
}
