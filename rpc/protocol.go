// Package rpc defines the JSON-RPC 2.0 envelope and MCP method payloads
// exchanged over the stdio transport, plus the fixed error taxonomy every
// failure in the system maps into.
package rpc

import (
	"encoding/json"
	"fmt"
)

// Version is the JSON-RPC protocol version sent on every message.
const Version = "2.0"

// ProtocolVersion is the MCP protocol revision answered during initialize.
const ProtocolVersion = "2024-11-05"

// Message is a JSON-RPC 2.0 envelope. ID is `any` because clients may send
// integer or string identifiers and responses must echo them unchanged.
type Message struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      any             `json:"id,omitempty"`
	Method  string          `json:"method,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
	Result  any             `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

// IsNotification reports whether the message carries no ID and therefore
// must not receive a response.
func (m Message) IsNotification() bool {
	return m.ID == nil
}

// Canonical JSON-RPC error codes. Every failure the dispatcher can produce
// classifies into exactly one of the last three; the taxonomy is closed.
const (
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// Error is the JSON-RPC error object.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// MethodNotFoundf builds a MethodNotFound (-32601) error.
func MethodNotFoundf(format string, args ...any) *Error {
	return &Error{Code: CodeMethodNotFound, Message: fmt.Sprintf(format, args...)}
}

// InvalidParamsf builds an InvalidParams (-32602) error.
func InvalidParamsf(format string, args ...any) *Error {
	return &Error{Code: CodeInvalidParams, Message: fmt.Sprintf(format, args...)}
}

// Internalf builds an InternalError (-32603) error.
func Internalf(format string, args ...any) *Error {
	return &Error{Code: CodeInternalError, Message: fmt.Sprintf(format, args...)}
}

// ClientInfo identifies the connecting MCP client.
type ClientInfo struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

// ServerInfo identifies this server in the initialize response.
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

// InitializeParams is received in the MCP initialize request.
type InitializeParams struct {
	ProtocolVersion string         `json:"protocolVersion"`
	Capabilities    map[string]any `json:"capabilities,omitempty"`
	ClientInfo      ClientInfo     `json:"clientInfo"`
}

// InitializeResult is returned by the MCP initialize request.
type InitializeResult struct {
	ProtocolVersion string         `json:"protocolVersion"`
	Capabilities    map[string]any `json:"capabilities,omitempty"`
	ServerInfo      ServerInfo     `json:"serverInfo"`
}

// ToolsCallParams is received in the MCP tools/call request.
type ToolsCallParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments,omitempty"`
}

// ContentBlock is one item of a tool result's content sequence. Results
// always carry serialized JSON as text, never structured sub-objects.
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ToolsCallResult is returned by the MCP tools/call request.
type ToolsCallResult struct {
	Content []ContentBlock `json:"content"`
	IsError bool           `json:"isError,omitempty"`
}

// TextResult wraps a payload string in a single-element content envelope.
func TextResult(text string) ToolsCallResult {
	return ToolsCallResult{
		Content: []ContentBlock{{Type: "text", Text: text}},
	}
}

// ErrorResult wraps a failure message in an isError content envelope.
func ErrorResult(text string) ToolsCallResult {
	return ToolsCallResult{
		Content: []ContentBlock{{Type: "text", Text: text}},
		IsError: true,
	}
}
