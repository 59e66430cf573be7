package tools

import (
	"context"
	"errors"
	"time"

	"github.com/opensvm/osvm-mcp/gateway"
	"github.com/opensvm/osvm-mcp/rpc"
)

// Dispatcher resolves tool calls against the registry, runs validation,
// invokes the backend, and folds every failure into either a protocol
// error or an isError content result. It never panics outward.
type Dispatcher struct {
	registry *Registry
	gateway  Gateway
}

// NewDispatcher creates a dispatcher over a registry and a backend gateway.
func NewDispatcher(registry *Registry, gw Gateway) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		gateway:  gw,
	}
}

// Handle runs one tool call to completion. A non-nil *rpc.Error is a
// protocol-level failure (unknown tool, invalid params) for the transport
// to surface as a JSON-RPC error object; gateway failures come back as an
// isError content result instead, so a bad backend response never kills
// the connection.
func (d *Dispatcher) Handle(ctx context.Context, name string, args map[string]any) (rpc.ToolsCallResult, *rpc.Error) {
	def, ok := d.registry.Resolve(name)
	if !ok {
		observeCall(CallObservation{Tool: name, Outcome: OutcomeProtocolError, ErrorCode: rpc.CodeMethodNotFound})
		return rpc.ToolsCallResult{}, rpc.MethodNotFoundf("unknown tool %q", name)
	}

	if def.RequiresSession && !d.gateway.Authenticated() {
		observeCall(CallObservation{Tool: name, Outcome: OutcomeToolError})
		return rpc.ErrorResult("tool " + name + " requires a session token: set OPENSVM_JWT_TOKEN"), nil
	}

	if args == nil {
		args = map[string]any{}
	}

	start := time.Now()
	body, err := def.Handler(ctx, d.gateway, args)
	duration := time.Since(start)

	if err != nil {
		var rpcErr *rpc.Error
		if errors.As(err, &rpcErr) {
			observeCall(CallObservation{Tool: name, Outcome: OutcomeProtocolError, ErrorCode: rpcErr.Code, Duration: duration})
			return rpc.ToolsCallResult{}, rpcErr
		}

		// Backend failures carry the upstream status and message verbatim
		// but never internal stack traces.
		var statusErr *gateway.StatusError
		if errors.As(err, &statusErr) {
			observeCall(CallObservation{Tool: name, Outcome: OutcomeToolError, ErrorCode: rpc.CodeInternalError, Duration: duration})
			return rpc.ErrorResult(statusErr.Error()), nil
		}

		observeCall(CallObservation{Tool: name, Outcome: OutcomeToolError, ErrorCode: rpc.CodeInternalError, Duration: duration})
		return rpc.ErrorResult("backend request failed: " + err.Error()), nil
	}

	observeCall(CallObservation{Tool: name, Outcome: OutcomeOK, Duration: duration})
	return rpc.TextResult(string(body)), nil
}
