// Package tools holds the tool catalog, registry, argument validation, and
// request dispatch for the OpenSVM MCP server. Each tool maps a declared
// JSON schema onto exactly one backend operation.
package tools

import (
	"context"
	"encoding/json"
)

// Gateway is the narrow contract the dispatcher needs from the backend
// HTTP client. Paths are relative to the configured API root; payloads are
// JSON-encoded before sending.
type Gateway interface {
	Get(ctx context.Context, path string) (json.RawMessage, error)
	Post(ctx context.Context, path string, payload any) (json.RawMessage, error)
	Delete(ctx context.Context, path string) (json.RawMessage, error)
	// Authenticated reports whether a JWT session token is configured.
	Authenticated() bool
}

// HandlerFunc validates arguments, shapes the backend request, and returns
// the raw JSON body. Validation failures are returned as *rpc.Error values;
// everything else is a gateway failure.
type HandlerFunc func(ctx context.Context, gw Gateway, args map[string]any) (json.RawMessage, error)

// Definition binds a tool name to its declared schema and its handler.
// Definitions are created once at process start and never mutated.
type Definition struct {
	Name            string
	Description     string
	InputSchema     Schema
	RequiresSession bool
	Handler         HandlerFunc
}

// Registry is the static tool catalog. Registration is total: the set of
// names List returns is exactly the set Resolve can find, because both are
// backed by the same table.
type Registry struct {
	defs   []Definition
	byName map[string]Definition
}

// NewRegistry builds the registry from the built-in catalog.
func NewRegistry() *Registry {
	defs := catalog()
	byName := make(map[string]Definition, len(defs))
	for _, def := range defs {
		byName[def.Name] = def
	}
	return &Registry{
		defs:   defs,
		byName: byName,
	}
}

// List returns all tool definitions in stable catalog order.
func (r *Registry) List() []Definition {
	out := make([]Definition, len(r.defs))
	copy(out, r.defs)
	return out
}

// Resolve looks up a tool definition by name.
func (r *Registry) Resolve(name string) (Definition, bool) {
	def, ok := r.byName[name]
	return def, ok
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	return len(r.defs)
}
