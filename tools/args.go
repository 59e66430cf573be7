package tools

import (
	"fmt"
	"strings"

	"github.com/opensvm/osvm-mcp/rpc"
)

// Argument extraction helpers. Each turns a validator failure into an
// InvalidParams error naming the offending field and the expected format,
// so handlers fail before any network round-trip.

func requireString(args map[string]any, field string) (string, *rpc.Error) {
	v, ok := args[field]
	if !ok {
		return "", rpc.InvalidParamsf("missing required parameter %q", field)
	}
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", rpc.InvalidParamsf("parameter %q must be a non-empty string", field)
	}
	return s, nil
}

func requireAddress(args map[string]any, field string) (string, *rpc.Error) {
	v, ok := args[field]
	if !ok {
		return "", rpc.InvalidParamsf("missing required parameter %q", field)
	}
	if !ValidAddress(v) {
		return "", rpc.InvalidParamsf("parameter %q must be a Solana address (%d-%d characters)", field, minAddressLen, maxAddressLen)
	}
	return v.(string), nil
}

func requireSignature(args map[string]any, field string) (string, *rpc.Error) {
	v, ok := args[field]
	if !ok {
		return "", rpc.InvalidParamsf("missing required parameter %q", field)
	}
	if !ValidSignature(v) {
		return "", rpc.InvalidParamsf("parameter %q must be a transaction signature (%d-%d characters)", field, minSignatureLen, maxSignatureLen)
	}
	return v.(string), nil
}

func requireSignatures(args map[string]any, field string, maxItems int) ([]string, *rpc.Error) {
	v, ok := args[field]
	if !ok {
		return nil, rpc.InvalidParamsf("missing required parameter %q", field)
	}
	if !ValidArrayBounds(v, maxItems) {
		return nil, rpc.InvalidParamsf("parameter %q must be an array of 1-%d signatures", field, maxItems)
	}
	items := v.([]any)
	out := make([]string, 0, len(items))
	for i, item := range items {
		if !ValidSignature(item) {
			return nil, rpc.InvalidParamsf("parameter %q[%d] must be a transaction signature (%d-%d characters)", field, i, minSignatureLen, maxSignatureLen)
		}
		out = append(out, item.(string))
	}
	return out, nil
}

func requireSlot(args map[string]any, field string) (int, *rpc.Error) {
	v, ok := args[field]
	if !ok {
		return 0, rpc.InvalidParamsf("missing required parameter %q", field)
	}
	n, ok := asInt(v)
	if !ok || n < 0 {
		return 0, rpc.InvalidParamsf("parameter %q must be a non-negative integer slot number", field)
	}
	return n, nil
}

func optionalLimit(args map[string]any, field string, def, max int) (int, *rpc.Error) {
	v, ok := args[field]
	if !ok {
		return def, nil
	}
	if !ValidIntRange(v, 1, max) {
		return 0, rpc.InvalidParamsf("parameter %q must be an integer between 1 and %d", field, max)
	}
	n, _ := asInt(v)
	return n, nil
}

func requireEnum(args map[string]any, field string, allowed ...string) (string, *rpc.Error) {
	s, rpcErr := requireString(args, field)
	if rpcErr != nil {
		return "", rpcErr
	}
	for _, candidate := range allowed {
		if s == candidate {
			return s, nil
		}
	}
	return "", rpc.InvalidParamsf("parameter %q must be one of: %s", field, strings.Join(allowed, ", "))
}

func optionalString(args map[string]any, field string) (string, *rpc.Error) {
	v, ok := args[field]
	if !ok {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", rpc.InvalidParamsf("parameter %q must be a string", field)
	}
	return s, nil
}

func limitQuery(limit int) string {
	return fmt.Sprintf("?limit=%d", limit)
}
