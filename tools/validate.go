package tools

// Argument format bounds shared by validators and declared schemas.
const (
	minAddressLen   = 32
	maxAddressLen   = 44
	minSignatureLen = 87
	maxSignatureLen = 88

	maxBatchSignatures = 20
	maxListLimit       = 100
)

// ValidAddress reports whether v looks like a Solana account address.
// This is a length heuristic, not base58 or checksum validation: the
// backend is the authority on address validity, and this pre-filter only
// rejects values that cannot possibly be addresses. Non-string values
// always fail.
func ValidAddress(v any) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	return len(s) >= minAddressLen && len(s) <= maxAddressLen
}

// ValidSignature reports whether v looks like a base58 transaction
// signature. Length heuristic only; non-string values always fail.
func ValidSignature(v any) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	return len(s) >= minSignatureLen && len(s) <= maxSignatureLen
}

// ValidArrayBounds reports whether v is a non-empty array of at most
// maxItems elements. Non-array values always fail.
func ValidArrayBounds(v any, maxItems int) bool {
	items, ok := v.([]any)
	if !ok {
		return false
	}
	return len(items) >= 1 && len(items) <= maxItems
}

// ValidIntRange reports whether v is an integer-valued number within
// [min, max]. JSON numbers decode as float64, so fractional values fail.
func ValidIntRange(v any, min, max int) bool {
	n, ok := asInt(v)
	if !ok {
		return false
	}
	return n >= min && n <= max
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}
