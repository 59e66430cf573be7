package tools

import (
	"encoding/json"
	"fmt"
)

// NativeBalance is the projection get_solana_balance derives from a full
// portfolio response. Absent source fields become declared zero values
// rather than propagating as missing keys.
type NativeBalance struct {
	Balance   float64 `json:"balance"`
	Price     float64 `json:"price"`
	Value     float64 `json:"value"`
	Change24h float64 `json:"change24h"`
}

// projectNativeBalance extracts the native-asset sub-fields from a raw
// portfolio body. A portfolio with no native sub-object yields all zeros.
func projectNativeBalance(portfolio json.RawMessage) (json.RawMessage, error) {
	var decoded struct {
		Native map[string]any `json:"native"`
	}
	if err := json.Unmarshal(portfolio, &decoded); err != nil {
		return nil, fmt.Errorf("tools: decode portfolio response: %w", err)
	}

	projection := NativeBalance{
		Balance:   numberField(decoded.Native, "balance"),
		Price:     numberField(decoded.Native, "price"),
		Value:     numberField(decoded.Native, "value"),
		Change24h: numberField(decoded.Native, "change24h"),
	}

	out, err := json.Marshal(projection)
	if err != nil {
		return nil, fmt.Errorf("tools: encode balance projection: %w", err)
	}
	return out, nil
}

func numberField(obj map[string]any, key string) float64 {
	if obj == nil {
		return 0
	}
	n, ok := obj[key].(float64)
	if !ok {
		return 0
	}
	return n
}
