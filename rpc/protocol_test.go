package rpc

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestMessageIsNotification(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want bool
	}{
		{name: "integer id", raw: `{"jsonrpc":"2.0","id":1,"method":"ping"}`, want: false},
		{name: "string id", raw: `{"jsonrpc":"2.0","id":"abc","method":"ping"}`, want: false},
		{name: "no id", raw: `{"jsonrpc":"2.0","method":"notifications/initialized"}`, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var msg Message
			if err := json.Unmarshal([]byte(tt.raw), &msg); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got := msg.IsNotification(); got != tt.want {
				t.Fatalf("IsNotification() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMessageEchoesIDType(t *testing.T) {
	var msg Message
	if err := json.Unmarshal([]byte(`{"jsonrpc":"2.0","id":"req-7","method":"ping"}`), &msg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	out, err := json.Marshal(Message{JSONRPC: Version, ID: msg.ID, Result: map[string]any{}})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(out), `"id":"req-7"`) {
		t.Fatalf("response = %s, want string id echoed", out)
	}
}

func TestErrorConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		wantCode int
	}{
		{name: "method not found", err: MethodNotFoundf("unknown tool %q", "x"), wantCode: CodeMethodNotFound},
		{name: "invalid params", err: InvalidParamsf("missing %q", "address"), wantCode: CodeInvalidParams},
		{name: "internal", err: Internalf("boom"), wantCode: CodeInternalError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Fatalf("Code = %d, want %d", tt.err.Code, tt.wantCode)
			}
			if tt.err.Message == "" {
				t.Fatal("Message is empty")
			}
			if !strings.Contains(tt.err.Error(), tt.err.Message) {
				t.Fatalf("Error() = %q, want message included", tt.err.Error())
			}
		})
	}
}

func TestErrorResultEnvelope(t *testing.T) {
	result := ErrorResult("backend request failed: status 500")
	if !result.IsError {
		t.Fatal("IsError = false, want true")
	}
	if len(result.Content) != 1 || result.Content[0].Type != "text" {
		t.Fatalf("Content = %+v, want single text block", result.Content)
	}

	ok := TextResult(`{"slot":1}`)
	if ok.IsError {
		t.Fatal("IsError = true on success result")
	}

	// isError must vanish from the wire on success.
	out, err := json.Marshal(ok)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(out), "isError") {
		t.Fatalf("success result = %s, want isError omitted", out)
	}
}
