package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/opensvm/osvm-mcp/tools"
)

// newTestRoot creates a fresh cobra root command wired to all subcommands.
// Each test gets an isolated command tree to avoid shared state.
func newTestRoot() *cobra.Command {
	root := &cobra.Command{
		Use:          "osvm-mcp",
		SilenceUsage: true,
	}
	root.AddCommand(NewServeCmd())
	root.AddCommand(NewToolsCmd())
	return root
}

// executeCommand runs a cobra command with the given args and captures stdout/stderr.
func executeCommand(root *cobra.Command, args ...string) (stdout, stderr string, err error) {
	var outBuf, errBuf bytes.Buffer
	root.SetOut(&outBuf)
	root.SetErr(&errBuf)
	root.SetArgs(args)
	err = root.Execute()
	return outBuf.String(), errBuf.String(), err
}

func TestToolsListTable(t *testing.T) {
	stdout, _, err := executeCommand(newTestRoot(), "tools", "list")
	if err != nil {
		t.Fatalf("tools list error = %v", err)
	}
	if !strings.Contains(stdout, "NAME") || !strings.Contains(stdout, "DESCRIPTION") {
		t.Fatalf("list output missing header: %q", stdout)
	}
	for _, name := range []string{"get_transaction", "get_solana_balance", "manage_api_keys"} {
		if !strings.Contains(stdout, name) {
			t.Fatalf("list output missing tool %s: %q", name, stdout)
		}
	}
	// Session column marks JWT-gated tools.
	for _, line := range strings.Split(stdout, "\n") {
		if strings.HasPrefix(line, "get_user_profile") && !strings.Contains(line, "jwt") {
			t.Fatalf("get_user_profile line missing jwt marker: %q", line)
		}
	}
}

func TestToolsListJSON(t *testing.T) {
	stdout, _, err := executeCommand(newTestRoot(), "tools", "list", "--json")
	if err != nil {
		t.Fatalf("tools list --json error = %v", err)
	}

	var listings []struct {
		Name        string       `json:"name"`
		Description string       `json:"description"`
		InputSchema tools.Schema `json:"inputSchema"`
	}
	if err := json.Unmarshal([]byte(stdout), &listings); err != nil {
		t.Fatalf("decode catalog JSON: %v", err)
	}
	if len(listings) != tools.NewRegistry().Len() {
		t.Fatalf("listed %d tools, want %d", len(listings), tools.NewRegistry().Len())
	}
	for _, listing := range listings {
		if listing.Name == "" || listing.Description == "" {
			t.Fatalf("listing %+v missing name or description", listing)
		}
		if listing.InputSchema.Type != "object" {
			t.Fatalf("tool %s schema type = %q, want object", listing.Name, listing.InputSchema.Type)
		}
	}
}

func TestServeRejectsBadConfigPath(t *testing.T) {
	_, _, err := executeCommand(newTestRoot(), "serve", "--config", "/does/not/exist.yaml")
	if err == nil {
		t.Fatal("serve with missing config error = nil, want config failure")
	}
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("serve error = %T, want *ExitError", err)
	}
	if exitErr.Code != exitConfig {
		t.Fatalf("exit code = %d, want %d", exitErr.Code, exitConfig)
	}
}

func TestExitError(t *testing.T) {
	err := exitError(exitRuntime, "serving: %v", errors.New("boom"))
	if err.Code != exitRuntime {
		t.Fatalf("Code = %d, want %d", err.Code, exitRuntime)
	}
	if err.Error() != "serving: boom" {
		t.Fatalf("Error() = %q, want formatted message", err.Error())
	}
}
