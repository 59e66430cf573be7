package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/opensvm/osvm-mcp/tools"
)

// NewToolsCmd creates the "tools" command group.
func NewToolsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "Inspect the tool catalog",
	}
	cmd.AddCommand(newToolsListCmd())
	return cmd
}

func newToolsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every tool the server exposes",
		RunE:  runToolsList,
	}
	cmd.Flags().Bool("json", false, "Emit the catalog with full input schemas as JSON")
	return cmd
}

type toolListing struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	InputSchema tools.Schema `json:"inputSchema"`
}

func runToolsList(cmd *cobra.Command, _ []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")
	registry := tools.NewRegistry()
	defs := registry.List()

	if asJSON {
		listings := make([]toolListing, 0, len(defs))
		for _, def := range defs {
			listings = append(listings, toolListing{
				Name:        def.Name,
				Description: def.Description,
				InputSchema: def.InputSchema,
			})
		}
		data, err := json.MarshalIndent(listings, "", "  ")
		if err != nil {
			return exitError(exitRuntime, "encoding catalog: %v", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSESSION\tDESCRIPTION")
	for _, def := range defs {
		session := ""
		if def.RequiresSession {
			session = "jwt"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", def.Name, session, def.Description)
	}
	return w.Flush()
}
