package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jakoblorz/go-panelcart/internal/models"
	"github.com/jakoblorz/go-panelcart/internal/tui"
	"github.com/spf13/cobra"
)

const (
	formatText = "text"
	formatJSON = "json"
)

// ListCommand handles the list command
type ListCommand struct {
	s      *session
	format string
	panels bool
}

// NewListCommand creates a new list command
func NewListCommand(s *session) *cobra.Command {
	cmd := &ListCommand{s: s}

	cobraCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show the panels in the cart",
		Long: `Show the panels in the cart in display order.

Panels are numbered from 1; the numbers are what qty, remove, reorder and
edit expect.`,
		Args: cobra.NoArgs,
		RunE: cmd.Run,
	}

	cobraCmd.Flags().StringVar(&cmd.format, "format", formatText, "Output format (text, json)")
	cobraCmd.Flags().BoolVar(&cmd.panels, "panels", false, "Also draw each panel's slot grid")

	return cobraCmd
}

// Run executes the list command
func (c *ListCommand) Run(cmd *cobra.Command, args []string) error {
	store := c.s.store
	items := store.Items()
	out := cmd.OutOrStdout()

	switch c.format {
	case formatJSON:
		return writeJSON(out, listOutput{
			ProjectCode: store.ProjectCode(),
			Items:       items,
			Total:       store.ProjCount(),
		})
	case formatText, "":
		_, _ = fmt.Fprint(out, tui.RenderCart(tui.CartView{
			ProjectCode: store.ProjectCode(),
			Items:       items,
			Total:       store.ProjCount(),
		}))
		if c.panels {
			for _, item := range items {
				_, _ = fmt.Fprintln(out)
				_, _ = fmt.Fprint(out, tui.RenderPanel(item))
			}
		}
		return nil
	default:
		return fmt.Errorf("invalid format: %s (must be text or json)", c.format)
	}
}

type listOutput struct {
	ProjectCode string            `json:"projectCode,omitempty"`
	Items       []models.CartItem `json:"items"`
	Total       int               `json:"total"`
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
