package cli

import (
	"fmt"

	"github.com/jakoblorz/go-panelcart/internal/report"
	"github.com/spf13/cobra"
)

// ReportCommand handles the report command
type ReportCommand struct {
	s      *session
	format string
}

// NewReportCommand creates a new report command
func NewReportCommand(s *session) *cobra.Command {
	cmd := &ReportCommand{s: s}

	cobraCmd := &cobra.Command{
		Use:   "report",
		Short: "Print the bill of quantities",
		Long: `Print the bill of quantities: per panel type the number of cart entries,
the ordered quantity and the running tally of configured panels.`,
		Args: cobra.NoArgs,
		RunE: cmd.Run,
	}

	cobraCmd.Flags().StringVar(&cmd.format, "format", formatText, "Output format (text, json)")

	return cobraCmd
}

// Run executes the report command
func (c *ReportCommand) Run(cmd *cobra.Command, args []string) error {
	store := c.s.store
	r := report.Build(store.ProjectCode(), store.Items(), store.Tally())

	switch c.format {
	case formatJSON:
		data, err := r.JSON()
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	case formatText, "":
		text, err := r.Text()
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), text)
		return err
	default:
		return fmt.Errorf("invalid format: %s (must be text or json)", c.format)
	}
}
