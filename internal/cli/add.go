package cli

import (
	"fmt"
	"strings"

	"github.com/jakoblorz/go-panelcart/internal/customizer"
	"github.com/jakoblorz/go-panelcart/internal/models"
	"github.com/jakoblorz/go-panelcart/internal/tui"
	"github.com/spf13/cobra"
)

// AddCommand handles the add command
type AddCommand struct {
	s         *session
	panelType string
	quantity  int
	slots     []string
	name      string
	from      string
}

// NewAddCommand creates a new add command
func NewAddCommand(s *session) *cobra.Command {
	cmd := &AddCommand{s: s}

	cobraCmd := &cobra.Command{
		Use:   "add",
		Short: "Design a panel and add it to the cart",
		Long: `Design a panel and add it to the cart.

Without flags an interactive designer is started. With --type the panel is
built from --slot placements; with --from it is read from a design file
(markdown with a frontmatter header and one placement per line).`,
		Example: `  # Interactive designer
  panelcart add

  # Single panel with two placements
  panelcart add --type SP --slot "1: light | Ceiling" --slot "2: dnd" --quantity 2

  # From a design file
  panelcart add --from bedside.md`,
		Args: cobra.NoArgs,
		RunE: cmd.Run,
	}

	cobraCmd.Flags().StringVar(&cmd.panelType, "type", "",
		fmt.Sprintf("Panel template (%s)", joinCodes()))
	cobraCmd.Flags().IntVarP(&cmd.quantity, "quantity", "q", 1, "Number of identical panels")
	cobraCmd.Flags().StringArrayVar(&cmd.slots, "slot", nil, `Placement "<slot>: <icon> | <text>" (repeatable)`)
	cobraCmd.Flags().StringVar(&cmd.name, "name", "", "Optional panel name")
	cobraCmd.Flags().StringVar(&cmd.from, "from", "", "Read the design from a file")

	return cobraCmd
}

// Run executes the add command
func (c *AddCommand) Run(cmd *cobra.Command, args []string) error {
	var item *models.CartItem
	var err error

	switch {
	case c.from != "":
		item, err = c.fromFile(cmd)
	case c.panelType != "":
		item, err = c.fromFlags()
	default:
		item, err = customizer.NewDesigner().Run(nil)
		if err != nil {
			return fmt.Errorf("failed to run designer: %w", err)
		}
	}
	if err != nil {
		return err
	}

	if item == nil {
		return nil
	}

	store := c.s.store
	store.AddToCart(*item)

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), tui.SuccessStyle.Render(
		fmt.Sprintf("Added %s x%d as panel #%d (project total: %d)",
			item.Type, item.Quantity, store.Len(), store.ProjCount())))
	return nil
}

func (c *AddCommand) fromFile(cmd *cobra.Command) (*models.CartItem, error) {
	data, err := c.s.fs.ReadFile(c.from)
	if err != nil {
		return nil, fmt.Errorf("failed to read design file: %w", err)
	}

	item, err := customizer.ParseDesign(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse design file %s: %w", c.from, err)
	}

	if cmd.Flags().Changed("quantity") {
		if c.quantity < 1 {
			return nil, fmt.Errorf("quantity must be at least 1, got %d", c.quantity)
		}
		item.Quantity = c.quantity
	}
	if c.name != "" {
		item.PanelName = c.name
	}
	return &item, nil
}

func (c *AddCommand) fromFlags() (*models.CartItem, error) {
	panel, err := models.ParsePanelType(c.panelType)
	if err != nil {
		return nil, err
	}

	grid := customizer.NewGrid(panel)
	if err := applyPlacements(grid, c.slots); err != nil {
		return nil, err
	}

	item, err := grid.Build(c.quantity)
	if err != nil {
		return nil, err
	}
	item.PanelName = c.name
	return &item, nil
}

func applyPlacements(grid *customizer.Grid, placements []string) error {
	for _, raw := range placements {
		placement, err := customizer.ParsePlacement(raw)
		if err != nil {
			return err
		}
		if err := grid.Apply(placement); err != nil {
			return err
		}
	}
	return nil
}

func joinCodes() string {
	return strings.Join(models.PanelTypeCodes(), ", ")
}
