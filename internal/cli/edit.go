package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jakoblorz/go-panelcart/internal/cart"
	"github.com/jakoblorz/go-panelcart/internal/customizer"
	"github.com/jakoblorz/go-panelcart/internal/models"
	"github.com/spf13/cobra"
)

// EditCommand handles the edit command
type EditCommand struct {
	s          *session
	panelType  string
	quantity   int
	name       string
	slots      []string
	clearSlots []int
	design     string
}

// NewEditCommand creates a new edit command
func NewEditCommand(s *session) *cobra.Command {
	cmd := &EditCommand{s: s}

	cobraCmd := &cobra.Command{
		Use:   "edit <panel>",
		Short: "Change a panel already in the cart",
		Long: `Change a panel already in the cart.

Without flags the interactive designer opens on the panel. Flags apply in
order: --type, --clear-slot, --slot, then the remaining details.`,
		Example: `  # Rename panel 2 and put a fan icon in slot 4
  panelcart edit 2 --name "Guest bath" --slot "4: fan | Exhaust"

  # Empty slots 1 and 3
  panelcart edit 1 --clear-slot 1 --clear-slot 3`,
		Args: cobra.ExactArgs(1),
		RunE: cmd.Run,
	}

	cobraCmd.Flags().StringVar(&cmd.panelType, "type", "", "Switch to another panel template")
	cobraCmd.Flags().IntVarP(&cmd.quantity, "quantity", "q", 0, "Number of identical panels")
	cobraCmd.Flags().StringVar(&cmd.name, "name", "", "Panel name (empty clears it)")
	cobraCmd.Flags().StringArrayVar(&cmd.slots, "slot", nil, `Placement "<slot>: <icon> | <text>" (repeatable)`)
	cobraCmd.Flags().IntSliceVar(&cmd.clearSlots, "clear-slot", nil, "Slot number to empty (repeatable)")
	cobraCmd.Flags().StringVar(&cmd.design, "design", "", "Opaque design JSON to attach (empty clears it)")

	return cobraCmd
}

// Run executes the edit command
func (c *EditCommand) Run(cmd *cobra.Command, args []string) error {
	index, err := panelIndex(args[0])
	if err != nil {
		return err
	}

	store := c.s.store
	items := store.Items()
	if index >= len(items) {
		return describeIndexError(&cart.IndexError{Op: "edit", Index: index, Len: len(items)})
	}
	current := items[index]

	var updated *models.CartItem
	if !c.anyChanged(cmd) {
		updated, err = customizer.NewDesigner().Run(&current)
		if err != nil {
			return fmt.Errorf("failed to run designer: %w", err)
		}
		if updated == nil {
			return nil
		}
	} else {
		updated, err = c.applyFlags(cmd, current)
		if err != nil {
			return err
		}
	}

	if err := store.UpdatePanel(index, *updated); err != nil {
		return describeIndexError(err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated panel #%d (project total: %d)\n", index+1, store.ProjCount())
	return nil
}

var editFlags = []string{"type", "quantity", "name", "slot", "clear-slot", "design"}

func (c *EditCommand) anyChanged(cmd *cobra.Command) bool {
	for _, name := range editFlags {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

// applyFlags changes only the fields named by flags. Placements are rebuilt
// through a grid only when the type or a slot changes.
func (c *EditCommand) applyFlags(cmd *cobra.Command, current models.CartItem) (*models.CartItem, error) {
	flags := cmd.Flags()
	updated := current.Clone()

	if flags.Changed("type") || flags.Changed("slot") || flags.Changed("clear-slot") {
		icons, panelType, err := c.rebuildPlacements(flags.Changed("type"), current)
		if err != nil {
			return nil, err
		}
		updated.Type = panelType
		updated.Icons = icons
	}

	if flags.Changed("quantity") {
		if c.quantity < 1 {
			return nil, fmt.Errorf("quantity must be at least 1, got %d", c.quantity)
		}
		updated.Quantity = c.quantity
	}
	if flags.Changed("name") {
		updated.PanelName = strings.TrimSpace(c.name)
	}
	if flags.Changed("design") {
		design, err := parseDesignJSON(c.design)
		if err != nil {
			return nil, err
		}
		updated.PanelDesign = design
	}
	return &updated, nil
}

func (c *EditCommand) rebuildPlacements(typeChanged bool, current models.CartItem) ([]models.IconPlacement, string, error) {
	base := current
	if typeChanged {
		panel, err := models.ParsePanelType(c.panelType)
		if err != nil {
			return nil, "", err
		}
		base.Type = panel.Code
	}

	grid, err := customizer.GridFromItem(base)
	if err != nil {
		return nil, "", err
	}
	for _, slot := range c.clearSlots {
		if err := grid.Clear(slot - 1); err != nil {
			return nil, "", err
		}
	}
	if err := applyPlacements(grid, c.slots); err != nil {
		return nil, "", err
	}

	// quantity is validated separately, Build only needs a positive one
	built, err := grid.Build(1)
	if err != nil {
		return nil, "", err
	}
	return built.Icons, built.Type, nil
}

func parseDesignJSON(raw string) (json.RawMessage, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if !json.Valid([]byte(raw)) {
		return nil, fmt.Errorf("invalid design JSON")
	}
	return json.RawMessage(raw), nil
}
