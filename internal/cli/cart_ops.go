package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jakoblorz/go-panelcart/internal/cart"
	"github.com/spf13/cobra"
)

// QuantityCommand handles the qty command
type QuantityCommand struct {
	s *session
}

// NewQuantityCommand creates a new qty command
func NewQuantityCommand(s *session) *cobra.Command {
	cmd := &QuantityCommand{s: s}

	return &cobra.Command{
		Use:   "qty <panel> <quantity>",
		Short: "Set how many of a panel are ordered",
		Long:  `Set the quantity of a panel. A quantity of 0 removes the panel from the cart.`,
		Args:  cobra.ExactArgs(2),
		RunE:  cmd.Run,
	}
}

// Run executes the qty command
func (c *QuantityCommand) Run(cmd *cobra.Command, args []string) error {
	index, err := panelIndex(args[0])
	if err != nil {
		return err
	}

	quantity, err := strconv.Atoi(strings.TrimSpace(args[1]))
	if err != nil {
		return fmt.Errorf("invalid quantity %q", args[1])
	}

	store := c.s.store
	if err := store.UpdateQuantity(index, quantity); err != nil {
		return describeIndexError(err)
	}

	if quantity <= 0 {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed panel #%d (project total: %d)\n", index+1, store.ProjCount())
		return nil
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Panel #%d quantity set to %d (project total: %d)\n", index+1, quantity, store.ProjCount())
	return nil
}

// RemoveCommand handles the remove command
type RemoveCommand struct {
	s *session
}

// NewRemoveCommand creates a new remove command
func NewRemoveCommand(s *session) *cobra.Command {
	cmd := &RemoveCommand{s: s}

	return &cobra.Command{
		Use:     "remove <panel>",
		Aliases: []string{"rm"},
		Short:   "Remove a panel from the cart",
		Args:    cobra.ExactArgs(1),
		RunE:    cmd.Run,
	}
}

// Run executes the remove command
func (c *RemoveCommand) Run(cmd *cobra.Command, args []string) error {
	index, err := panelIndex(args[0])
	if err != nil {
		return err
	}

	store := c.s.store
	if err := store.RemoveFromCart(index); err != nil {
		return describeIndexError(err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed panel #%d (project total: %d)\n", index+1, store.ProjCount())
	return nil
}

// ReorderCommand handles the reorder command
type ReorderCommand struct {
	s    *session
	move string
}

// NewReorderCommand creates a new reorder command
func NewReorderCommand(s *session) *cobra.Command {
	cmd := &ReorderCommand{s: s}

	cobraCmd := &cobra.Command{
		Use:   "reorder [<panel>...]",
		Short: "Change the display order of the cart",
		Long: `Change the display order of the cart.

Either list every panel number in the new order, or move a single panel
with --move <from>:<to>.`,
		Example: `  # Reverse a three panel cart
  panelcart reorder 3 2 1

  # Move the last of four panels to the top
  panelcart reorder --move 4:1`,
		RunE: cmd.Run,
	}

	cobraCmd.Flags().StringVar(&cmd.move, "move", "", "Move one panel, e.g. 4:1")

	return cobraCmd
}

// Run executes the reorder command
func (c *ReorderCommand) Run(cmd *cobra.Command, args []string) error {
	store := c.s.store

	var order []int
	switch {
	case c.move != "" && len(args) > 0:
		return fmt.Errorf("use either --move or a full order, not both")
	case c.move != "":
		from, to, err := parseMove(c.move)
		if err != nil {
			return err
		}
		order, err = moveOrder(store.Len(), from, to)
		if err != nil {
			return err
		}
	case len(args) > 0:
		order = make([]int, len(args))
		for i, arg := range args {
			index, err := panelIndex(arg)
			if err != nil {
				return err
			}
			order[i] = index
		}
	default:
		return fmt.Errorf("no order given (list panel numbers or use --move)")
	}

	if err := store.ReorderPanels(order); err != nil {
		if errors.Is(err, cart.ErrInvalidPermutation) {
			return fmt.Errorf("order must list each of the panels 1-%d exactly once", store.Len())
		}
		return err
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Cart reordered")
	return nil
}

func parseMove(raw string) (int, int, error) {
	var from, to int
	if _, err := fmt.Sscanf(raw, "%d:%d", &from, &to); err != nil || from < 1 || to < 1 {
		return 0, 0, fmt.Errorf("invalid move %q: expected <from>:<to>", raw)
	}
	return from - 1, to - 1, nil
}

// moveOrder builds the permutation that moves the item at from to position to.
func moveOrder(length, from, to int) ([]int, error) {
	if from >= length || to >= length {
		return nil, fmt.Errorf("move out of range: the cart has %d panels", length)
	}

	order := make([]int, 0, length)
	for i := 0; i < length; i++ {
		if i != from {
			order = append(order, i)
		}
	}
	order = append(order[:to], append([]int{from}, order[to:]...)...)
	return order, nil
}
