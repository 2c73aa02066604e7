package cli

import (
	"errors"
	"fmt"
	"slices"

	"github.com/jakoblorz/go-panelcart/internal/cart"
	"github.com/jakoblorz/go-panelcart/internal/kv"
	"github.com/jakoblorz/go-panelcart/internal/tui"
	"github.com/spf13/cobra"
)

// NewProjectCommand creates the project command group
func NewProjectCommand(s *session) *cobra.Command {
	cobraCmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
		Long: `Manage projects.

Each project keeps its own cart. The selected project is remembered between
runs; every change to the cart is saved under it.`,
	}

	cobraCmd.AddCommand(newProjectUseCommand(s))
	cobraCmd.AddCommand(newProjectNewCommand(s))
	cobraCmd.AddCommand(newProjectListCommand(s))
	cobraCmd.AddCommand(newProjectShowCommand(s))
	cobraCmd.AddCommand(newProjectClearCommand(s))

	return cobraCmd
}

// ProjectUseCommand handles the project use command
type ProjectUseCommand struct {
	s *session
}

func newProjectUseCommand(s *session) *cobra.Command {
	cmd := &ProjectUseCommand{s: s}

	return &cobra.Command{
		Use:   "use <code>",
		Short: "Switch to a project, creating it when it does not exist",
		Args:  cobra.ExactArgs(1),
		RunE:  cmd.Run,
	}
}

// Run executes the project use command
func (c *ProjectUseCommand) Run(cmd *cobra.Command, args []string) error {
	return switchProject(cmd, c.s, args[0])
}

func switchProject(cmd *cobra.Command, s *session, code string) error {
	if err := cart.ValidateProjectCode(code); err != nil {
		return err
	}

	s.store.SetProjectCode(code)
	if err := cart.SetActiveProject(s.backend, code); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Switched to project %s (%d panels, total %d)\n",
		s.store.ProjectCode(), s.store.Len(), s.store.ProjCount())
	return nil
}

// ProjectNewCommand handles the project new command
type ProjectNewCommand struct {
	s *session
}

func newProjectNewCommand(s *session) *cobra.Command {
	cmd := &ProjectNewCommand{s: s}

	return &cobra.Command{
		Use:   "new [code]",
		Short: "Start a new empty project and switch to it",
		Long:  `Start a new empty project and switch to it. A code is generated when none is given.`,
		Args:  cobra.MaximumNArgs(1),
		RunE:  cmd.Run,
	}
}

// Run executes the project new command
func (c *ProjectNewCommand) Run(cmd *cobra.Command, args []string) error {
	code := ""
	if len(args) == 1 {
		code = args[0]
	} else {
		generated, err := cart.NewProjectCode()
		if err != nil {
			return err
		}
		code = generated
	}

	existing, err := cart.ListProjects(c.s.backend)
	if err != nil {
		return err
	}
	if slices.Contains(existing, code) {
		return fmt.Errorf("project %s already exists (use 'panelcart project use %s')", code, code)
	}

	return switchProject(cmd, c.s, code)
}

// ProjectListCommand handles the project list command
type ProjectListCommand struct {
	s *session
}

func newProjectListCommand(s *session) *cobra.Command {
	cmd := &ProjectListCommand{s: s}

	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored projects",
		Args:    cobra.NoArgs,
		RunE:    cmd.Run,
	}
}

// Run executes the project list command
func (c *ProjectListCommand) Run(cmd *cobra.Command, args []string) error {
	codes, err := cart.ListProjects(c.s.backend)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(codes) == 0 {
		_, _ = fmt.Fprintln(out, "No projects yet. Start one with 'panelcart project new'.")
		return nil
	}

	active := c.s.store.ProjectCode()
	for _, code := range codes {
		marker := "  "
		if code == active {
			marker = tui.SelectedStyle.Render("* ")
		}

		panels, total, err := projectSize(c.s.backend, code)
		if err != nil {
			_, _ = fmt.Fprintf(out, "%s%s  %s\n", marker, code, tui.ErrorStyle.Render(fmt.Sprintf("unreadable: %v", err)))
			continue
		}
		_, _ = fmt.Fprintf(out, "%s%s  %d panels, total %d\n", marker, code, panels, total)
	}
	return nil
}

func projectSize(backend kv.Backend, code string) (int, int, error) {
	raw, err := backend.Get(cart.ProjectKey(code))
	if err != nil {
		return 0, 0, err
	}
	items, err := cart.DecodeItems(raw)
	if err != nil {
		return 0, 0, err
	}

	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return len(items), total, nil
}

// ProjectShowCommand handles the project show command
type ProjectShowCommand struct {
	s *session
}

func newProjectShowCommand(s *session) *cobra.Command {
	cmd := &ProjectShowCommand{s: s}

	return &cobra.Command{
		Use:   "show",
		Short: "Show the selected project",
		Args:  cobra.NoArgs,
		RunE:  cmd.Run,
	}
}

// Run executes the project show command
func (c *ProjectShowCommand) Run(cmd *cobra.Command, args []string) error {
	store := c.s.store
	out := cmd.OutOrStdout()

	code := store.ProjectCode()
	if code == "" {
		code = "(none)"
	}
	_, _ = fmt.Fprintf(out, "Project: %s\n", code)
	_, _ = fmt.Fprintf(out, "Panels:  %d\n", store.Len())
	_, _ = fmt.Fprintf(out, "Total:   %d\n", store.ProjCount())
	return nil
}

// ProjectClearCommand handles the project clear command
type ProjectClearCommand struct {
	s           *session
	yes         bool
	deleteSaved bool
	confirm     func(message string) (bool, error)
}

func newProjectClearCommand(s *session) *cobra.Command {
	cmd := &ProjectClearCommand{
		s: s,
		confirm: func(message string) (bool, error) {
			return tui.Confirm(message)
		},
	}

	cobraCmd := &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart and deselect the project",
		Long: `Empty the cart, deselect the project and reset the panel tally.

The project's saved cart is kept unless --delete is given.`,
		Args: cobra.NoArgs,
		RunE: cmd.Run,
	}

	cobraCmd.Flags().BoolVarP(&cmd.yes, "yes", "y", false, "Skip the confirmation prompt")
	cobraCmd.Flags().BoolVar(&cmd.deleteSaved, "delete", false, "Also delete the project's saved cart")

	return cobraCmd
}

// Run executes the project clear command
func (c *ProjectClearCommand) Run(cmd *cobra.Command, args []string) error {
	store := c.s.store
	code := store.ProjectCode()

	if !c.yes {
		target := "the cart"
		if code != "" {
			target = "project " + code
		}
		ok, err := c.confirm(fmt.Sprintf("Clear %s (%d panels)?", target, store.Len()))
		if err != nil {
			return err
		}
		if !ok {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
			return nil
		}
	}

	store.ClearProject()
	if err := cart.SetActiveProject(c.s.backend, ""); err != nil {
		return err
	}

	if c.deleteSaved && code != "" {
		if err := c.s.backend.Remove(cart.ProjectKey(code)); err != nil && !errors.Is(err, kv.ErrNotFound) {
			return fmt.Errorf("failed to delete project %s: %w", code, err)
		}
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), tui.SuccessStyle.Render("Cart cleared"))
	return nil
}
