package customizer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	huh "github.com/charmbracelet/huh"
	"github.com/jakoblorz/go-panelcart/internal/models"
	"github.com/jakoblorz/go-panelcart/internal/tui"
)

const doneSlot = -1

// Designer walks the user through a panel design using huh forms.
type Designer struct {
	theme *huh.Theme
}

// NewDesigner constructs a Designer with the purple/green huh theme.
func NewDesigner() *Designer {
	return &Designer{theme: tui.NewHuhTheme()}
}

// Run designs a new item, or edits base when it is non-nil. Returns a nil
// item on user abort.
func (d *Designer) Run(base *models.CartItem) (*models.CartItem, error) {
	item, err := d.run(base)
	if errors.Is(err, huh.ErrUserAborted) {
		return nil, nil
	}
	return item, err
}

func (d *Designer) run(base *models.CartItem) (*models.CartItem, error) {
	var (
		grid     *Grid
		quantity = 1
		name     string
		err      error
	)

	if base != nil {
		grid, err = GridFromItem(*base)
		if err != nil {
			return nil, err
		}
		quantity = base.Quantity
		name = base.PanelName
	} else {
		panel, err := d.selectPanelType()
		if err != nil {
			return nil, err
		}
		grid = NewGrid(panel)
	}

	for {
		position, err := d.selectSlot(grid)
		if err != nil {
			return nil, err
		}
		if position == doneSlot {
			break
		}
		if err := d.editSlot(grid, position); err != nil {
			return nil, err
		}
	}

	quantity, name, err = d.inputDetails(quantity, name)
	if err != nil {
		return nil, err
	}

	item, err := grid.Build(quantity)
	if err != nil {
		return nil, err
	}
	item.PanelName = name
	if base != nil {
		item.DisplayNumber = base.DisplayNumber
		item.PanelDesign = base.PanelDesign
	}
	return &item, nil
}

func (d *Designer) form(groups ...*huh.Group) *huh.Form {
	keyMap := huh.NewDefaultKeyMap()
	keyMap.Select.Filter.SetEnabled(false)

	return huh.NewForm(groups...).
		WithTheme(d.theme).
		WithShowHelp(true).
		WithProgramOptions(tea.WithAltScreen()).
		WithKeyMap(keyMap)
}

func (d *Designer) selectPanelType() (models.PanelType, error) {
	code := ""

	form := d.form(
		huh.NewGroup(
			huh.NewSelect[string]().
				Options(panelTypeOptions()...).
				Value(&code),
		).
			Title("Panel Template").
			Description("Choose the panel to configure."),
	)
	if err := form.Run(); err != nil {
		return models.PanelType{}, err
	}

	return models.ParsePanelType(code)
}

func (d *Designer) selectSlot(grid *Grid) (int, error) {
	position := doneSlot

	form := d.form(
		huh.NewGroup(
			huh.NewSelect[int]().
				Options(slotOptions(grid)...).
				Height(14).
				Value(&position),
		).
			Title(fmt.Sprintf("%s - %s", grid.Panel().Code, grid.Panel().Name)).
			Description("Pick a slot to edit, or finish the design."),
	)
	if err := form.Run(); err != nil {
		return 0, err
	}
	return position, nil
}

func (d *Designer) editSlot(grid *Grid, position int) error {
	iconID, text, err := grid.At(position)
	if err != nil {
		return err
	}

	form := d.form(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Icon").
				Options(iconOptions()...).
				Height(10).
				Value(&iconID),
			huh.NewInput().
				Title("Text").
				Placeholder("printed below the icon").
				CharLimit(24).
				Value(&text),
		).
			Title(fmt.Sprintf("Slot %d", position+1)),
	)
	if err := form.Run(); err != nil {
		return err
	}

	if err := grid.Clear(position); err != nil {
		return err
	}
	if iconID == "" && strings.TrimSpace(text) == "" {
		return nil
	}
	return grid.Apply(Placement{Position: position, IconID: iconID, Text: text})
}

func (d *Designer) inputDetails(quantity int, name string) (int, string, error) {
	qty := strconv.Itoa(quantity)

	form := d.form(
		huh.NewGroup(
			huh.NewInput().
				Title("Quantity").
				Value(&qty).
				Validate(validateQuantity),
			huh.NewInput().
				Title("Panel name").
				Placeholder("optional, e.g. Bedside left").
				Value(&name),
		).
			Title("Details"),
	)
	if err := form.Run(); err != nil {
		return 0, "", err
	}

	parsed, err := strconv.Atoi(strings.TrimSpace(qty))
	if err != nil {
		return 0, "", fmt.Errorf("invalid quantity: %w", err)
	}
	return parsed, strings.TrimSpace(name), nil
}

func validateQuantity(v string) error {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 1 {
		return fmt.Errorf("quantity must be a positive number")
	}
	return nil
}

func panelTypeOptions() []huh.Option[string] {
	types := models.PanelTypes()
	opts := make([]huh.Option[string], 0, len(types))
	for _, pt := range types {
		label := fmt.Sprintf("%-5s %s (%d slots)", pt.Code, pt.Name, pt.Slots)
		opts = append(opts, huh.NewOption(label, pt.Code))
	}
	return opts
}

func slotOptions(grid *Grid) []huh.Option[int] {
	opts := []huh.Option[int]{huh.NewOption("Done", doneSlot)}
	for position := 0; position < grid.Panel().Slots; position++ {
		iconID, text, _ := grid.At(position)
		opts = append(opts, huh.NewOption(slotLabel(position, iconID, text), position))
	}
	return opts
}

func slotLabel(position int, iconID, text string) string {
	label := fmt.Sprintf("Slot %2d: ", position+1)
	switch {
	case iconID == "" && text == "":
		return label + "(empty)"
	case iconID == "":
		return label + fmt.Sprintf("%q", text)
	case text == "":
		return label + iconID
	default:
		return label + fmt.Sprintf("%s %q", iconID, text)
	}
}

func iconOptions() []huh.Option[string] {
	icons := Icons()
	opts := make([]huh.Option[string], 0, len(icons)+1)
	opts = append(opts, huh.NewOption("(none)", ""))
	for _, icon := range icons {
		opts = append(opts, huh.NewOption(fmt.Sprintf("%s / %s", icon.Category, icon.Label), icon.ID))
	}
	return opts
}
