// Package customizer produces cart items from a panel template's grid of
// icon slots.
package customizer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jakoblorz/go-panelcart/internal/models"
)

type slot struct {
	iconID string
	text   string

	// carried over from a loaded item for icons outside the catalog
	label    string
	src      string
	category string
}

// Grid is the editable slot layout of one panel design. Each position holds
// at most one placement, so positions in a built item are always unique.
type Grid struct {
	panel models.PanelType
	slots []slot
}

// NewGrid creates an empty grid for the panel template.
func NewGrid(panel models.PanelType) *Grid {
	return &Grid{
		panel: panel,
		slots: make([]slot, panel.Slots),
	}
}

// GridFromItem loads an existing item back into an editable grid.
func GridFromItem(item models.CartItem) (*Grid, error) {
	panel, err := models.ParsePanelType(item.Type)
	if err != nil {
		return nil, err
	}

	g := NewGrid(panel)
	for _, icon := range item.Icons {
		if err := g.checkPosition(icon.Position); err != nil {
			return nil, err
		}
		g.slots[icon.Position] = slot{
			text:     icon.Text,
			label:    icon.Label,
			src:      icon.Src,
			category: icon.Category,
		}
		if icon.IconID != nil {
			g.slots[icon.Position].iconID = *icon.IconID
		}
	}
	return g, nil
}

// Panel returns the template the grid was built for
func (g *Grid) Panel() models.PanelType {
	return g.panel
}

// At returns the icon id and text at position.
func (g *Grid) At(position int) (iconID, text string, err error) {
	if err := g.checkPosition(position); err != nil {
		return "", "", err
	}
	return g.slots[position].iconID, g.slots[position].text, nil
}

func (g *Grid) checkPosition(position int) error {
	if position < 0 || position >= len(g.slots) {
		return fmt.Errorf("position %d out of range for %s (1-%d)", position+1, g.panel.Code, len(g.slots))
	}
	return nil
}

// PlaceIcon assigns a catalog icon to position, replacing any previous icon.
func (g *Grid) PlaceIcon(position int, iconID string) error {
	if err := g.checkPosition(position); err != nil {
		return err
	}
	if _, ok := LookupIcon(iconID); !ok {
		return fmt.Errorf("unknown icon: %s", iconID)
	}
	g.slots[position] = slot{iconID: iconID, text: g.slots[position].text}
	return nil
}

// SetText sets the annotation printed at position.
func (g *Grid) SetText(position int, text string) error {
	if err := g.checkPosition(position); err != nil {
		return err
	}
	g.slots[position].text = strings.TrimSpace(text)
	return nil
}

// Clear empties position.
func (g *Grid) Clear(position int) error {
	if err := g.checkPosition(position); err != nil {
		return err
	}
	g.slots[position] = slot{}
	return nil
}

// Apply places an icon and/or text parsed by ParsePlacement.
func (g *Grid) Apply(p Placement) error {
	if p.IconID != "" {
		if err := g.PlaceIcon(p.Position, p.IconID); err != nil {
			return err
		}
	}
	if p.Text != "" || p.IconID == "" {
		return g.SetText(p.Position, p.Text)
	}
	return nil
}

// Build scans every slot and emits only positions carrying an icon or
// non-empty text.
func (g *Grid) Build(quantity int) (models.CartItem, error) {
	if quantity < 1 {
		return models.CartItem{}, fmt.Errorf("quantity must be at least 1, got %d", quantity)
	}

	placements := []models.IconPlacement{}
	for position, s := range g.slots {
		if s.iconID == "" && s.text == "" {
			continue
		}

		placement := models.IconPlacement{Position: position, Text: s.text}
		if icon, ok := LookupIcon(s.iconID); ok {
			placement.IconID = models.StringPtr(icon.ID)
			placement.Label = icon.Label
			placement.Src = icon.Src()
			placement.Category = icon.Category
		} else if s.iconID != "" {
			// icons loaded from storage may predate the catalog
			placement.IconID = models.StringPtr(s.iconID)
			placement.Label = s.label
			placement.Src = s.src
			placement.Category = s.category
		}
		placements = append(placements, placement)
	}

	return models.CartItem{
		Type:     g.panel.Code,
		Icons:    placements,
		Quantity: quantity,
	}, nil
}

// Placement is a parsed "<slot>: <icon> | <text>" string. Position is 0-based;
// the string uses 1-based slot numbers.
type Placement struct {
	Position int
	IconID   string
	Text     string
}

// ParsePlacement parses strings such as "1: light | Ceiling", "2: fan" or
// "5: | Guest".
func ParsePlacement(raw string) (Placement, error) {
	slotPart, rest, ok := strings.Cut(raw, ":")
	if !ok {
		return Placement{}, fmt.Errorf("invalid placement %q: expected <slot>: <icon> | <text>", raw)
	}

	slotNum, err := strconv.Atoi(strings.TrimSpace(slotPart))
	if err != nil || slotNum < 1 {
		return Placement{}, fmt.Errorf("invalid placement %q: slot must be a positive number", raw)
	}

	iconPart, textPart, _ := strings.Cut(rest, "|")
	p := Placement{
		Position: slotNum - 1,
		IconID:   strings.TrimSpace(iconPart),
		Text:     strings.TrimSpace(textPart),
	}
	if p.IconID == "" && p.Text == "" {
		return Placement{}, fmt.Errorf("invalid placement %q: needs an icon or text", raw)
	}
	return p, nil
}
