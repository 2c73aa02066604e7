package customizer

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/jakoblorz/go-panelcart/internal/models"
)

// designMatter is the frontmatter of a design file
type designMatter struct {
	Type          string `yaml:"type"`
	Quantity      int    `yaml:"quantity"`
	PanelName     string `yaml:"panelName"`
	DisplayNumber *int   `yaml:"displayNumber"`
}

// ParseDesign reads a design file: YAML frontmatter naming the panel type
// followed by one "<slot>: <icon> | <text>" line per occupied slot. Blank
// lines and lines starting with '#' are ignored.
func ParseDesign(data []byte) (models.CartItem, error) {
	var matter designMatter
	rest, err := frontmatter.MustParse(bytes.NewReader(data), &matter)
	if err != nil {
		return models.CartItem{}, fmt.Errorf("failed to parse frontmatter: %w", err)
	}

	panel, err := models.ParsePanelType(matter.Type)
	if err != nil {
		return models.CartItem{}, err
	}

	grid := NewGrid(panel)
	seen := make(map[int]int)

	scanner := bufio.NewScanner(bytes.NewReader(rest))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		p, err := ParsePlacement(line)
		if err != nil {
			return models.CartItem{}, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if prev, dup := seen[p.Position]; dup {
			return models.CartItem{}, fmt.Errorf("line %d: slot %d already set on line %d", lineNo, p.Position+1, prev)
		}
		seen[p.Position] = lineNo

		if err := grid.Apply(p); err != nil {
			return models.CartItem{}, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return models.CartItem{}, fmt.Errorf("failed to read design: %w", err)
	}

	quantity := matter.Quantity
	if quantity == 0 {
		quantity = 1
	}

	item, err := grid.Build(quantity)
	if err != nil {
		return models.CartItem{}, err
	}
	item.PanelName = strings.TrimSpace(matter.PanelName)
	item.DisplayNumber = matter.DisplayNumber
	return item, nil
}
