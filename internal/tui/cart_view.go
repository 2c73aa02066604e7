package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jakoblorz/go-panelcart/internal/models"
)

const cellWidth = 12

// CartView is the data RenderCart draws
type CartView struct {
	ProjectCode string
	Items       []models.CartItem
	Total       int
}

// RenderCart draws the numbered item list with the project total.
func RenderCart(v CartView) string {
	var b strings.Builder

	title := "Cart (no project)"
	if v.ProjectCode != "" {
		title = "Project " + v.ProjectCode
	}
	b.WriteString(TitleStyle.Render(title))
	b.WriteString("\n")

	if len(v.Items) == 0 {
		b.WriteString(SubtleStyle.Render("No panels yet. Add one with 'panelcart add'."))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(HeaderStyle.Render(fmt.Sprintf("%-3s  %-5s %-34s %-4s %s", "#", "TYPE", "NAME", "QTY", "SLOTS")))
	b.WriteString("\n")

	for i, item := range v.Items {
		name := "custom panel"
		if pt, ok := models.LookupPanelType(item.Type); ok {
			name = pt.Name
		}

		line := fmt.Sprintf("%s  %-5s %-34s x%-3d %s",
			SelectedStyle.Render(fmt.Sprintf("#%-2d", i+1)),
			item.Type,
			name,
			item.Quantity,
			pluralize(len(item.Icons), "slot", "slots"))
		if item.PanelName != "" {
			line += "  " + DescStyle.Render(item.PanelName)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Total panels: %d\n", v.Total))
	return b.String()
}

// RenderPanel draws an item's grid. Slots are numbered from 1.
func RenderPanel(item models.CartItem) string {
	slots, columns := 0, 3
	if pt, ok := models.LookupPanelType(item.Type); ok {
		slots, columns = pt.Slots, pt.Columns
	}
	for _, icon := range item.Icons {
		if icon.Position+1 > slots {
			slots = icon.Position + 1
		}
	}

	var rows []string
	var row []string
	for pos := 0; pos < slots; pos++ {
		row = append(row, renderCell(item, pos))
		if len(row) == columns || pos == slots-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}

	header := fmt.Sprintf("%s x%d", item.Type, item.Quantity)
	if item.PanelName != "" {
		header += " - " + item.PanelName
	}
	return TitleStyle.Render(header) + "\n" + lipgloss.JoinVertical(lipgloss.Left, rows...) + "\n"
}

func renderCell(item models.CartItem, pos int) string {
	icon, ok := item.IconAt(pos)
	if !ok {
		return CellStyle.Render(fmt.Sprintf("%d\n\n", pos+1))
	}

	label := ""
	if icon.HasIcon() {
		label = icon.Label
		if label == "" {
			label = *icon.IconID
		}
	}
	return FilledCellStyle.Render(fmt.Sprintf("%d\n%s\n%s", pos+1, truncate(label), truncate(icon.Text)))
}

func truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= cellWidth {
		return s
	}
	return string(runes[:cellWidth-1]) + "…"
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}
