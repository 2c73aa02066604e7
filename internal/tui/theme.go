package tui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// NewHuhTheme returns the form theme used by interactive flows: the charm
// theme recolored to the purple/green palette of the styles above.
func NewHuhTheme() *huh.Theme {
	t := huh.ThemeCharm()

	purple := lipgloss.Color("#7D56F4")
	green := lipgloss.Color("#04B575")

	t.Focused.Title = t.Focused.Title.Foreground(purple)
	t.Focused.NoteTitle = t.Focused.NoteTitle.Foreground(purple)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(purple)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(green)
	t.Blurred.Title = t.Focused.Title
	t.Group.Title = t.Focused.Title

	return t
}
