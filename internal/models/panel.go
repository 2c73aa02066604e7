package models

import (
	"fmt"
	"sort"
	"strings"
)

// PanelType describes a panel template: its short code, a display name
// and the number of icon slots on its grid.
type PanelType struct {
	// Code is the short template identifier (e.g. "SP", "DPH")
	Code string

	// Name is the human-readable template name
	Name string

	// Family groups related templates (single, double, extended, ...)
	Family string

	// Slots is the number of grid positions an icon can be placed on
	Slots int

	// Columns is the grid width used when drawing the panel
	Columns int
}

var panelTypes = map[string]PanelType{
	"SP":   {Code: "SP", Name: "Single Panel", Family: "single", Slots: 9, Columns: 3},
	"TAG":  {Code: "TAG", Name: "Thermostat Panel", Family: "thermostat", Slots: 9, Columns: 3},
	"IDPG": {Code: "IDPG", Name: "Corridor Panel", Family: "corridor", Slots: 9, Columns: 3},
	"X1H":  {Code: "X1H", Name: "Extended Panel, Horizontal", Family: "extended", Slots: 12, Columns: 6},
	"X1V":  {Code: "X1V", Name: "Extended Panel, Vertical", Family: "extended", Slots: 12, Columns: 3},
	"DPH":  {Code: "DPH", Name: "Double Panel, Horizontal", Family: "double", Slots: 18, Columns: 6},
	"DPV":  {Code: "DPV", Name: "Double Panel, Vertical", Family: "double", Slots: 18, Columns: 3},
	"X2H":  {Code: "X2H", Name: "Double Extended Panel, Horizontal", Family: "extended", Slots: 18, Columns: 9},
	"X2V":  {Code: "X2V", Name: "Double Extended Panel, Vertical", Family: "extended", Slots: 18, Columns: 3},
}

// LookupPanelType returns the registered template for code (case-insensitive).
func LookupPanelType(code string) (PanelType, bool) {
	pt, ok := panelTypes[strings.ToUpper(strings.TrimSpace(code))]
	return pt, ok
}

// ParsePanelType is LookupPanelType with an error for unknown codes.
func ParsePanelType(code string) (PanelType, error) {
	pt, ok := LookupPanelType(code)
	if !ok {
		return PanelType{}, fmt.Errorf("invalid panel type: %s (must be one of %s)", code, strings.Join(PanelTypeCodes(), ", "))
	}
	return pt, nil
}

// PanelTypes returns all registered templates ordered by slot count, then code.
func PanelTypes() []PanelType {
	types := make([]PanelType, 0, len(panelTypes))
	for _, pt := range panelTypes {
		types = append(types, pt)
	}
	sort.Slice(types, func(i, j int) bool {
		if types[i].Slots != types[j].Slots {
			return types[i].Slots < types[j].Slots
		}
		return types[i].Code < types[j].Code
	})
	return types
}

// PanelTypeCodes returns the registered codes in PanelTypes order.
func PanelTypeCodes() []string {
	types := PanelTypes()
	codes := make([]string, len(types))
	for i, pt := range types {
		codes[i] = pt.Code
	}
	return codes
}

// TallyKey normalizes a panel type code into the key used by Tally.
func TallyKey(code string) string {
	return strings.ToLower(code)
}
