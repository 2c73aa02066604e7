package models

import (
	"bytes"
	"encoding/json"
)

// IconPlacement assigns an icon and/or label text to one grid position
type IconPlacement struct {
	// IconID identifies the icon; nil when the slot only carries text
	IconID *string `json:"iconId"`

	// Label is the icon's display label
	Label string `json:"label"`

	// Position is the grid slot index (0-based)
	Position int `json:"position"`

	// Text is the user annotation printed under the icon
	Text string `json:"text"`

	// Src is the icon asset path
	Src string `json:"src,omitempty"`

	// Category is the icon catalog category
	Category string `json:"category,omitempty"`
}

// HasIcon reports whether an icon is assigned.
func (p IconPlacement) HasIcon() bool {
	return p.IconID != nil && *p.IconID != ""
}

// CartItem is one configured panel design plus the number of identical copies
type CartItem struct {
	// Type is the panel template code. Any string is accepted.
	Type string `json:"type"`

	// Icons are the placements, in producer order
	Icons []IconPlacement `json:"icons"`

	// Quantity is the number of copies of this configuration
	Quantity int `json:"quantity"`

	// DisplayNumber is optional presentation metadata
	DisplayNumber *int `json:"displayNumber,omitempty"`

	// PanelName is optional presentation metadata
	PanelName string `json:"panelName,omitempty"`

	// PanelDesign holds colors, fonts and layout flags; opaque to the cart
	PanelDesign json.RawMessage `json:"panelDesign,omitempty"`
}

// Clone returns a deep copy so callers cannot mutate store-owned slices.
func (c CartItem) Clone() CartItem {
	out := c
	if c.Icons != nil {
		out.Icons = make([]IconPlacement, len(c.Icons))
		for i, icon := range c.Icons {
			if icon.IconID != nil {
				id := *icon.IconID
				icon.IconID = &id
			}
			out.Icons[i] = icon
		}
	}
	if c.DisplayNumber != nil {
		n := *c.DisplayNumber
		out.DisplayNumber = &n
	}
	if c.PanelDesign != nil {
		out.PanelDesign = bytes.Clone(c.PanelDesign)
	}
	return out
}

// IconAt returns the placement at position, if any.
func (c CartItem) IconAt(position int) (IconPlacement, bool) {
	for _, icon := range c.Icons {
		if icon.Position == position {
			return icon, true
		}
	}
	return IconPlacement{}, false
}

// StringPtr is a helper for building IconPlacement values.
func StringPtr(s string) *string {
	return &s
}
