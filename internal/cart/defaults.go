package cart

import "github.com/jakoblorz/go-panelcart/internal/models"

func icon(id, label string, position int, text string) models.IconPlacement {
	return models.IconPlacement{
		IconID:   models.StringPtr(id),
		Label:    label,
		Position: position,
		Text:     text,
		Src:      "icons/" + id + ".svg",
	}
}

// DefaultItems returns the sample cart shown when nothing has been stored yet.
func DefaultItems() []models.CartItem {
	return []models.CartItem{
		{
			Type:     "SP",
			Quantity: 1,
			Icons: []models.IconPlacement{
				icon("light", "Light", 0, "Entrance"),
				icon("light", "Light", 1, "Corridor"),
				icon("dnd", "Do Not Disturb", 4, ""),
			},
		},
		{
			Type:     "TAG",
			Quantity: 1,
			Icons: []models.IconPlacement{
				icon("thermostat", "Thermostat", 4, "Bedroom"),
			},
		},
		{
			Type:     "DPH",
			Quantity: 1,
			Icons: []models.IconPlacement{
				icon("light", "Light", 0, "Ceiling"),
				icon("dimmer", "Dimmer", 1, "Reading"),
				icon("curtain", "Curtain", 9, "Sheer"),
				icon("curtain", "Curtain", 10, "Blackout"),
			},
		},
		{
			Type:     "X1H",
			Quantity: 1,
			Icons: []models.IconPlacement{
				icon("scene", "Scene", 0, "Welcome"),
				icon("scene", "Scene", 1, "Night"),
				icon("fan", "Fan", 6, ""),
			},
		},
		{
			Type:     "IDPG",
			Quantity: 1,
			Icons: []models.IconPlacement{
				icon("dnd", "Do Not Disturb", 3, ""),
				icon("mur", "Make Up Room", 5, ""),
			},
		},
	}
}
