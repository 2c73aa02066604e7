package customizer

import "sort"

// Icon is one entry of the static function-icon catalog
type Icon struct {
	ID       string
	Label    string
	Category string
}

// Src is the asset path recorded on placements
func (i Icon) Src() string {
	return "icons/" + i.ID + ".svg"
}

var icons = []Icon{
	{ID: "light", Label: "Light", Category: "lighting"},
	{ID: "dimmer", Label: "Dimmer", Category: "lighting"},
	{ID: "reading", Label: "Reading Light", Category: "lighting"},
	{ID: "night", Label: "Night Light", Category: "lighting"},
	{ID: "scene", Label: "Scene", Category: "scenes"},
	{ID: "master", Label: "Master Off", Category: "scenes"},
	{ID: "curtain", Label: "Curtain", Category: "shading"},
	{ID: "blind", Label: "Blind", Category: "shading"},
	{ID: "fan", Label: "Fan", Category: "climate"},
	{ID: "thermostat", Label: "Thermostat", Category: "climate"},
	{ID: "dnd", Label: "Do Not Disturb", Category: "hospitality"},
	{ID: "mur", Label: "Make Up Room", Category: "hospitality"},
	{ID: "bell", Label: "Doorbell", Category: "hospitality"},
	{ID: "socket", Label: "Socket", Category: "power"},
}

var iconIndex = func() map[string]Icon {
	index := make(map[string]Icon, len(icons))
	for _, icon := range icons {
		index[icon.ID] = icon
	}
	return index
}()

// LookupIcon finds a catalog icon by id.
func LookupIcon(id string) (Icon, bool) {
	icon, ok := iconIndex[id]
	return icon, ok
}

// Icons returns the catalog sorted by category, then label.
func Icons() []Icon {
	out := append([]Icon(nil), icons...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Label < out[j].Label
	})
	return out
}
