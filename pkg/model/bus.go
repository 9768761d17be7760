package model

import "strings"

type Bus struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon,omitempty"`
}

// Fleet is the configured list of buses in display order.
type Fleet []Bus

// Find matches a bus by name, ignoring case, and returns its canonical form.
func (f Fleet) Find(name string) (Bus, bool) {
	name = strings.TrimSpace(name)
	for _, b := range f {
		if strings.EqualFold(b.Name, name) {
			return b, true
		}
	}
	return Bus{}, false
}

func (f Fleet) Names() []string {
	names := make([]string, len(f))
	for i, b := range f {
		names[i] = b.Name
	}
	return names
}
