package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// Mode selects one of the two query catalogs.
type Mode string

// Available modes.
const (
	ModePrimary   Mode = "primary"
	ModeSecondary Mode = "secondary"
)

// Modes returns the modes in display order.
func Modes() []Mode {
	return []Mode{ModePrimary, ModeSecondary}
}

// Title returns the human-readable name of the mode.
func (m Mode) Title() string {
	switch m {
	case ModePrimary:
		return "Guvi Query"
	case ModeSecondary:
		return "My own Query"
	default:
		return string(m)
	}
}

// ParseMode accepts a mode key or its title, case-insensitively.
func ParseMode(s string) (Mode, error) {
	s = strings.TrimSpace(s)
	for _, m := range Modes() {
		if strings.EqualFold(s, string(m)) || strings.EqualFold(s, m.Title()) {
			return m, nil
		}
	}
	return "", &UnknownModeError{Value: s}
}

// QueryDefinition pairs a menu label with its SQL text.
type QueryDefinition struct {
	Label string `json:"label"`
	SQL   string `json:"sql"`
}

// Number returns the leading number of the label ("3" for "3) ..."), or 0.
func (q QueryDefinition) Number() int {
	prefix, _, ok := strings.Cut(q.Label, ")")
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(prefix))
	if err != nil {
		return 0
	}
	return n
}

// Catalog is the ordered set of definitions for one mode.
type Catalog struct {
	Mode    Mode
	Queries []QueryDefinition
}

// For returns the catalog for mode. Unknown modes yield an empty catalog.
func For(mode Mode) Catalog {
	var defs []QueryDefinition
	switch mode {
	case ModePrimary:
		defs = primary
	case ModeSecondary:
		defs = secondary
	}
	queries := make([]QueryDefinition, len(defs))
	copy(queries, defs)
	return Catalog{Mode: mode, Queries: queries}
}

// All returns every definition of both catalogs in display order.
func All() []QueryDefinition {
	all := make([]QueryDefinition, 0, len(primary)+len(secondary))
	all = append(all, primary...)
	return append(all, secondary...)
}

// Labels returns the labels in catalog order.
func (c Catalog) Labels() []string {
	labels := make([]string, len(c.Queries))
	for i, q := range c.Queries {
		labels[i] = q.Label
	}
	return labels
}

// Lookup returns the definition with the exact label.
func (c Catalog) Lookup(label string) (QueryDefinition, error) {
	for _, q := range c.Queries {
		if q.Label == label {
			return q, nil
		}
	}
	return QueryDefinition{}, &LabelNotFoundError{Mode: c.Mode, Label: label}
}

// Resolve accepts an exact label or the leading number of a label.
func (c Catalog) Resolve(ref string) (QueryDefinition, error) {
	ref = strings.TrimSpace(ref)
	if q, err := c.Lookup(ref); err == nil {
		return q, nil
	}

	n, err := strconv.Atoi(strings.TrimSuffix(ref, ")"))
	if err == nil && n > 0 {
		for _, q := range c.Queries {
			if q.Number() == n {
				return q, nil
			}
		}
	}
	return QueryDefinition{}, &LabelNotFoundError{Mode: c.Mode, Label: ref}
}

// Find resolves ref against both catalogs, primary first.
func Find(ref string) (Mode, QueryDefinition, error) {
	for _, m := range Modes() {
		if q, err := For(m).Resolve(ref); err == nil {
			return m, q, nil
		}
	}
	return "", QueryDefinition{}, &LabelNotFoundError{Label: strings.TrimSpace(ref)}
}

func (c Catalog) String() string {
	return fmt.Sprintf("%s (%d queries)", c.Mode.Title(), len(c.Queries))
}
