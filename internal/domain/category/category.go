// Package category defines the canonical Nobel prize categories, their
// display colors and the named groups used when comparing categories.
package category

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// Category is a canonical prize category label.
type Category string

// Canonical labels. The dataset's economics label is "Economics"; the longer
// "Economic Sciences" form is accepted by Parse as an alias only.
const (
	Physics    Category = "Physics"
	Chemistry  Category = "Chemistry"
	Medicine   Category = "Medicine"
	Literature Category = "Literature"
	Peace      Category = "Peace"
	Economics  Category = "Economics"
)

// EconomicsAlias is the alternate label some exports use for Economics.
const EconomicsAlias = "Economic Sciences"

// AllLabel is the pseudo-selection meaning "every category".
const AllLabel = "All"

var ordered = [...]Category{Physics, Chemistry, Medicine, Literature, Peace, Economics}

var colors = map[Category]string{
	Physics:    "#7DEFA1",
	Chemistry:  "#FF2B2B",
	Medicine:   "#A5D7E8",
	Literature: "#0068C9",
	Peace:      "#D4ADFC",
	Economics:  "#29B09D",
}

// All returns the canonical categories in display order.
func All() []Category {
	out := make([]Category, len(ordered))
	copy(out, ordered[:])
	return out
}

// String implements fmt.Stringer.
func (c Category) String() string { return string(c) }

// Valid reports whether c is one of the canonical labels.
func (c Category) Valid() bool {
	_, ok := colors[c]
	return ok
}

// Color returns the display color for c, or an empty string for unknown labels.
func (c Category) Color() string { return colors[c] }

// Index returns the display position of c, or -1.
func (c Category) Index() int {
	for i, v := range ordered {
		if v == c {
			return i
		}
	}
	return -1
}

// Colors returns a copy of the category color map.
func Colors() map[Category]string {
	out := make(map[Category]string, len(colors))
	for k, v := range colors {
		out[k] = v
	}
	return out
}

// fold normalizes a label for case-insensitive comparison. A Caser keeps
// state, so one is created per call.
func fold(s string) string {
	return cases.Fold().String(strings.Join(strings.Fields(s), " "))
}

// Parse maps a raw label to its canonical category. Matching ignores case and
// surrounding whitespace.
func Parse(s string) (Category, error) {
	f := fold(s)
	for _, c := range ordered {
		if fold(string(c)) == f {
			return c, nil
		}
	}
	if f == fold(EconomicsAlias) {
		return Economics, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknown, s)
}

// IsAlias reports whether s is a non-canonical spelling accepted by Parse.
func IsAlias(s string) bool {
	return fold(s) == fold(EconomicsAlias)
}

// Groups maps a group name to the categories it contains.
type Groups map[string][]Category

// Default group names.
const (
	GroupAll        = "all"
	GroupSciences   = "sciences"
	GroupHumanities = "humanities"
)

// DefaultGroups returns the built-in groups.
func DefaultGroups() Groups {
	return Groups{
		GroupAll:        All(),
		GroupSciences:   {Physics, Chemistry, Medicine},
		GroupHumanities: {Literature, Peace, Economics},
	}
}

// NewGroups builds groups from raw labels, as found in configuration.
func NewGroups(raw map[string][]string) (Groups, error) {
	g := make(Groups, len(raw))
	for name, labels := range raw {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			return nil, fmt.Errorf("%w: empty group name", ErrUnknownGroup)
		}
		if len(labels) == 0 {
			return nil, fmt.Errorf("%w: group %q has no categories", ErrUnknownGroup, name)
		}
		cats := make([]Category, 0, len(labels))
		for _, l := range labels {
			c, err := Parse(l)
			if err != nil {
				return nil, fmt.Errorf("group %q: %w", name, err)
			}
			cats = append(cats, c)
		}
		g[key] = cats
	}
	return g, nil
}

// Resolve returns the categories in the named group.
func (g Groups) Resolve(name string) ([]Category, error) {
	cats, ok := g[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGroup, name)
	}
	out := make([]Category, len(cats))
	copy(out, cats)
	return out, nil
}

// Names returns the group names in sorted order.
func (g Groups) Names() []string {
	names := make([]string, 0, len(g))
	for n := range g {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
