package tree

import "strings"

// View identifies one of the stored versions of the tree.
type View int

const (
	// Full is the complete tree built from the release.
	Full View = iota
	// Picked keeps manually selected nodes and a few of their children.
	Picked
	// Images keeps nodes with images.
	Images
	// Trimmed keeps nodes with images or descriptions.
	Trimmed
)

var viewNames = []string{"full", "picked", "images", "trimmed"}

// Views lists all views, the full one first.
var Views = []View{Full, Picked, Images, Trimmed}

// ReducedViews lists views derived from the full tree.
var ReducedViews = []View{Picked, Images, Trimmed}

// String returns the name of a view.
func (v View) String() string {
	if v < Full || v > Trimmed {
		return "unknown"
	}
	return viewNames[v]
}

// Suffix returns the table suffix of a view.
func (v View) Suffix() string {
	switch v {
	case Picked:
		return "_p"
	case Images:
		return "_i"
	case Trimmed:
		return "_t"
	default:
		return ""
	}
}

// NewView converts a view name to View.
func NewView(s string) (View, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, v := range viewNames {
		if v == s {
			return View(i), true
		}
	}
	return Full, false
}
