// Package verbosity defines the result policies for spelling lookups.
package verbosity

type Verbosity int // Verbosity controls the closeness/quantity of returned spelling suggestions

const (
	Top     Verbosity = iota // Top suggestion with the highest term frequency of the suggestions of smallest edit distance found
	Closest                  // Closest suggestions with the smallest edit distance found, ordered by frequency
	All                      // All suggestions within maxEditDistance, suggestions ordered by edit distance then by frequency (slower, no early termination)
)

// String implements the stringer interface.
func (v Verbosity) String() string {
	switch v {
	case Top:
		return "top"
	case Closest:
		return "closest"
	case All:
		return "all"
	}
	return "unknown"
}

// Parse maps a policy name to its Verbosity. Top is returned for
// unrecognized names along with false.
func Parse(name string) (Verbosity, bool) {
	switch name {
	case "top":
		return Top, true
	case "closest":
		return Closest, true
	case "all":
		return All, true
	}
	return Top, false
}
