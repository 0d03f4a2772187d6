package automaton

import "strings"

const (
	emptySetLabel = "{}"

	// Produced only for the empty Name, so it cannot collide with an
	// escaped non-empty name or with a set label.
	emptyNameLabel = `\_`
)

var labelEscaper = strings.NewReplacer(
	`\`, `\\`,
	`{`, `\{`,
	`}`, `\}`,
	`,`, `\,`,
)

// Label returns the canonical text of a state for storage keys and display.
//
// A Name is its own text with the reserved characters \ { } and , escaped by
// a backslash. A set is "{" + its members' labels, sorted, joined by "," +
// "}", recursively; the empty set is "{}". Equal sets always produce the same
// label and different sets never do. Labels are never used to decide state
// equality inside the algorithms.
func Label(s State) string {
	if s == nil {
		return ""
	}
	return s.canonical()
}
