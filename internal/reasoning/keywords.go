package reasoning

import "strings"

// containsAny reports whether any trigger occurs as a substring of lowered.
// Callers lowercase the text once and pass lowercase triggers.
func containsAny(lowered string, triggers []string) bool {
	for _, t := range triggers {
		if t != "" && strings.Contains(lowered, t) {
			return true
		}
	}
	return false
}

// lowerAll returns a lowercased copy of triggers.
func lowerAll(triggers []string) []string {
	out := make([]string, len(triggers))
	for i, t := range triggers {
		out[i] = strings.ToLower(t)
	}
	return out
}
