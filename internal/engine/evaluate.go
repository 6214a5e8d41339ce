package engine

import "strings"

// Evaluate compares a typed answer against the target: leading/trailing
// whitespace is trimmed and both sides are lowercased before an exact
// comparison. No fuzzy matching. An empty submission is simply incorrect.
func Evaluate(typed, target string) bool {
	return strings.ToLower(strings.TrimSpace(typed)) == strings.ToLower(strings.TrimSpace(target))
}
