package script

import "strings"

var factMarkers = []string{"1.", "2.", "3.", "4.", "5."}

// ExtractFacts returns the enumerated fact lines of a script in source
// order. A line counts as a fact iff its trimmed form starts with one of
// the literal markers "1." through "5." — a strict syntactic rule, not
// semantic fact detection; the generator is responsible for producing
// output this parser can read.
func ExtractFacts(text string) []string {
	var facts []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		for _, marker := range factMarkers {
			if strings.HasPrefix(trimmed, marker) {
				facts = append(facts, trimmed)
				break
			}
		}
	}
	return facts
}
