package voices

import (
	"errors"
	"strings"
	"unicode"

	"fact-shorts-pipeline/types"
)

// ErrNoVoices is returned when the voice catalog is empty.
var ErrNoVoices = errors.New("no voices available")

// Matcher maps a topic string to a voice profile using tiered keyword
// matching over the catalog's category tags.
type Matcher struct {
	catalog *Catalog
}

// NewMatcher creates a Matcher over the given catalog.
func NewMatcher(catalog *Catalog) *Matcher {
	return &Matcher{catalog: catalog}
}

// Match picks a voice for the topic text. Tier 1 takes the first profile in
// catalog order whose tag exactly equals a topic token; tier 2 relaxes to a
// tag being a substring of a token; tier 3 falls back to the first profile.
// Deterministic for a fixed catalog and input.
func (m *Matcher) Match(topicText string) (types.VoiceProfile, error) {
	profiles := m.catalog.Load()
	if len(profiles) == 0 {
		return types.VoiceProfile{}, ErrNoVoices
	}

	tokens := tokenize(topicText)

	for _, p := range profiles {
		for _, cat := range p.Categories {
			if tokens[cat] {
				return p, nil
			}
		}
	}

	for _, p := range profiles {
		for _, cat := range p.Categories {
			for token := range tokens {
				if strings.Contains(token, cat) {
					return p, nil
				}
			}
		}
	}

	return profiles[0], nil
}

// tokenize lowercases the text, replaces every character that is neither
// alphanumeric nor whitespace with a space, and collapses the result into a
// set of tokens.
func tokenize(text string) map[string]bool {
	var b strings.Builder
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	tokens := make(map[string]bool)
	for _, t := range strings.Fields(b.String()) {
		tokens[t] = true
	}
	return tokens
}
