package feedback

import "strings"

// redZoneTerms are the topics the compliance instruction forbids. The
// post-generation scan below is a second line of defense: the instruction
// should already keep these out, and any term that slips through is surfaced
// to the reviewer rather than silently shipped.
var redZoneTerms = []string{
	"personality",
	"enthusiasm",
	"culture fit",
	"cultural fit",
	"soft skills",
	"age",
	"gender",
	"attitude",
}

// CheckRedZoneTerms scans a draft for forbidden compliance terms,
// case-insensitively, and returns the terms found. Matching is on word
// boundaries so that e.g. "coverage" does not trip "age".
func CheckRedZoneTerms(text string) []string {
	normalized := strings.ToLower(text)

	var found []string
	seen := make(map[string]bool)
	for _, term := range redZoneTerms {
		if seen[term] {
			continue
		}
		if containsWord(normalized, term) {
			found = append(found, term)
			seen[term] = true
		}
	}

	if len(found) == 0 {
		return nil
	}
	return found
}

// containsWord reports whether term occurs in text bounded by non-letter
// characters on both sides. text and term must already be lowercase.
func containsWord(text, term string) bool {
	for start := 0; ; {
		idx := strings.Index(text[start:], term)
		if idx < 0 {
			return false
		}
		idx += start

		beforeOK := idx == 0 || !isWordChar(text[idx-1])
		end := idx + len(term)
		afterOK := end == len(text) || !isWordChar(text[end])
		if beforeOK && afterOK {
			return true
		}
		start = idx + 1
	}
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= '0' && c <= '9'
}
