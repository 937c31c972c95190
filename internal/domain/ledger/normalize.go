package ledger

import "strings"

// legalSuffixes are corporate suffix tokens dropped during name
// normalization. Matched against whole tokens only, after punctuation
// stripping, so "Cole Co" loses "Co" but "Colepark" is untouched.
var legalSuffixes = map[string]struct{}{
	"llc":         {},
	"inc":         {},
	"corp":        {},
	"corporation": {},
	"company":     {},
	"co":          {},
	"ltd":         {},
	"limited":     {},
	"llp":         {},
	"pllc":        {},
	"pc":          {},
	"the":         {},
}

var punctStripper = strings.NewReplacer(".", "", ",", "", "'", "", "\"", "")

// NormalizeName canonicalizes a customer or company name for fuzzy
// comparison: lowercase, punctuation stripped, corporate suffix tokens
// removed, whitespace collapsed. Two names refer to the same party when
// their normalized forms are equal.
func NormalizeName(name string) string {
	out := make([]string, 0, 4)
	for _, token := range strings.Fields(strings.ToLower(name)) {
		token = punctStripper.Replace(token)
		if token == "" {
			continue
		}
		if _, skip := legalSuffixes[token]; skip {
			continue
		}
		out = append(out, token)
	}
	return strings.Join(out, " ")
}
