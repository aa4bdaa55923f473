// Package extract turns raw OCR text into per-type structured records.
//
// Each document type has an ordered ruleset: every field is an ordered list of
// (pattern, normalizer) pairs where fallback patterns are tried only when the
// primary fails. Extraction is total — it never errors on arbitrary text, and
// fields with no match stay nil.
package extract

import (
	"regexp"
	"strings"
)

// Normalizer post-processes a raw capture into its stored form.
type Normalizer func(string) string

var collapseWS = regexp.MustCompile(`\s+`)

// NormalizeCode strips all whitespace and uppercases, for identifiers such as
// PAN and IFSC codes.
func NormalizeCode(s string) string {
	return strings.ToUpper(collapseWS.ReplaceAllString(s, ""))
}

// NormalizeDigits strips all whitespace, for numeric identifiers such as
// Aadhaar and account numbers.
func NormalizeDigits(s string) string {
	return collapseWS.ReplaceAllString(s, "")
}

// NormalizeText trims and collapses embedded newlines and runs of whitespace
// into single spaces, for free-text fields such as names and addresses.
func NormalizeText(s string) string {
	return strings.TrimSpace(collapseWS.ReplaceAllString(s, " "))
}

// NormalizeAmount strips whitespace and thousands separators from currency
// captures, keeping digits and the decimal point.
func NormalizeAmount(s string) string {
	s = collapseWS.ReplaceAllString(s, "")
	return strings.ReplaceAll(s, ",", "")
}

// FieldRule extracts one field. Patterns[0] is the primary pattern; the rest
// are ordered fallbacks tried only if every earlier pattern failed.
type FieldRule struct {
	Field     string
	Patterns  []*regexp.Regexp
	Group     int // submatch index to capture; zero means 1
	Normalize Normalizer
}

// Apply runs the rule against text, returning nil when no pattern produced a
// non-empty normalized value.
func (r *FieldRule) Apply(text string) *string {
	group := r.Group
	if group == 0 {
		group = 1
	}
	for _, re := range r.Patterns {
		m := re.FindStringSubmatch(text)
		if m == nil || len(m) <= group {
			continue
		}
		v := strings.TrimSpace(m[group])
		if r.Normalize != nil {
			v = r.Normalize(v)
		}
		if v == "" {
			continue
		}
		return &v
	}
	return nil
}

// applyRules runs a ruleset and returns the extracted values keyed by field.
func applyRules(text string, rules []FieldRule) map[string]*string {
	out := make(map[string]*string, len(rules))
	for i := range rules {
		out[rules[i].Field] = rules[i].Apply(text)
	}
	return out
}

// nonTrivialLines splits text into trimmed lines at least minLen runes long.
func nonTrivialLines(text string, minLen int) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len([]rune(line)) >= minLen {
			out = append(out, line)
		}
	}
	return out
}
