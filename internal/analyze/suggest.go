package analyze

import (
	"sort"
	"strings"
	"unicode"
)

// suggestThreshold is the minimal normalized similarity for a suggestion.
const suggestThreshold = 0.7

// Suggest ranks candidates by similarity to name and returns up to limit of
// them that are close enough to be worth a "did you mean". Qualified names
// are compared on their last segment too, so "CarMaper" finds "com.x.CarMapper".
func Suggest(name string, candidates []string, limit int) []string {
	if limit <= 0 || name == "" {
		return nil
	}

	type scored struct {
		name  string
		score float64
	}

	var hits []scored

	for _, c := range candidates {
		if c == name {
			continue
		}

		score := NormalizedLevenshteinScore(name, c)
		if short := lastSegment(c); short != c {
			score = max(score, NormalizedLevenshteinScore(lastSegment(name), short))
		}

		if score >= suggestThreshold {
			hits = append(hits, scored{name: c, score: score})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}

		return hits[i].name < hits[j].name
	})

	out := make([]string, 0, min(limit, len(hits)))
	for i := 0; i < len(hits) && i < limit; i++ {
		out = append(out, hits[i].name)
	}

	return out
}

func lastSegment(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}

	return name
}

// Levenshtein computes the edit distance between two strings: the minimum
// number of single-byte insertions, deletions or substitutions turning a into b.
func Levenshtein(a, b string) int {
	if a == b {
		return 0
	}

	if len(a) == 0 {
		return len(b)
	}

	if len(b) == 0 {
		return len(a)
	}

	// keep a the shorter string; only two rows are needed
	if len(a) > len(b) {
		a, b = b, a
	}

	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)

	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(b); j++ {
		curr[0] = j

		for i := 1; i <= len(a); i++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}

			curr[i] = min(prev[i]+1, curr[i-1]+1, prev[i-1]+cost)
		}

		prev, curr = curr, prev
	}

	return prev[len(a)]
}

// LevenshteinNormalized returns a similarity in [0, 1]; 1 means identical.
func LevenshteinNormalized(a, b string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}

	return 1.0 - float64(Levenshtein(a, b))/float64(max(len(a), len(b)))
}

// NormalizedLevenshteinScore compares two identifiers after NormalizeIdent.
func NormalizedLevenshteinScore(a, b string) float64 {
	return LevenshteinNormalized(NormalizeIdent(a), NormalizeIdent(b))
}

// NormalizeIdent lowercases an identifier and strips separators, so
// "car_mapper", "CarMapper" and "car-mapper" compare equal.
func NormalizeIdent(s string) string {
	return strings.ToLower(strings.Join(tokenizeCamelCase(s), ""))
}

// tokenizeCamelCase splits an identifier into words.
// Examples:
//   - "CarMapper" -> ["Car", "Mapper"]
//   - "XMLDateMapper" -> ["XML", "Date", "Mapper"]
//   - "date_mapper" -> ["date", "mapper"]
func tokenizeCamelCase(s string) []string {
	if s == "" {
		return nil
	}

	var (
		tokens  []string
		current strings.Builder
	)

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}

			continue
		}

		if i > 0 && shouldStartNewToken(runes, i) && current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}

		current.WriteRune(r)
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '.'
}

func shouldStartNewToken(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]

	if !unicode.IsUpper(r) || isSeparator(prev) {
		return false
	}

	// lower -> Upper: "carMapper"
	if !unicode.IsUpper(prev) {
		return true
	}

	// end of an acronym: "XMLDate" splits before 'D'
	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
