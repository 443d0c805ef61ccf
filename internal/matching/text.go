// internal/matching/text.go
package matching

import (
	"strings"
	"unicode/utf8"
)

const (
	minTokenOverlap     = 4
	minCommonSubstring  = 5
	minSynonymPrefixLen = 4
)

// interestSynonyms groups interest terms under a canonical category.
var interestSynonyms = map[string][]string{
	"mjedis":       {"ekologji", "natyrë", "ambient", "gjelbër"},
	"edukim":       {"arsim", "mësim", "shkollë", "dije"},
	"fëmijë":       {"të rinj", "të vegjël", "adoleshentë", "rini"},
	"kafshë":       {"fauna", "qenie", "kafshët"},
	"teknologji":   {"tech", "it", "digjital", "kompjuter"},
	"art":          {"arte", "krijimtari", "kreativitet"},
	"komunitet":    {"shoqëri", "qytet", "lagje", "grup"},
	"sport":        {"aktivitet fizik", "stërvitje", "trajnim"},
	"shëndetësi":   {"mjekësi", "shëndet", "mirëqenie"},
	"të moshuarit": {"pleqtë", "të moshuar", "pensionistë"},
}

// normalize lowercases and trims a free-text label.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// IsPartialMatch reports a loose fuzzy match between two skill labels: a shared
// token of at least four letters where one contains the other, or a common
// substring of at least five letters.
func IsPartialMatch(a, b string) bool {
	a, b = normalize(a), normalize(b)
	if a == "" || b == "" {
		return false
	}

	for _, ta := range strings.Fields(a) {
		if utf8.RuneCountInString(ta) < minTokenOverlap {
			continue
		}
		for _, tb := range strings.Fields(b) {
			if utf8.RuneCountInString(tb) < minTokenOverlap {
				continue
			}
			if strings.Contains(ta, tb) || strings.Contains(tb, ta) {
				return true
			}
		}
	}

	return longestCommonSubstring(a, b) >= minCommonSubstring
}

// longestCommonSubstring returns the rune length of the longest contiguous
// substring shared by a and b.
func longestCommonSubstring(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	best := 0
	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			if ra[i-1] == rb[j-1] {
				curr[j] = prev[j-1] + 1
				if curr[j] > best {
					best = curr[j]
				}
			} else {
				curr[j] = 0
			}
		}
		prev, curr = curr, prev
	}
	return best
}

// AreInterestsRelated reports whether two interest labels are related, either
// by containment or by belonging to the same synonym category.
func AreInterestsRelated(a, b string) bool {
	a, b = normalize(a), normalize(b)
	if a == "" || b == "" {
		return false
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return true
	}

	ta, tb := strings.Fields(a), strings.Fields(b)
	for key, synonyms := range interestSynonyms {
		if inCategory(ta, key, synonyms) && inCategory(tb, key, synonyms) {
			return true
		}
	}
	return false
}

func inCategory(termTokens []string, key string, synonyms []string) bool {
	if containsPhrase(termTokens, key) {
		return true
	}
	for _, syn := range synonyms {
		if containsPhrase(termTokens, syn) {
			return true
		}
	}
	return false
}

// containsPhrase matches phrase as a contiguous token sequence of term. Phrase
// tokens of four or more letters also match as a prefix so inflected forms
// ("ekologjia") still land in their category; short tokens ("it") must match
// exactly.
func containsPhrase(termTokens []string, phrase string) bool {
	pt := strings.Fields(phrase)
	if len(pt) == 0 || len(pt) > len(termTokens) {
		return false
	}
	for i := 0; i+len(pt) <= len(termTokens); i++ {
		ok := true
		for k, p := range pt {
			t := termTokens[i+k]
			if t == p {
				continue
			}
			if utf8.RuneCountInString(p) >= minSynonymPrefixLen && strings.HasPrefix(t, p) {
				continue
			}
			ok = false
			break
		}
		if ok {
			return true
		}
	}
	return false
}
