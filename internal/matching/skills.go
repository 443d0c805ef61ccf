// internal/matching/skills.go
package matching

import "strings"

const (
	requiredSkillsWeight    = 80.0
	recommendedSkillsWeight = 20.0
	partialMatchWeight      = 0.5
)

// ScoreSkills scores the volunteer's skills against an opportunity's required
// and recommended skills. Required skills carry 80 points, recommended 20.
func ScoreSkills(userSkills, required, recommended []string) SkillsResult {
	required = compact(required)
	recommended = compact(recommended)
	user := normalizeAll(userSkills)

	if len(user) == 0 {
		return SkillsResult{
			Score:         0,
			MatchedSkills: []string{},
			MissingSkills: dedupe(required),
		}
	}

	matched := newEvidence()
	missing := newEvidence()

	var full, partial int
	for _, skill := range required {
		switch {
		case containsEither(user, normalize(skill)):
			full++
			matched.add(skill)
		case anyPartial(user, skill):
			partial++
			matched.add(skill)
		default:
			missing.add(skill)
		}
	}

	requiredScore := requiredSkillsWeight
	if len(required) > 0 {
		requiredScore = (float64(full) + partialMatchWeight*float64(partial)) / float64(len(required)) * requiredSkillsWeight
	}

	recommendedScore := recommendedSkillsWeight
	if len(recommended) > 0 {
		var hits int
		for _, skill := range recommended {
			if containsEither(user, normalize(skill)) {
				hits++
				matched.add(skill)
			}
		}
		recommendedScore = float64(hits) / float64(len(recommended)) * recommendedSkillsWeight
	}

	return SkillsResult{
		Score:         clamp(requiredScore + recommendedScore),
		MatchedSkills: matched.list(),
		MissingSkills: missing.list(),
	}
}

// containsEither reports whether any user skill contains skill or is contained
// by it.
func containsEither(user []string, skill string) bool {
	for _, u := range user {
		if strings.Contains(u, skill) || strings.Contains(skill, u) {
			return true
		}
	}
	return false
}

func anyPartial(user []string, skill string) bool {
	for _, u := range user {
		if IsPartialMatch(u, skill) {
			return true
		}
	}
	return false
}

// evidence collects original-case labels, deduplicated case-insensitively,
// in first-seen order.
type evidence struct {
	seen  map[string]struct{}
	items []string
}

func newEvidence() *evidence {
	return &evidence{seen: make(map[string]struct{})}
}

func (e *evidence) add(label string) {
	key := normalize(label)
	if key == "" {
		return
	}
	if _, ok := e.seen[key]; ok {
		return
	}
	e.seen[key] = struct{}{}
	e.items = append(e.items, label)
}

func (e *evidence) list() []string {
	if e.items == nil {
		return []string{}
	}
	return e.items
}

func dedupe(labels []string) []string {
	ev := newEvidence()
	for _, l := range labels {
		ev.add(l)
	}
	return ev.list()
}

// compact drops blank labels.
func compact(labels []string) []string {
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		if strings.TrimSpace(l) != "" {
			out = append(out, l)
		}
	}
	return out
}

// normalizeAll lowercases and trims every label, dropping blanks.
func normalizeAll(labels []string) []string {
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		if n := normalize(l); n != "" {
			out = append(out, n)
		}
	}
	return out
}
