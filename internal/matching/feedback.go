// internal/matching/feedback.go
package matching

import (
	"math"
	"strings"
)

const (
	positiveRatingBonus   = 2
	negativeRatingPenalty = -1
	neutralRating         = 3
)

var positiveWords = []string{
	"mirë", "shkëlqyer", "fantastike", "e mrekullueshme", "përvojë pozitive",
	"e dobishme", "efektive", "e kënaqshme", "e vlefshme", "konstruktive",
	"sukses", "produktive", "frytdhënëse", "entuziazëm", "kënaqësi",
}

var negativeWords = []string{
	"keq", "jo e dobishme", "zhgënjyer", "problem", "vështirësi",
	"konfuze", "e pakënaqshme", "jo efektive", "humbje kohe", "e paqartë",
	"jo profesionale", "jo e organizuar", "jo e mjaftueshme", "dobët",
}

type topic struct {
	name     string
	keywords []string
}

// Ordered so Topics come back stable.
var feedbackTopics = []topic{
	{"komunikim", []string{"komunikim", "informacion", "kontakt", "bisedë"}},
	{"organizim", []string{"organizim", "planifikim", "strukturë", "koordinim"}},
	{"trajnim", []string{"trajnim", "mësim", "udhëzim", "demonstrim"}},
	{"mbështetje", []string{"mbështetje", "ndihmë", "asistencë", "udhëheqje"}},
	{"angazhim", []string{"angazhim", "pjesëmarrje", "përfshirje", "motivim"}},
	{"koha", []string{"kohë", "orar", "afat", "vonesa", "përpikëri"}},
	{"burime", []string{"burime", "materiale", "pajisje", "mjete"}},
}

// CommentAnalysis is the result of AnalyzeComment.
type CommentAnalysis struct {
	Sentiment float64  `json:"sentiment"`
	Topics    []string `json:"topics"`
}

// AnalyzeComment derives a sentiment in [-1,1] and the discussed topics from
// a free-text feedback comment.
func AnalyzeComment(comment string) CommentAnalysis {
	text := normalize(comment)
	if text == "" {
		return CommentAnalysis{Sentiment: 0, Topics: []string{}}
	}

	pos := countPresent(text, positiveWords)
	neg := countPresent(text, negativeWords)

	var sentiment float64
	if pos+neg > 0 {
		sentiment = float64(pos-neg) / float64(pos+neg)
	}

	topics := []string{}
	for _, t := range feedbackTopics {
		if containsAny(text, t.keywords) {
			topics = append(topics, t.name)
		}
	}

	return CommentAnalysis{
		Sentiment: math.Round(sentiment*100) / 100,
		Topics:    topics,
	}
}

// FeedbackAdjustment sums the score shift implied by past ratings on a 1..5
// scale: +2 for each rating above 3 and -1 for each below.
func FeedbackAdjustment(ratings map[string]int) int {
	var adj int
	for _, r := range ratings {
		switch {
		case r > neutralRating:
			adj += positiveRatingBonus
		case r < neutralRating:
			adj += negativeRatingPenalty
		}
	}
	return adj
}

// ApplyFeedback shifts every match score by the volunteer's rating history,
// keyed by the rated opportunity id, and re-sorts. Without ratings the input
// is returned unchanged.
func ApplyFeedback(matches []Match, ratings map[string]int) []Match {
	if len(ratings) == 0 {
		return matches
	}

	adj := FeedbackAdjustment(ratings)
	out := make([]Match, len(matches))
	for i, m := range matches {
		m.OriginalScore = m.Score
		m.FeedbackAdjustment = adj
		m.Score = toScore(float64(m.Score + adj))
		out[i] = m
	}
	sortMatches(out)
	return out
}

func countPresent(text string, words []string) int {
	var n int
	for _, w := range words {
		if strings.Contains(text, w) {
			n++
		}
	}
	return n
}
