// internal/matching/availability.go
package matching

import "strings"

const (
	noAvailabilityScore = 50.0
	noScheduleScore     = 100.0
	availabilityBase    = 50.0
	flexibleBonus       = 15.0
)

var (
	weekdayKeywords   = []string{"ditët e punës", "orarit të punës", "e hënë", "e martë", "e mërkurë", "e enjte", "e premte"}
	weekendKeywords   = []string{"fundjavë", "e shtunë", "e diel"}
	afternoonKeywords = []string{"pasdite", "14:00", "15:00"}
	eveningKeywords   = []string{"mbrëmje", "19:00", "20:00"}
	flexibleKeywords  = []string{"fleksibël", "sipas nevojës"}
)

// ScoreAvailability scans a free-text schedule for weekday, weekend,
// time-of-day and flexibility signals and adjusts a base of 50 by the
// volunteer's availability flags. Only a nil availability is neutral.
func ScoreAvailability(avail *Availability, timeRequirements string) float64 {
	if avail == nil {
		return noAvailabilityScore
	}
	text := normalize(timeRequirements)
	if text == "" {
		return noScheduleScore
	}

	score := availabilityBase
	if containsAny(text, weekdayKeywords) {
		score += adjust(avail.Weekdays, 20, -10)
	}
	if containsAny(text, weekendKeywords) {
		score += adjust(avail.Weekends, 20, -10)
	}
	if mentionsMorning(text) {
		score += adjust(avail.Mornings, 10, -5)
	}
	if containsAny(text, afternoonKeywords) {
		score += adjust(avail.Afternoons, 10, -5)
	}
	if containsAny(text, eveningKeywords) {
		score += adjust(avail.Evenings, 10, -5)
	}
	if containsAny(text, flexibleKeywords) {
		score += flexibleBonus
	}
	return clamp(score)
}

// mentionsMorning treats "9:00" as a morning marker unless it is part of "19:00".
func mentionsMorning(text string) bool {
	if strings.Contains(text, "mëngjes") {
		return true
	}
	return strings.Contains(text, "9:00") && !strings.Contains(text, "19:00")
}

func adjust(flag bool, bonus, penalty float64) float64 {
	if flag {
		return bonus
	}
	return penalty
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
