// internal/matching/models.go
package matching

import (
	"encoding/json"
	"strings"
)

// Availability holds the volunteer's weekly availability flags.
type Availability struct {
	Weekdays   bool `json:"weekdays" yaml:"weekdays"`
	Weekends   bool `json:"weekends" yaml:"weekends"`
	Mornings   bool `json:"mornings" yaml:"mornings"`
	Afternoons bool `json:"afternoons" yaml:"afternoons"`
	Evenings   bool `json:"evenings" yaml:"evenings"`
}

// ParseAvailability decodes a JSON availability object. An object without
// keys, or null, means nothing was stated and yields nil; an object with
// every flag false is a volunteer who is not available at all.
func ParseAvailability(raw []byte) (*Availability, error) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, nil
	}
	var a Availability
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Profile is the volunteer side of a match. Every field is optional.
type Profile struct {
	ID           string        `json:"id,omitempty" yaml:"id"`
	Name         string        `json:"name,omitempty" yaml:"name"`
	Skills       []string      `json:"skills,omitempty" yaml:"skills"`
	Interests    []string      `json:"interests,omitempty" yaml:"interests"`
	Availability *Availability `json:"availability,omitempty" yaml:"availability"`
	City         string        `json:"city,omitempty" yaml:"city"`
	Location     string        `json:"location,omitempty" yaml:"location"`
}

// UnmarshalJSON decodes availability through ParseAvailability so that
// "availability": {} reads the same as a missing field.
func (p *Profile) UnmarshalJSON(data []byte) error {
	type plain Profile
	aux := struct {
		*plain
		Availability json.RawMessage `json:"availability,omitempty"`
	}{plain: (*plain)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	p.Availability = nil
	if len(aux.Availability) == 0 {
		return nil
	}
	avail, err := ParseAvailability(aux.Availability)
	if err != nil {
		return err
	}
	p.Availability = avail
	return nil
}

// PreferredLocation returns the city, falling back to the free-text location.
func (p *Profile) PreferredLocation() string {
	if strings.TrimSpace(p.City) != "" {
		return p.City
	}
	return p.Location
}

// Opportunity is one catalog entry.
type Opportunity struct {
	ID                string   `json:"id" yaml:"id"`
	Title             string   `json:"title,omitempty" yaml:"title"`
	Organization      string   `json:"organization,omitempty" yaml:"organization"`
	Description       string   `json:"description,omitempty" yaml:"description"`
	RequiredSkills    []string `json:"requiredSkills,omitempty" yaml:"requiredSkills"`
	SkillsRequired    string   `json:"skills_required,omitempty" yaml:"skills_required"`
	RecommendedSkills []string `json:"recommendedSkills,omitempty" yaml:"recommendedSkills"`
	Interests         []string `json:"interests,omitempty" yaml:"interests"`
	Location          string   `json:"location,omitempty" yaml:"location"`
	TimeRequirements  string   `json:"time_requirements,omitempty" yaml:"time_requirements"`
}

// RequiredSkillList returns RequiredSkills, or the parsed SkillsRequired string
// when the list is absent.
func (o *Opportunity) RequiredSkillList() []string {
	if len(o.RequiredSkills) > 0 {
		return o.RequiredSkills
	}
	if strings.TrimSpace(o.SkillsRequired) == "" {
		return nil
	}
	parts := strings.FieldsFunc(o.SkillsRequired, func(r rune) bool {
		return r == ',' || r == ';'
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// MatchDetails is the per-category breakdown of a Match.
type MatchDetails struct {
	SkillScore        int `json:"skillScore"`
	InterestScore     int `json:"interestScore"`
	AvailabilityScore int `json:"availabilityScore"`
	LocationScore     int `json:"locationScore"`
}

// Match is the scored pairing of a profile and an opportunity.
type Match struct {
	OpportunityID     string       `json:"opportunityId"`
	Score             int          `json:"score"`
	MatchedSkills     []string     `json:"matchedSkills"`
	MissingSkills     []string     `json:"missingSkills"`
	MatchingInterests []string     `json:"matchingInterests"`
	Details           MatchDetails `json:"details"`
	Opportunity       *Opportunity `json:"opportunity,omitempty"`

	// Set by ApplyFeedback.
	OriginalScore      int `json:"originalScore,omitempty"`
	FeedbackAdjustment int `json:"feedbackAdjustment,omitempty"`
}

// SkillsResult is returned by ScoreSkills.
type SkillsResult struct {
	Score         float64
	MatchedSkills []string
	MissingSkills []string
}

// InterestsResult is returned by ScoreInterests.
type InterestsResult struct {
	Score             float64
	MatchingInterests []string
}

// VolunteerMatch ranks a volunteer against a single opportunity.
type VolunteerMatch struct {
	VolunteerID       string       `json:"volunteerId"`
	Name              string       `json:"name,omitempty"`
	Score             int          `json:"score"`
	MatchedSkills     []string     `json:"matchedSkills"`
	MissingSkills     []string     `json:"missingSkills"`
	MatchingInterests []string     `json:"matchingInterests"`
	Details           MatchDetails `json:"details"`
}
