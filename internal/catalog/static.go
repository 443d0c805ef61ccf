// internal/catalog/static.go
package catalog

import (
	"context"

	"volunteer-matching/internal/common/config"
	"volunteer-matching/internal/matching"
)

// StaticCatalog serves a fixed, in-memory list.
type StaticCatalog struct {
	opportunities []matching.Opportunity
	source        string
}

func NewStatic(opps []matching.Opportunity) *StaticCatalog {
	cp := make([]matching.Opportunity, len(opps))
	copy(cp, opps)
	return &StaticCatalog{opportunities: cp, source: config.CatalogStatic}
}

func (c *StaticCatalog) List(_ context.Context) ([]matching.Opportunity, error) {
	out := make([]matching.Opportunity, len(c.opportunities))
	copy(out, c.opportunities)
	observeSize(c.Source(), len(out))
	return out, nil
}

func (c *StaticCatalog) Get(_ context.Context, id string) (*matching.Opportunity, error) {
	return findByID(c.opportunities, id)
}

func (c *StaticCatalog) Source() string { return c.source }

// DefaultOpportunities is the built-in catalog used when no other source is
// configured.
func DefaultOpportunities() []matching.Opportunity {
	return []matching.Opportunity{
		{
			ID:                "opp-digital-literacy",
			Title:             "Mësues vullnetar për aftësi digjitale",
			Organization:      "Qendra Rinore Tirana",
			Description:       "Mësim bazë kompjuteri për të rinjtë e lagjes.",
			RequiredSkills:    []string{"Programim", "Mësimdhënie"},
			RecommendedSkills: []string{"Komunikim"},
			Interests:         []string{"Teknologji", "Edukim"},
			Location:          "Tiranë",
			TimeRequirements:  "Ditët e javës, pasdite",
		},
		{
			ID:                "opp-park-cleanup",
			Title:             "Pastrimi i Parkut të Liqenit",
			Organization:      "Shoqata Eko Shqipëria",
			Description:       "Aksion pastrimi dhe mbjellje pemësh.",
			RequiredSkills:    []string{"Punë në grup"},
			RecommendedSkills: []string{"Kopshtari"},
			Interests:         []string{"Mjedis", "Komunitet"},
			Location:          "Tiranë",
			TimeRequirements:  "Fundjavë, mëngjes",
		},
		{
			ID:                "opp-animal-shelter",
			Title:             "Kujdestar në strehëzën e kafshëve",
			Organization:      "Strehëza Durrës",
			Description:       "Ushqim dhe kujdes ditor për qentë e braktisur.",
			RequiredSkills:    []string{"Kujdes për kafshët"},
			RecommendedSkills: []string{"Ndihmë e parë"},
			Interests:         []string{"Kafshë"},
			Location:          "Durrës",
			TimeRequirements:  "Fleksibël",
		},
		{
			ID:                "opp-elderly-visits",
			Title:             "Vizita te të moshuarit",
			Organization:      "Kryqi i Kuq Shqiptar",
			Description:       "Shoqërim dhe ndihmë për pensionistët që jetojnë vetëm.",
			RequiredSkills:    []string{"Komunikim", "Empati"},
			RecommendedSkills: []string{"Ndihmë e parë"},
			Interests:         []string{"Të moshuarit", "Shëndetësi"},
			Location:          "Shkodër, Lezhë",
			TimeRequirements:  "E hënë deri të premte, mëngjes",
		},
		{
			ID:                "opp-youth-football",
			Title:             "Trajner futbolli për fëmijë",
			Organization:      "Klubi Sportiv Vlora",
			Description:       "Stërvitje javore për fëmijët 8 deri 12 vjeç.",
			RequiredSkills:    []string{"Trajnim sportiv"},
			RecommendedSkills: []string{"Punë me fëmijë"},
			Interests:         []string{"Sport", "Fëmijë"},
			Location:          "Vlorë",
			TimeRequirements:  "Mbrëmje, e shtunë",
		},
		{
			ID:                "opp-mural",
			Title:             "Pikturë murale në shkollë",
			Organization:      "Art për Komunitetin",
			Description:       "Dekorim i oborrit të shkollës me nxënësit.",
			SkillsRequired:    "Pikturë, Dizajn grafik",
			Interests:         []string{"Art", "Edukim"},
			Location:          "Korçë",
			TimeRequirements:  "Fundjavë",
		},
		{
			ID:                "opp-online-mentoring",
			Title:             "Mentorim online për studentët",
			Organization:      "Rrjeti i Mentorëve",
			Description:       "Seanca video për orientim në karrierë.",
			RequiredSkills:    []string{"Mentorim", "Komunikim"},
			RecommendedSkills: []string{"Anglisht"},
			Interests:         []string{"Edukim", "Rini"},
			Location:          "Online, në të gjithë Shqipërinë",
			TimeRequirements:  "Orar fleksibël, mbrëmje",
		},
		{
			ID:                "opp-food-bank",
			Title:             "Shpërndarje ushqimesh",
			Organization:      "Banka e Ushqimit Elbasan",
			Description:       "Paketim dhe shpërndarje për familjet në nevojë.",
			RequiredSkills:    []string{"Logjistikë", "Drejtim automjeti"},
			Interests:         []string{"Komunitet"},
			Location:          "Elbasan",
			TimeRequirements:  "Ditë jave, orarit të punës",
		},
	}
}
