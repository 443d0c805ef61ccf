// internal/catalog/catalog_test.go
package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"volunteer-matching/internal/common/config"
	"volunteer-matching/internal/common/logger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Static / file catalogs
// ==========================

func TestStaticCatalog(t *testing.T) {
	c := NewStatic(DefaultOpportunities())
	ctx := context.Background()

	opps, err := c.List(ctx)
	require.NoError(t, err)
	require.Len(t, opps, len(DefaultOpportunities()))
	assert.Equal(t, "opp-digital-literacy", opps[0].ID)

	// List hands out a copy.
	opps[0].ID = "mutated"
	again, _ := c.List(ctx)
	assert.Equal(t, "opp-digital-literacy", again[0].ID)

	o, err := c.Get(ctx, "opp-mural")
	require.NoError(t, err)
	assert.Equal(t, []string{"Pikturë", "Dizajn grafik"}, o.RequiredSkillList())

	_, err = c.Get(ctx, "missing")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, config.CatalogStatic, c.Source())
}

func TestDefaultOpportunities_UniqueIDs(t *testing.T) {
	seen := map[string]bool{}
	for _, o := range DefaultOpportunities() {
		assert.NotEmpty(t, o.ID)
		assert.False(t, seen[o.ID], "duplicate id %s", o.ID)
		seen[o.ID] = true
	}
}

const yamlCatalog = `
opportunities:
  - id: opp-1
    title: Mësues kompjuteri
    requiredSkills: [Programim, Mësimdhënie]
    recommendedSkills: [Komunikim]
    interests: [Teknologji]
    location: Tiranë
    time_requirements: Ditët e javës
  - id: opp-2
    title: Pastrim plazhi
    skills_required: "Punë në grup; Notim"
    location: Durrës
`

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlCatalog), 0o600))

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, config.CatalogFile, c.Source())
	assert.Equal(t, path, c.Path())

	opps, err := c.List(context.Background())
	require.NoError(t, err)
	require.Len(t, opps, 2)
	assert.Equal(t, []string{"Programim", "Mësimdhënie"}, opps[0].RequiredSkills)
	assert.Equal(t, "Ditët e javës", opps[0].TimeRequirements)
	assert.Equal(t, []string{"Punë në grup", "Notim"}, opps[1].RequiredSkillList())
}

func TestParseYAML_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing id", "opportunities:\n  - title: x\n"},
		{"duplicate id", "opportunities:\n  - id: a\n  - id: a\n"},
		{"not yaml", "opportunities: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseYAML([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestNew(t *testing.T) {
	c, err := New(config.MatchingConfig{CatalogSource: config.CatalogStatic}, Deps{})
	require.NoError(t, err)
	assert.Equal(t, config.CatalogStatic, c.Source())

	_, err = New(config.MatchingConfig{CatalogSource: config.CatalogPostgres}, Deps{})
	assert.Error(t, err)

	_, err = New(config.MatchingConfig{CatalogSource: config.CatalogElasticsearch}, Deps{})
	assert.Error(t, err)

	_, err = New(config.MatchingConfig{CatalogSource: "ftp"}, Deps{})
	assert.Error(t, err)
}

// ==========================
// Postgres catalog
// ==========================

var catalogColumns = []string{
	"id", "title", "organization", "description",
	"skills_required", "recommended_skills", "interests",
	"location", "time_requirements",
}

func TestPostgresCatalog_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows(catalogColumns).
		AddRow("opp-1", "Mësues", "Qendra", "", []byte(`["Programim"]`), []byte(`["Komunikim"]`), []byte(`["Teknologji"]`), "Tiranë", "Pasdite").
		AddRow("opp-2", "Pastrim", "", "", []byte(`Punë në grup, Notim`), nil, []byte(`{broken`), "Durrës", "")

	mock.ExpectQuery(regexp.QuoteMeta("FROM opportunities")).WillReturnRows(rows)

	c := NewPostgres(db, logger.NewTestLogger(t))
	opps, err := c.List(context.Background())
	require.NoError(t, err)
	require.Len(t, opps, 2)

	assert.Equal(t, []string{"Programim"}, opps[0].RequiredSkills)
	assert.Equal(t, []string{"Komunikim"}, opps[0].RecommendedSkills)
	assert.Equal(t, []string{"Teknologji"}, opps[0].Interests)

	// legacy delimited column and a malformed list degrade instead of failing
	assert.Equal(t, []string{"Punë në grup", "Notim"}, opps[1].RequiredSkillList())
	assert.Nil(t, opps[1].Interests)
	assert.Nil(t, opps[1].RecommendedSkills)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCatalog_ListQueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM opportunities").WillReturnError(errors.New("connection refused"))

	_, err = NewPostgres(db, logger.NewTestLogger(t)).List(context.Background())
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestPostgresCatalog_Get(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`WHERE id = \$1`).
		WithArgs("opp-1").
		WillReturnRows(sqlmock.NewRows(catalogColumns).
			AddRow("opp-1", "Mësues", "", "", []byte(`["Programim"]`), nil, nil, "Tiranë", ""))
	mock.ExpectQuery(`WHERE id = \$1`).
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows(catalogColumns))

	c := NewPostgres(db, logger.NewTestLogger(t))

	o, err := c.Get(context.Background(), "opp-1")
	require.NoError(t, err)
	assert.Equal(t, "Tiranë", o.Location)

	_, err = c.Get(context.Background(), "nope")
	assert.True(t, errors.Is(err, ErrNotFound))

	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// Elasticsearch catalog
// ==========================

func newESServer(t *testing.T) *elasticsearch.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/opportunities/_search":
			_, _ = w.Write([]byte(`{"hits":{"hits":[
				{"_id":"es-1","_source":{"title":"Mësues","requiredSkills":["Programim"],"location":"Tiranë"}},
				{"_id":"es-2","_source":"not-an-object"},
				{"_id":"es-3","_source":{"id":"opp-3","title":"Park","interests":["Mjedis"]}}
			]}}`))
		case "/opportunities/_doc/es-1":
			_, _ = w.Write([]byte(`{"_id":"es-1","found":true,"_source":{"title":"Mësues","location":"Tiranë"}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"_id":"x","found":false}`))
		}
	}))
	t.Cleanup(srv.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return client
}

func TestElasticsearchCatalog_List(t *testing.T) {
	c := NewElasticsearch(newESServer(t), "", logger.NewTestLogger(t))

	opps, err := c.List(context.Background())
	require.NoError(t, err)
	require.Len(t, opps, 2)
	assert.Equal(t, "es-1", opps[0].ID)
	assert.Equal(t, []string{"Programim"}, opps[0].RequiredSkills)
	assert.Equal(t, "opp-3", opps[1].ID)
}

func TestElasticsearchCatalog_Get(t *testing.T) {
	c := NewElasticsearch(newESServer(t), "opportunities", logger.NewTestLogger(t))

	o, err := c.Get(context.Background(), "es-1")
	require.NoError(t, err)
	assert.Equal(t, "es-1", o.ID)
	assert.Equal(t, "Tiranë", o.Location)

	_, err = c.Get(context.Background(), "missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestElasticsearchCatalog_Unavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses:    []string{srv.URL},
		DisableRetry: true,
	})
	require.NoError(t, err)

	_, err = NewElasticsearch(client, "opportunities", logger.NewTestLogger(t)).List(context.Background())
	assert.True(t, errors.Is(err, ErrUnavailable))
}
