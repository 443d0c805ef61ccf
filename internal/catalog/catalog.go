// internal/catalog/catalog.go
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"volunteer-matching/internal/common/config"
	"volunteer-matching/internal/common/logger"
	"volunteer-matching/internal/common/metrics"
	"volunteer-matching/internal/matching"

	"github.com/elastic/go-elasticsearch/v8"
)

var (
	ErrNotFound    = errors.New("OPPORTUNITY_NOT_FOUND")
	ErrUnavailable = errors.New("CATALOG_UNAVAILABLE")
)

// Catalog supplies the opportunities a profile is ranked against. List returns
// them in catalog order, which is the tie-break order for ranking.
type Catalog interface {
	List(ctx context.Context) ([]matching.Opportunity, error)
	Get(ctx context.Context, id string) (*matching.Opportunity, error)
	Source() string
}

// Deps carries the backends a catalog source may need.
type Deps struct {
	DB     *sql.DB
	ES     *elasticsearch.Client
	Logger logger.Logger
}

// New builds the catalog selected by cfg.CatalogSource.
func New(cfg config.MatchingConfig, deps Deps) (Catalog, error) {
	log := deps.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	switch cfg.CatalogSource {
	case "", config.CatalogStatic:
		return NewStatic(DefaultOpportunities()), nil
	case config.CatalogFile:
		return LoadFile(cfg.CatalogFile)
	case config.CatalogPostgres:
		if deps.DB == nil {
			return nil, fmt.Errorf("catalog source %q requires a postgres connection", cfg.CatalogSource)
		}
		return NewPostgres(deps.DB, log), nil
	case config.CatalogElasticsearch:
		if deps.ES == nil {
			return nil, fmt.Errorf("catalog source %q requires an elasticsearch client", cfg.CatalogSource)
		}
		return NewElasticsearch(deps.ES, cfg.CatalogIndex, log), nil
	default:
		return nil, fmt.Errorf("unknown catalog source %q", cfg.CatalogSource)
	}
}

func findByID(opps []matching.Opportunity, id string) (*matching.Opportunity, error) {
	for i := range opps {
		if opps[i].ID == id {
			o := opps[i]
			return &o, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}

func observeSize(source string, n int) {
	metrics.CatalogSize.WithLabelValues(source).Set(float64(n))
}
