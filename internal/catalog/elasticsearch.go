// internal/catalog/elasticsearch.go
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"volunteer-matching/internal/common/config"
	"volunteer-matching/internal/common/logger"
	"volunteer-matching/internal/matching"

	"github.com/elastic/go-elasticsearch/v8"
)

const maxCatalogHits = 1000

// ElasticsearchCatalog reads opportunities from a search index. Documents
// use the same field names as the JSON encoding of matching.Opportunity.
type ElasticsearchCatalog struct {
	client *elasticsearch.Client
	index  string
	logger logger.Logger
}

func NewElasticsearch(client *elasticsearch.Client, index string, log logger.Logger) *ElasticsearchCatalog {
	if index == "" {
		index = "opportunities"
	}
	return &ElasticsearchCatalog{
		client: client,
		index:  index,
		logger: log.WithFields(map[string]interface{}{"catalog": config.CatalogElasticsearch, "index": index}),
	}
}

type searchResponse struct {
	Hits struct {
		Hits []hit `json:"hits"`
	} `json:"hits"`
}

type hit struct {
	ID     string          `json:"_id"`
	Found  *bool           `json:"found,omitempty"`
	Source json.RawMessage `json:"_source"`
}

func (c *ElasticsearchCatalog) List(ctx context.Context) ([]matching.Opportunity, error) {
	query := `{"query":{"match_all":{}},"sort":[{"_doc":"asc"}]}`

	res, err := c.client.Search(
		c.client.Search.WithContext(ctx),
		c.client.Search.WithIndex(c.index),
		c.client.Search.WithBody(strings.NewReader(query)),
		c.client.Search.WithSize(maxCatalogHits),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: search %s: %v", ErrUnavailable, c.index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("%w: search %s: %s", ErrUnavailable, c.index, res.Status())
	}

	var body searchResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decode search response: %v", ErrUnavailable, err)
	}

	opps := make([]matching.Opportunity, 0, len(body.Hits.Hits))
	for _, h := range body.Hits.Hits {
		o, err := h.opportunity()
		if err != nil {
			c.logger.Warn("skipping malformed opportunity document", map[string]interface{}{
				"docId": h.ID,
				"error": err,
			})
			continue
		}
		opps = append(opps, o)
	}

	observeSize(c.Source(), len(opps))
	return opps, nil
}

func (c *ElasticsearchCatalog) Get(ctx context.Context, id string) (*matching.Opportunity, error) {
	res, err := c.client.Get(c.index, id, c.client.Get.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("%w: get %s/%s: %v", ErrUnavailable, c.index, id, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if res.IsError() {
		return nil, fmt.Errorf("%w: get %s/%s: %s", ErrUnavailable, c.index, id, res.Status())
	}

	var h hit
	if err := json.NewDecoder(res.Body).Decode(&h); err != nil {
		return nil, fmt.Errorf("%w: decode document: %v", ErrUnavailable, err)
	}
	if h.Found != nil && !*h.Found {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	o, err := h.opportunity()
	if err != nil {
		return nil, fmt.Errorf("%w: decode opportunity %s: %v", ErrUnavailable, id, err)
	}
	return &o, nil
}

func (c *ElasticsearchCatalog) Source() string { return config.CatalogElasticsearch }

func (h hit) opportunity() (matching.Opportunity, error) {
	var o matching.Opportunity
	if err := json.Unmarshal(h.Source, &o); err != nil {
		return o, err
	}
	if o.ID == "" {
		o.ID = h.ID
	}
	return o, nil
}
