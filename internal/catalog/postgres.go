// internal/catalog/postgres.go
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"volunteer-matching/internal/common/config"
	"volunteer-matching/internal/common/logger"
	"volunteer-matching/internal/matching"
)

const opportunityColumns = `
	SELECT id, title, COALESCE(organization, ''), COALESCE(description, ''),
	       skills_required, recommended_skills, interests,
	       COALESCE(location, ''), COALESCE(time_requirements, '')
	FROM opportunities`

// PostgresCatalog reads active rows of the opportunities table. The skill and
// interest columns hold JSON arrays; a legacy comma separated skills_required
// value is kept as the raw string and parsed by the matcher.
type PostgresCatalog struct {
	db     *sql.DB
	logger logger.Logger
}

func NewPostgres(db *sql.DB, log logger.Logger) *PostgresCatalog {
	return &PostgresCatalog{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"catalog": config.CatalogPostgres}),
	}
}

func (c *PostgresCatalog) List(ctx context.Context) ([]matching.Opportunity, error) {
	rows, err := c.db.QueryContext(ctx, opportunityColumns+`
	WHERE active = true
	ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("%w: query opportunities: %v", ErrUnavailable, err)
	}
	defer rows.Close()

	var opps []matching.Opportunity
	for rows.Next() {
		o, err := c.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan opportunity: %v", ErrUnavailable, err)
		}
		opps = append(opps, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate opportunities: %v", ErrUnavailable, err)
	}

	observeSize(c.Source(), len(opps))
	return opps, nil
}

func (c *PostgresCatalog) Get(ctx context.Context, id string) (*matching.Opportunity, error) {
	row := c.db.QueryRowContext(ctx, opportunityColumns+`
	WHERE id = $1`, id)

	o, err := c.scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: load opportunity %s: %v", ErrUnavailable, id, err)
	}
	return &o, nil
}

func (c *PostgresCatalog) Source() string { return config.CatalogPostgres }

type scanner interface {
	Scan(dest ...interface{}) error
}

func (c *PostgresCatalog) scan(s scanner) (matching.Opportunity, error) {
	var o matching.Opportunity
	var required, recommended, interests []byte
	if err := s.Scan(&o.ID, &o.Title, &o.Organization, &o.Description,
		&required, &recommended, &interests, &o.Location, &o.TimeRequirements); err != nil {
		return o, err
	}

	if list, ok := decodeList(required); ok {
		o.RequiredSkills = list
	} else {
		o.SkillsRequired = string(required)
	}
	o.RecommendedSkills = c.decodeOrWarn(o.ID, "recommended_skills", recommended)
	o.Interests = c.decodeOrWarn(o.ID, "interests", interests)
	return o, nil
}

func (c *PostgresCatalog) decodeOrWarn(id, column string, raw []byte) []string {
	list, ok := decodeList(raw)
	if !ok {
		c.logger.Warn("ignoring malformed list column", map[string]interface{}{
			"opportunityId": id,
			"column":        column,
		})
	}
	return list
}

// decodeList parses a JSON string array. NULL and empty columns decode to nil.
func decodeList(raw []byte) ([]string, bool) {
	if len(raw) == 0 {
		return nil, true
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, false
	}
	return list, true
}
