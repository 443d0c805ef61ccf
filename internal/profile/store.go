// internal/profile/store.go
package profile

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"volunteer-matching/internal/common/logger"
	"volunteer-matching/internal/common/metrics"
	"volunteer-matching/internal/matching"

	"github.com/redis/go-redis/v9"
)

const CacheKeyPrefix = "volunteer:profile:"

var (
	ErrNotFound     = errors.New("PROFILE_NOT_FOUND")
	ErrLookupFailed = errors.New("PROFILE_LOOKUP_FAILED")
)

const profileColumns = `
	SELECT id, COALESCE(name, ''), skills, interests, availability,
	       COALESCE(city, ''), COALESCE(location, '')
	FROM volunteers`

// Store loads volunteer profiles from PostgreSQL through a Redis read-through
// cache. The cache is optional; a nil redis client goes straight to the DB.
type Store struct {
	db     *sql.DB
	redis  *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewStore(db *sql.DB, rdb *redis.Client, ttl time.Duration, log logger.Logger) *Store {
	return &Store{
		db:     db,
		redis:  rdb,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "profile-store"}),
	}
}

// Get returns the profile with the given id.
func (s *Store) Get(ctx context.Context, id string) (*matching.Profile, error) {
	if p := s.fromCache(ctx, id); p != nil {
		return p, nil
	}

	row := s.db.QueryRowContext(ctx, profileColumns+`
	WHERE id = $1`, id)

	p, err := s.scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLookupFailed, id, err)
	}

	s.toCache(ctx, p)
	return p, nil
}

// List returns every active volunteer, ordered by id. Used for reverse
// matching; it bypasses the cache.
func (s *Store) List(ctx context.Context) ([]matching.Profile, error) {
	rows, err := s.db.QueryContext(ctx, profileColumns+`
	WHERE active = true
	ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%w: list volunteers: %v", ErrLookupFailed, err)
	}
	defer rows.Close()

	var profiles []matching.Profile
	for rows.Next() {
		p, err := s.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan volunteer: %v", ErrLookupFailed, err)
		}
		profiles = append(profiles, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate volunteers: %v", ErrLookupFailed, err)
	}
	return profiles, nil
}

func (s *Store) fromCache(ctx context.Context, id string) *matching.Profile {
	if s.redis == nil {
		return nil
	}

	val, err := s.redis.Get(ctx, CacheKeyPrefix+id).Result()
	switch {
	case errors.Is(err, redis.Nil):
		metrics.ProfileCacheLookups.WithLabelValues("miss").Inc()
		return nil
	case err != nil:
		metrics.ProfileCacheLookups.WithLabelValues("error").Inc()
		s.logger.Warn("profile cache read failed", map[string]interface{}{
			"userId": id,
			"error":  err,
		})
		return nil
	}

	var p matching.Profile
	if err := json.Unmarshal([]byte(val), &p); err != nil {
		metrics.ProfileCacheLookups.WithLabelValues("error").Inc()
		return nil
	}
	metrics.ProfileCacheLookups.WithLabelValues("hit").Inc()
	return &p
}

func (s *Store) toCache(ctx context.Context, p *matching.Profile) {
	if s.redis == nil {
		return
	}
	data, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, CacheKeyPrefix+p.ID, data, s.ttl).Err(); err != nil {
		s.logger.Warn("profile cache write failed", map[string]interface{}{
			"userId": p.ID,
			"error":  err,
		})
	}
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func (s *Store) scan(row scanner) (*matching.Profile, error) {
	var p matching.Profile
	var skills, interests, availability []byte
	if err := row.Scan(&p.ID, &p.Name, &skills, &interests, &availability, &p.City, &p.Location); err != nil {
		return nil, err
	}

	// malformed columns degrade to "no data" for that category
	if len(skills) > 0 {
		if err := json.Unmarshal(skills, &p.Skills); err != nil {
			p.Skills = nil
		}
	}
	if len(interests) > 0 {
		if err := json.Unmarshal(interests, &p.Interests); err != nil {
			p.Interests = nil
		}
	}
	if len(availability) > 0 {
		if a, err := matching.ParseAvailability(availability); err == nil {
			p.Availability = a
		}
	}
	return &p, nil
}
