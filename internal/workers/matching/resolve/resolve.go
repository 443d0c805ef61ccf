// internal/workers/matching/resolve/resolve.go
package resolve

import (
	"context"
	"errors"

	"volunteer-matching/internal/catalog"
	apperrors "volunteer-matching/internal/common/errors"
	"volunteer-matching/internal/matching"
	"volunteer-matching/internal/profile"
)

// ProfileGetter is satisfied by *profile.Store.
type ProfileGetter interface {
	Get(ctx context.Context, id string) (*matching.Profile, error)
}

// Profile returns the inline profile when the process carries one, else loads
// it by userID. Errors are StandardErrors ready for the ErrorHandler.
func Profile(ctx context.Context, store ProfileGetter, userID string, inline *matching.Profile) (*matching.Profile, error) {
	if inline != nil {
		if inline.ID == "" {
			inline.ID = userID
		}
		return inline, nil
	}
	if userID == "" {
		return nil, apperrors.NewInvalidInputError("userId or profile is required", nil)
	}
	if store == nil {
		return nil, apperrors.NewProfileLookupFailedError(userID, errors.New("no profile store configured"))
	}

	p, err := store.Get(ctx, userID)
	if errors.Is(err, profile.ErrNotFound) {
		return nil, apperrors.NewProfileNotFoundError(userID, err)
	}
	if err != nil {
		return nil, apperrors.NewProfileLookupFailedError(userID, err)
	}
	return p, nil
}

// Opportunity returns the inline opportunity or looks it up in the catalog.
func Opportunity(ctx context.Context, cat catalog.Catalog, id string, inline *matching.Opportunity) (*matching.Opportunity, error) {
	if inline != nil {
		if inline.ID == "" {
			inline.ID = id
		}
		return inline, nil
	}
	if id == "" {
		return nil, apperrors.NewInvalidInputError("opportunityId or opportunity is required", nil)
	}

	o, err := cat.Get(ctx, id)
	if errors.Is(err, catalog.ErrNotFound) {
		return nil, apperrors.NewOpportunityNotFoundError(id, err)
	}
	if err != nil {
		return nil, apperrors.NewCatalogUnavailableError(cat.Source(), err)
	}
	return o, nil
}

// Catalog lists every opportunity.
func Catalog(ctx context.Context, cat catalog.Catalog) ([]matching.Opportunity, error) {
	opps, err := cat.List(ctx)
	if err != nil {
		return nil, apperrors.NewCatalogUnavailableError(cat.Source(), err)
	}
	return opps, nil
}
