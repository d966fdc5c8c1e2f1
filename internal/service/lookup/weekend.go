package lookup

import (
	"context"
	"fmt"

	"github.com/astrahr/payroll-backend-go/internal/domain/lookup"
	"github.com/astrahr/payroll-backend-go/internal/pkg/dateutil"
)

// WeekendResolver reads the configured weekend policy. When no active
// "Weekend" lookups exist, the resolved set is empty and every day counts as
// a working day.
type WeekendResolver struct {
	lookupRepo lookup.LookupRepository
}

func NewWeekendResolver(lookupRepo lookup.LookupRepository) *WeekendResolver {
	return &WeekendResolver{lookupRepo: lookupRepo}
}

func (r *WeekendResolver) Resolve(ctx context.Context) (dateutil.WeekendSet, error) {
	values, err := r.lookupRepo.GetActiveValuesByCategory(ctx, lookup.CategoryWeekend)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve weekend policy: %w", err)
	}
	return dateutil.NewWeekendSet(values), nil
}
