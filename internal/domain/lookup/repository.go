package lookup

import "context"

type LookupRepository interface {
	// GetActiveValuesByCategory returns the values of active lookups in the
	// given category, in insertion order.
	GetActiveValuesByCategory(ctx context.Context, category string) ([]string, error)
}
