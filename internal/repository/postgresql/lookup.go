package postgresql

import (
	"context"
	"fmt"

	"github.com/astrahr/payroll-backend-go/internal/domain/lookup"
	"github.com/astrahr/payroll-backend-go/internal/pkg/database"
)

type lookupRepositoryImpl struct {
	db *database.DB
}

func NewLookupRepository(db *database.DB) lookup.LookupRepository {
	return &lookupRepositoryImpl{db: db}
}

// GetActiveValuesByCategory implements lookup.LookupRepository.
func (l *lookupRepositoryImpl) GetActiveValuesByCategory(ctx context.Context, category string) ([]string, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT value
		FROM lookups
		WHERE category = $1 AND is_active = true
		ORDER BY created_at
	`

	rows, err := q.Query(ctx, query, category)
	if err != nil {
		return nil, fmt.Errorf("failed to list lookups for category %s: %w", category, err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, fmt.Errorf("failed to scan lookup value: %w", err)
		}
		values = append(values, value)
	}

	return values, nil
}
