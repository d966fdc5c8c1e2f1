package lookup

import "time"

// Lookup is a configuration entry owned by an external master-data module.
// The payroll core only reads them; the "Weekend" category carries weekday
// names flagged as non-working days.
type Lookup struct {
	ID        string
	Category  string
	Value     string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

const CategoryWeekend = "Weekend"
