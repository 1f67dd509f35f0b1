package query

import "strconv"

// Pagination bounds. Deliberately tight: listing endpoints are capped to
// ten pages of ten records so a caller can never request an unbounded scan.
const (
	MaxPage      = 10
	MaxLimit     = 10
	DefaultPage  = 1
	DefaultLimit = 10
)

// Sortable declares which request-level sort fields an entity accepts and
// the column each maps to. The list is static per entity; computed or
// internal columns are never exposed by accident.
type Sortable struct {
	// Fields maps the wire name of a sort field to its column.
	Fields map[string]string
	// Nullable marks columns that may hold NULL. Listings sorted on such
	// a column skip rows that do not carry it, mirroring an existence
	// filter on the sort key.
	Nullable map[string]bool
}

// Shape is the normalized form of a listing request: a safe sort column,
// a direction, and a bounded pagination window.
type Shape struct {
	SortColumn string
	Descending bool
	// FilterNotNull is set when the listing should exclude rows whose
	// sort column is NULL.
	FilterNotNull bool
	Page          int
	Limit         int
}

// Offset is the number of rows to skip for the shaped window.
func (s Shape) Offset() int {
	return (s.Page - 1) * s.Limit
}

// Shape normalizes raw query parameters against the entity's declared
// sortable fields. Unknown sort fields fall back to creation time,
// anything but the literal "desc" sorts ascending, and out-of-range page
// or limit values fall back to their defaults rather than erroring.
func (s Sortable) Shape(sortBy, orderBy, pageStr, limitStr string) Shape {
	column, ok := s.Fields[sortBy]
	if !ok {
		column = "created_at"
	}

	return Shape{
		SortColumn:    column,
		Descending:    orderBy == "desc",
		FilterNotNull: ok && s.Nullable[column],
		Page:          parseBounded(pageStr, 1, MaxPage, DefaultPage),
		Limit:         parseBounded(limitStr, 1, MaxLimit, DefaultLimit),
	}
}

func parseBounded(raw string, min, max, fallback int) int {
	v, err := strconv.Atoi(raw)
	if err != nil || v < min || v > max {
		return fallback
	}
	return v
}
