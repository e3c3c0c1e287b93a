package query

import "github.com/fekuna/omnipos-catalog-service/pkg/apperr"

type SortKey string

const (
	SortByDescription SortKey = "description"
	SortByPrice       SortKey = "price"
)

// ParseSortKey accepts only the listing orders the catalog supports.
func ParseSortKey(key string) (SortKey, error) {
	switch SortKey(key) {
	case SortByDescription, SortByPrice:
		return SortKey(key), nil
	}
	return "", apperr.InvalidSortKey(key)
}
