package dto

type CategoryFilters struct {
	NamePrefix string
	Page       int
	PageSize   int
}
