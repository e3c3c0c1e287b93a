package query

// Listing queries expose description_lower, price, code and price_group
// columns so they can share these clauses.

func direction(ascending bool) string {
	if ascending {
		return "ASC"
	}
	return "DESC"
}

// OrderClause orders a listing by key. Ties fall back to the item code so
// pages do not overlap.
func OrderClause(key SortKey, ascending bool) string {
	dir := direction(ascending)
	switch key {
	case SortByPrice:
		return " ORDER BY price " + dir + ", description_lower ASC, code ASC"
	default:
		return " ORDER BY description_lower " + dir + ", code " + dir
	}
}

// PriceGroupOrderClause orders by bucket, then price in the requested
// direction, then description. Buckets are always ascending.
func PriceGroupOrderClause(ascending bool) string {
	return " ORDER BY price_group ASC, price " + direction(ascending) + ", description_lower ASC, code ASC"
}
