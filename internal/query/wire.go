package query

import "github.com/shopspring/decimal"

// PriceGroupSpec is the wire form of a price predicate:
// {"op":"<","value":2} or {"op":"range","lo":2,"hi":4.99}.
type PriceGroupSpec struct {
	Op    string          `json:"op"`
	Value decimal.Decimal `json:"value"`
	Lo    decimal.Decimal `json:"lo"`
	Hi    decimal.Decimal `json:"hi"`
}

// ParsePriceGroupSpecs converts wire predicates, keeping their order.
func ParsePriceGroupSpecs(specs []PriceGroupSpec) (PriceGroups, error) {
	groups := make([]PriceGroup, 0, len(specs))
	for _, s := range specs {
		a, b := s.Value, decimal.Zero
		if s.Op == "range" {
			a, b = s.Lo, s.Hi
		}
		g, err := ParsePriceGroup(s.Op, a, b)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return NewPriceGroups(groups...)
}
