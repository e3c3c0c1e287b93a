package query

import (
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-catalog-service/pkg/apperr"
	"github.com/shopspring/decimal"
)

// PriceGroup is one price bucket predicate. The set of implementations is
// closed: LessThan, LessOrEqual, GreaterThan, GreaterOrEqual, Equal and Range.
type PriceGroup interface {
	Match(price decimal.Decimal) bool
	String() string
	// condition renders the predicate over column, appending bind values to args.
	condition(column string, args *[]any) string
}

type LessThan struct{ Value decimal.Decimal }
type LessOrEqual struct{ Value decimal.Decimal }
type GreaterThan struct{ Value decimal.Decimal }
type GreaterOrEqual struct{ Value decimal.Decimal }
type Equal struct{ Value decimal.Decimal }

// Range matches Lo <= price <= Hi.
type Range struct{ Lo, Hi decimal.Decimal }

func (p LessThan) Match(price decimal.Decimal) bool       { return price.LessThan(p.Value) }
func (p LessOrEqual) Match(price decimal.Decimal) bool    { return price.LessThanOrEqual(p.Value) }
func (p GreaterThan) Match(price decimal.Decimal) bool    { return price.GreaterThan(p.Value) }
func (p GreaterOrEqual) Match(price decimal.Decimal) bool { return price.GreaterThanOrEqual(p.Value) }
func (p Equal) Match(price decimal.Decimal) bool          { return price.Equal(p.Value) }
func (p Range) Match(price decimal.Decimal) bool {
	return price.GreaterThanOrEqual(p.Lo) && price.LessThanOrEqual(p.Hi)
}

func (p LessThan) String() string       { return "<" + p.Value.String() }
func (p LessOrEqual) String() string    { return "<=" + p.Value.String() }
func (p GreaterThan) String() string    { return ">" + p.Value.String() }
func (p GreaterOrEqual) String() string { return ">=" + p.Value.String() }
func (p Equal) String() string          { return "==" + p.Value.String() }
func (p Range) String() string          { return "range(" + p.Lo.String() + "," + p.Hi.String() + ")" }

func (p LessThan) condition(col string, args *[]any) string       { return binary(col, "<", p.Value, args) }
func (p LessOrEqual) condition(col string, args *[]any) string    { return binary(col, "<=", p.Value, args) }
func (p GreaterThan) condition(col string, args *[]any) string    { return binary(col, ">", p.Value, args) }
func (p GreaterOrEqual) condition(col string, args *[]any) string { return binary(col, ">=", p.Value, args) }
func (p Equal) condition(col string, args *[]any) string          { return binary(col, "=", p.Value, args) }
func (p Range) condition(col string, args *[]any) string {
	*args = append(*args, p.Lo, p.Hi)
	return col + " BETWEEN ? AND ?"
}

func binary(col, op string, v decimal.Decimal, args *[]any) string {
	*args = append(*args, v)
	return col + " " + op + " ?"
}

// ParsePriceGroup converts the wire form of a predicate. b is only read for
// "range".
func ParsePriceGroup(op string, a, b decimal.Decimal) (PriceGroup, error) {
	switch op {
	case "<":
		return LessThan{Value: a}, nil
	case "<=":
		return LessOrEqual{Value: a}, nil
	case ">":
		return GreaterThan{Value: a}, nil
	case ">=":
		return GreaterOrEqual{Value: a}, nil
	case "==":
		return Equal{Value: a}, nil
	case "range":
		if a.GreaterThan(b) {
			return nil, apperr.InvalidPriceGroup(fmt.Sprintf("range(%s,%s)", a, b))
		}
		return Range{Lo: a, Hi: b}, nil
	}
	return nil, apperr.InvalidPriceGroup(op)
}

// PriceGroups is an ordered predicate list. An item's bucket is the index of
// the first predicate its price satisfies.
type PriceGroups []PriceGroup

func NewPriceGroups(groups ...PriceGroup) (PriceGroups, error) {
	if len(groups) == 0 {
		return nil, apperr.InvalidPriceGroup("no price groups")
	}
	for i, g := range groups {
		if g == nil {
			return nil, apperr.InvalidPriceGroup(fmt.Sprintf("group %d is empty", i))
		}
		if r, ok := g.(Range); ok && r.Lo.GreaterThan(r.Hi) {
			return nil, apperr.InvalidPriceGroup(r.String())
		}
	}
	return PriceGroups(groups), nil
}

// Bucket returns the bucket index for price, or -1 when no predicate matches.
func (g PriceGroups) Bucket(price decimal.Decimal) int {
	for i, p := range g {
		if p.Match(price) {
			return i
		}
	}
	return -1
}

// CaseSQL renders the bucket computation as a CASE expression with ?
// placeholders. Unmatched rows get -1.
func (g PriceGroups) CaseSQL(column string, args *[]any) string {
	var b strings.Builder
	b.WriteString("CASE")
	for i, p := range g {
		fmt.Fprintf(&b, " WHEN %s THEN %d", p.condition(column, args), i)
	}
	b.WriteString(" ELSE -1 END")
	return b.String()
}

func (g PriceGroups) String() string {
	parts := make([]string, len(g))
	for i, p := range g {
		parts[i] = p.String()
	}
	return strings.Join(parts, ";")
}
