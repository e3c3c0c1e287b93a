package reservation

import "github.com/fekuna/omnipos-catalog-service/internal/model"

// Allowance is how many units a basket line may hold when it wants desired
// units, the stock has stockCount and other lines already hold otherReserved.
// Other lines are never reduced, so the result is what is left over, capped
// at desired and never negative.
func Allowance(stockCount, otherReserved, desired int) int {
	return max(0, min(desired, stockCount-otherReserved))
}

// TrimPlan returns the reservations that must shrink so their sum fits in
// stockCount. reservations must be ordered newest first; the newest ones give
// up units first. Returned entries carry their new Count.
func TrimPlan(stockCount int, reservations []model.Reservation) []model.Reservation {
	total := 0
	for _, r := range reservations {
		total += r.Count
	}
	excess := total - max(stockCount, 0)

	var changed []model.Reservation
	for _, r := range reservations {
		if excess <= 0 {
			break
		}
		if r.Count == 0 {
			continue
		}
		cut := min(r.Count, excess)
		r.Count -= cut
		excess -= cut
		changed = append(changed, r)
	}
	return changed
}
