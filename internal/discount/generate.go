package discount

import (
	"strings"

	"github.com/pupbiru/humanitix-auto-codes/internal/models"
)

// AutoCodePrefix marks a discount record as machine-managed. Records whose
// code carries this prefix are regenerated on every run; all others are
// operator-authored and passed through untouched.
const AutoCodePrefix = "[AUTO] "

const autoDiscountQuantity = 1000

// Generate derives one auto-discount per non-empty combination of the given
// ticket types: 2^N - 1 descriptors, ordered by increasing combination size
// and, within a size, by the input order of the ticket types. Each descriptor
// grants a 100%-off code redeemable when one of each ticket type in its
// combination is purchased together.
func Generate(tickets []models.TicketType) []models.AutoDiscount {
	var out []models.AutoDiscount
	for size := 1; size <= len(tickets); size++ {
		combinations(len(tickets), size, func(indexes []int) {
			names := make([]string, len(indexes))
			ids := make([]string, len(indexes))
			for i, idx := range indexes {
				names[i] = tickets[idx].Name
				ids[i] = tickets[idx].ID
			}
			out = append(out, autoDiscount(strings.Join(names, " & "), ids))
		})
	}
	return out
}

// ManualDiscounts filters an event's stored discounts down to the
// operator-authored ones, preserving storage order.
func ManualDiscounts(records []models.AutoDiscount) []models.AutoDiscount {
	out := make([]models.AutoDiscount, 0, len(records))
	for _, rec := range records {
		if !strings.HasPrefix(rec.Code, AutoCodePrefix) {
			out = append(out, rec)
		}
	}
	return out
}

func autoDiscount(label string, ids []string) models.AutoDiscount {
	purchased := make([]models.PurchasedLine, len(ids))
	for i, id := range ids {
		purchased[i] = models.PurchasedLine{TicketID: id, Quantity: 1}
	}
	return models.AutoDiscount{
		Code:     AutoCodePrefix + label,
		Quantity: autoDiscountQuantity,
		Trigger: models.DiscountTrigger{
			Type:      "purchase",
			Purchased: purchased,
		},
		Discount:           100,
		DiscountType:       "percent",
		AppliesTo:          append([]string(nil), ids...),
		MaximumUsePerOrder: len(ids),
		Enabled:            true,
	}
}

// combinations emits every k-combination of the indexes 0..n-1 in
// lexicographic order. The slice passed to emit is reused between calls.
func combinations(n, k int, emit func(indexes []int)) {
	if k <= 0 || k > n {
		return
	}
	indexes := make([]int, k)
	for i := range indexes {
		indexes[i] = i
	}
	for {
		emit(indexes)
		i := k - 1
		for i >= 0 && indexes[i] == i+n-k {
			i--
		}
		if i < 0 {
			return
		}
		indexes[i]++
		for j := i + 1; j < k; j++ {
			indexes[j] = indexes[j-1] + 1
		}
	}
}
