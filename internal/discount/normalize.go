package discount

import "github.com/pupbiru/humanitix-auto-codes/internal/models"

// Normalize returns copies of the given discount records with the console's
// storage identifiers stripped at all three levels: the record, its trigger,
// and each purchased line. Two records built from the same logical discount
// normalize to equal values no matter what ids storage assigned them. The
// input records are left untouched.
func Normalize(records []models.AutoDiscount) []models.AutoDiscount {
	out := make([]models.AutoDiscount, len(records))
	for i, rec := range records {
		rec.ID = ""
		rec.Trigger.ID = ""

		purchased := make([]models.PurchasedLine, len(rec.Trigger.Purchased))
		for j, line := range rec.Trigger.Purchased {
			line.ID = ""
			purchased[j] = line
		}
		rec.Trigger.Purchased = purchased
		rec.AppliesTo = append([]string(nil), rec.AppliesTo...)
		out[i] = rec
	}
	return out
}
