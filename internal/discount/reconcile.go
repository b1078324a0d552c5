package discount

import (
	"reflect"

	"github.com/pupbiru/humanitix-auto-codes/internal/models"
)

// Decision is the outcome of reconciling an event's discounts. When Push is
// set, Desired carries the full replacement list: the operator-authored
// records verbatim (ids intact) followed by the freshly generated auto set.
type Decision struct {
	Push    bool
	Desired []models.AutoDiscount
}

// Reconcile compares the desired discount set against what the event
// currently stores. Identity is the normalized record content; list order is
// significant. A remote reordering therefore reads as a difference and causes
// a redundant push, which the replace-all call absorbs idempotently.
func Reconcile(manual, generated, current []models.AutoDiscount) Decision {
	desired := make([]models.AutoDiscount, 0, len(manual)+len(generated))
	desired = append(desired, manual...)
	desired = append(desired, generated...)

	push := !reflect.DeepEqual(Normalize(desired), Normalize(current))
	return Decision{Push: push, Desired: desired}
}
