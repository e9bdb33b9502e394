package billing

import (
	"time"

	"github.com/rentflow/backend/internal/domain/shared"
)

// periodLayout is the canonical YYYY-MM form of a billing period
const periodLayout = "2006-01"

// BillingPeriod identifies one rent cycle (calendar month). Rent invoices for
// a booking carry strictly increasing, non-overlapping periods.
type BillingPeriod string

// ParseBillingPeriod validates and normalizes a YYYY-MM period string
func ParseBillingPeriod(s string) (BillingPeriod, error) {
	t, err := time.Parse(periodLayout, s)
	if err != nil {
		return "", shared.NewDomainError(shared.CodeInvalidInput, "Billing period must be in YYYY-MM format")
	}
	return BillingPeriod(t.Format(periodLayout)), nil
}

// String returns the canonical string form
func (p BillingPeriod) String() string {
	return string(p)
}

// IsZero returns true for the empty period
func (p BillingPeriod) IsZero() bool {
	return p == ""
}

// After reports whether p is a later month than other. The YYYY-MM form is
// lexicographically ordered, so string comparison is sufficient.
func (p BillingPeriod) After(other BillingPeriod) bool {
	return string(p) > string(other)
}

// Next returns the following calendar month
func (p BillingPeriod) Next() BillingPeriod {
	t, err := time.Parse(periodLayout, string(p))
	if err != nil {
		return p
	}
	return BillingPeriod(t.AddDate(0, 1, 0).Format(periodLayout))
}

// CurrentBillingPeriod returns the period containing the given instant
func CurrentBillingPeriod(at time.Time) BillingPeriod {
	return BillingPeriod(at.Format(periodLayout))
}
