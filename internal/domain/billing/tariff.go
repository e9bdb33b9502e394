package billing

import "github.com/shopspring/decimal"

// Tariff carries the fallback billing policy applied when an agreement leaves
// a charge unset, plus the one-time deposit credit and the payment window.
// Values come from configuration; the defaults below match the house policy.
type Tariff struct {
	ElectricityRate decimal.Decimal // per consumed unit
	WaterBill       decimal.Decimal // fixed per month
	GarbageBill     decimal.Decimal // fixed per month
	DepositCredit   decimal.Decimal // credited once, on the first rent invoice
	DueDays         int             // days between issue and due date
}

// DefaultTariff returns the standard fallback policy
func DefaultTariff() Tariff {
	return Tariff{
		ElectricityRate: decimal.NewFromInt(10),
		WaterBill:       decimal.NewFromInt(500),
		GarbageBill:     decimal.NewFromInt(200),
		DepositCredit:   decimal.NewFromInt(5000),
		DueDays:         7,
	}
}
