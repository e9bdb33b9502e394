package config

import (
	"fmt"

	"github.com/rentflow/backend/internal/domain/billing"
	"github.com/shopspring/decimal"
)

// Tariff parses the billing policy into the domain tariff
func (b *BillingConfig) Tariff() (billing.Tariff, error) {
	rate, err := decimal.NewFromString(b.ElectricityRate)
	if err != nil {
		return billing.Tariff{}, fmt.Errorf("invalid billing.electricity_rate %q: %w", b.ElectricityRate, err)
	}
	water, err := decimal.NewFromString(b.WaterBill)
	if err != nil {
		return billing.Tariff{}, fmt.Errorf("invalid billing.water_bill %q: %w", b.WaterBill, err)
	}
	garbage, err := decimal.NewFromString(b.GarbageBill)
	if err != nil {
		return billing.Tariff{}, fmt.Errorf("invalid billing.garbage_bill %q: %w", b.GarbageBill, err)
	}
	credit, err := decimal.NewFromString(b.DepositCredit)
	if err != nil {
		return billing.Tariff{}, fmt.Errorf("invalid billing.deposit_credit %q: %w", b.DepositCredit, err)
	}

	return billing.Tariff{
		ElectricityRate: rate,
		WaterBill:       water,
		GarbageBill:     garbage,
		DepositCredit:   credit,
		DueDays:         b.DueDays,
	}, nil
}
