package billing

import (
	"testing"
	"time"

	"github.com/rentflow/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBillingPeriod(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"2026-08", "2026-08", false},
		{"2026-12", "2026-12", false},
		{"2026-13", "", true},
		{"2026-00", "", true},
		{"08-2026", "", true},
		{"2026/08", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p, err := ParseBillingPeriod(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, shared.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.String())
		})
	}
}

func TestBillingPeriod_After(t *testing.T) {
	assert.True(t, BillingPeriod("2026-09").After(BillingPeriod("2026-08")))
	assert.True(t, BillingPeriod("2027-01").After(BillingPeriod("2026-12")))
	assert.False(t, BillingPeriod("2026-08").After(BillingPeriod("2026-08")))
	assert.False(t, BillingPeriod("2026-07").After(BillingPeriod("2026-08")))
}

func TestBillingPeriod_Next(t *testing.T) {
	assert.Equal(t, BillingPeriod("2026-09"), BillingPeriod("2026-08").Next())
	assert.Equal(t, BillingPeriod("2027-01"), BillingPeriod("2026-12").Next())
}

func TestCurrentBillingPeriod(t *testing.T) {
	at := time.Date(2026, time.August, 28, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, BillingPeriod("2026-08"), CurrentBillingPeriod(at))
}
