package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoney_Arithmetic(t *testing.T) {
	a := NewMoneyNPR(decimal.NewFromInt(1500))
	b := NewMoneyNPR(decimal.NewFromInt(500))

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.True(t, sum.Equals(NewMoneyNPR(decimal.NewFromInt(2000))))

	diff, err := a.Subtract(b)
	require.NoError(t, err)
	assert.True(t, diff.Equals(NewMoneyNPR(decimal.NewFromInt(1000))))

	product := b.Multiply(decimal.NewFromInt(3))
	assert.True(t, product.Equals(NewMoneyNPR(decimal.NewFromInt(1500))))
}

func TestMoney_CurrencyMismatch(t *testing.T) {
	npr := NewMoneyNPR(decimal.NewFromInt(100))
	usd, err := NewMoney(decimal.NewFromInt(100), USD)
	require.NoError(t, err)

	_, err = npr.Add(usd)
	assert.Error(t, err)

	_, err = npr.LessThan(usd)
	assert.Error(t, err)
}

func TestMoney_String(t *testing.T) {
	m := NewMoneyNPR(decimal.NewFromInt(12290))
	assert.Equal(t, "12290.00 NPR", m.String())
}

func TestMoney_JSONRoundTrip(t *testing.T) {
	m := NewMoneyNPR(decimal.RequireFromString("1234.56"))

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, m.Equals(decoded))
}

func TestMoney_DefaultCurrencyOnUnmarshal(t *testing.T) {
	var m Money
	require.NoError(t, json.Unmarshal([]byte(`{"amount":"42"}`), &m))
	assert.Equal(t, NPR, m.Currency())
}
