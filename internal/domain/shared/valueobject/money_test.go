package valueobject

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoneyFromString(t *testing.T) {
	m, err := NewMoneyFromString("12.3456")
	require.NoError(t, err)
	assert.True(t, d("12.3456").Equal(m.Amount()))

	_, err = NewMoneyFromString("not-a-number")
	assert.Error(t, err)
}

func TestMoney_Arithmetic(t *testing.T) {
	a := NewMoney(d("10.50"))
	b := NewMoney(d("2.25"))

	assert.True(t, d("12.75").Equal(a.Add(b).Amount()))
	assert.True(t, d("31.5").Equal(a.Mul(decimal.NewFromInt(3)).Amount()))
}

func TestMoney_Round(t *testing.T) {
	m := NewMoney(d("9.99995"))
	assert.True(t, d("10").Equal(m.Round().Amount()))
}

func TestMoney_Predicates(t *testing.T) {
	assert.True(t, ZeroMoney().IsZero())
	assert.True(t, NewMoney(d("-1")).IsNegative())
	assert.False(t, NewMoney(d("1")).IsNegative())
	assert.True(t, NewMoney(d("5.00")).Equal(NewMoney(d("5"))))
}
