package money_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hannahwr/nestcare/internal/money"
)

func TestToCents(t *testing.T) {
	type testCase struct {
		name    string
		dollars float64
		want    int64
	}

	tests := []testCase{
		{name: "Whole", dollars: 12, want: 1200},
		{name: "Cents", dollars: 12.34, want: 1234},
		{name: "RoundsUp", dollars: 0.345, want: 35},
		{name: "Negative", dollars: -5.5, want: -550},
		{name: "Zero", dollars: 0, want: 0},
		{name: "NaN", dollars: math.NaN(), want: 0},
		{name: "Inf", dollars: math.Inf(1), want: 0},
		{name: "NegInf", dollars: math.Inf(-1), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, money.ToCents(tt.dollars))
		})
	}
}

func TestAdd_NoFloatDrift(t *testing.T) {
	// 0.1 + 0.2 is the canonical binary float failure case.
	got := money.Add(0.10, 0.20)
	assert.Equal(t, 0.30, got)

	// A long chain of adds must stay exact to the cent.
	total := 0.0
	for range 1000 {
		total = money.Add(total, 0.10)
	}

	assert.Equal(t, 100.0, total)
}

func TestSubtract(t *testing.T) {
	assert.Equal(t, 0.05, money.Subtract(0.15, 0.10))
	assert.Equal(t, -10.0, money.Subtract(5, 15))
}

func TestMultiply(t *testing.T) {
	assert.Equal(t, 50.0, money.Multiply(20, 2.5))
	// 2 decimal hours times a rate rounds to the cent.
	assert.Equal(t, 33.33, money.Multiply(9.99, 3.3366))
}

func TestDivide(t *testing.T) {
	got, err := money.Divide(100, 4)
	require.NoError(t, err)
	assert.Equal(t, 25.0, got)
}

func TestDivide_ByZero(t *testing.T) {
	_, err := money.Divide(100, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, money.ErrDivisionByZero)
}

func TestSum(t *testing.T) {
	assert.Equal(t, 0.30, money.Sum([]float64{0.10, 0.10, 0.10}))
	assert.Equal(t, 0.0, money.Sum(nil))
}

func TestRoundToCent(t *testing.T) {
	assert.Equal(t, 0.30, money.RoundToCent(0.30000000000000004))
	assert.Equal(t, 1.24, money.RoundToCent(1.235))
}

func TestEqual(t *testing.T) {
	assert.True(t, money.Equal(0.1+0.2, 0.3))
	assert.False(t, money.Equal(0.30, 0.31))
}

func TestMultiplyCents(t *testing.T) {
	// $20.00/h for 1.75h.
	assert.Equal(t, int64(3500), money.MultiplyCents(2000, 1.75))
	assert.Equal(t, int64(0), money.MultiplyCents(2000, math.NaN()))
}

func TestSumCents(t *testing.T) {
	assert.Equal(t, int64(600), money.SumCents([]int64{100, 200, 300}))
}
