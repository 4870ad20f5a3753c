package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRound(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"10.0005", "10.001"},
		{"10.0004", "10"},
		{"-10.0005", "-10.001"},
		{"2.5", "2.5"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := Round(decimal.RequireFromString(tt.in))
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestDivide(t *testing.T) {
	got, err := Divide(decimal.NewFromInt(100), decimal.NewFromInt(3))
	require.NoError(t, err)
	assert.Equal(t, "33.333", got.String())

	got, err = Divide(decimal.NewFromInt(200), decimal.NewFromInt(3))
	require.NoError(t, err)
	assert.Equal(t, "66.667", got.String())

	_, err = Divide(decimal.NewFromInt(1), decimal.Zero)
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "200.00", Format(decimal.NewFromInt(200)))
	assert.Equal(t, "10.50", Format(decimal.RequireFromString("10.5")))
}

func TestParse(t *testing.T) {
	d, err := Parse(" 250.00 ")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.NewFromInt(250)))

	_, err = Parse("")
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = Parse("abc")
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestIsMultiple(t *testing.T) {
	assert.True(t, IsMultiple(decimal.NewFromInt(250), decimal.NewFromInt(10)))
	assert.False(t, IsMultiple(decimal.NewFromInt(250), decimal.NewFromInt(200)))
	assert.False(t, IsMultiple(decimal.NewFromInt(250), decimal.Zero))
}

func TestValueOrZero(t *testing.T) {
	assert.True(t, ValueOrZero(nil).IsZero())
	v := decimal.NewFromInt(5)
	assert.True(t, ValueOrZero(&v).Equal(v))
}
