package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	t.Run("two fraction digits", func(t *testing.T) {
		d, err := ParseAmount("1704.00")
		require.NoError(t, err)
		assert.True(t, d.Equal(decimal.RequireFromString("1704")))
	})

	t.Run("whitespace tolerated", func(t *testing.T) {
		d, err := ParseAmount("  132.50 ")
		require.NoError(t, err)
		assert.Equal(t, "132.50", d.StringFixed(2))
	})

	t.Run("garbage rejected", func(t *testing.T) {
		_, err := ParseAmount("1,704.00")
		assert.Error(t, err)
	})
}

func TestParseGrouped(t *testing.T) {
	d, err := ParseGrouped("2,568.00")
	require.NoError(t, err)
	assert.Equal(t, "2568.00", d.StringFixed(2))

	d, err = ParseGrouped("12,345,678.90")
	require.NoError(t, err)
	assert.Equal(t, "12345678.90", d.StringFixed(2))
}

func TestRounding(t *testing.T) {
	t.Run("cents round half up", func(t *testing.T) {
		assert.Equal(t, "2.35", RoundCents(decimal.RequireFromString("2.345")).StringFixed(2))
		assert.Equal(t, "2.34", RoundCents(decimal.RequireFromString("2.344")).StringFixed(2))
	})

	t.Run("whole units round half up", func(t *testing.T) {
		assert.Equal(t, int64(265), WholeUnits(decimal.RequireFromString("264.50")))
		assert.Equal(t, int64(264), WholeUnits(decimal.RequireFromString("264.49")))
		assert.Equal(t, int64(0), WholeUnits(decimal.Zero))
	})
}

func TestSum(t *testing.T) {
	total := Sum(
		decimal.RequireFromString("1704.00"),
		decimal.RequireFromString("264.00"),
		decimal.RequireFromString("600.00"),
	)
	assert.Equal(t, "2568.00", total.StringFixed(2))

	assert.True(t, Sum().IsZero())
}

func TestDisplay(t *testing.T) {
	d := decimal.RequireFromString("2568")

	// Known ISO codes render with their symbol; unknown codes fall back to
	// a plain "CODE amount" form.
	assert.NotEmpty(t, Display(d, "UYU"))
	assert.Contains(t, Display(d, "ZZZ"), "2568.00")
}
