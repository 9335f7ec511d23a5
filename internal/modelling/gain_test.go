package modelling

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockfolio/internal/models"
)

func TestCurrentGain_MoneyWeighted(t *testing.T) {
	in := []GainInput{
		{Date: day(3), CashFlow: dec(0), Value: dec(90)},
		{Date: day(2), CashFlow: dec(30), Value: dec(80)},
		{Date: day(1), CashFlow: dec(-100), Value: dec(100)},
	}
	out, err := CurrentGain(in, RoleAsset)
	require.NoError(t, err)
	require.Len(t, out, 3)

	// day 1: bought for 100, worth 100 -> zero by definition anyway
	assert.True(t, out[2].AbsGain.IsZero())
	assert.True(t, out[2].PercGain.IsZero())

	// day 2: money_out -100, money_in 80 + 30 sold = 110
	assert.True(t, out[1].MoneyOut.Equal(dec(-100)))
	assert.True(t, out[1].MoneyIn.Equal(dec(110)))
	assert.True(t, out[1].AbsGain.Equal(dec(10)))
	assert.True(t, out[1].PercGain.Equal(dec(10)))

	// day 3: money_in 90 + 30 = 120
	assert.True(t, out[0].AbsGain.Equal(dec(20)))
	assert.True(t, out[0].PercGain.Equal(dec(20)))
}

func TestCurrentGain_EarliestDateForcedToZero(t *testing.T) {
	in := []GainInput{
		{Date: day(2), CashFlow: dec(0), Value: dec(150)},
		{Date: day(1), CashFlow: dec(-100), Value: dec(120)},
	}
	out, err := CurrentGain(in, RolePortfolio)
	require.NoError(t, err)

	// the formula would yield 20 on day 1; no prior basis exists, so zero
	assert.True(t, out[1].AbsGain.IsZero())
	assert.True(t, out[1].PercGain.IsZero())
	assert.True(t, out[0].AbsGain.Equal(dec(50)))
}

func TestCurrentGain_ZeroMoneyOutYieldsZeroPercent(t *testing.T) {
	// only sales: money_out stays zero, percent gain must not divide
	in := []GainInput{
		{Date: day(2), CashFlow: dec(0), Value: dec(10)},
		{Date: day(1), CashFlow: dec(50), Value: dec(0)},
	}
	out, err := CurrentGain(in, RoleAsset)
	require.NoError(t, err)
	assert.True(t, out[0].MoneyOut.IsZero())
	assert.True(t, out[0].PercGain.IsZero())
}

func TestCurrentGain_CollapsesDuplicateDates(t *testing.T) {
	in := []GainInput{
		{Date: day(2), CashFlow: dec(0), Value: dec(120)},
		{Date: day(2), CashFlow: dec(0), Value: dec(115)},
		{Date: day(1), CashFlow: dec(-100), Value: dec(100)},
	}
	out, err := CurrentGain(in, RoleAsset)
	require.NoError(t, err)
	require.Len(t, out, 2)
	// first row of the duplicated date wins
	assert.True(t, out[0].MoneyIn.Equal(dec(120)))
}

func TestCurrentGain_UnsortedInput(t *testing.T) {
	in := []GainInput{
		{Date: day(1), CashFlow: dec(-100), Value: dec(100)},
		{Date: day(2), CashFlow: dec(0), Value: dec(100)},
	}
	_, err := CurrentGain(in, RoleBenchmark)
	assert.True(t, errors.Is(err, ErrUnsortedData))
}

func TestYearlyGain_SplitsByCalendarYear(t *testing.T) {
	rows := []models.GainRow{
		{Date: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), MoneyIn: dec(150), MoneyOut: dec(-120)},
		{Date: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), MoneyIn: dec(130), MoneyOut: dec(-110)},
		{Date: time.Date(2024, 12, 20, 0, 0, 0, 0, time.UTC), MoneyIn: dec(120), MoneyOut: dec(-100)},
		{Date: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), MoneyIn: dec(50), MoneyOut: dec(-50)},
	}
	out, err := YearlyGain(rows, RolePortfolio)
	require.NoError(t, err)
	require.Len(t, out, 2)

	// 2025: basis is 130 opening value + 10 paid in during the year
	assert.Equal(t, 2025, out[0].Year)
	assert.True(t, out[0].AbsGain.Equal(dec(10)))
	assert.True(t, out[0].PercGain.Equal(dec(7.14)))

	// 2024: basis is 50 + 50 paid in
	assert.Equal(t, 2024, out[1].Year)
	assert.True(t, out[1].AbsGain.Equal(dec(20)))
	assert.True(t, out[1].PercGain.Equal(dec(20)))
}

func TestYearlyGain_UnsortedInput(t *testing.T) {
	rows := []models.GainRow{
		{Date: day(1)},
		{Date: day(2)},
	}
	_, err := YearlyGain(rows, RolePortfolio)
	assert.True(t, errors.Is(err, ErrUnsortedData))
}
