package preprocess

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockfolio/internal/models"
)

func d(dayOfMonth int) time.Time {
	return time.Date(2024, 1, dayOfMonth, 0, 0, 0, 0, time.UTC)
}

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func testPreprocessor() *Preprocessor {
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)
	return New(log)
}

func TestNormalizeTransactions_SignConvention(t *testing.T) {
	p := testPreprocessor()
	out := p.NormalizeTransactions([]models.RawTransaction{
		{Date: d(1), Type: "Purchase", Ticker: "AAA", Quantity: dec(2), Value: dec(200)},
		{Date: d(2), Type: "Sale", Ticker: "AAA", Quantity: dec(1), Value: dec(110)},
	})
	require.Len(t, out, 2)

	// sorted date descending: the sale first
	assert.True(t, out[0].Quantity.Equal(dec(-1)), "a sale removes shares")
	assert.True(t, out[0].Value.Equal(dec(110)), "a sale returns cash")
	assert.True(t, out[1].Quantity.Equal(dec(2)), "a purchase adds shares")
	assert.True(t, out[1].Value.Equal(dec(-200)), "a purchase costs cash")
}

func TestNormalizeTransactions_IgnoresRecordedSigns(t *testing.T) {
	p := testPreprocessor()
	// users record magnitudes with inconsistent signs; Type is authoritative
	out := p.NormalizeTransactions([]models.RawTransaction{
		{Date: d(1), Type: "Sale", Ticker: "AAA", Quantity: dec(-3), Value: dec(-90)},
	})
	assert.True(t, out[0].Quantity.Equal(dec(-3)))
	assert.True(t, out[0].Value.Equal(dec(90)))
}

func TestNormalizeTransactions_SortsTickerAscDateDesc(t *testing.T) {
	p := testPreprocessor()
	out := p.NormalizeTransactions([]models.RawTransaction{
		{Date: d(1), Type: "Purchase", Ticker: "BBB", Quantity: dec(1), Value: dec(10)},
		{Date: d(1), Type: "Purchase", Ticker: "AAA", Quantity: dec(1), Value: dec(10)},
		{Date: d(2), Type: "Purchase", Ticker: "AAA", Quantity: dec(1), Value: dec(10)},
	})
	assert.Equal(t, "AAA", out[0].Ticker)
	assert.Equal(t, d(2), out[0].Date)
	assert.Equal(t, d(1), out[1].Date)
	assert.Equal(t, "BBB", out[2].Ticker)
}

func TestFillDaily_DenseCalendarRange(t *testing.T) {
	p := testPreprocessor()
	bars := []models.PriceBar{
		{Date: d(3), Ticker: "AAA", Close: dec(12), Split: dec(2)},
		{Date: d(1), Ticker: "AAA", Close: dec(10)},
	}
	out := p.FillDaily(bars, d(1), d(4))
	require.Len(t, out, 4)

	// newest first; missing day 2 carries day 1's price forward, missing
	// day 4 carries day 3's
	assert.Equal(t, d(4), out[0].Date)
	assert.True(t, out[0].Close.Equal(dec(12)))
	assert.True(t, out[1].Close.Equal(dec(12)))
	assert.True(t, out[2].Close.Equal(dec(10)), "gap takes the nearest older price")
	assert.True(t, out[3].Close.Equal(dec(10)))

	// split factor is 1 except on the recorded split day
	assert.True(t, out[0].Split.Equal(dec(1)))
	assert.True(t, out[1].Split.Equal(dec(2)))
	assert.True(t, out[2].Split.Equal(dec(1)))
}

func TestFillDaily_LeadingGapTakesNearestNewerPrice(t *testing.T) {
	p := testPreprocessor()
	bars := []models.PriceBar{
		{Date: d(3), Ticker: "AAA", Close: dec(12)},
	}
	out := p.FillDaily(bars, d(1), d(3))
	require.Len(t, out, 3)
	assert.True(t, out[2].Close.Equal(dec(12)), "days before the first quote backfill from it")
}

func TestFillDaily_NormalizesProviderZeroSplit(t *testing.T) {
	p := testPreprocessor()
	bars := []models.PriceBar{
		{Date: d(1), Ticker: "AAA", Close: dec(10), Split: dec(0)},
	}
	out := p.FillDaily(bars, d(1), d(1))
	assert.True(t, out[0].Split.Equal(dec(1)))
}

func TestUnadjustCloses_RunningSplitProduct(t *testing.T) {
	p := testPreprocessor()
	// a 2-for-1 split on day 2: adjusted quotes before it are halved, so
	// un-adjusting multiplies them back up
	bars := []models.PriceBar{
		{Date: d(3), Ticker: "AAA", Close: dec(50), Split: dec(1)},
		{Date: d(2), Ticker: "AAA", Close: dec(50), Split: dec(2)},
		{Date: d(1), Ticker: "AAA", Close: dec(45), Split: dec(1)},
	}
	out := p.UnadjustCloses(bars)
	assert.True(t, out[0].Close.Equal(dec(50)))
	assert.True(t, out[1].Close.Equal(dec(100)))
	assert.True(t, out[2].Close.Equal(dec(90)))
}

func TestUnadjustCloses_TracksFactorPerTicker(t *testing.T) {
	p := testPreprocessor()
	bars := []models.PriceBar{
		{Date: d(2), Ticker: "AAA", Close: dec(10), Split: dec(10)},
		{Date: d(1), Ticker: "AAA", Close: dec(10), Split: dec(1)},
		{Date: d(2), Ticker: "BBB", Close: dec(7), Split: dec(1)},
		{Date: d(1), Ticker: "BBB", Close: dec(7), Split: dec(1)},
	}
	out := p.UnadjustCloses(bars)
	assert.True(t, out[1].Close.Equal(dec(100)), "AAA history unadjusts by its split")
	assert.True(t, out[3].Close.Equal(dec(7)), "BBB is untouched by AAA's split")
}
