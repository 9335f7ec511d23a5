package modelling

import (
	"time"

	"github.com/shopspring/decimal"

	"stockfolio/internal/models"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func dec(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

// nvdaFixture is a week of NVDA trading, newest first: two transactions on
// Jan 6, a 10-for-1 split on Jan 4 and purchases on Jan 2 and 3.
func nvdaFixture() []models.PositionRow {
	qty := []float64{0, -1, 3, 0, 0, 3, 2, 0}
	val := []float64{0, 100, -285, 0, 0, -3000, -2200, 0}
	split := []float64{1, 1, 1, 1, 10, 1, 1, 1}
	close := []float64{110, 100, 95, 100, 90, 1000, 1100, 1000}
	dates := []int{7, 6, 6, 5, 4, 3, 2, 1}

	rows := make([]models.PositionRow, len(dates))
	for i := range rows {
		rows[i] = models.PositionRow{
			Date:     day(dates[i]),
			Ticker:   "NVDA",
			TransQty: dec(qty[i]),
			TransVal: dec(val[i]),
			Split:    dec(split[i]),
			Close:    dec(close[i]),
		}
	}
	return rows
}
