package modelling

import (
	"stockfolio/internal/models"
)

// CurrentValue fills in the daily market value, quantity times the
// unadjusted closing price. Duplicate (ticker, date) rows left over from
// un-aggregated same-day transactions collapse to the first row after
// sorting; this is data cleaning, the financial state of both rows is the
// same. The result is sorted ticker ascending, date descending.
func CurrentValue(rows []models.PositionRow) []models.PositionRow {
	out := make([]models.PositionRow, len(rows))
	copy(out, rows)
	for i := range out {
		out[i].Value = out[i].Quantity.Mul(out[i].Close)
	}
	SortPositions(out)

	deduped := out[:0]
	for i, r := range out {
		if i > 0 && r.Ticker == out[i-1].Ticker && sameDay(r.Date, out[i-1].Date) {
			continue
		}
		deduped = append(deduped, r)
	}
	return deduped
}
