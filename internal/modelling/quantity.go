package modelling

import (
	"fmt"

	"github.com/shopspring/decimal"

	"stockfolio/internal/models"
)

// CurrentQuantity reconstructs the daily held quantity for a single-ticker
// series sorted by descending date. Conceptually the scan runs from the
// oldest row to the newest: the oldest day holds exactly its own transaction
// quantity, and every later day holds
//
//	quantity[today] = transQty[today] + quantity[yesterday] * split[today]
//
// so a split compounds the whole previously accumulated position before
// today's (already split-adjusted) transaction is added. Rows whose ticker
// and date collide must be pre-aggregated by the caller.
func CurrentQuantity(rows []models.PositionRow) ([]models.PositionRow, error) {
	if !datesDescending(positionDates(rows)) {
		ticker := ""
		if len(rows) > 0 {
			ticker = rows[0].Ticker
		}
		return nil, fmt.Errorf("current quantity for %q: %w", ticker, ErrUnsortedData)
	}

	out := make([]models.PositionRow, len(rows))
	copy(out, rows)

	acc := decimal.Zero
	for i := len(out) - 1; i >= 0; i-- {
		split := out[i].Split
		if split.IsZero() {
			split = decimal.NewFromInt(1)
		}
		acc = out[i].TransQty.Add(acc.Mul(split))
		out[i].Quantity = acc
	}
	return out, nil
}
