package modelling

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"stockfolio/internal/models"
)

// GainInput is one date of the series CurrentGain consumes: the signed cash
// flow of that day's transactions (negative = purchase) and the market value
// of the position being measured.
type GainInput struct {
	Date     time.Time
	CashFlow decimal.Decimal
	Value    decimal.Decimal
}

// cashAccumulator carries the oldest-to-newest running cash-flow state.
type cashAccumulator struct {
	withdrawals decimal.Decimal // sum of negative cash flows (purchases)
	deposits    decimal.Decimal // sum of positive cash flows (sales)
}

func (a *cashAccumulator) add(cashFlow decimal.Decimal) {
	if cashFlow.IsNegative() {
		a.withdrawals = a.withdrawals.Add(cashFlow)
	} else {
		a.deposits = a.deposits.Add(cashFlow)
	}
}

// CurrentGain computes the daily money-weighted absolute and percentage gain
// of a position. It is the one shared routine behind the per-asset, the
// portfolio-level and both benchmark gain series; role only labels the output.
//
// Scanning from the oldest date forward, money_out accumulates cash paid in
// (purchases, which are negative cash flows) and money_in is the day's market
// value plus all cash taken out so far (sales). The absolute gain is their
// sum and the percent gain is (|money_in / money_out| - 1) * 100, defined as
// zero when money_out is zero. Rows sharing a date collapse to one, and the
// earliest date's gains are zero by definition: no prior basis exists.
func CurrentGain(rows []GainInput, role Role) ([]models.GainRow, error) {
	dates := make([]time.Time, len(rows))
	for i, r := range rows {
		dates[i] = r.Date
	}
	if !datesDescending(dates) {
		return nil, fmt.Errorf("current gain for %s: %w", role, ErrUnsortedData)
	}

	moneyOut := make([]decimal.Decimal, len(rows))
	moneyIn := make([]decimal.Decimal, len(rows))
	var acc cashAccumulator
	for i := len(rows) - 1; i >= 0; i-- {
		acc.add(rows[i].CashFlow)
		moneyOut[i] = acc.withdrawals
		moneyIn[i] = rows[i].Value.Add(acc.deposits)
	}

	out := make([]models.GainRow, 0, len(rows))
	for i, r := range rows {
		if i > 0 && sameDay(r.Date, rows[i-1].Date) {
			continue
		}
		out = append(out, models.GainRow{
			Date:     r.Date,
			AbsGain:  moneyOut[i].Add(moneyIn[i]).Round(2),
			PercGain: percentGain(moneyIn[i], moneyOut[i]),
			MoneyOut: moneyOut[i],
			MoneyIn:  moneyIn[i],
		})
	}
	if len(out) > 0 {
		oldest := &out[len(out)-1]
		oldest.AbsGain = decimal.Zero
		oldest.PercGain = decimal.Zero
	}
	return out, nil
}

func percentGain(moneyIn, moneyOut decimal.Decimal) decimal.Decimal {
	if moneyOut.IsZero() {
		return decimal.Zero
	}
	one := decimal.NewFromInt(1)
	hundred := decimal.NewFromInt(100)
	return moneyIn.Div(moneyOut).Abs().Sub(one).Mul(hundred).Round(2)
}

// YearlyGain splits a gain series into per-calendar-year gains. For each
// year, the starting basis is the year's opening money_in plus whatever cash
// was paid in during the year, and the gain is measured against the year's
// closing money_in.
func YearlyGain(rows []models.GainRow, role Role) ([]models.YearGain, error) {
	dates := make([]time.Time, len(rows))
	for i, r := range rows {
		dates[i] = r.Date
	}
	if !datesDescending(dates) {
		return nil, fmt.Errorf("yearly gain for %s: %w", role, ErrUnsortedData)
	}

	var out []models.YearGain
	start := 0
	for i := 1; i <= len(rows); i++ {
		if i < len(rows) && rows[i].Date.Year() == rows[start].Date.Year() {
			continue
		}
		newest, oldest := rows[start], rows[i-1]
		paidInDuringYear := newest.MoneyOut.Abs().Sub(oldest.MoneyOut.Abs())
		basis := oldest.MoneyIn.Add(paidInDuringYear)

		percGain := decimal.Zero
		if !basis.IsZero() {
			percGain = newest.MoneyIn.Div(basis).Sub(decimal.NewFromInt(1)).Mul(decimal.NewFromInt(100)).Round(2)
		}
		out = append(out, models.YearGain{
			Year:     newest.Date.Year(),
			AbsGain:  newest.MoneyIn.Sub(basis).Round(2),
			PercGain: percGain,
		})
		start = i
	}
	return out, nil
}
