// Package preprocess turns raw user and market data into the dense,
// descending-sorted series the modelling package assumes: signed
// transactions, calendar-gap-filled prices and unadjusted closes.
package preprocess

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"stockfolio/internal/models"
)

// TypeSale marks a sell transaction; anything else is treated as a purchase.
const TypeSale = "Sale"

type Preprocessor struct {
	log *logrus.Logger
}

func New(log *logrus.Logger) *Preprocessor {
	return &Preprocessor{log: log}
}

// NormalizeTransactions applies the sign convention: a sale removes shares
// (negative quantity) and returns cash (positive value), a purchase the
// reverse. The result is sorted ticker ascending, date descending.
func (p *Preprocessor) NormalizeTransactions(raw []models.RawTransaction) []models.Transaction {
	out := make([]models.Transaction, len(raw))
	for i, r := range raw {
		qty, val := r.Quantity.Abs(), r.Value.Abs()
		if r.Type == TypeSale {
			qty = qty.Neg()
		} else {
			val = val.Neg()
		}
		out[i] = models.Transaction{Date: day(r.Date), Ticker: r.Ticker, Quantity: qty, Value: val}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Ticker != out[j].Ticker {
			return out[i].Ticker < out[j].Ticker
		}
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// FillDaily makes each ticker's price series dense over [start, end]: one row
// per calendar day, date descending. A missing close takes the nearest older
// known price (the last quote carried forward in time); gaps before the first
// known price take the nearest newer one. Days without a recorded split get
// factor 1, and a recorded factor of 0 is normalized to 1 (some providers
// report "no split" as 0).
func (p *Preprocessor) FillDaily(bars []models.PriceBar, start, end time.Time) []models.PriceBar {
	byTicker := map[string]map[string]models.PriceBar{}
	var tickers []string
	for _, bar := range bars {
		if byTicker[bar.Ticker] == nil {
			byTicker[bar.Ticker] = map[string]models.PriceBar{}
			tickers = append(tickers, bar.Ticker)
		}
		byTicker[bar.Ticker][dayKey(bar.Date)] = bar
	}
	sort.Strings(tickers)

	start, end = day(start), day(end)
	var out []models.PriceBar
	for _, ticker := range tickers {
		known := byTicker[ticker]
		var series []models.PriceBar
		for d := end; !d.Before(start); d = d.AddDate(0, 0, -1) {
			row := models.PriceBar{Date: d, Ticker: ticker, Split: decimal.NewFromInt(1)}
			if bar, ok := known[dayKey(d)]; ok {
				row.Close = bar.Close
				if !bar.Split.IsZero() {
					row.Split = bar.Split
				}
			}
			series = append(series, row)
		}

		// carry the last known price forward in time (series is newest first)
		for i := len(series) - 2; i >= 0; i-- {
			if series[i].Close.IsZero() && !series[i+1].Close.IsZero() {
				series[i].Close = series[i+1].Close
			}
		}
		// gaps before the first known price take the nearest newer one
		for i := 1; i < len(series); i++ {
			if series[i].Close.IsZero() {
				series[i].Close = series[i-1].Close
			}
		}
		if series[len(series)-1].Close.IsZero() {
			p.log.Warnf("no prices at all for %s in [%s, %s]", ticker, dayKey(start), dayKey(end))
		}
		out = append(out, series...)
	}
	return out
}

// UnadjustCloses converts split-adjusted closing prices back to the prices
// actually quoted on each day. Walking date-descending, the running product
// of split factors on today and every later day is the multiplier that
// un-adjusts today's close.
func (p *Preprocessor) UnadjustCloses(bars []models.PriceBar) []models.PriceBar {
	out := make([]models.PriceBar, len(bars))
	copy(out, bars)

	factor := map[string]decimal.Decimal{}
	for i := range out {
		f, ok := factor[out[i].Ticker]
		if !ok {
			f = decimal.NewFromInt(1)
		}
		split := out[i].Split
		if split.IsZero() {
			split = decimal.NewFromInt(1)
		}
		f = f.Mul(split)
		factor[out[i].Ticker] = f
		out[i].Close = out[i].Close.Mul(f)
	}
	return out
}

func day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dayKey(t time.Time) string { return t.Format("2006-01-02") }
