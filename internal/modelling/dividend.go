package modelling

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"stockfolio/internal/models"
)

// DividendPosition is one (ticker, date) row of the dividend attribution
// input: the held quantity that day and the per-share dividend amount going
// ex that day (zero on most days).
type DividendPosition struct {
	Date     time.Time
	Ticker   string
	Quantity decimal.Decimal
	Amount   decimal.Decimal
}

// Dividends attributes dividend income and aggregates it per company and per
// calendar year. Entitlement to a payment is determined by the holding at the
// end of the prior day: the recorded quantity on the ex-dividend date already
// includes same-day transactions, so each row reads the quantity of the next
// row in its ticker's descending series (descending order places yesterday
// immediately after today). A payment with no prior row earns nothing.
func Dividends(rows []DividendPosition) ([]models.CompanyDividend, []models.YearDividend, error) {
	byCompany := map[string]decimal.Decimal{}
	byYear := map[int]decimal.Decimal{}

	start := 0
	for i := 1; i <= len(rows); i++ {
		if i < len(rows) && rows[i].Ticker == rows[start].Ticker {
			continue
		}
		group := rows[start:i]
		dates := make([]time.Time, len(group))
		for j, r := range group {
			dates[j] = r.Date
		}
		if !datesDescending(dates) {
			return nil, nil, fmt.Errorf("dividends for %q: %w", group[0].Ticker, ErrUnsortedData)
		}

		for j, r := range group {
			if r.Amount.IsZero() {
				continue
			}
			priorQty := decimal.Zero
			if j+1 < len(group) {
				priorQty = group[j+1].Quantity
			}
			total := priorQty.Mul(r.Amount)
			byCompany[r.Ticker] = byCompany[r.Ticker].Add(total)
			byYear[r.Date.Year()] = byYear[r.Date.Year()].Add(total)
		}
		start = i
	}

	companies := make([]models.CompanyDividend, 0, len(byCompany))
	for ticker, total := range byCompany {
		companies = append(companies, models.CompanyDividend{Ticker: ticker, Total: total})
	}
	sort.Slice(companies, func(i, j int) bool { return companies[i].Ticker < companies[j].Ticker })

	years := make([]models.YearDividend, 0, len(byYear))
	for year, total := range byYear {
		years = append(years, models.YearDividend{Year: year, Total: total})
	}
	sort.Slice(years, func(i, j int) bool { return years[i].Year < years[j].Year })

	return companies, years, nil
}
