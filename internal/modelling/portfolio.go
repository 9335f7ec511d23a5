package modelling

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"stockfolio/internal/models"
)

// PortfolioModel is everything the portfolio aggregation produces for
// downstream reporting.
type PortfolioModel struct {
	Evolution          []models.EvolutionPoint
	YearlyGains        []models.YearGain
	Distribution       []models.AssetWeight
	Positions          []models.PositionRow
	DividendsByCompany []models.CompanyDividend
	DividendsByYear    []models.YearDividend
}

// ModelPortfolio reconstructs every asset's daily position from the dense
// price series and the transaction history, then aggregates to the
// portfolio level: daily value and money-weighted gain, per-year gains,
// dividend income per company and per year, and the asset distribution at
// the end date.
//
// The price series must be dense (one row per calendar day per ticker, gaps
// filled upstream); transactions may be sparse.
func ModelPortfolio(prices []models.PriceBar, txs []models.Transaction, dividends []models.DividendPayment, endDate time.Time) (*PortfolioModel, error) {
	type tickerDay struct {
		ticker string
		day    string
	}
	txQty := map[tickerDay]decimal.Decimal{}
	txVal := map[tickerDay]decimal.Decimal{}
	for _, tx := range txs {
		k := tickerDay{tx.Ticker, dayKey(tx.Date)}
		txQty[k] = txQty[k].Add(tx.Quantity)
		txVal[k] = txVal[k].Add(tx.Value)
	}

	positions := make([]models.PositionRow, len(prices))
	for i, bar := range prices {
		k := tickerDay{bar.Ticker, dayKey(bar.Date)}
		positions[i] = models.PositionRow{
			Date:     bar.Date,
			Ticker:   bar.Ticker,
			TransQty: txQty[k],
			TransVal: txVal[k],
			Split:    bar.Split,
			Close:    bar.Close,
		}
	}
	SortPositions(positions)

	reconstructed := positions[:0:0]
	for _, group := range groupByTicker(positions) {
		withQty, err := CurrentQuantity(group)
		if err != nil {
			return nil, fmt.Errorf("model portfolio: %w", err)
		}
		reconstructed = append(reconstructed, withQty...)
	}
	reconstructed = CurrentValue(reconstructed)

	divAmount := map[tickerDay]decimal.Decimal{}
	for _, d := range dividends {
		k := tickerDay{d.Ticker, dayKey(d.ExDate)}
		divAmount[k] = divAmount[k].Add(d.Amount)
	}
	divRows := make([]DividendPosition, len(reconstructed))
	for i, r := range reconstructed {
		divRows[i] = DividendPosition{
			Date:     r.Date,
			Ticker:   r.Ticker,
			Quantity: r.Quantity,
			Amount:   divAmount[tickerDay{r.Ticker, dayKey(r.Date)}],
		}
	}
	byCompany, byYear, err := Dividends(divRows)
	if err != nil {
		return nil, fmt.Errorf("model portfolio: %w", err)
	}

	valueByDay := map[string]decimal.Decimal{}
	cashByDay := map[string]decimal.Decimal{}
	dateByDay := map[string]time.Time{}
	for _, r := range reconstructed {
		day := dayKey(r.Date)
		valueByDay[day] = valueByDay[day].Add(r.Value)
		cashByDay[day] = cashByDay[day].Add(r.TransVal)
		dateByDay[day] = r.Date
	}
	days := make([]string, 0, len(dateByDay))
	for day := range dateByDay {
		days = append(days, day)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(days)))

	gainIn := make([]GainInput, len(days))
	for i, day := range days {
		gainIn[i] = GainInput{
			Date:     dateByDay[day],
			CashFlow: cashByDay[day],
			Value:    valueByDay[day].Round(2),
		}
	}
	gains, err := CurrentGain(gainIn, RolePortfolio)
	if err != nil {
		return nil, fmt.Errorf("model portfolio: %w", err)
	}
	yearly, err := YearlyGain(gains, RolePortfolio)
	if err != nil {
		return nil, fmt.Errorf("model portfolio: %w", err)
	}

	evolution := make([]models.EvolutionPoint, len(gains))
	for i, g := range gains {
		evolution[i] = models.EvolutionPoint{
			Date:     g.Date,
			Value:    gainIn[i].Value,
			AbsGain:  g.AbsGain,
			PercGain: g.PercGain,
		}
	}

	return &PortfolioModel{
		Evolution:          evolution,
		YearlyGains:        yearly,
		Distribution:       assetDistribution(reconstructed, endDate),
		Positions:          reconstructed,
		DividendsByCompany: byCompany,
		DividendsByYear:    byYear,
	}, nil
}

// assetDistribution computes each asset's value and percent share of the
// portfolio at the end date. Zero-quantity positions are excluded and the
// result is sorted by value descending.
func assetDistribution(rows []models.PositionRow, endDate time.Time) []models.AssetWeight {
	var held []models.PositionRow
	total := decimal.Zero
	for _, r := range rows {
		if sameDay(r.Date, endDate) && !r.Quantity.IsZero() {
			held = append(held, r)
			total = total.Add(r.Value)
		}
	}

	out := make([]models.AssetWeight, len(held))
	for i, r := range held {
		percent := decimal.Zero
		if !total.IsZero() {
			percent = r.Value.Div(total).Mul(decimal.NewFromInt(100)).Round(2)
		}
		out[i] = models.AssetWeight{
			Ticker:   r.Ticker,
			Quantity: r.Quantity,
			Value:    r.Value.Round(2),
			Percent:  percent,
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value.GreaterThan(out[j].Value) })
	return out
}
