package modelling

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"stockfolio/internal/models"
)

// dayKey indexes maps by calendar day.
func dayKey(t time.Time) string { return t.Format("2006-01-02") }

// simulatedDelta is the benchmark-share quantity a cash flow would have
// bought that day: -cashFlow / close. A zero close or zero cash flow means
// no simulated position change, never an error.
func simulatedDelta(cashFlow, close decimal.Decimal) decimal.Decimal {
	if close.IsZero() || cashFlow.IsZero() {
		return decimal.Zero
	}
	return cashFlow.Neg().Div(close)
}

// SimulateAbsolute mirrors every real transaction into a same-day benchmark
// buy/sell: whatever cash moved in or out of the portfolio instead trades
// benchmark shares at that day's close. It returns the simulated benchmark
// position series (value rounded to 2 decimals) and its gain series.
func SimulateAbsolute(benchmark []models.PriceBar, txs []models.Transaction) ([]models.PositionRow, []models.GainRow, error) {
	cashByDay := map[string]decimal.Decimal{}
	for _, tx := range txs {
		key := dayKey(tx.Date)
		cashByDay[key] = cashByDay[key].Add(tx.Value)
	}

	rows := make([]models.PositionRow, len(benchmark))
	for i, bar := range benchmark {
		cash := cashByDay[dayKey(bar.Date)]
		rows[i] = models.PositionRow{
			Date:     bar.Date,
			Ticker:   bar.Ticker,
			TransQty: simulatedDelta(cash, bar.Close),
			TransVal: cash,
			Split:    bar.Split,
			Close:    bar.Close,
		}
	}

	rows, err := CurrentQuantity(rows)
	if err != nil {
		return nil, nil, fmt.Errorf("absolute benchmark simulation: %w", err)
	}
	rows = CurrentValue(rows)
	for i := range rows {
		rows[i].Value = rows[i].Value.Round(2)
	}

	gains, err := CurrentGain(gainInputs(rows), RoleBenchmark)
	if err != nil {
		return nil, nil, fmt.Errorf("absolute benchmark simulation: %w", err)
	}
	return rows, gains, nil
}

// CompareProportional replays each asset's own cash flows into the benchmark
// and compares final percent gains over the same period. The result has one
// row per asset, ticker ascending, as of the latest common date.
func CompareProportional(benchmark []models.PriceBar, positions []models.PositionRow) ([]models.BenchmarkComparison, error) {
	barByDay := map[string]models.PriceBar{}
	for _, bar := range benchmark {
		barByDay[dayKey(bar.Date)] = bar
	}

	var out []models.BenchmarkComparison
	for _, group := range groupByTicker(positions) {
		synth := make([]models.PositionRow, len(group))
		for i, r := range group {
			bar := barByDay[dayKey(r.Date)]
			synth[i] = models.PositionRow{
				Date:     r.Date,
				Ticker:   bar.Ticker,
				TransQty: simulatedDelta(r.TransVal, bar.Close),
				TransVal: r.TransVal,
				Split:    bar.Split,
				Close:    bar.Close,
			}
		}

		synth, err := CurrentQuantity(synth)
		if err != nil {
			return nil, fmt.Errorf("proportional benchmark for %q: %w", group[0].Ticker, err)
		}
		synth = CurrentValue(synth)

		assetGain, err := CurrentGain(gainInputs(group), RoleAsset)
		if err != nil {
			return nil, fmt.Errorf("proportional benchmark for %q: %w", group[0].Ticker, err)
		}
		benchGain, err := CurrentGain(gainInputs(synth), RoleBenchmark)
		if err != nil {
			return nil, fmt.Errorf("proportional benchmark for %q: %w", group[0].Ticker, err)
		}
		if len(assetGain) == 0 || len(benchGain) == 0 {
			continue
		}
		out = append(out, models.BenchmarkComparison{
			Ticker:            group[0].Ticker,
			AssetPercGain:     assetGain[0].PercGain,
			BenchmarkPercGain: benchGain[0].PercGain,
		})
	}
	return out, nil
}

// gainInputs projects a valued position series onto the gain calculator's
// input columns.
func gainInputs(rows []models.PositionRow) []GainInput {
	in := make([]GainInput, len(rows))
	for i, r := range rows {
		in[i] = GainInput{Date: r.Date, CashFlow: r.TransVal, Value: r.Value}
	}
	return in
}
