package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawTransaction is a transaction as recorded by the user: quantity and value
// are unsigned, the direction comes from Type.
type RawTransaction struct {
	Date     time.Time       `db:"date" json:"date"`
	Type     string          `db:"transaction_type" json:"transaction_type"`
	Ticker   string          `db:"ticker" json:"ticker"`
	Quantity decimal.Decimal `db:"quantity" json:"quantity"`
	Value    decimal.Decimal `db:"value" json:"value"`
}

// Transaction is a normalized, immutable buy/sell event. Quantity is signed
// (+buy/-sell), Value is the signed cash flow (-buy/+sell).
type Transaction struct {
	Date     time.Time       `db:"date" json:"date"`
	Ticker   string          `db:"ticker" json:"ticker"`
	Quantity decimal.Decimal `db:"quantity" json:"quantity"`
	Value    decimal.Decimal `db:"value" json:"value"`
}

// PriceBar is one daily price row per (ticker, date). Close is the closing
// price in local currency: split-adjusted as delivered by market-data
// providers, unadjusted after preprocess.UnadjustCloses. Split is the split
// factor for that date (1 = no split, 10 = a 10-for-1 split).
type PriceBar struct {
	Date   time.Time       `db:"date" json:"date"`
	Ticker string          `db:"ticker" json:"ticker"`
	Close  decimal.Decimal `db:"close" json:"close"`
	Split  decimal.Decimal `db:"split" json:"split"`
}

// DividendPayment is a per-share dividend paid on an ex-dividend date.
type DividendPayment struct {
	ExDate time.Time       `db:"ex_date" json:"ex_date"`
	Ticker string          `db:"ticker" json:"ticker"`
	Amount decimal.Decimal `db:"amount_per_share" json:"amount_per_share"`
}

// PositionRow is one (ticker, date) row of a position series: the merged
// price/transaction inputs plus the reconstructed holding and its market
// value. Series are kept sorted ticker ascending, date descending.
type PositionRow struct {
	Date     time.Time       `json:"date"`
	Ticker   string          `json:"ticker"`
	TransQty decimal.Decimal `json:"trans_qty"`
	TransVal decimal.Decimal `json:"trans_val"`
	Split    decimal.Decimal `json:"split"`
	Close    decimal.Decimal `json:"close_unadj"`
	Quantity decimal.Decimal `json:"quantity"`
	Value    decimal.Decimal `json:"value"`
}

// GainRow is one date of the money-weighted gain series. MoneyOut is the
// running sum of cash paid in (always <= 0), MoneyIn the market value plus
// the running sum of cash taken out.
type GainRow struct {
	Date     time.Time       `json:"date"`
	AbsGain  decimal.Decimal `json:"abs_gain"`
	PercGain decimal.Decimal `json:"perc_gain"`
	MoneyOut decimal.Decimal `json:"money_out"`
	MoneyIn  decimal.Decimal `json:"money_in"`
}

// EvolutionPoint is one date of a value+gain report series.
type EvolutionPoint struct {
	Date     time.Time       `db:"date" json:"date"`
	Value    decimal.Decimal `db:"value" json:"value"`
	AbsGain  decimal.Decimal `db:"abs_gain" json:"abs_gain"`
	PercGain decimal.Decimal `db:"perc_gain" json:"perc_gain"`
}

// YearGain is the money-weighted gain achieved within one calendar year.
type YearGain struct {
	Year     int             `db:"year" json:"year"`
	AbsGain  decimal.Decimal `db:"abs_gain" json:"abs_gain"`
	PercGain decimal.Decimal `db:"perc_gain" json:"perc_gain"`
}

// AssetWeight is one asset's share of the portfolio at the end date.
type AssetWeight struct {
	Ticker   string          `db:"ticker" json:"ticker"`
	Quantity decimal.Decimal `db:"quantity" json:"quantity"`
	Value    decimal.Decimal `db:"value" json:"value"`
	Percent  decimal.Decimal `db:"percent" json:"percent"`
}

// CompanyDividend is the total dividend income received from one company.
type CompanyDividend struct {
	Ticker string          `db:"ticker" json:"ticker"`
	Total  decimal.Decimal `db:"total" json:"total"`
}

// YearDividend is the total dividend income received in one calendar year.
type YearDividend struct {
	Year  int             `db:"year" json:"year"`
	Total decimal.Decimal `db:"total" json:"total"`
}

// BenchmarkComparison pairs an asset's percent gain with the percent gain the
// same cash flows would have produced invested in the benchmark.
type BenchmarkComparison struct {
	Ticker            string          `db:"ticker" json:"ticker"`
	AssetPercGain     decimal.Decimal `db:"asset_perc_gain" json:"asset_perc_gain"`
	BenchmarkPercGain decimal.Decimal `db:"benchmark_perc_gain" json:"benchmark_perc_gain"`
}
