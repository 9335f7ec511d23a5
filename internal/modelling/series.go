// Package modelling reconstructs daily positions, market values,
// money-weighted gains, dividend income and benchmark comparisons from
// transaction history and daily market data.
//
// Every function takes series sorted by descending date (newest first) and
// returns new slices; inputs are never mutated. Functions whose recurrence
// depends on the ordering fail with ErrUnsortedData when it is violated.
package modelling

import (
	"errors"
	"sort"
	"time"

	"stockfolio/internal/models"
)

// ErrUnsortedData reports a series that is not sorted by descending date.
// It is a precondition violation: the caller must re-sort upstream.
var ErrUnsortedData = errors.New("series not sorted by descending date")

// Role labels which kind of position a series tracks. It replaces ad-hoc
// naming of outputs when the same routine runs for an asset, the benchmark
// and the whole portfolio.
type Role string

const (
	RoleAsset     Role = "asset"
	RoleBenchmark Role = "benchmark"
	RolePortfolio Role = "portfolio"
)

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// datesDescending reports whether dates are monotonically non-increasing.
func datesDescending(dates []time.Time) bool {
	for i := 1; i < len(dates); i++ {
		if dates[i].After(dates[i-1]) {
			return false
		}
	}
	return true
}

func positionDates(rows []models.PositionRow) []time.Time {
	dates := make([]time.Time, len(rows))
	for i, r := range rows {
		dates[i] = r.Date
	}
	return dates
}

// SortPositions orders a position series ticker ascending, date descending.
// Each pipeline stage re-establishes this order explicitly before returning.
func SortPositions(rows []models.PositionRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Ticker != rows[j].Ticker {
			return rows[i].Ticker < rows[j].Ticker
		}
		return rows[i].Date.After(rows[j].Date)
	})
}

// groupByTicker splits a ticker-ascending series into per-ticker sub-slices,
// preserving row order within each group.
func groupByTicker(rows []models.PositionRow) [][]models.PositionRow {
	var groups [][]models.PositionRow
	start := 0
	for i := 1; i <= len(rows); i++ {
		if i == len(rows) || rows[i].Ticker != rows[start].Ticker {
			groups = append(groups, rows[start:i])
			start = i
		}
	}
	return groups
}
