package main

import (
	"context"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"stockfolio/internal/database"
	"stockfolio/internal/modelling"
	"stockfolio/internal/models"
	"stockfolio/internal/preprocess"
)

// pipeline runs the whole computation end to end: load inputs from Postgres,
// preprocess them into dense descending series, model the portfolio and the
// benchmark, and persist the report tables the API serves.
func main() {
	logger := logrus.New()

	_ = godotenv.Load()

	dsn := os.Getenv("POSTGRES_URL")
	if dsn == "" {
		logger.Fatal("POSTGRES_URL is required")
	}
	benchmarkTicker := os.Getenv("BENCHMARK_TICKER")
	if benchmarkTicker == "" {
		logger.Fatal("BENCHMARK_TICKER is required, e.g. SXR8.DE")
	}

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		logger.Fatalf("db connect failed: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	repo := database.New(db, logger)
	prep := preprocess.New(logger)

	logger.Info("start of preprocess")

	rawTxs, err := repo.LoadTransactions(ctx)
	if err != nil {
		logger.Fatalf("load transactions failed: %v", err)
	}
	if len(rawTxs) == 0 {
		logger.Fatal("no transactions to model")
	}
	txs := prep.NormalizeTransactions(rawTxs)

	start, end, err := modellingWindow(ctx, repo)
	if err != nil {
		logger.Fatalf("resolve modelling window failed: %v", err)
	}
	logger.Infof("modelling window %s .. %s", start.Format("2006-01-02"), end.Format("2006-01-02"))

	bars, err := repo.LoadAllPrices(ctx)
	if err != nil {
		logger.Fatalf("load prices failed: %v", err)
	}
	bars = prep.UnadjustCloses(prep.FillDaily(bars, start, end))

	var assetBars, benchmarkBars []models.PriceBar
	for _, bar := range bars {
		if bar.Ticker == benchmarkTicker {
			benchmarkBars = append(benchmarkBars, bar)
		} else {
			assetBars = append(assetBars, bar)
		}
	}
	if len(benchmarkBars) == 0 {
		logger.Fatalf("no prices for benchmark %s", benchmarkTicker)
	}

	dividends, err := repo.LoadDividends(ctx)
	if err != nil {
		logger.Fatalf("load dividends failed: %v", err)
	}

	logger.Info("start of modelling")

	model, err := modelling.ModelPortfolio(assetBars, txs, dividends, end)
	if err != nil {
		logger.Fatalf("model portfolio failed: %v", err)
	}

	benchmarkRows, benchmarkGains, err := modelling.SimulateAbsolute(benchmarkBars, txs)
	if err != nil {
		logger.Fatalf("benchmark simulation failed: %v", err)
	}
	benchmarkEvolution := make([]models.EvolutionPoint, len(benchmarkGains))
	for i, g := range benchmarkGains {
		benchmarkEvolution[i] = models.EvolutionPoint{
			Date:     g.Date,
			Value:    benchmarkRows[i].Value,
			AbsGain:  g.AbsGain,
			PercGain: g.PercGain,
		}
	}

	comparison, err := modelling.CompareProportional(benchmarkBars, model.Positions)
	if err != nil {
		logger.Fatalf("benchmark comparison failed: %v", err)
	}

	logger.Info("start of persisting reports")

	if err := repo.SaveEvolution(ctx, string(modelling.RolePortfolio), model.Evolution); err != nil {
		logger.Fatalf("save portfolio evolution failed: %v", err)
	}
	if err := repo.SaveEvolution(ctx, string(modelling.RoleBenchmark), benchmarkEvolution); err != nil {
		logger.Fatalf("save benchmark evolution failed: %v", err)
	}
	if err := repo.SaveDistribution(ctx, model.Distribution); err != nil {
		logger.Fatalf("save distribution failed: %v", err)
	}
	if err := repo.SaveComparison(ctx, comparison); err != nil {
		logger.Fatalf("save comparison failed: %v", err)
	}
	if err := repo.SaveDividendTotals(ctx, model.DividendsByCompany, model.DividendsByYear); err != nil {
		logger.Fatalf("save dividend totals failed: %v", err)
	}
	if err := repo.SaveYearlyGains(ctx, model.YearlyGains); err != nil {
		logger.Fatalf("save yearly gains failed: %v", err)
	}

	logger.Info("end of execution")
}

// modellingWindow resolves the date range: explicit env overrides, otherwise
// from the earliest transaction up to today.
func modellingWindow(ctx context.Context, repo *database.Repo) (time.Time, time.Time, error) {
	start, _, err := repo.TransactionDateRange(ctx)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end := time.Now().UTC()

	if v := os.Getenv("PORTFOLIO_START_DATE"); v != "" {
		if start, err = time.Parse("2006-01-02", v); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if v := os.Getenv("PORTFOLIO_END_DATE"); v != "" {
		if end, err = time.Parse("2006-01-02", v); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	return start, end, nil
}
