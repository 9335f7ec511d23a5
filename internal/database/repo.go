package database

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"stockfolio/internal/models"
)

// Repo reads the market/transaction inputs and persists the computed report
// tables so the API can serve them without recomputing.
type Repo struct {
	db  *sqlx.DB
	log *logrus.Logger
}

func New(db *sqlx.DB, log *logrus.Logger) *Repo {
	return &Repo{db: db, log: log}
}

func (r *Repo) LoadTransactions(ctx context.Context) ([]models.RawTransaction, error) {
	rows, err := r.db.QueryxContext(ctx, `SELECT date, transaction_type, ticker, quantity, value FROM transactions ORDER BY ticker ASC, date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := []models.RawTransaction{}
	for rows.Next() {
		var t models.RawTransaction
		if err := rows.StructScan(&t); err != nil {
			r.log.Warnf("scan transaction failed: %v", err)
			continue
		}
		res = append(res, t)
	}
	return res, rows.Err()
}

func (r *Repo) LoadPrices(ctx context.Context, ticker string) ([]models.PriceBar, error) {
	rows, err := r.db.QueryxContext(ctx, `SELECT date, ticker, close, split FROM daily_prices WHERE ticker = $1 ORDER BY date DESC`, ticker)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := []models.PriceBar{}
	for rows.Next() {
		var b models.PriceBar
		if err := rows.StructScan(&b); err != nil {
			r.log.Warnf("scan price bar failed: %v", err)
			continue
		}
		res = append(res, b)
	}
	return res, rows.Err()
}

func (r *Repo) LoadAllPrices(ctx context.Context) ([]models.PriceBar, error) {
	rows, err := r.db.QueryxContext(ctx, `SELECT date, ticker, close, split FROM daily_prices ORDER BY ticker ASC, date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := []models.PriceBar{}
	for rows.Next() {
		var b models.PriceBar
		if err := rows.StructScan(&b); err != nil {
			r.log.Warnf("scan price bar failed: %v", err)
			continue
		}
		res = append(res, b)
	}
	return res, rows.Err()
}

func (r *Repo) LoadDividends(ctx context.Context) ([]models.DividendPayment, error) {
	rows, err := r.db.QueryxContext(ctx, `SELECT ex_date, ticker, amount_per_share FROM dividends ORDER BY ticker ASC, ex_date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := []models.DividendPayment{}
	for rows.Next() {
		var d models.DividendPayment
		if err := rows.StructScan(&d); err != nil {
			r.log.Warnf("scan dividend failed: %v", err)
			continue
		}
		res = append(res, d)
	}
	return res, rows.Err()
}

// SaveEvolution replaces one role's daily value+gain series. Role is
// "portfolio" or "benchmark".
func (r *Repo) SaveEvolution(ctx context.Context, role string, points []models.EvolutionPoint) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM evolution WHERE role = $1`, role); err != nil {
		return err
	}
	q := `INSERT INTO evolution (role, date, value, abs_gain, perc_gain) VALUES ($1, $2, $3::numeric, $4::numeric, $5::numeric)`
	for _, p := range points {
		if _, err := tx.ExecContext(ctx, q, role, p.Date, p.Value.String(), p.AbsGain.String(), p.PercGain.String()); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *Repo) GetEvolution(ctx context.Context, role string) ([]models.EvolutionPoint, error) {
	rows, err := r.db.QueryxContext(ctx, `SELECT date, value, abs_gain, perc_gain FROM evolution WHERE role = $1 ORDER BY date DESC`, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := []models.EvolutionPoint{}
	for rows.Next() {
		var p models.EvolutionPoint
		if err := rows.StructScan(&p); err != nil {
			r.log.Warnf("scan evolution point failed: %v", err)
			continue
		}
		res = append(res, p)
	}
	return res, rows.Err()
}

func (r *Repo) SaveDistribution(ctx context.Context, weights []models.AssetWeight) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM asset_distribution`); err != nil {
		return err
	}
	q := `INSERT INTO asset_distribution (ticker, quantity, value, percent) VALUES ($1, $2::numeric, $3::numeric, $4::numeric)`
	for _, w := range weights {
		if _, err := tx.ExecContext(ctx, q, w.Ticker, w.Quantity.String(), w.Value.String(), w.Percent.String()); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *Repo) GetDistribution(ctx context.Context) ([]models.AssetWeight, error) {
	rows, err := r.db.QueryxContext(ctx, `SELECT ticker, quantity, value, percent FROM asset_distribution ORDER BY value DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := []models.AssetWeight{}
	for rows.Next() {
		var w models.AssetWeight
		if err := rows.StructScan(&w); err != nil {
			r.log.Warnf("scan asset weight failed: %v", err)
			continue
		}
		res = append(res, w)
	}
	return res, rows.Err()
}

func (r *Repo) SaveComparison(ctx context.Context, comparisons []models.BenchmarkComparison) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM assets_vs_benchmark`); err != nil {
		return err
	}
	q := `INSERT INTO assets_vs_benchmark (ticker, asset_perc_gain, benchmark_perc_gain) VALUES ($1, $2::numeric, $3::numeric)`
	for _, c := range comparisons {
		if _, err := tx.ExecContext(ctx, q, c.Ticker, c.AssetPercGain.String(), c.BenchmarkPercGain.String()); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *Repo) GetComparison(ctx context.Context) ([]models.BenchmarkComparison, error) {
	rows, err := r.db.QueryxContext(ctx, `SELECT ticker, asset_perc_gain, benchmark_perc_gain FROM assets_vs_benchmark ORDER BY ticker ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := []models.BenchmarkComparison{}
	for rows.Next() {
		var c models.BenchmarkComparison
		if err := rows.StructScan(&c); err != nil {
			r.log.Warnf("scan comparison failed: %v", err)
			continue
		}
		res = append(res, c)
	}
	return res, rows.Err()
}

func (r *Repo) SaveDividendTotals(ctx context.Context, companies []models.CompanyDividend, years []models.YearDividend) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM dividends_company`); err != nil {
		return err
	}
	for _, c := range companies {
		if _, err := tx.ExecContext(ctx, `INSERT INTO dividends_company (ticker, total) VALUES ($1, $2::numeric)`, c.Ticker, c.Total.String()); err != nil {
			return err
		}
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM dividends_year`); err != nil {
		return err
	}
	for _, y := range years {
		if _, err := tx.ExecContext(ctx, `INSERT INTO dividends_year (year, total) VALUES ($1, $2::numeric)`, y.Year, y.Total.String()); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *Repo) GetCompanyDividends(ctx context.Context) ([]models.CompanyDividend, error) {
	rows, err := r.db.QueryxContext(ctx, `SELECT ticker, total FROM dividends_company ORDER BY ticker ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := []models.CompanyDividend{}
	for rows.Next() {
		var c models.CompanyDividend
		if err := rows.StructScan(&c); err != nil {
			r.log.Warnf("scan company dividend failed: %v", err)
			continue
		}
		res = append(res, c)
	}
	return res, rows.Err()
}

func (r *Repo) GetYearDividends(ctx context.Context) ([]models.YearDividend, error) {
	rows, err := r.db.QueryxContext(ctx, `SELECT year, total FROM dividends_year ORDER BY year ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := []models.YearDividend{}
	for rows.Next() {
		var y models.YearDividend
		if err := rows.StructScan(&y); err != nil {
			r.log.Warnf("scan year dividend failed: %v", err)
			continue
		}
		res = append(res, y)
	}
	return res, rows.Err()
}

func (r *Repo) SaveYearlyGains(ctx context.Context, gains []models.YearGain) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM yearly_gains`); err != nil {
		return err
	}
	for _, g := range gains {
		if _, err := tx.ExecContext(ctx, `INSERT INTO yearly_gains (year, abs_gain, perc_gain) VALUES ($1, $2::numeric, $3::numeric)`, g.Year, g.AbsGain.String(), g.PercGain.String()); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *Repo) GetYearlyGains(ctx context.Context) ([]models.YearGain, error) {
	rows, err := r.db.QueryxContext(ctx, `SELECT year, abs_gain, perc_gain FROM yearly_gains ORDER BY year DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := []models.YearGain{}
	for rows.Next() {
		var g models.YearGain
		if err := rows.StructScan(&g); err != nil {
			r.log.Warnf("scan yearly gain failed: %v", err)
			continue
		}
		res = append(res, g)
	}
	return res, rows.Err()
}

// TransactionDateRange returns the earliest and latest transaction dates,
// the default modelling window when no explicit dates are configured.
func (r *Repo) TransactionDateRange(ctx context.Context) (time.Time, time.Time, error) {
	var bounds struct {
		Min time.Time `db:"min_date"`
		Max time.Time `db:"max_date"`
	}
	if err := r.db.GetContext(ctx, &bounds, `SELECT MIN(date) AS min_date, MAX(date) AS max_date FROM transactions`); err != nil {
		return time.Time{}, time.Time{}, err
	}
	return bounds.Min, bounds.Max, nil
}
