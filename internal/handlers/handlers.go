package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"stockfolio/internal/models"
)

// Store is the slice of the repository the report API reads from.
type Store interface {
	GetEvolution(ctx context.Context, role string) ([]models.EvolutionPoint, error)
	GetDistribution(ctx context.Context) ([]models.AssetWeight, error)
	GetComparison(ctx context.Context) ([]models.BenchmarkComparison, error)
	GetCompanyDividends(ctx context.Context) ([]models.CompanyDividend, error)
	GetYearDividends(ctx context.Context) ([]models.YearDividend, error)
	GetYearlyGains(ctx context.Context) ([]models.YearGain, error)
}

type Handler struct {
	store Store
	log   *logrus.Logger
}

func NewHandler(store Store, log *logrus.Logger) *Handler {
	return &Handler{store: store, log: log}
}

// Register mounts all report routes on the router.
func (h *Handler) Register(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/portfolio/evolution", h.GetPortfolioEvolution)
	r.GET("/portfolio/distribution", h.GetDistribution)
	r.GET("/portfolio/yearly-gains", h.GetYearlyGains)
	r.GET("/benchmark/evolution", h.GetBenchmarkEvolution)
	r.GET("/benchmark/comparison", h.GetComparison)
	r.GET("/dividends/companies", h.GetCompanyDividends)
	r.GET("/dividends/years", h.GetYearDividends)
}

func (h *Handler) getEvolution(c *gin.Context, role string) {
	points, err := h.store.GetEvolution(c.Request.Context(), role)
	if err != nil {
		h.log.Errorf("get %s evolution failed: %v", role, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	res := make([]gin.H, 0, len(points))
	for _, p := range points {
		res = append(res, gin.H{
			"date":      p.Date.Format("2006-01-02"),
			"value":     p.Value.StringFixed(2),
			"abs_gain":  p.AbsGain.StringFixed(2),
			"perc_gain": p.PercGain.StringFixed(2),
		})
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) GetPortfolioEvolution(c *gin.Context) { h.getEvolution(c, "portfolio") }
func (h *Handler) GetBenchmarkEvolution(c *gin.Context) { h.getEvolution(c, "benchmark") }

func (h *Handler) GetDistribution(c *gin.Context) {
	weights, err := h.store.GetDistribution(c.Request.Context())
	if err != nil {
		h.log.Errorf("get distribution failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	res := make([]gin.H, 0, len(weights))
	for _, w := range weights {
		res = append(res, gin.H{
			"ticker":   w.Ticker,
			"quantity": w.Quantity.String(),
			"value":    w.Value.StringFixed(2),
			"percent":  w.Percent.StringFixed(2),
		})
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) GetComparison(c *gin.Context) {
	comparisons, err := h.store.GetComparison(c.Request.Context())
	if err != nil {
		h.log.Errorf("get comparison failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	res := make([]gin.H, 0, len(comparisons))
	for _, cmp := range comparisons {
		res = append(res, gin.H{
			"ticker":              cmp.Ticker,
			"asset_perc_gain":     cmp.AssetPercGain.StringFixed(2),
			"benchmark_perc_gain": cmp.BenchmarkPercGain.StringFixed(2),
		})
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) GetCompanyDividends(c *gin.Context) {
	companies, err := h.store.GetCompanyDividends(c.Request.Context())
	if err != nil {
		h.log.Errorf("get company dividends failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	res := make([]gin.H, 0, len(companies))
	for _, cd := range companies {
		res = append(res, gin.H{"ticker": cd.Ticker, "total": cd.Total.StringFixed(2)})
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) GetYearDividends(c *gin.Context) {
	years, err := h.store.GetYearDividends(c.Request.Context())
	if err != nil {
		h.log.Errorf("get year dividends failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	res := make([]gin.H, 0, len(years))
	for _, yd := range years {
		res = append(res, gin.H{"year": yd.Year, "total": yd.Total.StringFixed(2)})
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) GetYearlyGains(c *gin.Context) {
	gains, err := h.store.GetYearlyGains(c.Request.Context())
	if err != nil {
		h.log.Errorf("get yearly gains failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	res := make([]gin.H, 0, len(gains))
	for _, g := range gains {
		res = append(res, gin.H{
			"year":      g.Year,
			"abs_gain":  g.AbsGain.StringFixed(2),
			"perc_gain": g.PercGain.StringFixed(2),
		})
	}
	c.JSON(http.StatusOK, res)
}
