package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/retaildash/sales-backend-go/internal/core/orders"
	"github.com/retaildash/sales-backend-go/pkg/utils"
)

const dateParamLayout = "2006-01-02"

// parseCriteria builds filter criteria from the request query.
func parseCriteria(c *gin.Context) (orders.FilterCriteria, error) {
	criteria := orders.FilterCriteria{
		Country:  c.Query("country"),
		State:    c.Query("state"),
		Category: c.Query("category"),
		Segment:  c.Query("segment"),
		Region:   c.Query("region"),
	}

	if raw := c.Query("start_date"); raw != "" {
		t, err := time.Parse(dateParamLayout, raw)
		if err != nil {
			return criteria, fmt.Errorf("invalid start_date %q, expected YYYY-MM-DD", raw)
		}
		criteria.StartDate = &t
	}

	if raw := c.Query("end_date"); raw != "" {
		t, err := time.Parse(dateParamLayout, raw)
		if err != nil {
			return criteria, fmt.Errorf("invalid end_date %q, expected YYYY-MM-DD", raw)
		}
		criteria.EndDate = &t
	}

	return criteria, nil
}

// filteredRecords applies the request's criteria to the current
// snapshot. A false return means an error response was already sent.
func (h *Handlers) filteredRecords(c *gin.Context) ([]orders.OrderRecord, bool) {
	criteria, err := parseCriteria(c)
	if err != nil {
		utils.SendError(c, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return orders.Filter(h.dataset.Records(), criteria), true
}

// GetOrders returns the filtered collection.
func (h *Handlers) GetOrders(c *gin.Context) {
	filtered, ok := h.filteredRecords(c)
	if !ok {
		return
	}

	utils.SendSuccessWithMeta(c, filtered, gin.H{
		"total":    len(h.dataset.Records()),
		"filtered": len(filtered),
	})
}

// GetFilterOptions returns the dropdown option lists, always derived
// from the unfiltered base collection.
func (h *Handlers) GetFilterOptions(c *gin.Context) {
	utils.SendSuccess(c, orders.Options(h.dataset.Records()))
}

// GetSummary returns the headline KPIs for the filtered collection.
func (h *Handlers) GetSummary(c *gin.Context) {
	filtered, ok := h.filteredRecords(c)
	if !ok {
		return
	}
	utils.SendSuccess(c, orders.Summarize(filtered))
}

// GetCategoryChart returns per-category sales totals.
func (h *Handlers) GetCategoryChart(c *gin.Context) {
	filtered, ok := h.filteredRecords(c)
	if !ok {
		return
	}
	utils.SendSuccess(c, orders.CategoryChart(filtered))
}

// GetSalesTrend returns period totals; ?period=week|month|quarter|year,
// defaulting to month.
func (h *Handlers) GetSalesTrend(c *gin.Context) {
	granularity, err := orders.ParseGranularity(c.DefaultQuery("period", "month"))
	if err != nil {
		utils.SendError(c, http.StatusBadRequest, err.Error())
		return
	}

	filtered, ok := h.filteredRecords(c)
	if !ok {
		return
	}
	utils.SendSuccess(c, orders.SalesTrend(filtered, granularity))
}

// GetTopCountries returns the top-N country ranking; percentages are
// shares of the displayed subset.
func (h *Handlers) GetTopCountries(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "5"))
	if err != nil || limit <= 0 {
		utils.SendError(c, http.StatusBadRequest, "limit must be a positive integer")
		return
	}

	filtered, ok := h.filteredRecords(c)
	if !ok {
		return
	}
	utils.SendSuccess(c, orders.TopCountriesBySales(filtered, limit))
}

// GetAllCountries returns the full country ranking; percentages are
// shares of the grand total.
func (h *Handlers) GetAllCountries(c *gin.Context) {
	filtered, ok := h.filteredRecords(c)
	if !ok {
		return
	}
	utils.SendSuccess(c, orders.AllCountriesBySales(filtered))
}

// GetSegmentChart returns the segment share-of-sales series.
func (h *Handlers) GetSegmentChart(c *gin.Context) {
	filtered, ok := h.filteredRecords(c)
	if !ok {
		return
	}
	utils.SendSuccess(c, orders.SegmentChart(filtered))
}

// GetShipModeChart returns the ship-mode share-of-sales series.
func (h *Handlers) GetShipModeChart(c *gin.Context) {
	filtered, ok := h.filteredRecords(c)
	if !ok {
		return
	}
	utils.SendSuccess(c, orders.ShipModeChart(filtered))
}

// GetSubCategoryChart returns sub-category sales sums, descending.
func (h *Handlers) GetSubCategoryChart(c *gin.Context) {
	filtered, ok := h.filteredRecords(c)
	if !ok {
		return
	}
	utils.SendSuccess(c, orders.SubCategoryDistribution(filtered))
}

// GetTopProduct returns the most profitable product.
func (h *Handlers) GetTopProduct(c *gin.Context) {
	filtered, ok := h.filteredRecords(c)
	if !ok {
		return
	}
	utils.SendSuccess(c, orders.MostProfitableProduct(filtered))
}

// GetTopCustomer returns the highest-sales customer.
func (h *Handlers) GetTopCustomer(c *gin.Context) {
	filtered, ok := h.filteredRecords(c)
	if !ok {
		return
	}
	utils.SendSuccess(c, orders.TopCustomer(filtered))
}
