package orders

import (
	"math"
	"math/rand"
)

// Summary holds the headline KPIs for the current filtered collection.
// The *Change fields are simulated period-over-period deltas, see
// Summarize.
type Summary struct {
	TotalSales    float64 `json:"totalSales"`
	TotalProfit   float64 `json:"totalProfit"`
	TotalOrders   int     `json:"totalOrders"`
	AvgOrderValue float64 `json:"avgOrderValue"`
	SalesChange   float64 `json:"salesChange"`
	ProfitChange  float64 `json:"profitChange"`
	OrdersChange  float64 `json:"ordersChange"`
	AOVChange     float64 `json:"aovChange"`
}

// Summarize computes the headline KPIs. TotalOrders counts distinct
// order ids, not line items.
//
// The change percentages are NOT derived from historical data: no
// previous period exists in the static dataset, so they are simulated
// uniformly within a fixed range per metric, exactly as the dashboard
// has always displayed them. Callers must not treat them as real
// comparisons.
func Summarize(records []OrderRecord) Summary {
	var totalSales, totalProfit float64
	orderIDs := make(map[int]bool)

	for _, r := range records {
		totalSales += r.TotalSales
		totalProfit += r.Profit
		orderIDs[r.OrderID] = true
	}

	totalOrders := len(orderIDs)
	avgOrderValue := 0.0
	if totalOrders > 0 {
		avgOrderValue = totalSales / float64(totalOrders)
	}

	return Summary{
		TotalSales:    totalSales,
		TotalProfit:   totalProfit,
		TotalOrders:   totalOrders,
		AvgOrderValue: avgOrderValue,
		SalesChange:   simulateChange(5, 15),
		ProfitChange:  simulateChange(-5, 15),
		OrdersChange:  simulateChange(3, 10),
		AOVChange:     simulateChange(1, 5),
	}
}

// simulateChange draws a uniform value in [min, max) rounded to one
// decimal place.
func simulateChange(min, max float64) float64 {
	return math.Round((rand.Float64()*(max-min)+min)*10) / 10
}
