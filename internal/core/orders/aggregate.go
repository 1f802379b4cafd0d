package orders

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"
)

// Granularity selects the period key used for trend grouping.
type Granularity string

const (
	GranularityWeek    Granularity = "week"
	GranularityMonth   Granularity = "month"
	GranularityQuarter Granularity = "quarter"
	GranularityYear    Granularity = "year"
)

// ParseGranularity validates a period string from the API.
func ParseGranularity(s string) (Granularity, error) {
	switch Granularity(s) {
	case GranularityWeek, GranularityMonth, GranularityQuarter, GranularityYear:
		return Granularity(s), nil
	}
	return "", fmt.Errorf("unknown trend period %q", s)
}

// groupTotal is one grouped accumulator, retained in first-seen record
// order so selection and tie-breaking are deterministic.
type groupTotal struct {
	key   string
	value float64
}

// groupSales sums Total Sales per dimension value, preserving the order
// in which values were first observed.
func groupSales(records []OrderRecord, selector FieldSelector) []groupTotal {
	index := make(map[string]int)
	groups := make([]groupTotal, 0)

	for _, r := range records {
		key := selector(r)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, groupTotal{key: key})
		}
		groups[i].value += r.TotalSales
	}

	return groups
}

// TotalsByField groups records by one dimension and sums Total Sales.
// Every observed value appears, including zero-summing ones.
func TotalsByField(records []OrderRecord, selector FieldSelector) map[string]float64 {
	totals := make(map[string]float64)
	for _, r := range records {
		totals[selector(r)] += r.TotalSales
	}
	return totals
}

// TotalsByPeriod groups records by a period key derived from the order
// date and sums Total Sales.
func TotalsByPeriod(records []OrderRecord, granularity Granularity) map[string]float64 {
	totals := make(map[string]float64)
	for _, r := range records {
		totals[PeriodKey(r.OrderDate.Time(), granularity)] += r.TotalSales
	}
	return totals
}

// PeriodKey derives the trend label for a date. The week number is the
// approximation the dashboard has always used, not strict ISO-8601:
// ceil((fractional days since Jan 1 + weekday of Jan 1 + 1) / 7).
func PeriodKey(t time.Time, granularity Granularity) string {
	switch granularity {
	case GranularityWeek:
		jan1 := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		days := t.Sub(jan1).Hours() / 24
		week := int(math.Ceil((days + float64(jan1.Weekday()) + 1) / 7))
		return fmt.Sprintf("Week %d", week)
	case GranularityMonth:
		return t.Format("Jan")
	case GranularityQuarter:
		return fmt.Sprintf("Q%d", (int(t.Month())-1)/3+1)
	case GranularityYear:
		return strconv.Itoa(t.Year())
	default:
		return "Unknown"
	}
}

// roundPercent computes round(100*value/total), guarding a zero total.
func roundPercent(value, total float64) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(value / total * 100))
}

// sortBySalesDesc orders groups by summed sales descending; ties keep
// first-seen order.
func sortBySalesDesc(groups []groupTotal) {
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].value > groups[j].value
	})
}

// TopCountriesBySales ranks countries by summed sales and keeps the
// first limit entries. Percentages are computed against the total of
// the returned subset, so the displayed slices always sum to ~100.
func TopCountriesBySales(records []OrderRecord, limit int) []CountrySales {
	groups := groupSales(records, ByCountry)
	sortBySalesDesc(groups)

	if limit < len(groups) {
		groups = groups[:limit]
	}

	var subsetTotal float64
	for _, g := range groups {
		subsetTotal += g.value
	}

	ranked := make([]CountrySales, len(groups))
	for i, g := range groups {
		ranked[i] = CountrySales{
			Name:       g.key,
			Value:      g.value,
			Percentage: roundPercent(g.value, subsetTotal),
		}
	}
	return ranked
}

// AllCountriesBySales ranks every country by summed sales. Unlike the
// top-N ranking, percentages here are shares of the grand total.
func AllCountriesBySales(records []OrderRecord) []CountrySales {
	groups := groupSales(records, ByCountry)
	sortBySalesDesc(groups)

	var grandTotal float64
	for _, g := range groups {
		grandTotal += g.value
	}

	ranked := make([]CountrySales, len(groups))
	for i, g := range groups {
		ranked[i] = CountrySales{
			Name:       g.key,
			Value:      g.value,
			Percentage: roundPercent(g.value, grandTotal),
		}
	}
	return ranked
}

// distribution converts per-group sales sums into integer percentages
// of the grand total. Values are rounded independently, so they are not
// guaranteed to sum to exactly 100.
func distribution(records []OrderRecord, selector FieldSelector) map[string]int {
	groups := groupSales(records, selector)

	var grandTotal float64
	for _, g := range groups {
		grandTotal += g.value
	}

	percentages := make(map[string]int, len(groups))
	for _, g := range groups {
		percentages[g.key] = roundPercent(g.value, grandTotal)
	}
	return percentages
}

// SegmentDistribution returns each segment's share of total sales.
func SegmentDistribution(records []OrderRecord) map[string]int {
	return distribution(records, BySegment)
}

// ShipModeDistribution returns each ship mode's share of total sales.
func ShipModeDistribution(records []OrderRecord) map[string]int {
	return distribution(records, ByShipMode)
}

// SubCategoryDistribution returns sub-category sales sums sorted
// descending, as parallel label/value slices. Values are raw currency
// sums, not percentages.
func SubCategoryDistribution(records []OrderRecord) ChartData {
	groups := groupSales(records, BySubCategory)
	sortBySalesDesc(groups)

	chart := ChartData{
		Labels: make([]string, len(groups)),
		Values: make([]float64, len(groups)),
	}
	for i, g := range groups {
		chart.Labels[i] = g.key
		chart.Values[i] = g.value
	}
	return chart
}

// MostProfitableProduct selects the product with the highest cumulative
// profit. Groups are visited in first-seen record order and compared
// with strict greater-than, so the first-seen group wins ties. Empty
// input yields a zero placeholder.
func MostProfitableProduct(records []OrderRecord) ProductProfit {
	type productAgg struct {
		name     string
		profit   float64
		sales    float64
		category string
	}

	index := make(map[string]int)
	products := make([]productAgg, 0)

	for _, r := range records {
		i, ok := index[r.ProductName]
		if !ok {
			i = len(products)
			index[r.ProductName] = i
			products = append(products, productAgg{name: r.ProductName, category: r.Category})
		}
		products[i].profit += r.Profit
		products[i].sales += r.TotalSales
	}

	if len(products) == 0 {
		return ProductProfit{}
	}

	best := products[0]
	for _, p := range products[1:] {
		if p.profit > best.profit {
			best = p
		}
	}

	return ProductProfit{
		Product:  best.name,
		Profit:   best.profit,
		Sales:    best.sales,
		Category: best.category,
	}
}

// TopCustomer selects the customer with the highest cumulative sales.
// OrderCount is the number of distinct order ids, not line items. Ties
// go to the first-seen customer; empty input yields a zero placeholder.
func TopCustomer(records []OrderRecord) CustomerSales {
	type customerAgg struct {
		name     string
		sales    float64
		orderIDs map[int]bool
	}

	index := make(map[string]int)
	customers := make([]customerAgg, 0)

	for _, r := range records {
		i, ok := index[r.CustomerName]
		if !ok {
			i = len(customers)
			index[r.CustomerName] = i
			customers = append(customers, customerAgg{name: r.CustomerName, orderIDs: make(map[int]bool)})
		}
		customers[i].sales += r.TotalSales
		customers[i].orderIDs[r.OrderID] = true
	}

	if len(customers) == 0 {
		return CustomerSales{}
	}

	best := customers[0]
	for _, c := range customers[1:] {
		if c.sales > best.sales {
			best = c
		}
	}

	return CustomerSales{
		Name:       best.name,
		TotalSales: best.sales,
		OrderCount: len(best.orderIDs),
	}
}
