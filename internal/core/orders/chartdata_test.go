package orders

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSalesTrendMonthZeroFilled(t *testing.T) {
	records := []OrderRecord{
		{OrderDate: NewTimestamp(date(2024, time.March, 5)), TotalSales: 120},
		{OrderDate: NewTimestamp(date(2024, time.March, 20)), TotalSales: 80},
		{OrderDate: NewTimestamp(date(2024, time.July, 1)), TotalSales: 50},
	}

	chart := SalesTrend(records, GranularityMonth)

	require.Len(t, chart.Labels, 12)
	assert.Equal(t, []string{
		"Jan", "Feb", "Mar", "Apr", "May", "Jun",
		"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
	}, chart.Labels)

	assert.Equal(t, []float64{0, 0, 200, 0, 0, 0, 50, 0, 0, 0, 0, 0}, chart.Values)
}

func TestSalesTrendMonthEmptyInputStillTwelveMonths(t *testing.T) {
	chart := SalesTrend(nil, GranularityMonth)

	require.Len(t, chart.Labels, 12)
	for _, v := range chart.Values {
		assert.Zero(t, v)
	}
}

func TestSalesTrendWeekSortedNumerically(t *testing.T) {
	records := []OrderRecord{
		{OrderDate: NewTimestamp(date(2024, time.March, 10)), TotalSales: 30},
		{OrderDate: NewTimestamp(date(2024, time.January, 2)), TotalSales: 10},
		{OrderDate: NewTimestamp(date(2024, time.December, 20)), TotalSales: 99},
	}

	chart := SalesTrend(records, GranularityWeek)

	require.NotEmpty(t, chart.Labels)
	// Numeric suffix ordering, not lexicographic: "Week 2" before "Week 11".
	prev := 0
	for _, label := range chart.Labels {
		var n int
		_, err := fmt.Sscanf(label, "Week %d", &n)
		require.NoError(t, err)
		assert.Greater(t, n, prev)
		prev = n
	}
}

func TestSalesTrendQuarterSorted(t *testing.T) {
	records := []OrderRecord{
		{OrderDate: NewTimestamp(date(2024, time.November, 1)), TotalSales: 40},
		{OrderDate: NewTimestamp(date(2024, time.February, 1)), TotalSales: 10},
		{OrderDate: NewTimestamp(date(2024, time.May, 1)), TotalSales: 20},
	}

	chart := SalesTrend(records, GranularityQuarter)

	assert.Equal(t, []string{"Q1", "Q2", "Q4"}, chart.Labels)
	assert.Equal(t, []float64{10, 20, 40}, chart.Values)
}

func TestSalesTrendYearSorted(t *testing.T) {
	records := []OrderRecord{
		{OrderDate: NewTimestamp(date(2025, time.June, 1)), TotalSales: 70},
		{OrderDate: NewTimestamp(date(2023, time.June, 1)), TotalSales: 30},
	}

	chart := SalesTrend(records, GranularityYear)

	assert.Equal(t, []string{"2023", "2025"}, chart.Labels)
	assert.Equal(t, []float64{30, 70}, chart.Values)
}

func TestCategoryChartFirstSeenOrder(t *testing.T) {
	records := []OrderRecord{
		{Category: "Technology", TotalSales: 100},
		{Category: "Furniture", TotalSales: 50},
		{Category: "Technology", TotalSales: 25},
	}

	chart := CategoryChart(records)

	assert.Equal(t, []string{"Technology", "Furniture"}, chart.Labels)
	assert.Equal(t, []float64{125, 50}, chart.Values)
}

func TestSegmentChartPercentages(t *testing.T) {
	records := []OrderRecord{
		{Segment: "Consumer", TotalSales: 300},
		{Segment: "Corporate", TotalSales: 100},
	}

	chart := SegmentChart(records)

	require.Len(t, chart.Labels, 2)
	got := map[string]float64{}
	for i, label := range chart.Labels {
		got[label] = chart.Values[i]
	}
	assert.Equal(t, map[string]float64{"Consumer": 75, "Corporate": 25}, got)
}

func TestShipModeChartPercentages(t *testing.T) {
	records := []OrderRecord{
		{ShipMode: "Standard Class", TotalSales: 90},
		{ShipMode: "Same Day", TotalSales: 10},
	}

	chart := ShipModeChart(records)

	got := map[string]float64{}
	for i, label := range chart.Labels {
		got[label] = chart.Values[i]
	}
	assert.Equal(t, map[string]float64{"Standard Class": 90, "Same Day": 10}, got)
}
