package orders

import (
	"sort"
	"strconv"
	"strings"
)

// monthLabels is the fixed x-axis for monthly trends, so charts keep a
// stable axis even when some months have no sales.
var monthLabels = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// CategoryChart projects per-category sales totals into a labeled
// series. Labels appear in the order categories were first observed.
func CategoryChart(records []OrderRecord) ChartData {
	totals := TotalsByField(records, ByCategory)

	seen := make(map[string]bool)
	chart := ChartData{Labels: []string{}, Values: []float64{}}
	for _, r := range records {
		if seen[r.Category] {
			continue
		}
		seen[r.Category] = true
		chart.Labels = append(chart.Labels, r.Category)
		chart.Values = append(chart.Values, totals[r.Category])
	}
	return chart
}

// SalesTrend projects period totals into a labeled series. Monthly
// trends are zero-filled across all twelve months in calendar order;
// week and quarter labels are sorted by their numeric suffix.
func SalesTrend(records []OrderRecord, granularity Granularity) ChartData {
	totals := TotalsByPeriod(records, granularity)

	if granularity == GranularityMonth {
		chart := ChartData{
			Labels: make([]string, len(monthLabels)),
			Values: make([]float64, len(monthLabels)),
		}
		copy(chart.Labels, monthLabels)
		for i, month := range monthLabels {
			chart.Values[i] = totals[month]
		}
		return chart
	}

	labels := make([]string, 0, len(totals))
	for label := range totals {
		labels = append(labels, label)
	}

	switch granularity {
	case GranularityWeek:
		sortByNumericSuffix(labels, "Week ")
	case GranularityQuarter:
		sortByNumericSuffix(labels, "Q")
	default:
		sort.Strings(labels)
	}

	chart := ChartData{
		Labels: labels,
		Values: make([]float64, len(labels)),
	}
	for i, label := range labels {
		chart.Values[i] = totals[label]
	}
	return chart
}

// sortByNumericSuffix orders period labels by the number that follows
// the given prefix.
func sortByNumericSuffix(labels []string, prefix string) {
	sort.Slice(labels, func(i, j int) bool {
		a, _ := strconv.Atoi(strings.TrimPrefix(labels[i], prefix))
		b, _ := strconv.Atoi(strings.TrimPrefix(labels[j], prefix))
		return a < b
	})
}

// distributionChart flattens a percentage distribution into a labeled
// series, labels in first-seen record order.
func distributionChart(records []OrderRecord, selector FieldSelector, percentages map[string]int) ChartData {
	seen := make(map[string]bool)
	chart := ChartData{Labels: []string{}, Values: []float64{}}
	for _, r := range records {
		key := selector(r)
		if seen[key] {
			continue
		}
		seen[key] = true
		chart.Labels = append(chart.Labels, key)
		chart.Values = append(chart.Values, float64(percentages[key]))
	}
	return chart
}

// SegmentChart returns the segment share-of-sales doughnut series.
func SegmentChart(records []OrderRecord) ChartData {
	return distributionChart(records, BySegment, SegmentDistribution(records))
}

// ShipModeChart returns the ship-mode share-of-sales series.
func ShipModeChart(records []OrderRecord) ChartData {
	return distributionChart(records, ByShipMode, ShipModeDistribution(records))
}
