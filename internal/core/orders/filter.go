package orders

import (
	"sort"
	"time"
)

// Filter returns the records matching every active criterion, as a
// stable subsequence of the input. All clauses are ANDed; absent
// criteria match everything. The input is never mutated.
func Filter(records []OrderRecord, criteria FilterCriteria) []OrderRecord {
	if criteria.Empty() {
		out := make([]OrderRecord, len(records))
		copy(out, records)
		return out
	}

	var endExclusive time.Time
	if criteria.EndDate != nil {
		// End date is inclusive of its full calendar day.
		endExclusive = criteria.EndDate.AddDate(0, 0, 1)
	}

	out := make([]OrderRecord, 0, len(records))
	for _, r := range records {
		date := r.OrderDate.Time()

		if criteria.StartDate != nil && date.Before(*criteria.StartDate) {
			continue
		}
		if criteria.EndDate != nil && !date.Before(endExclusive) {
			continue
		}
		if criteria.Country != "" && r.Country != criteria.Country {
			continue
		}
		if criteria.State != "" && r.State != criteria.State {
			continue
		}
		if criteria.Category != "" && r.Category != criteria.Category {
			continue
		}
		if criteria.Segment != "" && r.Segment != criteria.Segment {
			continue
		}
		if criteria.Region != "" && r.Region != criteria.Region {
			continue
		}

		out = append(out, r)
	}

	return out
}

// UniqueValues returns the sorted distinct values of one dimension.
func UniqueValues(records []OrderRecord, selector FieldSelector) []string {
	seen := make(map[string]bool)
	for _, r := range records {
		seen[selector(r)] = true
	}

	values := make([]string, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

// StatesByCountry indexes the distinct states observed per country,
// each list sorted.
func StatesByCountry(records []OrderRecord) map[string][]string {
	byCountry := make(map[string]map[string]bool)
	for _, r := range records {
		if byCountry[r.Country] == nil {
			byCountry[r.Country] = make(map[string]bool)
		}
		byCountry[r.Country][r.State] = true
	}

	result := make(map[string][]string, len(byCountry))
	for country, states := range byCountry {
		list := make([]string, 0, len(states))
		for s := range states {
			list = append(list, s)
		}
		sort.Strings(list)
		result[country] = list
	}
	return result
}

// FilterOptions holds the dropdown option lists for the filter UI.
// They are always derived from the unfiltered base collection so
// options never shrink as filters are applied.
type FilterOptions struct {
	Countries       []string            `json:"countries"`
	Categories      []string            `json:"categories"`
	Segments        []string            `json:"segments"`
	Regions         []string            `json:"regions"`
	StatesByCountry map[string][]string `json:"statesByCountry"`
}

// Options computes the filter option lists from the base collection.
func Options(records []OrderRecord) FilterOptions {
	return FilterOptions{
		Countries:       UniqueValues(records, ByCountry),
		Categories:      UniqueValues(records, ByCategory),
		Segments:        UniqueValues(records, BySegment),
		Regions:         UniqueValues(records, ByRegion),
		StatesByCountry: StatesByCountry(records),
	}
}
