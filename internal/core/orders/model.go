package orders

import "time"

// OrderRecord is one denormalized order line item. JSON keys match the
// source dataset verbatim, including the spaced and hyphenated names.
// Multiple line items may share an order id.
type OrderRecord struct {
	OrderID      int       `json:"Order ID"`
	OrderDate    Timestamp `json:"OrderDate"`
	CustomerName string    `json:"Customer Name"`
	Country      string    `json:"Country"`
	State        string    `json:"State"`
	City         string    `json:"City"`
	Region       string    `json:"Region"`
	Segment      string    `json:"Segment"`
	ShipMode     string    `json:"Ship Mode"`
	Category     string    `json:"Category"`
	SubCategory  string    `json:"Sub-Category"`
	ProductName  string    `json:"Product Name"`
	Discount     float64   `json:"Discount"`
	TotalSales   float64   `json:"Total Sales"`
	Profit       float64   `json:"Profit"`
	Quantity     int       `json:"Quantity"`
	Month        string    `json:"Month"`
}

// FilterCriteria is the set of active constraints on the collection.
// Nil dates and empty strings impose no constraint. EndDate is inclusive
// of its full calendar day. A state filter is only meaningful together
// with a country filter; the engine itself does not enforce that pairing.
type FilterCriteria struct {
	StartDate *time.Time
	EndDate   *time.Time
	Country   string
	State     string
	Category  string
	Segment   string
	Region    string
}

// Empty reports whether the criteria impose no constraint at all.
func (fc FilterCriteria) Empty() bool {
	return fc.StartDate == nil && fc.EndDate == nil &&
		fc.Country == "" && fc.State == "" && fc.Category == "" &&
		fc.Segment == "" && fc.Region == ""
}

// ChartData is a labeled series consumed by chart widgets. Labels and
// Values are parallel slices.
type ChartData struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// CountrySales is one entry of a country ranking. The meaning of
// Percentage depends on the producing function: top-N rankings compute
// it against the displayed subset, full rankings against the grand total.
type CountrySales struct {
	Name       string  `json:"name"`
	Value      float64 `json:"value"`
	Percentage int     `json:"percentage"`
}

// ProductProfit describes the highest-cumulative-profit product.
type ProductProfit struct {
	Product  string  `json:"product"`
	Profit   float64 `json:"profit"`
	Sales    float64 `json:"sales"`
	Category string  `json:"category"`
}

// CustomerSales describes the highest-cumulative-sales customer.
// OrderCount counts distinct order ids, not line items.
type CustomerSales struct {
	Name       string  `json:"name"`
	TotalSales float64 `json:"totalSales"`
	OrderCount int     `json:"orderCount"`
}

// FieldSelector extracts one categorical dimension from a record.
type FieldSelector func(OrderRecord) string

// Selectors for the grouping dimensions.
var (
	ByCountry     FieldSelector = func(r OrderRecord) string { return r.Country }
	ByState       FieldSelector = func(r OrderRecord) string { return r.State }
	ByRegion      FieldSelector = func(r OrderRecord) string { return r.Region }
	BySegment     FieldSelector = func(r OrderRecord) string { return r.Segment }
	ByShipMode    FieldSelector = func(r OrderRecord) string { return r.ShipMode }
	ByCategory    FieldSelector = func(r OrderRecord) string { return r.Category }
	BySubCategory FieldSelector = func(r OrderRecord) string { return r.SubCategory }
	ByCustomer    FieldSelector = func(r OrderRecord) string { return r.CustomerName }
	ByProduct     FieldSelector = func(r OrderRecord) string { return r.ProductName }
)
