package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/retaildash/sales-backend-go/internal/core/orders"
	"github.com/sirupsen/logrus"
)

// Format selects the serialization of an export download.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ErrNoData is returned when an export is requested for an empty
// filtered collection. It is a diagnostic, not a user-facing failure.
var ErrNoData = errors.New("no data to export")

// csvHeaders is the fixed column order, matching the record's natural
// field order and the source dataset's key names.
var csvHeaders = []string{
	"Order ID", "OrderDate", "Customer Name", "Country", "State", "City",
	"Region", "Segment", "Ship Mode", "Category", "Sub-Category",
	"Product Name", "Discount", "Total Sales", "Profit", "Quantity", "Month",
}

// ToCSV renders records as CSV. String fields are always quoted with
// internal quotes doubled, numeric fields are unquoted, and the order
// date is rendered as a quoted ISO-8601 timestamp. Empty input yields
// an empty string.
func ToCSV(records []orders.OrderRecord) string {
	if len(records) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(strings.Join(csvHeaders, ","))

	for _, r := range records {
		b.WriteByte('\n')
		fields := []string{
			strconv.Itoa(r.OrderID),
			quote(r.OrderDate.ISO()),
			quote(r.CustomerName),
			quote(r.Country),
			quote(r.State),
			quote(r.City),
			quote(r.Region),
			quote(r.Segment),
			quote(r.ShipMode),
			quote(r.Category),
			quote(r.SubCategory),
			quote(r.ProductName),
			formatNumber(r.Discount),
			formatNumber(r.TotalSales),
			formatNumber(r.Profit),
			strconv.Itoa(r.Quantity),
			quote(r.Month),
		}
		b.WriteString(strings.Join(fields, ","))
	}

	return b.String()
}

// ToJSON renders records as pretty-printed JSON with 2-space indent.
func ToJSON(records []orders.OrderRecord) (string, error) {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal records: %w", err)
	}
	return string(data), nil
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Exporter produces download payloads from a filtered collection.
type Exporter struct {
	baseFilename string
	logger       *logrus.Logger
}

// NewExporter creates an exporter with the configured base filename.
func NewExporter(baseFilename string, logger *logrus.Logger) *Exporter {
	return &Exporter{
		baseFilename: baseFilename,
		logger:       logger,
	}
}

// Result is a ready-to-serve export download.
type Result struct {
	Content     []byte
	Filename    string
	ContentType string
}

// Export serializes the collection in the requested format. An empty
// filename falls back to the configured base name; the extension is
// derived from the format. Empty collections return ErrNoData.
func (e *Exporter) Export(records []orders.OrderRecord, format Format, filename string) (*Result, error) {
	if len(records) == 0 {
		e.logger.WithField("format", string(format)).Warn("Export requested with no data")
		return nil, ErrNoData
	}

	if filename == "" {
		filename = e.baseFilename
	}

	switch format {
	case FormatCSV:
		return &Result{
			Content:     []byte(ToCSV(records)),
			Filename:    filename + ".csv",
			ContentType: "text/csv",
		}, nil
	case FormatJSON:
		content, err := ToJSON(records)
		if err != nil {
			return nil, err
		}
		return &Result{
			Content:     []byte(content),
			Filename:    filename + ".json",
			ContentType: "application/json",
		}, nil
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}
