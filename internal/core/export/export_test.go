package export

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retaildash/sales-backend-go/internal/core/orders"
	"github.com/retaildash/sales-backend-go/pkg/logger"
)

func sampleRecords() []orders.OrderRecord {
	return []orders.OrderRecord{
		{
			OrderID:      10001,
			OrderDate:    orders.NewTimestamp(time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)),
			CustomerName: `Alice "Ace" Cooper`,
			Country:      "United States",
			State:        "Kentucky",
			City:         "Henderson",
			Region:       "South",
			Segment:      "Consumer",
			ShipMode:     "Second Class",
			Category:     "Furniture",
			SubCategory:  "Bookcases",
			ProductName:  "Bush Somerset Collection Bookcase",
			Discount:     0,
			TotalSales:   261.96,
			Profit:       41.91,
			Quantity:     2,
			Month:        "Mar",
		},
		{
			OrderID:      10002,
			OrderDate:    orders.NewTimestamp(time.Date(2024, time.June, 12, 0, 0, 0, 0, time.UTC)),
			CustomerName: "Bob Smith",
			Country:      "Canada",
			State:        "Ontario",
			City:         "Toronto",
			Region:       "East",
			Segment:      "Corporate",
			ShipMode:     "Standard Class",
			Category:     "Technology",
			SubCategory:  "Phones",
			ProductName:  "Nokia Smart Phone",
			Discount:     0.2,
			TotalSales:   907.15,
			Profit:       90.72,
			Quantity:     4,
			Month:        "Jun",
		},
	}
}

func TestToCSVHeader(t *testing.T) {
	out := ToCSV(sampleRecords())

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t,
		"Order ID,OrderDate,Customer Name,Country,State,City,Region,Segment,Ship Mode,Category,Sub-Category,Product Name,Discount,Total Sales,Profit,Quantity,Month",
		lines[0])
}

func TestToCSVQuotingRules(t *testing.T) {
	out := ToCSV(sampleRecords())

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	row := lines[1]

	// Strings are always quoted, embedded quotes doubled.
	assert.Contains(t, row, `"Alice ""Ace"" Cooper"`)
	assert.Contains(t, row, `"United States"`)
	// Numbers stay bare.
	assert.True(t, strings.HasPrefix(row, "10001,"))
	assert.Contains(t, row, ",261.96,")
	// Dates go out as quoted ISO strings.
	assert.Contains(t, row, `"2024-03-05T00:00:00.000Z"`)
}

func TestToCSVRoundTripsThroughStandardReader(t *testing.T) {
	records := sampleRecords()
	out := ToCSV(records)

	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "10002", rows[2][0])
	assert.Equal(t, "2024-06-12T00:00:00.000Z", rows[2][1])
	assert.Equal(t, "Bob Smith", rows[2][2])
	assert.Equal(t, "907.15", rows[2][13])
	assert.Equal(t, "4", rows[2][15])
}

func TestToJSONIsIndented(t *testing.T) {
	records := sampleRecords()

	out, err := ToJSON(records)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "[\n  {"))

	var decoded []orders.OrderRecord
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, records, decoded)
}

func TestExporterCSV(t *testing.T) {
	exp := NewExporter("walmart_sales_data", logger.New())

	res, err := exp.Export(sampleRecords(), FormatCSV, "")
	require.NoError(t, err)

	assert.Equal(t, "walmart_sales_data.csv", res.Filename)
	assert.Equal(t, "text/csv", res.ContentType)
	assert.Contains(t, string(res.Content), "Order ID,")
}

func TestExporterJSONCustomFilename(t *testing.T) {
	exp := NewExporter("walmart_sales_data", logger.New())

	res, err := exp.Export(sampleRecords(), FormatJSON, "q2_snapshot")
	require.NoError(t, err)

	assert.Equal(t, "q2_snapshot.json", res.Filename)
	assert.Equal(t, "application/json", res.ContentType)
}

func TestExporterEmptyCollection(t *testing.T) {
	exp := NewExporter("walmart_sales_data", logger.New())

	_, err := exp.Export(nil, FormatCSV, "")
	assert.ErrorIs(t, err, ErrNoData)
}

func TestExporterUnsupportedFormat(t *testing.T) {
	exp := NewExporter("walmart_sales_data", logger.New())

	_, err := exp.Export(sampleRecords(), Format("xlsx"), "")
	assert.Error(t, err)
}
