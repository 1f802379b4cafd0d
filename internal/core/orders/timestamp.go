package orders

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Timestamp is an order date stored as epoch milliseconds. The source
// dataset may supply it as a millisecond number or as a parseable date
// string; both are accepted on unmarshal. Marshalling always emits the
// millisecond number so served records are normalized.
type Timestamp int64

// NewTimestamp converts a time.Time to a Timestamp.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp(t.UnixMilli())
}

// Time returns the timestamp as a UTC time.Time.
func (ts Timestamp) Time() time.Time {
	return time.UnixMilli(int64(ts)).UTC()
}

// ISO renders the timestamp as an ISO-8601 string with millisecond
// precision, the format used in CSV exports.
func (ts Timestamp) ISO() string {
	return ts.Time().Format("2006-01-02T15:04:05.000Z")
}

// MarshalJSON emits the epoch-millisecond number.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(int64(ts), 10)), nil
}

// UnmarshalJSON accepts a millisecond number, a numeric string, or a
// date string in one of the formats observed in the dataset.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case float64:
		*ts = Timestamp(int64(v))
		return nil
	case string:
		parsed, err := parseDateString(v)
		if err != nil {
			return err
		}
		*ts = parsed
		return nil
	default:
		return fmt.Errorf("unsupported OrderDate value: %s", string(data))
	}
}

// dateFormats lists the string layouts accepted for order dates, tried
// in order.
var dateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"1/2/2006",
	"01/02/2006",
}

func parseDateString(s string) (Timestamp, error) {
	s = strings.TrimSpace(s)

	// Numeric strings are epoch values: ms for modern dates, otherwise s.
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n > 1e12 {
			return Timestamp(n), nil
		}
		return Timestamp(n * 1000), nil
	}

	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return NewTimestamp(t), nil
		}
	}

	return 0, fmt.Errorf("unparseable order date %q", s)
}
