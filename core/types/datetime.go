package types

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// DateTime wraps time.Time to accept the handful of timestamp formats
// clients actually send (RFC3339, date-only, datetime without zone).
type DateTime struct {
	time.Time
}

var dateTimeFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Now returns the current time as a DateTime
func Now() DateTime {
	return DateTime{Time: time.Now()}
}

func (dt *DateTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		dt.Time = time.Time{}
		return nil
	}

	for _, format := range dateTimeFormats {
		if t, err := time.Parse(format, s); err == nil {
			dt.Time = t
			return nil
		}
	}
	return fmt.Errorf("unsupported datetime format: %s", s)
}

func (dt DateTime) MarshalJSON() ([]byte, error) {
	if dt.Time.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + dt.Time.Format(time.RFC3339) + `"`), nil
}

// Value implements driver.Valuer for database storage
func (dt DateTime) Value() (driver.Value, error) {
	if dt.Time.IsZero() {
		return nil, nil
	}
	return dt.Time, nil
}

// Scan implements sql.Scanner for database retrieval
func (dt *DateTime) Scan(value any) error {
	if value == nil {
		dt.Time = time.Time{}
		return nil
	}
	switch v := value.(type) {
	case time.Time:
		dt.Time = v
		return nil
	case []byte:
		return dt.UnmarshalJSON(v)
	case string:
		return dt.UnmarshalJSON([]byte(v))
	}
	return fmt.Errorf("cannot scan %T into DateTime", value)
}
