package model

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// ── DATE column custom type ──

// DateOnly is a calendar date in YYYY-MM-DD form backed by a PostgreSQL
// DATE column. The driver hands DATE values back as time.Time, which a
// plain string field would round-trip as an RFC3339 timestamp; Scan
// normalizes whatever the driver returns into the ten-character form
// that natural keys and range comparisons are built on.
type DateOnly string

const dateOnlyLayout = "2006-01-02"

// Scan implements sql.Scanner.
func (d *DateOnly) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = ""
		return nil
	case time.Time:
		*d = DateOnly(v.Format(dateOnlyLayout))
		return nil
	case []byte:
		return d.scanText(string(v))
	case string:
		return d.scanText(v)
	default:
		return fmt.Errorf("DateOnly.Scan: unsupported type %T", src)
	}
}

// scanText accepts both the plain DATE text form and longer timestamp
// strings whose date part leads.
func (d *DateOnly) scanText(s string) error {
	if len(s) < len(dateOnlyLayout) {
		return fmt.Errorf("DateOnly.Scan: malformed date %q", s)
	}
	day := s[:len(dateOnlyLayout)]
	if _, err := time.Parse(dateOnlyLayout, day); err != nil {
		return fmt.Errorf("DateOnly.Scan: malformed date %q", s)
	}
	*d = DateOnly(day)
	return nil
}

// Value implements driver.Valuer.
func (d DateOnly) Value() (driver.Value, error) {
	if d == "" {
		return nil, nil
	}
	return string(d), nil
}

func (d DateOnly) String() string { return string(d) }
