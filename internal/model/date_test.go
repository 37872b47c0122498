package model

import (
	"testing"
	"time"
)

func TestDateOnlyScanFromDriverTime(t *testing.T) {
	// Postgres DATE columns come back from the driver as time.Time, not as
	// the text form. The scanned value must be the plain calendar date, not
	// an RFC3339 timestamp.
	loc, err := time.LoadLocation("Asia/Jerusalem")
	if err != nil {
		t.Fatal(err)
	}

	var d DateOnly
	if err := d.Scan(time.Date(2026, 9, 7, 0, 0, 0, 0, loc)); err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	if d.String() != "2026-09-07" {
		t.Errorf("expected 2026-09-07, got %q", d)
	}
}

func TestDateOnlyScanFromText(t *testing.T) {
	cases := []struct {
		in   interface{}
		want string
	}{
		{"2026-09-07", "2026-09-07"},
		{[]byte("2026-09-07"), "2026-09-07"},
		{"2026-09-07T00:00:00+03:00", "2026-09-07"},
		{nil, ""},
	}
	for _, tc := range cases {
		var d DateOnly
		if err := d.Scan(tc.in); err != nil {
			t.Errorf("Scan(%v) returned error: %v", tc.in, err)
			continue
		}
		if d.String() != tc.want {
			t.Errorf("Scan(%v): expected %q, got %q", tc.in, tc.want, d)
		}
	}
}

func TestDateOnlyScanRejectsMalformed(t *testing.T) {
	for _, in := range []interface{}{"09-07", "not-a-date-at", 42} {
		var d DateOnly
		if err := d.Scan(in); err == nil {
			t.Errorf("Scan(%v) should fail", in)
		}
	}
}

func TestDateOnlyValue(t *testing.T) {
	v, err := DateOnly("2026-09-07").Value()
	if err != nil {
		t.Fatalf("Value returned error: %v", err)
	}
	if v != "2026-09-07" {
		t.Errorf("expected 2026-09-07, got %v", v)
	}

	v, err = DateOnly("").Value()
	if err != nil || v != nil {
		t.Errorf("empty date should serialize as NULL, got %v, %v", v, err)
	}
}
