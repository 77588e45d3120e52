package types

import (
	"testing"
	"time"
)

func TestProtectedDate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"valid date", "2021/10/19", "2021/10/19"},
		{"empty string", "", ""},
		{"garbage", "not-a-date", ""},
		{"wrong layout", "19.10.2021", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := ParseDate(tt.in)
			if got := d.Format(); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
			if d.IsZero() != (tt.want == "") {
				t.Errorf("IsZero() = %v inconsistent with Format()", d.IsZero())
			}
		})
	}
}

func TestProtectedDateEqual(t *testing.T) {
	day := time.Date(2021, 10, 19, 15, 4, 5, 0, time.UTC)
	sameDay := time.Date(2021, 10, 19, 0, 0, 0, 0, time.UTC)
	if !NewDate(day).Equal(NewDate(sameDay)) {
		t.Error("dates on the same day should compare equal")
	}
	if !ParseDate("").Equal(ParseDate("bad")) {
		t.Error("two empty dates should compare equal")
	}
	if ParseDate("2021/10/19").Equal(ParseDate("")) {
		t.Error("set and empty dates should differ")
	}
}
