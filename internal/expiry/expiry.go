package expiry

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

var (
	// ErrFormat is returned when the input is not MM/YY, MM/YYYY or YYMM.
	ErrFormat = errors.New("expiry must be MM/YY or MM/YYYY")
	// ErrMonth is returned when the month is outside 01..12.
	ErrMonth = errors.New("expiry month must be 01..12")
)

// Month is a calendar month of a card expiry. Two-digit years are always
// resolved as 2000+YY.
type Month struct {
	Year  int
	Month time.Month
}

// Of returns the calendar month of t in UTC.
func Of(t time.Time) Month {
	t = t.UTC()
	return Month{Year: t.Year(), Month: t.Month()}
}

// After reports whether m is strictly after the calendar month of t (UTC).
func (m Month) After(t time.Time) bool {
	cur := Of(t)
	if m.Year != cur.Year {
		return m.Year > cur.Year
	}
	return m.Month > cur.Month
}

// CardFace formats m as MM/YY.
func (m Month) CardFace() string {
	return fmt.Sprintf("%02d/%02d", int(m.Month), m.Year%100)
}

// YYMM formats m as YYMM (ISO 8583 DE14).
func (m Month) YYMM() string {
	return fmt.Sprintf("%02d%02d", m.Year%100, int(m.Month))
}

// AddYears returns the month of t (UTC) shifted by years.
func AddYears(t time.Time, years int) Month {
	m := Of(t)
	m.Year += years
	return m
}

// ParseCardFace accepts strictly "MM/YY" or "MM/YYYY".
func ParseCardFace(in string) (Month, error) {
	if len(in) != 5 && len(in) != 7 {
		return Month{}, ErrFormat
	}
	if in[2] != '/' || !digits(in[:2]) || !digits(in[3:]) {
		return Month{}, ErrFormat
	}
	mm, _ := strconv.Atoi(in[:2])
	if mm < 1 || mm > 12 {
		return Month{}, ErrMonth
	}
	year, _ := strconv.Atoi(in[3:])
	if len(in) == 5 {
		year += 2000
	}
	return Month{Year: year, Month: time.Month(mm)}, nil
}

// FromYYMM parses the ISO 8583 YYMM form.
func FromYYMM(yymm string) (Month, error) {
	if len(yymm) != 4 || !digits(yymm) {
		return Month{}, fmt.Errorf("expiry must be YYMM (4 digits): %w", ErrFormat)
	}
	yy, _ := strconv.Atoi(yymm[:2])
	mm, _ := strconv.Atoi(yymm[2:])
	if mm < 1 || mm > 12 {
		return Month{}, ErrMonth
	}
	return Month{Year: 2000 + yy, Month: time.Month(mm)}, nil
}

func digits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
