// Package period represents regular calendar periods such as months or quarters. Periods of the
// same frequency are stored as an ordinal count since 1970 which makes offsets between two
// periods plain integer arithmetic.
package period

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrUnknownFreq  = errors.New("unknown period frequency")
	ErrFreqMismatch = errors.New("periods have different frequencies")
	ErrInvalidValue = errors.New("invalid period value")
)

// Freq is the spacing between consecutive periods
type Freq uint8

const (
	FreqUnknown Freq = iota
	Daily
	Monthly
	Quarterly
	Annual
)

const epochYear = 1970

func (f Freq) String() string {
	switch f {
	case Daily:
		return "D"
	case Monthly:
		return "M"
	case Quarterly:
		return "Q"
	case Annual:
		return "Y"
	default:
		return "unknown"
	}
}

// ParseFreq maps a pandas style frequency alias to a Freq
func ParseFreq(s string) (Freq, error) {
	switch strings.ToUpper(s) {
	case "D":
		return Daily, nil
	case "M", "ME":
		return Monthly, nil
	case "Q", "QE":
		return Quarterly, nil
	case "Y", "A", "YE":
		return Annual, nil
	}
	return FreqUnknown, fmt.Errorf("%q, %w", s, ErrUnknownFreq)
}

func (f Freq) MarshalText() ([]byte, error) {
	if f == FreqUnknown || f > Annual {
		return nil, ErrUnknownFreq
	}
	return []byte(f.String()), nil
}

func (f *Freq) UnmarshalText(data []byte) error {
	freq, err := ParseFreq(string(data))
	if err != nil {
		return err
	}
	*f = freq
	return nil
}

// Period is a single span of time at a given frequency
type Period struct {
	Freq    Freq  `json:"freq"`
	Ordinal int64 `json:"ordinal"`
}

// New returns the period of frequency freq containing t. Only the calendar date of t in its own
// location is used.
func New(t time.Time, freq Freq) (Period, error) {
	year, month, day := t.Date()
	y := int64(year - epochYear)
	m := int64(month - 1)

	var ord int64
	switch freq {
	case Daily:
		ord = time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Unix() / 86400
	case Monthly:
		ord = y*12 + m
	case Quarterly:
		ord = y*4 + m/3
	case Annual:
		ord = y
	default:
		return Period{}, ErrUnknownFreq
	}
	return Period{Freq: freq, Ordinal: ord}, nil
}

// Month is a shorthand for the monthly period of the given year and month
func Month(year int, month time.Month) Period {
	return Period{Freq: Monthly, Ordinal: int64(year-epochYear)*12 + int64(month-1)}
}

// Start returns the first instant of the period in UTC
func (p Period) Start() time.Time {
	switch p.Freq {
	case Daily:
		return time.Unix(p.Ordinal*86400, 0).UTC()
	case Monthly:
		y, m := floorDiv(p.Ordinal, 12)
		return time.Date(epochYear+int(y), time.Month(m+1), 1, 0, 0, 0, 0, time.UTC)
	case Quarterly:
		y, q := floorDiv(p.Ordinal, 4)
		return time.Date(epochYear+int(y), time.Month(q*3+1), 1, 0, 0, 0, 0, time.UTC)
	case Annual:
		return time.Date(epochYear+int(p.Ordinal), time.January, 1, 0, 0, 0, 0, time.UTC)
	}
	return time.Time{}
}

// Add shifts the period by n periods of its own frequency
func (p Period) Add(n int) Period {
	return Period{Freq: p.Freq, Ordinal: p.Ordinal + int64(n)}
}

// Sub returns the number of periods from o to p, so o.Add(p.Sub(o)) == p.
func (p Period) Sub(o Period) (int, error) {
	if p.Freq != o.Freq {
		return 0, fmt.Errorf("%s and %s, %w", p.Freq, o.Freq, ErrFreqMismatch)
	}
	return int(p.Ordinal - o.Ordinal), nil
}

func (p Period) Before(o Period) bool {
	return p.Freq == o.Freq && p.Ordinal < o.Ordinal
}

func (p Period) After(o Period) bool {
	return p.Freq == o.Freq && p.Ordinal > o.Ordinal
}

func (p Period) Equal(o Period) bool {
	return p == o
}

func (p Period) IsZero() bool {
	return p.Freq == FreqUnknown
}

func (p Period) String() string {
	start := p.Start()
	switch p.Freq {
	case Daily:
		return start.Format("2006-01-02")
	case Monthly:
		return start.Format("2006-01")
	case Quarterly:
		return fmt.Sprintf("%dQ%d", start.Year(), (int(start.Month())-1)/3+1)
	case Annual:
		return strconv.Itoa(start.Year())
	}
	return "unknown"
}

// Parse reads a period formatted the way String writes it
func Parse(s string, freq Freq) (Period, error) {
	var (
		t   time.Time
		err error
	)
	switch freq {
	case Daily:
		t, err = time.Parse("2006-01-02", s)
	case Monthly:
		t, err = time.Parse("2006-01", s)
	case Quarterly:
		year, quarter, found := strings.Cut(strings.ToUpper(s), "Q")
		if !found {
			return Period{}, fmt.Errorf("%q, %w", s, ErrInvalidValue)
		}
		y, yErr := strconv.Atoi(year)
		q, qErr := strconv.Atoi(quarter)
		if yErr != nil || qErr != nil || q < 1 || q > 4 {
			return Period{}, fmt.Errorf("%q, %w", s, ErrInvalidValue)
		}
		t = time.Date(y, time.Month((q-1)*3+1), 1, 0, 0, 0, 0, time.UTC)
	case Annual:
		t, err = time.Parse("2006", s)
	default:
		return Period{}, ErrUnknownFreq
	}
	if err != nil {
		return Period{}, fmt.Errorf("%q, %w", s, ErrInvalidValue)
	}
	return New(t, freq)
}

// Range returns n consecutive periods beginning at start
func Range(start Period, n int) []Period {
	if n <= 0 {
		return nil
	}
	out := make([]Period, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, start.Add(i))
	}
	return out
}

// RangeInclusive returns every period from start through end
func RangeInclusive(start, end Period) ([]Period, error) {
	n, err := end.Sub(start)
	if err != nil {
		return nil, err
	}
	return Range(start, n+1), nil
}

func floorDiv(a, b int64) (int64, int64) {
	q := a / b
	r := a % b
	if r < 0 {
		q--
		r += b
	}
	return q, r
}
