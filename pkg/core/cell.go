package core

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatCell returns the plain display form of a normalized cell value.
// NULL cells render as "NULL"; dates without a time part render as 2006-01-02.
func FormatCell(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case time.Time:
		if val.Hour() == 0 && val.Minute() == 0 && val.Second() == 0 && val.Nanosecond() == 0 {
			return val.Format(time.DateOnly)
		}
		return val.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// ParseDecimal reports whether s is a plain decimal literal with a fractional
// part, such as "1234.50" or "-0.5", and returns its value. Drivers return
// exact NUMERIC values in this form. Integer-looking strings are not
// decimals, so text columns holding years or codes keep their text.
func ParseDecimal(s string) (float64, bool) {
	digits := strings.TrimPrefix(strings.TrimPrefix(s, "-"), "+")
	whole, frac, ok := strings.Cut(digits, ".")
	if !ok || whole == "" || frac == "" || !allDigits(whole) || !allDigits(frac) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func allDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
