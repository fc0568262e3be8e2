package pdf

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Amounts use Indian digit grouping: Rs. 1,50,000.
var inr = message.NewPrinter(language.MustParse("en-IN"))

func formatINR(amount float64) string {
	return "Rs. " + inr.Sprint(number.Decimal(amount, number.MaxFractionDigits(0)))
}

// formatDate renders a calendar date string for display. An empty or
// unparseable value reads "Not set".
func formatDate(dateStr string) string {
	if dateStr == "" {
		return "Not set"
	}
	t, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		if t, err = time.Parse(time.RFC3339, dateStr); err != nil {
			return "Not set"
		}
	}
	return t.Format("2 January 2006")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func orNotSet(s string) string {
	if s == "" {
		return "Not set"
	}
	return s
}

// title upper-cases the first letter of an enum value for display.
func title(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
