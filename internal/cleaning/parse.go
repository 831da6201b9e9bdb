package cleaning

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// billingStripRe removes everything except digits, dots and minus signs so
// that currency markup like "$1,234.56" parses cleanly.
var billingStripRe = regexp.MustCompile(`[^0-9.\-]`)

// dateLayouts are the admission date formats accepted on input. Cleaned
// cells always hold the first layout.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"02-01-2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

var titleCaser = cases.Title(language.English)

// genderAliases maps single-letter gender codes to their full form after
// title-casing.
var genderAliases = map[string]string{
	"M": "Male",
	"F": "Female",
}

// ParseBilling strips non-numeric characters from a billing amount and
// parses the remainder as a decimal. Unparseable values are null.
func ParseBilling(s string) (float64, bool) {
	stripped := billingStripRe.ReplaceAllString(s, "")
	if stripped == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(stripped, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseAge parses an age as a number. Unparseable values are null.
func ParseAge(s string) (float64, bool) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseDate parses an admission date in any accepted layout. Unparseable
// values are null.
func ParseDate(s string) (time.Time, bool) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, trimmed); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

// NormalizeGender trims and title-cases a gender value and expands the
// single-letter M/F codes. Null stays null; imputation happens later.
func NormalizeGender(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return ""
	}
	titled := titleCaser.String(strings.ToLower(trimmed))
	if full, ok := genderAliases[strings.ToUpper(trimmed)]; ok {
		return full
	}
	return titled
}

// Median returns the median of values: the middle element for odd counts,
// the mean of the two middle elements for even counts. Zero for no values.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// FormatFloat renders a numeric cell in its canonical minimal form so that
// reloading the cleaned CSV round-trips exactly.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
