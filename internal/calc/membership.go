package calc

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultMembershipDays applies when a duration names no known unit.
const DefaultMembershipDays = 30

var leadingCount = regexp.MustCompile(`^\s*(\d+)`)

// DurationInDays converts a free-form duration such as "1 Month",
// "3 months", "1 year" or "45 days". Months are 30 days and years 365. A
// missing or zero count means one month or year, and 30 for days.
func DurationInDays(duration string) int {
	d := strings.ToLower(duration)
	n := 0
	if m := leadingCount.FindStringSubmatch(d); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil {
			n = v
		}
	}
	switch {
	case strings.Contains(d, "month"):
		return countOr(n, 1) * 30
	case strings.Contains(d, "year"):
		return countOr(n, 1) * 365
	case strings.Contains(d, "day"):
		return countOr(n, DefaultMembershipDays)
	default:
		return DefaultMembershipDays
	}
}

func countOr(n, fallback int) int {
	if n == 0 {
		return fallback
	}
	return n
}

// MembershipEndDate is start plus the duration in days.
func MembershipEndDate(start time.Time, duration string) time.Time {
	return start.AddDate(0, 0, DurationInDays(duration))
}
