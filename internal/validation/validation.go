package validation

import (
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode"
)

// ErrRegionEmpty is returned when the region is empty or whitespace-only after trim.
var ErrRegionEmpty = errors.New("region is required")

// ErrRegionTooLong is returned when the region length exceeds the maximum.
var ErrRegionTooLong = errors.New("region too long")

// ErrRegionInvalidChars is returned when the region contains disallowed characters.
var ErrRegionInvalidChars = errors.New("region contains invalid characters")

// ErrInvalidDateFormat is returned when a date is not a parseable YYYY-MM-DD value.
var ErrInvalidDateFormat = errors.New("invalid date format, expected YYYY-MM-DD")

// ErrEndBeforeStart is returned when the end date precedes the start date.
var ErrEndBeforeStart = errors.New("end date must not be before start date")

// ErrInvalidPreference is returned when the preference choice is not 1, 2 or 3.
var ErrInvalidPreference = errors.New("preference must be 1, 2 or 3")

const dateLayout = "2006-01-02"

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ValidateRegion trims the input, enforces a length bound (maxLen in runes),
// and restricts to allowed characters: letters (Unicode), digits, space,
// comma, hyphen. Returns the trimmed string.
func ValidateRegion(input string, maxLen int) (string, error) {
	s := strings.TrimSpace(input)
	r := []rune(s)
	if len(r) == 0 {
		return "", ErrRegionEmpty
	}
	if maxLen > 0 && len(r) > maxLen {
		return "", ErrRegionTooLong
	}
	for _, c := range r {
		if !isAllowedRegionRune(c) {
			return "", ErrRegionInvalidChars
		}
	}
	return s, nil
}

// isAllowedRegionRune returns true for letters (Unicode), digits, space, comma, hyphen.
func isAllowedRegionRune(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsNumber(r) {
		return true
	}
	switch r {
	case ' ', ',', '-':
		return true
	}
	return false
}

// ParseDate validates and parses one YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if !datePattern.MatchString(s) {
		return time.Time{}, ErrInvalidDateFormat
	}
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return d, nil
}

// ValidateDateRange parses both dates and enforces end >= start. Returns the
// parsed bounds and the trip duration in days (inclusive of both endpoints).
func ValidateDateRange(startStr, endStr string) (start, end time.Time, days int, err error) {
	start, err = ParseDate(startStr)
	if err != nil {
		return time.Time{}, time.Time{}, 0, err
	}
	end, err = ParseDate(endStr)
	if err != nil {
		return time.Time{}, time.Time{}, 0, err
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, 0, ErrEndBeforeStart
	}
	days = int(end.Sub(start).Hours()/24) + 1
	return start, end, days, nil
}

// ValidatePreference checks the travel-style choice against the closed set.
func ValidatePreference(choice string) error {
	switch strings.TrimSpace(choice) {
	case "1", "2", "3":
		return nil
	default:
		return ErrInvalidPreference
	}
}
