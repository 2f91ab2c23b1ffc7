package validation

import (
	"errors"
	"strings"
	"unicode"
)

// Input bounds for the two identifier kinds.
const (
	LocationMaxLen = 100
	SymbolMaxLen   = 10
)

// ErrLocationEmpty is returned when location is empty or whitespace-only after trim.
var ErrLocationEmpty = errors.New("location is required")

// ErrLocationTooLong is returned when location length exceeds the maximum.
var ErrLocationTooLong = errors.New("location too long")

// ErrLocationInvalidChars is returned when location contains disallowed characters.
var ErrLocationInvalidChars = errors.New("location contains invalid characters")

// ErrSymbolEmpty is returned when the ticker symbol is empty after trim.
var ErrSymbolEmpty = errors.New("symbol is required")

// ErrSymbolTooLong is returned when a ticker symbol exceeds the maximum.
var ErrSymbolTooLong = errors.New("symbol too long")

// ErrSymbolInvalidChars is returned when a ticker symbol contains disallowed characters.
var ErrSymbolInvalidChars = errors.New("symbol contains invalid characters")

// ErrIntervalInvalid is returned for an unsupported price interval.
var ErrIntervalInvalid = errors.New("interval must be daily, 1min, 5min, 15min, 30min or 60min")

// ErrRangeInvalid is returned for an unsupported output range.
var ErrRangeInvalid = errors.New("range must be compact or full")

// ValidateLocation trims the input, enforces the length bound (in runes), and
// restricts to allowed characters: letters (Unicode), digits, space, comma,
// hyphen. Returns the trimmed string or an error suitable for 400 responses.
// Normalization (e.g. lowercase) is left to the service layer.
func ValidateLocation(input string) (string, error) {
	s := strings.TrimSpace(input)
	r := []rune(s)
	if len(r) == 0 {
		return "", ErrLocationEmpty
	}
	if len(r) > LocationMaxLen {
		return "", ErrLocationTooLong
	}
	for _, c := range r {
		if !isAllowedLocationRune(c) {
			return "", ErrLocationInvalidChars
		}
	}
	return s, nil
}

// ValidateSymbol trims and uppercases a ticker symbol and restricts it to
// ASCII letters, digits, dot and hyphen (e.g. AAPL, BRK.B).
func ValidateSymbol(input string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(input))
	if len(s) == 0 {
		return "", ErrSymbolEmpty
	}
	if len(s) > SymbolMaxLen {
		return "", ErrSymbolTooLong
	}
	for _, c := range s {
		if !isAllowedSymbolRune(c) {
			return "", ErrSymbolInvalidChars
		}
	}
	return s, nil
}

// ValidateInterval checks a price interval query value. Empty selects daily.
func ValidateInterval(input string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	switch s {
	case "":
		return "daily", nil
	case "daily", "1min", "5min", "15min", "30min", "60min":
		return s, nil
	default:
		return "", ErrIntervalInvalid
	}
}

// ValidateRange checks an output-range query value. Empty selects compact.
func ValidateRange(input string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	switch s {
	case "":
		return "compact", nil
	case "compact", "full":
		return s, nil
	default:
		return "", ErrRangeInvalid
	}
}

// isAllowedLocationRune returns true for letters (Unicode), digits, space, comma, hyphen.
func isAllowedLocationRune(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsNumber(r) {
		return true
	}
	switch r {
	case ' ', ',', '-':
		return true
	}
	return false
}

func isAllowedSymbolRune(r rune) bool {
	if r >= 'A' && r <= 'Z' {
		return true
	}
	if r >= '0' && r <= '9' {
		return true
	}
	return r == '.' || r == '-'
}
