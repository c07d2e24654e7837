package vars

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// NumberFormat holds the separators a locale uses when writing numbers.
type NumberFormat struct {
	// Decimal separates the integer and fractional parts.
	Decimal string
	// Group separates thousands, it may be empty.
	Group string
}

// InvariantFormat is the culture independent format.
var InvariantFormat = NumberFormat{Decimal: ".", Group: ","}

var currentFormat = InvariantFormat

// SetLocale sets the number format used when creating and printing Double
// variables. It should be called once at startup before any shell runs.
func SetLocale(tag language.Tag) {
	currentFormat = NewNumberFormat(tag)
}

// CurrentFormat returns the number format set by SetLocale.
func CurrentFormat() NumberFormat {
	return currentFormat
}

// NewNumberFormat derives the separators for the tag by formatting a sample
// number with the locale's printer.
func NewNumberFormat(tag language.Tag) NumberFormat {
	p := message.NewPrinter(tag)
	sample := p.Sprintf("%v", number.Decimal(1234567.5, number.MinFractionDigits(1), number.MaxFractionDigits(1)))

	var separators []string
	for _, r := range sample {
		switch {
		case r >= '0' && r <= '9':
			continue
		case unicode.IsDigit(r):
			// Native digits we wouldn't be able to parse back.
			return InvariantFormat
		default:
			separators = append(separators, string(r))
		}
	}

	switch len(separators) {
	case 0:
		return InvariantFormat
	case 1:
		return NumberFormat{Decimal: separators[0]}
	default:
		return NumberFormat{Decimal: separators[len(separators)-1], Group: separators[0]}
	}
}

// ParseFloat parses s as a floating point number written in this format.
// Group separators are not accepted, matching a "float" number style: an
// optional sign, digits, one decimal separator and an exponent.
func (f NumberFormat) ParseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, "_xX") {
		return 0, false
	}

	if f.Decimal != "." {
		if strings.Contains(s, ".") {
			return 0, false
		}
		s = strings.Replace(s, f.Decimal, ".", 1)
	}

	v, err := strconv.ParseFloat(s, 64)
	switch {
	case err == nil:
		return v, true
	case errors.Is(err, strconv.ErrRange):
		// Out of range values saturate to ±Inf or 0.
		return v, true
	default:
		return 0, false
	}
}

// FormatFloat writes v using this format's decimal separator. The output is
// accepted by ParseFloat.
func (f NumberFormat) FormatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}

	var out string
	if abs := math.Abs(v); v == 0 || (abs >= 1e-5 && abs < 1e15) {
		out = strconv.FormatFloat(v, 'f', -1, 64)
	} else {
		out = strconv.FormatFloat(v, 'g', -1, 64)
	}

	if f.Decimal != "." {
		out = strings.Replace(out, ".", f.Decimal, 1)
	}
	return out
}
