package model

import (
	"regexp"
	"strings"
)

var (
	numericPattern = regexp.MustCompile(`^[-+±]?` + number + `(±` + number + `)?$`)
	plusMinus      = regexp.MustCompile(`\s*(±|\+/-)\s*`)
)

// number is an unsigned decimal with optional exponent, k/M suffix and
// percent sign
const number = `(\d+(\.\d+)?|\.\d+)([eE][-+]?\d+)?[kKmM]?%?`

// IsNumeric reports whether a cell or token holds a number, a decimal, a
// percentage, a count such as 25k or 1.2M, a mean with its spread such as
// "76.1 ± 0.2", or a value in scientific notation. Wrapping parentheses or
// brackets, thousands separators and trailing significance marks are ignored.
func IsNumeric(s string) bool {
	s = strings.Trim(s, "()[],;")
	s = strings.TrimRight(s, "*†‡")
	s = strings.ReplaceAll(s, ",", "")
	s = plusMinus.ReplaceAllString(s, "±")
	if s == "" {
		return false
	}
	return numericPattern.MatchString(s)
}

// IsPlaceholder reports whether s is a dash standing in for a missing value
func IsPlaceholder(s string) bool {
	switch s {
	case "-", "–", "—", "--", "n/a", "N/A":
		return true
	}
	return false
}
