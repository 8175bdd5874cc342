package catalog

import (
	"regexp"
	"strings"
	"time"
)

// Calendar range accepted for every timestamp carried by an entity.
const (
	minTimestampYear = 1900
	maxTimestampYear = 3000
)

// isbnPattern matches ISBN-10 and ISBN-13 values after separators are
// stripped.
var isbnPattern = regexp.MustCompile(`^(?:\d{9}[\dXx]|\d{13})$`)

func timestampInRange(t time.Time) bool {
	if t.IsZero() {
		return false
	}
	year := t.Year()
	return year >= minTimestampYear && year <= maxTimestampYear
}

func isBlank(value string) bool {
	return strings.TrimSpace(value) == ""
}

func isValidISBN(isbn string) bool {
	normalized := strings.NewReplacer("-", "", " ", "").Replace(isbn)
	return isbnPattern.MatchString(normalized)
}
