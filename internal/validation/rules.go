package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

const (
	// MaxCustomerIDLength is the longest customer id accepted.
	MaxCustomerIDLength = 99

	// MinQueryLength is the shortest free-text query accepted after trimming.
	MinQueryLength = 2
)

// emailRegex is a coarse syntactic check, not RFC 5322 validation.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.\S+$`)

var defaultCustomerIDRegex = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Rules holds the configurable parts of input validation.
type Rules struct {
	customerID *regexp.Regexp
}

// NewRules compiles the customer id pattern. An empty pattern keeps the default.
func NewRules(customerIDPattern string) (*Rules, error) {
	if customerIDPattern == "" {
		return DefaultRules(), nil
	}

	re, err := regexp.Compile(customerIDPattern)
	if err != nil {
		return nil, fmt.Errorf("invalid customer id pattern: %w", err)
	}

	return &Rules{customerID: re}, nil
}

// DefaultRules accepts ASCII letters, digits, hyphen and underscore in ids.
func DefaultRules() *Rules {
	return &Rules{customerID: defaultCustomerIDRegex}
}

// IsValidCustomerID reports whether id is 1..99 characters long and matches
// the configured character pattern.
func (r *Rules) IsValidCustomerID(id string) bool {
	if len(id) < 1 || len(id) > MaxCustomerIDLength {
		return false
	}

	re := defaultCustomerIDRegex
	if r != nil && r.customerID != nil {
		re = r.customerID
	}

	return re.MatchString(id)
}

// IsValidEmail reports whether email looks like local@domain.tld.
func IsValidEmail(email string) bool {
	if email == "" {
		return false
	}
	return emailRegex.MatchString(email)
}

// NormalizePhone strips every non-digit character.
//
//	"(555) 123-4567" -> "5551234567"
func NormalizePhone(phone string) string {
	var b strings.Builder
	b.Grow(len(phone))

	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	return b.String()
}

// NormalizeQuery trims q and reports whether it is long enough to search with.
func NormalizeQuery(q string) (string, bool) {
	q = strings.TrimSpace(q)
	return q, len([]rune(q)) >= MinQueryLength
}

// ClampLimit returns def for non-positive limits and caps the rest.
func ClampLimit(limit, def, ceiling int) int {
	if limit <= 0 {
		limit = def
	}
	return min(limit, ceiling)
}

// ClampOffset floors offset at zero. There is no upper bound.
func ClampOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}

// UnescapeParam percent-decodes a path parameter. Echo hands back the raw
// segment when the request path contained escapes.
func UnescapeParam(v string) string {
	unescaped, err := url.PathUnescape(v)
	if err != nil {
		return v
	}
	return unescaped
}
