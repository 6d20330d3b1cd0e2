package store

import (
	"fmt"
	"strings"
)

// Filter selects documents. A document matches a query when every filter holds.
type Filter func(doc Document) bool

// Eq matches documents whose field equals value. Numbers are compared by value,
// everything else by its string form.
func Eq(field string, value any) Filter {
	return func(doc Document) bool {
		got, ok := doc[field]
		return ok && equal(got, value)
	}
}

// Ne matches documents whose field is missing or differs from value.
func Ne(field string, value any) Filter {
	eq := Eq(field, value)
	return func(doc Document) bool {
		return !eq(doc)
	}
}

// HasSuffix matches string fields ending with suffix, ignoring case.
func HasSuffix(field, suffix string) Filter {
	suffix = strings.ToLower(suffix)
	return func(doc Document) bool {
		s, ok := doc[field].(string)
		return ok && strings.HasSuffix(strings.ToLower(s), suffix)
	}
}

func matches(doc Document, filters []Filter) bool {
	for _, f := range filters {
		if f != nil && !f(doc) {
			return false
		}
	}
	return true
}

func equal(a, b any) bool {
	if x, ok := toFloat(a); ok {
		y, ok := toFloat(b)
		return ok && x == y
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
