// Package testutil holds helpers shared by check package tests.
package testutil

import (
	"strings"
)

// Ptr returns a pointer to the value (useful for optional fields in tests).
func Ptr[T any](v T) *T {
	return &v
}

// ContainsDetail checks if any detail string contains the given substring.
func ContainsDetail(details []string, substr string) bool {
	for _, d := range details {
		if strings.Contains(d, substr) {
			return true
		}
	}
	return false
}

// LimitsTable renders a /proc/<pid>/limits file from name/value pairs, with the
// soft and hard columns both set to value.
func LimitsTable(limits map[string]string) string {
	var b strings.Builder
	b.WriteString("Limit                     Soft Limit           Hard Limit           Units     \n")
	for name, value := range limits {
		b.WriteString(padRight(name, 26))
		b.WriteString(padRight(value, 21))
		b.WriteString(padRight(value, 21))
		b.WriteString("\n")
	}
	return b.String()
}

func padRight(s string, n int) string {
	if len(s) >= n {
		return s + " "
	}
	return s + strings.Repeat(" ", n-len(s))
}
