// Package utils holds small helpers shared across packages.
package utils

// F64Ptr returns a pointer to the given float64 value.
func F64Ptr(v float64) *float64 { return &v }

// U64Ptr returns a pointer to the given uint64 value.
func U64Ptr(v uint64) *uint64 { return &v }

// StrPtr returns a pointer to the given string value.
func StrPtr(v string) *string { return &v }
