// Package utils provides loose conversion helpers for decoded JSON values.
// Remote responses are decoded into map[string]any, so numbers arrive as
// float64 or json.Number and identifiers may be strings or numbers.
package utils
