// Package polling serves the get_* listing endpoints. Every listing accepts a
// since timestamp and returns the objects Vend changed after it.
package polling
