// Package catalog implements the product, inventory and vendor endpoints.
//
// Products arrive with their variants; each variant is sent to Vend as its own
// product. A variant carrying an id is checked against Vend first and is
// recreated when Vend deleted it; a variant without one is matched by SKU.
// Variants are only sent when something changed, and every sent variant is
// recorded as an external reference keyed by SKU.
package catalog
