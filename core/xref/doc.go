// Package xref stores external references: the link between an identifier in
// the order management system (a product SKU, a transfer order name) and the
// Vend object it was synchronized to.
//
// References are written after successful calls to Vend and read back to
// answer "have we already sent this?" without calling the API. The store is
// optional; features run without it when no database is configured.
package xref
