// Package customers implements the customer endpoints and the mapping between
// integration customers and Vend customers.
package customers
