// Package server holds the HTTP server configuration.
//
// The Config struct defines the HTTP port, the API key protecting every route,
// and the channel name stamped onto objects returned to the caller.
package server
