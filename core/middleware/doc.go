// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation guarding every endpoint except /metrics.
//   - rayid: a unique request id (RayID) for every incoming request, stored in
//     the context locals and echoed in the X-Ray-ID response header.
//
// RayID is registered first so that rejected requests are traced too.
package middleware
