// Package vend is the client side of the Vend POS REST API.
//
// It covers four concerns that the rest of the service builds on:
//
//   - Transport: Client.Request issues JSON calls against
//     https://{site}.vendhq.com/api/ with a bearer token, waits on a rate
//     limiter, and returns a *Response exposing the status code and decoded body.
//     Network failures and undecodable bodies surface as *TransportError.
//   - Validation: Validate turns a response that signals an error into an
//     *EndpointError carrying the remote body verbatim.
//   - Pagination: Paginate drives page-numbered listings by following the
//     {page, pages} block of each response.
//   - Identifier caches: payment types, registers, product handles and outlets
//     are listed once per Client and served from memory afterwards. The tables
//     are never invalidated, so a long-lived Client keeps serving the names it
//     saw first; build a new Client to observe renames made in Vend.
//
// No call in this package is retried. Retrying a failed delete against a
// resource that is already gone would hide the original error.
package vend
