// Package endpoint implements the integration envelope shared by every
// feature.
//
// Requests are JSON objects carrying a request_id and one named object:
//
//	{"request_id": "12e12341523e449c3000001", "purchase_order": {...}}
//
// Responses echo the request id, a human readable summary and any objects
// produced, grouped under their plural name:
//
//	{"request_id": "...", "summary": "...", "purchase_orders": [{...}]}
//
// Successful calls answer 200. Failures answer 500, and the summary tells
// validation failures (rejected by Vend or by local checks) apart from
// everything else.
package endpoint
