// Package errs defines custom error types and utilities.
//
// Every failure a caller can see is expressed as an *HTTPError so the
// global error handler can write one consistent, flat JSON shape:
//
//	{ "error": "Customer not found", "message": "No customer found with the provided ID" }
package errs
