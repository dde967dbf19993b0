// Package validation contains the logic for validating
// request data.
//
// Request payloads are bound by Echo and then checked by their own
// Validate method, which combines struct tags (go-playground/validator)
// with the cheap syntactic rules in rules.go. Any failure is turned into
// a 400 *errs.HTTPError before the provider is contacted.
package validation
