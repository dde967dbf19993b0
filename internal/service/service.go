// Package service contains the business logic.
//
// It sits between the handler layer and the FieldRoutes client.
// It receives validated parameters from the handler, makes exactly
// one provider call, maps provider failures to API errors and reshapes
// the result into the response envelope.
package service
