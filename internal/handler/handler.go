// Package handler is the first layer after the router.
//
// It binds path, query and body input into request types, validates
// them with the validation package and calls the service layer.
// Handlers never talk to the provider directly and never write error
// responses themselves; errors flow to the global error handler.
package handler
