// Package lib holds shared helpers that do not fit strictly into
// another layer.
package lib
