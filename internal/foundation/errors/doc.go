// Package errors provides the classified error primitives used across shalinks.
//
// Errors carry a category, a severity and a retry hint so that the CLI and the
// HTTP server can pick exit codes and status codes without string matching.
// The commit link engine never produces errors; these types cover configuration,
// repository detection, I/O and transport failures around it.
//
// Example usage:
//
//	err := errors.NewError(errors.CategoryGit, "remote not found").
//		WithContext("remote", "origin").
//		WithCause(originalErr).
//		Build()
package errors
