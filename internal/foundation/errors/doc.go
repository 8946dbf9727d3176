// Package errors provides foundational, type-safe error primitives used across newsbuild.
//
// This package contains classified error types and helpers for robust error handling,
// including a fluent builder API for constructing ClassifiedError values with context.
//
// Key features:
//   - ErrorCategory: Broad error classification (config, auth, network, template, etc.)
//   - ErrorSeverity: Impact level (fatal, error, warning, info)
//   - RetryStrategy: Whether a caller may try the operation again
//   - ClassifiedError: Structured error with category, severity, and context
//   - ErrorBuilder: Fluent API for creating classified errors
//   - CLIErrorAdapter: exit code and message selection for the command line
//
// Example usage:
//
//	err := errors.NewError(errors.CategoryNetwork, "request failed").
//		WithSeverity(errors.SeverityError).
//		WithContext("environment", env).
//		WithCause(originalErr).
//		Build()
package errors
