// Package errors provides the classified error primitives used across the
// blog builder.
//
// Every failure that can abort a build is expressed as a ClassifiedError so
// the CLI can name the offending file or field and choose an exit code.
//
// Key features:
//   - ErrorCategory: broad classification (malformed_post, unknown_language, template, filesystem, ...)
//   - ErrorSeverity: impact level (fatal, error, warning, info)
//   - ClassifiedError: structured error with category, severity and context
//   - ErrorBuilder: fluent API for creating classified errors
//   - CLIErrorAdapter: exit code and message presentation
//
// Example usage:
//
//	err := errors.MalformedPostError("closing delimiter not found").
//		WithContext("file", path).
//		WithCause(frontmatter.ErrMissingClosingDelimiter).
//		Build()
package errors
