// Package apperrors provides chainable application errors. Packages declare
// sentinel hierarchies with New and derive richer errors from them; errors.Is
// and errors.As keep working across the whole chain, including any foreign
// errors that were attached along the way.
package apperrors

// Error is the interface implemented by all application errors. It extends
// the standard error interface with derivation and wrapping helpers. All
// helpers return a new Error so sentinels are never mutated.
type Error interface {
	error
	Unwrap() error // support for errors.Is / errors.As

	New(msg string) Error                  // derives a new error using current as template
	Msg(msg string) Error                  // new error with message, wrapping the original
	MsgErr(msg string, err ...error) Error // new error with message, wrapping extra errors
	Err(err ...error) Error                // attaches additional errors to current error
	SetExpandError(bool) Error             // controls whether ErrorAll expands wrapped errors
	Prefix(string) Error                   // adds a prefix to the error message
	Suffix(string) Error                   // adds a suffix to the error message
	ErrorAll() string                      // full message including wrapped errors
	UnwrapAll() []error                    // all wrapped errors
}
