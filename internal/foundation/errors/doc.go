// Package errors provides the classified error primitives used across staticbuild.
//
// A ClassifiedError carries a category, a severity, a retry strategy and a small
// context map. Errors are assembled with the fluent ErrorBuilder:
//
//	err := errors.WrapError(ioErr, errors.CategoryFileSystem, "copy file failed").
//		WithContext("path", dst).
//		Build()
//
// The CLIErrorAdapter turns a classified error into a user-facing message and a
// process exit code.
package errors
