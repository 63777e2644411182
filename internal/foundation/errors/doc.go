// Package errors provides the classified error type used across sitecfg.
//
// A ClassifiedError carries a category (config, validation, content, git,
// render, ...), a severity and a retry strategy next to the message, plus a
// small bag of structured context that ends up in log attributes. Build one
// with the fluent ErrorBuilder:
//
//	err := errors.ValidationError("sidebar directory missing").
//		WithContext("group", "Courses").
//		WithContext("directory", dir).
//		Build()
//
// CLIErrorAdapter turns classified errors into exit codes and terminal output.
package errors
