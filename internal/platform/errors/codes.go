// Package errors provides structured error handling with i18n support.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Notation errors
	CodeDiceUnrecognizedType Code = "DICE_UNRECOGNIZED_TYPE"
	CodeDiceLimitExceeded    Code = "DICE_LIMIT_EXCEEDED"
	CodeNumberParseFailure   Code = "NUMBER_PARSE_FAILURE"

	// Invocation errors
	CodeInputMissing Code = "INPUT_MISSING"
)

// Codes lists every known code so catalogs can be checked for coverage.
func Codes() []Code {
	return []Code{
		CodeUnknown,
		CodeDiceUnrecognizedType,
		CodeDiceLimitExceeded,
		CodeNumberParseFailure,
		CodeInputMissing,
	}
}

// IsInvalidInput reports whether the code describes bad caller input rather
// than an internal failure.
func (c Code) IsInvalidInput() bool {
	switch c {
	case CodeDiceUnrecognizedType,
		CodeDiceLimitExceeded,
		CodeNumberParseFailure,
		CodeInputMissing:
		return true
	default:
		return false
	}
}
