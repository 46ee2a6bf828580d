package types

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	InternalServiceError ErrorCode = "INTERNAL_SERVICE_ERROR"
	ValidationError      ErrorCode = "VALIDATION_ERROR"
	NotFound             ErrorCode = "NOT_FOUND"
	BadRequest           ErrorCode = "BAD_REQUEST"

	// stake instruction errors
	OwnerMismatch        ErrorCode = "OWNER_MISMATCH"
	MintMismatch         ErrorCode = "MINT_MISMATCH"
	MathOverflow         ErrorCode = "MATH_OVERFLOW"
	TransferFailed       ErrorCode = "TRANSFER_FAILED"
	ConstraintSeeds      ErrorCode = "CONSTRAINT_SEEDS"
	ConstraintAssociated ErrorCode = "CONSTRAINT_ASSOCIATED"
	MissingSignature     ErrorCode = "MISSING_SIGNATURE"
	InvalidProgramID     ErrorCode = "INVALID_PROGRAM_ID"
)

func (c ErrorCode) String() string {
	return string(c)
}

// programErrorCodes keeps the numeric codes the on-chain program exposed
// for its own errors so indexers can keep matching on them.
var programErrorCodes = map[ErrorCode]uint32{
	OwnerMismatch: 6000,
	MintMismatch:  6001,
	MathOverflow:  6002,
}

// ProgramCode returns the numeric program error code, if the error code has one.
func (c ErrorCode) ProgramCode() (uint32, bool) {
	code, ok := programErrorCodes[c]
	return code, ok
}

// Error is an error with a status code and an error code
type Error struct {
	StatusCode int
	ErrorCode  ErrorCode
	Err        error
}

func NewError(statusCode int, errorCode ErrorCode, err error) *Error {
	return &Error{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Err:        err,
	}
}

func NewErrorWithMsg(statusCode int, errorCode ErrorCode, msg string) *Error {
	return &Error{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Err:        errors.New(msg),
	}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.ErrorCode.String()
	}
	return fmt.Sprintf("%s: %s", e.ErrorCode, e.Err.Error())
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewInternalServiceError(err error) *Error {
	return &Error{
		StatusCode: http.StatusInternalServerError,
		ErrorCode:  InternalServiceError,
		Err:        err,
	}
}

func NewValidationFailedError(err error) *Error {
	return &Error{
		StatusCode: http.StatusBadRequest,
		ErrorCode:  ValidationError,
		Err:        err,
	}
}

// NewStakeError builds a rejected-instruction error. All of them are client
// side problems, so they share the same status code.
func NewStakeError(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		StatusCode: http.StatusUnprocessableEntity,
		ErrorCode:  code,
		Err:        fmt.Errorf(format, args...),
	}
}

// IsErrorCode reports whether any error in err's chain is an *Error with the given code.
func IsErrorCode(err error, code ErrorCode) bool {
	var typedErr *Error
	if !errors.As(err, &typedErr) {
		return false
	}
	return typedErr.ErrorCode == code
}
