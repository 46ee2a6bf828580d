package tokenclient

import (
	"errors"
	"fmt"
)

type TransferErrorCode string

const (
	InsufficientFunds TransferErrorCode = "INSUFFICIENT_FUNDS"
	OwnerMismatch     TransferErrorCode = "OWNER_MISMATCH"
	MintMismatch      TransferErrorCode = "MINT_MISMATCH"
	Overflow          TransferErrorCode = "OVERFLOW"
	AccountNotFound   TransferErrorCode = "ACCOUNT_NOT_FOUND"
)

// TransferError is returned when the token program rejects a balance change.
type TransferError struct {
	Code    TransferErrorCode
	Message string
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("token transfer rejected (%s): %s", e.Code, e.Message)
}

func newTransferError(code TransferErrorCode, format string, args ...any) *TransferError {
	return &TransferError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// IsTransferError reports whether err is a rejected transfer, optionally of one of the given codes.
func IsTransferError(err error, codes ...TransferErrorCode) bool {
	var transferErr *TransferError
	if !errors.As(err, &transferErr) {
		return false
	}
	if len(codes) == 0 {
		return true
	}
	for _, code := range codes {
		if transferErr.Code == code {
			return true
		}
	}
	return false
}
