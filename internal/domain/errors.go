package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failure for the caller: validation and state errors
// are corrected by the caller, conflicts surface a business rule with the
// numbers involved, transient failures are the only class safe to retry, and
// then only as the whole operation.
type ErrorKind string

const (
	KindValidation ErrorKind = "VALIDATION"
	KindConflict   ErrorKind = "CONFLICT"
	KindState      ErrorKind = "STATE"
	KindNotFound   ErrorKind = "NOT_FOUND"
	KindTransient  ErrorKind = "TRANSIENT"
)

// Error codes, one per distinct failure the core can report.
const (
	CodeInvalidDateRange        = "INVALID_DATE_RANGE"
	CodeInactiveParty           = "INACTIVE_PARTY"
	CodeToolInactive            = "TOOL_INACTIVE"
	CodeBelowMinimumDays        = "BELOW_MINIMUM_DAYS"
	CodeInsufficientStock       = "INSUFFICIENT_STOCK"
	CodeNotFound                = "NOT_FOUND"
	CodeInvalidState            = "INVALID_STATE"
	CodeContractNotEditable     = "CONTRACT_NOT_EDITABLE"
	CodeInvalidContractState    = "INVALID_CONTRACT_STATE"
	CodeInvalidQuantity         = "INVALID_QUANTITY"
	CodeInvalidIdentifier       = "INVALID_IDENTIFIER"
	CodeInvalidDeliveryMode     = "INVALID_DELIVERY_MODE"
	CodeInvalidCondition        = "INVALID_CONDITION"
	CodeInvalidPaymentMethod    = "INVALID_PAYMENT_METHOD"
	CodeInvalidReturnDate       = "INVALID_RETURN_DATE"
	CodeExceedsPending          = "EXCEEDS_PENDING"
	CodeInvalidAmount           = "INVALID_AMOUNT"
	CodeInvalidPaymentDate      = "INVALID_PAYMENT_DATE"
	CodeNothingEarnedYet        = "NOTHING_EARNED_YET"
	CodeExceedsAvailableBalance = "EXCEEDS_AVAILABLE_BALANCE"
	CodeAlreadyPaid             = "ALREADY_PAID"
	CodeAmountMismatch          = "AMOUNT_MISMATCH"
	CodeNotFinalized            = "NOT_FINALIZED"
	CodeNoDepositPaid           = "NO_DEPOSIT_PAID"
	CodeNoDepositRequired       = "NO_DEPOSIT_REQUIRED"
	CodeAlreadyRefunded         = "ALREADY_REFUNDED"
	CodeNegativeAmount          = "NEGATIVE_AMOUNT"
	CodeExceedsDeposit          = "EXCEEDS_DEPOSIT"
	CodeTransientFailure        = "TRANSIENT_FAILURE"
)

type Error struct {
	Kind    ErrorKind
	Code    string
	Message string
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func NewValidationError(code, format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: fmt.Sprintf(format, args...)}
}

func NewConflictError(code, format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Code: code, Message: fmt.Sprintf(format, args...)}
}

func NewStateError(code, format string, args ...any) *Error {
	return &Error{Kind: KindState, Code: code, Message: fmt.Sprintf(format, args...)}
}

func NewNotFoundError(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

func NewTransientError(cause error, format string, args ...any) *Error {
	return &Error{Kind: KindTransient, Code: CodeTransientFailure, Message: fmt.Sprintf(format, args...), cause: cause}
}

// KindOf returns the kind of a domain error, or KindTransient for anything
// that is not a domain error (unknown persistence failures are treated as
// retryable by the caller, never silently absorbed).
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindTransient
}

// CodeOf returns the stable code of a domain error, or the empty string.
func CodeOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

func IsCode(err error, code string) bool {
	return CodeOf(err) == code
}
