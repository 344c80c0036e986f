// Package errors defines error types used throughout solfleet.
//
// The FleetError type captures the error cases that can occur while managing
// the wallet fleet, carrying a stable code so callers can distinguish
// configuration problems, store problems, and per-wallet network failures.
package errors

import (
	"errors"
	"fmt"
)

// Error codes for solfleet.
const (
	ErrCodeMissingMainWallet = "MISSING_MAIN_WALLET"
	ErrCodeInvalidSelector   = "INVALID_SELECTOR"
	ErrCodeStoreCorrupt      = "STORE_CORRUPT"
	ErrCodeStoreIO           = "STORE_IO"
	ErrCodeInvalidRecord     = "INVALID_RECORD"
	ErrCodeAddressMismatch   = "ADDRESS_MISMATCH"
	ErrCodeInvalidAmount     = "INVALID_AMOUNT"
	ErrCodeInsufficientFunds = "INSUFFICIENT_FUNDS"
	ErrCodeRPCUnavailable    = "RPC_UNAVAILABLE"
	ErrCodeConfirmTimeout    = "CONFIRM_TIMEOUT"
	ErrCodeTransactionFailed = "TRANSACTION_FAILED"
	ErrCodePartialFailure    = "PARTIAL_FAILURE"
	ErrCodeCustom            = "CUSTOM"
)

// FleetError represents an error in solfleet.
type FleetError struct {
	// Code is a unique error code for this error type.
	Code string

	// Message is a human-readable error message.
	Message string

	// Cause is the underlying error, if any.
	Cause error

	// Details contains additional error context.
	Details map[string]any
}

// Error implements the error interface.
func (e *FleetError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *FleetError) Unwrap() error {
	return e.Cause
}

// Is reports whether the error matches the target.
func (e *FleetError) Is(target error) bool {
	t, ok := target.(*FleetError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithCause adds a cause to the error.
func (e *FleetError) WithCause(cause error) *FleetError {
	e.Cause = cause
	return e
}

// WithDetails adds details to the error.
func (e *FleetError) WithDetails(details map[string]any) *FleetError {
	e.Details = details
	return e
}

// NewError creates a new FleetError.
func NewError(code, message string) *FleetError {
	return &FleetError{
		Code:    code,
		Message: message,
	}
}

// Pre-defined errors for common error cases.
var (
	// ErrMissingMainWallet is returned when the operating wallet secret is not configured.
	ErrMissingMainWallet = NewError(ErrCodeMissingMainWallet, "main wallet secret is not configured (set SOLFLEET_WALLET_MAIN_KEY)")

	// ErrStoreCorrupt is returned when the wallet store file cannot be parsed.
	ErrStoreCorrupt = NewError(ErrCodeStoreCorrupt, "wallet store file is corrupt")

	// ErrAddressMismatch is returned when an imported record's address does not
	// match the address derived from its secret.
	ErrAddressMismatch = NewError(ErrCodeAddressMismatch, "stored address does not match address derived from secret")

	// ErrPartialFailure is returned when some units of work succeeded and others failed.
	ErrPartialFailure = NewError(ErrCodePartialFailure, "some wallets or batches failed")

	// ErrConfirmTimeout is returned when a submitted transaction is not confirmed in time.
	ErrConfirmTimeout = NewError(ErrCodeConfirmTimeout, "timed out waiting for transaction confirmation")
)

// transientCodes are the failures that may clear up on re-invocation without
// any change by the user. Everything else is treated as permanent.
var transientCodes = map[string]bool{
	ErrCodeRPCUnavailable: true,
	ErrCodeConfirmTimeout: true,
}

// IsTransient reports whether err (or anything in its chain) is a failure that
// re-running the command may resolve, such as RPC congestion or a confirmation
// timeout, as opposed to a permanent failure like an invalid address.
func IsTransient(err error) bool {
	var fe *FleetError
	for errors.As(err, &fe) {
		if transientCodes[fe.Code] {
			return true
		}
		err = fe.Cause
		if err == nil {
			break
		}
	}
	return false
}

// InvalidSelector creates an error for a malformed wallet selector.
func InvalidSelector(token string) *FleetError {
	return NewError(ErrCodeInvalidSelector, fmt.Sprintf("invalid selector token %q", token))
}

// InvalidRecord creates an error for a malformed wallet record.
func InvalidRecord(name string, cause error) *FleetError {
	return NewError(ErrCodeInvalidRecord, fmt.Sprintf("invalid wallet record %q", name)).WithCause(cause)
}

// InvalidAmount creates an error for an unparseable or out-of-range amount.
func InvalidAmount(amount string, cause error) *FleetError {
	return NewError(ErrCodeInvalidAmount, fmt.Sprintf("invalid amount %q", amount)).WithCause(cause)
}

// InsufficientFunds creates an error for a balance too low for the requested operation.
func InsufficientFunds(have, need uint64) *FleetError {
	return NewError(ErrCodeInsufficientFunds, fmt.Sprintf("insufficient funds: have %d lamports, need %d", have, need))
}

// RPCUnavailable creates a transient error for a failed RPC call.
func RPCUnavailable(what string, cause error) *FleetError {
	return NewError(ErrCodeRPCUnavailable, fmt.Sprintf("rpc call failed: %s", what)).WithCause(cause)
}

// TransactionFailed creates an error for a transaction the network rejected or
// confirmed with an execution error.
func TransactionFailed(reason string, cause error) *FleetError {
	return NewError(ErrCodeTransactionFailed, fmt.Sprintf("transaction failed: %s", reason)).WithCause(cause)
}

// StoreIO creates an error for a wallet store read or write failure.
func StoreIO(what string, cause error) *FleetError {
	return NewError(ErrCodeStoreIO, fmt.Sprintf("wallet store %s failed", what)).WithCause(cause)
}

// Custom creates a custom error with the given message.
func Custom(message string) *FleetError {
	return NewError(ErrCodeCustom, message)
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Join returns an error that wraps the given errors.
func Join(errs ...error) error {
	return errors.Join(errs...)
}
