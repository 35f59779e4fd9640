package models

import "net/http"

// ErrorCode identifies every failure the voting core can report. The set is
// closed: handlers switch over it and map each code to exactly one HTTP
// status, so a domain failure never surfaces as a generic 500.
type ErrorCode string

const (
	CodeNotEligible        ErrorCode = "NOT_ELIGIBLE"
	CodeInvalidCredential  ErrorCode = "INVALID_CREDENTIAL"
	CodeCredentialExpired  ErrorCode = "CREDENTIAL_EXPIRED"
	CodeAlreadyVoted       ErrorCode = "ALREADY_VOTED"
	CodeLedgerUnavailable  ErrorCode = "LEDGER_UNAVAILABLE"
	CodePersistenceFailure ErrorCode = "PERSISTENCE_FAILURE"
	CodeValidation         ErrorCode = "VALIDATION_ERROR"
)

// VoteError is the typed result for every domain failure in the register,
// cast, and tally flows.
type VoteError struct {
	Code     ErrorCode
	Message  string
	Position string // set for ALREADY_VOTED only
}

func (e *VoteError) Error() string {
	return e.Message
}

// HTTPStatus maps the error code to its response status.
func (e *VoteError) HTTPStatus() int {
	switch e.Code {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeInvalidCredential, CodeCredentialExpired:
		return http.StatusUnauthorized
	case CodeNotEligible, CodeAlreadyVoted:
		return http.StatusForbidden
	case CodeLedgerUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func ErrNotEligible() *VoteError {
	return &VoteError{Code: CodeNotEligible, Message: "voter is not eligible"}
}

// ErrInvalidCredential covers both a missing credential and a code mismatch.
// The two causes are folded together so responses cannot be used to probe
// which voter IDs have registered.
func ErrInvalidCredential() *VoteError {
	return &VoteError{Code: CodeInvalidCredential, Message: "invalid vote code"}
}

func ErrCredentialExpired() *VoteError {
	return &VoteError{Code: CodeCredentialExpired, Message: "vote code has expired, please register again"}
}

func ErrAlreadyVoted(position string) *VoteError {
	return &VoteError{
		Code:     CodeAlreadyVoted,
		Message:  "already voted for position " + position,
		Position: position,
	}
}

func ErrLedgerUnavailable() *VoteError {
	return &VoteError{Code: CodeLedgerUnavailable, Message: "vote could not be recorded on the ledger, please try again"}
}

func ErrPersistenceFailure() *VoteError {
	return &VoteError{Code: CodePersistenceFailure, Message: "failed to save record"}
}

func ErrValidation(msg string) *VoteError {
	return &VoteError{Code: CodeValidation, Message: msg}
}
