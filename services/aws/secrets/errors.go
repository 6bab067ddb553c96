package secrets

import (
	"errors"
	"fmt"

	"github.com/aws/smithy-go"

	srerrors "github.com/cloudperiscope/secretreader/errors"
)

// Sentinel errors, one per error code. Use errors.Is against an error returned
// by the Reader to test its kind; the underlying SDK error stays reachable
// through errors.As.
var (
	// ErrClientConstruction is returned when the Secrets Manager client cannot be built.
	ErrClientConstruction = errors.New("secrets manager client construction failed")

	// ErrDecryptionFailure is returned when the secret cannot be decrypted with its KMS key.
	ErrDecryptionFailure = errors.New("secret decryption failed")

	// ErrInternalService is returned on a Secrets Manager side fault.
	ErrInternalService = errors.New("secrets manager internal error")

	// ErrInvalidParameter is returned when a parameter value is not valid.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInvalidRequest is returned when the request is not valid for the current state of the secret.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrSecretNotFound is returned when the requested secret does not exist.
	ErrSecretNotFound = errors.New("secret not found")

	// ErrMissingKey is returned when the decoded secret JSON lacks the requested key.
	ErrMissingKey = errors.New("secret key does not exist")
)

var sentinels = map[srerrors.ErrorCode]error{
	srerrors.CodeClientConstruction: ErrClientConstruction,
	srerrors.CodeDecryptionFailure:  ErrDecryptionFailure,
	srerrors.CodeInternalService:    ErrInternalService,
	srerrors.CodeInvalidParameter:   ErrInvalidParameter,
	srerrors.CodeInvalidRequest:     ErrInvalidRequest,
	srerrors.CodeNotFound:           ErrSecretNotFound,
	srerrors.CodeMissingKey:         ErrMissingKey,
}

// Error is returned by every failing Reader operation. Code classifies the
// failure; Err is the original cause (usually an AWS SDK error) and is never
// rewritten.
type Error struct {
	Code       srerrors.ErrorCode
	SecretName string
	Err        error
}

// Error implements the error interface. Secret values never appear in it.
func (e *Error) Error() string {
	if e.SecretName == "" {
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	}
	return fmt.Sprintf("%s for secret %q: %v", e.Code, e.SecretName, e.Err)
}

// Unwrap returns the underlying error for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e.Code.
func (e *Error) Is(target error) bool {
	s, ok := sentinels[e.Code]
	return ok && s == target
}

// CodeOf returns the error code carried by err, or CodeUnknown when err is not
// an *Error.
func CodeOf(err error) srerrors.ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return srerrors.CodeUnknown
}

// classify wraps a GetSecretValue failure with its error code.
func classify(secretName string, err error) *Error {
	code := srerrors.CodeUnknown
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code = srerrors.FromAWSCode(apiErr.ErrorCode())
	}
	return &Error{Code: code, SecretName: secretName, Err: err}
}

func newMissingKeyError(secretName, key string) *Error {
	return &Error{
		Code:       srerrors.CodeMissingKey,
		SecretName: secretName,
		Err:        fmt.Errorf("%w: %q", ErrMissingKey, key),
	}
}
