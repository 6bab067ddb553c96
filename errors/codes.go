// Package errors defines the error codes surfaced by the secret reader.
// Codes are string-based for debuggability and natural JSON serialization.
package errors

// ErrorCode represents a specific failure condition when reading a secret.
type ErrorCode string

const (
	// Client errors.

	// CodeClientConstruction indicates the backend client could not be built,
	// typically because credential or region resolution failed.
	CodeClientConstruction ErrorCode = "CLIENT_CONSTRUCTION_FAILED"

	// Backend errors.

	// CodeDecryptionFailure indicates the backend could not decrypt the secret
	// with the configured KMS key.
	CodeDecryptionFailure ErrorCode = "DECRYPTION_FAILURE"

	// CodeInternalService indicates a fault on the backend side.
	CodeInternalService ErrorCode = "INTERNAL_SERVICE_ERROR"

	// CodeInvalidParameter indicates the caller supplied a bad identifier or parameter value.
	CodeInvalidParameter ErrorCode = "INVALID_PARAMETER"

	// CodeInvalidRequest indicates the request is not valid for the current state of the secret.
	CodeInvalidRequest ErrorCode = "INVALID_REQUEST"

	// CodeNotFound indicates the requested secret does not exist.
	CodeNotFound ErrorCode = "NOT_FOUND"

	// Local errors.

	// CodeMissingKey indicates the decoded secret JSON lacks the requested key.
	CodeMissingKey ErrorCode = "MISSING_KEY"

	// CodeUnknown indicates an unknown or unclassified error occurred.
	CodeUnknown ErrorCode = "UNKNOWN"
)

// AWS Secrets Manager error codes. The SDK reports DecryptionFailure and
// InternalServiceError without the Exception suffix; older SDKs used it.
const (
	AWSDecryptionFailure          = "DecryptionFailure"
	AWSDecryptionFailureException = "DecryptionFailureException"
	AWSInternalServiceError       = "InternalServiceError"
	AWSInternalServiceErrorExc    = "InternalServiceErrorException"
	AWSInvalidParameterException  = "InvalidParameterException"
	AWSInvalidRequestException    = "InvalidRequestException"
	AWSResourceNotFoundException  = "ResourceNotFoundException"
)

// FromAWSCode maps an AWS Secrets Manager error code to an ErrorCode.
// Unrecognized codes map to CodeUnknown.
func FromAWSCode(code string) ErrorCode {
	switch code {
	case AWSDecryptionFailure, AWSDecryptionFailureException:
		return CodeDecryptionFailure
	case AWSInternalServiceError, AWSInternalServiceErrorExc:
		return CodeInternalService
	case AWSInvalidParameterException:
		return CodeInvalidParameter
	case AWSInvalidRequestException:
		return CodeInvalidRequest
	case AWSResourceNotFoundException:
		return CodeNotFound
	default:
		return CodeUnknown
	}
}

// String returns the code as a plain string.
func (c ErrorCode) String() string {
	return string(c)
}
