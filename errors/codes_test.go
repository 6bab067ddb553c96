package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromAWSCode(t *testing.T) {
	tests := []struct {
		name string
		code string
		want ErrorCode
	}{
		{name: "decryption failure", code: "DecryptionFailure", want: CodeDecryptionFailure},
		{name: "decryption failure exception", code: "DecryptionFailureException", want: CodeDecryptionFailure},
		{name: "internal service error", code: "InternalServiceError", want: CodeInternalService},
		{name: "internal service error exception", code: "InternalServiceErrorException", want: CodeInternalService},
		{name: "invalid parameter", code: "InvalidParameterException", want: CodeInvalidParameter},
		{name: "invalid request", code: "InvalidRequestException", want: CodeInvalidRequest},
		{name: "resource not found", code: "ResourceNotFoundException", want: CodeNotFound},
		{name: "throttling is unclassified", code: "ThrottlingException", want: CodeUnknown},
		{name: "empty code", code: "", want: CodeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromAWSCode(tt.code))
		})
	}
}

func TestErrorCodeString(t *testing.T) {
	assert.Equal(t, "MISSING_KEY", CodeMissingKey.String())
	assert.Equal(t, "NOT_FOUND", CodeNotFound.String())
}
