// Package secretstest provides an in-memory Secrets Manager backend for tests
// and examples. It implements secrets.ManagerAPI and records every call.
package secretstest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/smithy-go"
)

// API is a fake Secrets Manager holding secrets in memory.
// It is safe for concurrent use.
type API struct {
	mu       sync.Mutex
	store    map[string]*secretsmanager.GetSecretValueOutput
	failures map[string]error
	calls    map[string]int
	total    int
}

// New creates an empty fake backend.
func New() *API {
	return &API{
		store:    make(map[string]*secretsmanager.GetSecretValueOutput),
		failures: make(map[string]error),
		calls:    make(map[string]int),
	}
}

// PutString stores a string secret under name, replacing any previous value.
func (a *API) PutString(name, value string) {
	a.put(name, &secretsmanager.GetSecretValueOutput{SecretString: aws.String(value)})
}

// PutBinary stores a binary secret under name, replacing any previous value.
func (a *API) PutBinary(name string, value []byte) {
	a.put(name, &secretsmanager.GetSecretValueOutput{SecretBinary: append([]byte(nil), value...)})
}

// PutEmpty stores a secret that has neither a string nor a binary value.
func (a *API) PutEmpty(name string) {
	a.put(name, &secretsmanager.GetSecretValueOutput{})
}

func (a *API) put(name string, out *secretsmanager.GetSecretValueOutput) {
	a.mu.Lock()
	defer a.mu.Unlock()

	out.Name = aws.String(name)
	out.ARN = aws.String("arn:aws:secretsmanager:eu-west-1:000000000000:secret:" + name)
	out.CreatedDate = aws.Time(time.Now())
	a.store[name] = out
}

// Fail makes every subsequent GetSecretValue for name return err.
// A nil err clears the failure.
func (a *API) Fail(name string, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err == nil {
		delete(a.failures, name)
		return
	}
	a.failures[name] = err
}

// Calls returns how many times GetSecretValue was called for name.
func (a *API) Calls(name string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.calls[name]
}

// TotalCalls returns how many times GetSecretValue was called.
func (a *API) TotalCalls() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.total
}

// GetSecretValue implements secrets.ManagerAPI.
func (a *API) GetSecretValue(
	ctx context.Context,
	params *secretsmanager.GetSecretValueInput,
	_ ...func(*secretsmanager.Options),
) (*secretsmanager.GetSecretValueOutput, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("get secret value cancelled: %w", ctx.Err())
	default:
	}

	if params == nil || params.SecretId == nil || *params.SecretId == "" {
		return nil, &APIError{Code: "InvalidParameterException", Message: "secret id is required"}
	}
	name := *params.SecretId

	a.mu.Lock()
	defer a.mu.Unlock()

	a.calls[name]++
	a.total++

	if err, ok := a.failures[name]; ok {
		return nil, err
	}

	out, ok := a.store[name]
	if !ok {
		return nil, &APIError{
			Code:    "ResourceNotFoundException",
			Message: "Secrets Manager can't find the specified secret.",
		}
	}

	// Copy so callers cannot reach the stored value.
	cp := *out
	if out.SecretString != nil {
		cp.SecretString = aws.String(*out.SecretString)
	}
	if out.SecretBinary != nil {
		cp.SecretBinary = append([]byte(nil), out.SecretBinary...)
	}

	return &cp, nil
}

// APIError implements smithy.APIError with a caller-chosen code.
type APIError struct {
	Code    string
	Message string
}

var _ smithy.APIError = (*APIError)(nil)

func (e *APIError) Error() string                 { return e.Code + ": " + e.Message }
func (e *APIError) ErrorCode() string             { return e.Code }
func (e *APIError) ErrorMessage() string          { return e.Message }
func (e *APIError) ErrorFault() smithy.ErrorFault { return smithy.FaultClient }
