package secrets

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// ManagerAPI is the slice of the AWS Secrets Manager client the Reader depends on.
// *secretsmanager.Client satisfies it; tests substitute a fake.
type ManagerAPI interface {
	// GetSecretValue retrieves the value of a secret from AWS Secrets Manager.
	GetSecretValue(
		ctx context.Context,
		params *secretsmanager.GetSecretValueInput,
		optFns ...func(*secretsmanager.Options),
	) (*secretsmanager.GetSecretValueOutput, error)
}

var _ ManagerAPI = (*secretsmanager.Client)(nil)
