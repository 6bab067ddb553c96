// Package secrets reads secrets from AWS Secrets Manager through a Reader that
// keeps the most recently fetched secret in memory.
//
// The Reader wraps the AWS SDK v2 `secretsmanager` service to provide:
//   - GetSecret and RefreshSecret, returning the secret as a string
//     (binary secrets are base64-decoded)
//   - GetSecretKey, extracting one key from a JSON-encoded secret
//   - A one-entry cache keyed by secret name: repeated reads of the same name
//     hit the backend once, reading another name replaces the entry
//   - Lazy client construction from a ClientConfig (profile, explicit
//     credentials, region, endpoint)
//
// # Region resolution
//
// ClientConfig.Region wins; otherwise AWS_DEFAULT_REGION is read from the
// environment; otherwise DefaultRegion (eu-west-1) is used.
//
// # Errors
//
// Every failure is an *Error carrying an errors.ErrorCode from the
// github.com/cloudperiscope/secretreader/errors package. Backend errors keep
// the original AWS SDK error in their chain and are never retried by the
// Reader; SDK-level retries can be tuned with WithRetryer.
//
//	_, err := r.GetSecret(ctx, "prod/db")
//	if errors.Is(err, secrets.ErrSecretNotFound) {
//	    // handle missing secret
//	}
//
// # Security considerations
//
//   - Secret values are never logged; only secret names, keys and error codes
//   - Required IAM permissions: `secretsmanager:GetSecretValue`, plus
//     `kms:Decrypt` when the secret uses a customer-managed key
//
// # Thread safety
//
// All Reader methods are safe for concurrent use. They serialize on one
// mutex, so concurrent reads of different names take turns evicting each
// other from the cache.
package secrets
