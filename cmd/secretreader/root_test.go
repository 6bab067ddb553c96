package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudperiscope/secretreader/services/aws/secrets"
	"github.com/cloudperiscope/secretreader/services/aws/secrets/secretstest"
)

func run(t *testing.T, api *secretstest.API, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	c := newRootCmd(secrets.WithAPI(api))
	c.SetOut(&stdout)
	c.SetErr(&stderr)
	c.SetArgs(args)

	err := c.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestRootCmd(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		want      string
		expectErr error
	}{
		{
			name: "get prints the raw value",
			args: []string{"get", "prod/db"},
			want: "{\"db_user\":\"app\",\"port\":5432}\n",
		},
		{
			name: "key prints a string value",
			args: []string{"key", "prod/db", "db_user"},
			want: "app\n",
		},
		{
			name: "key prints a number as JSON",
			args: []string{"key", "prod/db", "port"},
			want: "5432\n",
		},
		{
			name: "key without KEY prints the document",
			args: []string{"key", "prod/db"},
			want: "{\n  \"db_user\": \"app\",\n  \"port\": 5432\n}\n",
		},
		{
			name:      "missing key",
			args:      []string{"key", "prod/db", "db_password"},
			expectErr: secrets.ErrMissingKey,
		},
		{
			name:      "unknown secret",
			args:      []string{"get", "prod/unknown"},
			expectErr: secrets.ErrSecretNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := secretstest.New()
			api.PutString("prod/db", `{"db_user":"app","port":5432}`)

			stdout, _, err := run(t, api, tt.args...)
			if tt.expectErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expectErr)
				assert.Empty(t, stdout)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, stdout)
		})
	}
}

func TestRootCmd_LogLevel(t *testing.T) {
	api := secretstest.New()
	api.PutString("prod/db", "hunter2")

	_, stderr, err := run(t, api, "--log-level", "info", "get", "prod/db")
	require.NoError(t, err)
	assert.Contains(t, stderr, "secret_name=prod/db")
	assert.NotContains(t, stderr, "hunter2")

	_, _, err = run(t, api, "--log-level", "loud", "get", "prod/db")
	assert.ErrorContains(t, err, "invalid --log-level")
}

func TestRootCmd_Args(t *testing.T) {
	api := secretstest.New()

	_, _, err := run(t, api, "get")
	assert.Error(t, err)

	_, _, err = run(t, api, "key", "a", "b", "c")
	assert.Error(t, err)
	assert.Zero(t, api.TotalCalls())
}

func TestExitCode(t *testing.T) {
	api := secretstest.New()
	api.PutString("prod/db", `{"db_user":"app"}`)

	_, _, err := run(t, api, "get", "prod/unknown")
	assert.Equal(t, 2, exitCode(err))

	_, _, err = run(t, api, "key", "prod/db", "db_password")
	assert.Equal(t, 2, exitCode(err))

	api.Fail("prod/db", &secretstest.APIError{Code: "DecryptionFailure", Message: "kms"})
	_, _, err = run(t, api, "get", "prod/db")
	assert.Equal(t, 1, exitCode(err))

	_, _, err = run(t, api, "get")
	assert.Equal(t, 1, exitCode(err))
}
