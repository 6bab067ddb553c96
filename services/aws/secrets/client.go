package secrets

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/kelseyhightower/envconfig"
)

const (
	// RegionEnvVar is consulted when ClientConfig.Region is empty.
	RegionEnvVar = "AWS_DEFAULT_REGION"

	// DefaultRegion is used when neither ClientConfig.Region nor RegionEnvVar is set.
	DefaultRegion = "eu-west-1"
)

// regionEnv is the environment surface read during client construction.
type regionEnv struct {
	Region string `envconfig:"AWS_DEFAULT_REGION" default:"eu-west-1"`
}

// resolveRegion picks the region from the config, then the environment, then DefaultRegion.
func resolveRegion(cfg ClientConfig) (string, error) {
	if cfg.Region != "" {
		return cfg.Region, nil
	}

	var env regionEnv
	if err := envconfig.Process("", &env); err != nil {
		return "", fmt.Errorf("failed to read region from environment: %w", err)
	}
	if env.Region == "" {
		return DefaultRegion, nil
	}

	return env.Region, nil
}

// newManagerAPI builds a Secrets Manager client. Explicit credentials are used
// as-is; otherwise the SDK default chain (environment, shared files, instance
// or container role) is consulted, scoped to cfg.Profile when set.
func newManagerAPI(ctx context.Context, cfg ClientConfig, retryer aws.Retryer) (*secretsmanager.Client, error) {
	region, err := resolveRegion(cfg)
	if err != nil {
		return nil, err
	}

	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(region),
	}

	switch {
	case cfg.Credentials != nil:
		loadOpts = append(loadOpts, config.WithCredentialsProvider(cfg.Credentials))
	case cfg.Profile != "":
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(cfg.Profile))
	}

	if retryer != nil {
		loadOpts = append(loadOpts, config.WithRetryer(func() aws.Retryer { return retryer }))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return secretsmanager.NewFromConfig(awsCfg, func(o *secretsmanager.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	}), nil
}
