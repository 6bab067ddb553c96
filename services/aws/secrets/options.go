package secrets

import (
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"
)

// ClientConfig configures construction of the Secrets Manager client.
// The zero value resolves everything from the environment.
type ClientConfig struct {
	// Profile names a shared config/credentials profile. Ignored when
	// Credentials is set.
	Profile string

	// Credentials, when set, is used as-is instead of the default
	// credential provider chain.
	Credentials aws.CredentialsProvider

	// Region overrides AWS_DEFAULT_REGION and the fallback region.
	Region string

	// Endpoint overrides the service base endpoint, e.g. LocalStack.
	Endpoint string
}

// readerOptions holds configuration options for the Reader.
type readerOptions struct {
	api            ManagerAPI
	clientConfig   ClientConfig
	logger         *slog.Logger
	retryer        aws.Retryer
	registerer     prometheus.Registerer
	tracerProvider trace.TracerProvider
}

// Option is a functional option for configuring the Reader.
type Option func(*readerOptions)

// WithAPI injects a ready-made backend client. The Reader then never
// constructs one itself until MakeClient is called.
func WithAPI(api ManagerAPI) Option {
	return func(opts *readerOptions) {
		opts.api = api
	}
}

// WithClientConfig sets the configuration used when the Reader lazily
// constructs its client on first use.
func WithClientConfig(cfg ClientConfig) Option {
	return func(opts *readerOptions) {
		opts.clientConfig = cfg
	}
}

// WithLogger configures the Reader with a custom logger.
// If logger is nil, logging will be disabled.
func WithLogger(logger *slog.Logger) Option {
	return func(opts *readerOptions) {
		opts.logger = logger
	}
}

// WithRetryer configures the retryer handed to the AWS SDK when the client is
// constructed. If retryer is nil, default AWS SDK retry behavior will be used.
func WithRetryer(retryer aws.Retryer) Option {
	return func(opts *readerOptions) {
		opts.retryer = retryer
	}
}

// WithMetrics registers the Reader's Prometheus collectors with reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(opts *readerOptions) {
		opts.registerer = reg
	}
}

// WithTracerProvider sets the provider used to trace backend calls.
// If tp is nil, tracing is disabled.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(opts *readerOptions) {
		opts.tracerProvider = tp
	}
}

func applyOptions(opts *readerOptions, options []Option) {
	for _, option := range options {
		option(opts)
	}
}
