package secrets

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	srerrors "github.com/cloudperiscope/secretreader/errors"
)

const tracerName = "github.com/cloudperiscope/secretreader/services/aws/secrets"

// Reader reads one secret at a time from AWS Secrets Manager and caches the
// most recent result. Reading a different name replaces the cached entry.
//
// The backend client is built on first use from the ClientConfig given to
// New, unless one was injected with WithAPI. All methods serialize on an
// internal mutex, so a Reader may be shared between goroutines.
type Reader struct {
	mu sync.Mutex

	api          ManagerAPI
	clientConfig ClientConfig
	retryer      aws.Retryer

	logger  *slog.Logger
	tracer  trace.Tracer
	metrics *readerMetrics

	// cachedPayload is valid for cachedName only. Both are written together
	// after a successful backend call.
	cachedName    string
	cachedPayload *Payload
	cachedParsed  any

	// forceRefresh is consumed by the next backend call.
	forceRefresh bool
}

// New returns a Reader configured with opts. It performs no I/O.
//
// Example usage:
//
//	r := secrets.New(
//	    secrets.WithClientConfig(secrets.ClientConfig{Profile: "prod"}),
//	    secrets.WithLogger(slog.Default()),
//	)
//	password, err := r.GetSecretKey(ctx, "prod/db", "db_password")
func New(opts ...Option) *Reader {
	options := &readerOptions{}
	applyOptions(options, opts)

	tp := options.tracerProvider
	if tp == nil {
		tp = noop.NewTracerProvider()
	}

	return &Reader{
		api:          options.api,
		clientConfig: options.clientConfig,
		retryer:      options.retryer,
		logger:       options.logger,
		tracer:       tp.Tracer(tracerName),
		metrics:      newReaderMetrics(options.registerer),
	}
}

// MakeClient builds a new Secrets Manager client from cfg and replaces the
// current one. Construction errors are returned with CodeClientConstruction
// and are not retried. The cached entry is kept.
func (r *Reader) MakeClient(ctx context.Context, cfg ClientConfig) error {
	if ctx == nil {
		return &Error{Code: srerrors.CodeInvalidParameter, Err: errors.New("context cannot be nil")}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.clientConfig = cfg
	return r.makeClient(ctx)
}

func (r *Reader) makeClient(ctx context.Context) error {
	api, err := newManagerAPI(ctx, r.clientConfig, r.retryer)
	if err != nil {
		if r.logger != nil {
			r.logger.ErrorContext(ctx, "failed to construct secrets manager client",
				"error_code", srerrors.CodeClientConstruction,
				"error", err)
		}
		return &Error{Code: srerrors.CodeClientConstruction, Err: err}
	}

	r.api = api
	return nil
}

// GetSecret returns the value of the named secret. The backend is called only
// when name differs from the cached name or a refresh was requested; otherwise
// the cached value is returned. Binary secrets are base64-decoded.
//
// Backend failures are returned as *Error carrying the AWS error unchanged.
// A failed call leaves the cached entry as it was.
func (r *Reader) GetSecret(ctx context.Context, name string) (string, error) {
	if err := validate(ctx, name); err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.fetch(ctx, name); err != nil {
		return "", err
	}

	value, _ := r.cachedPayload.Decode()
	return value, nil
}

// RefreshSecret is GetSecret with the cache bypassed exactly once.
func (r *Reader) RefreshSecret(ctx context.Context, name string) (string, error) {
	if err := validate(ctx, name); err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.forceRefresh = true
	if err := r.fetch(ctx, name); err != nil {
		return "", err
	}

	value, _ := r.cachedPayload.Decode()
	return value, nil
}

// GetSecretKey reads the named secret, decodes it as JSON and returns the
// value stored under key. An empty key returns the whole decoded structure.
//
// A payload that is not valid JSON decodes to nil. A key that is absent, maps
// to null, or is looked up in something other than a JSON object yields an
// error matching ErrMissingKey.
func (r *Reader) GetSecretKey(ctx context.Context, name, key string) (any, error) {
	if err := validate(ctx, name); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.fetch(ctx, name); err != nil {
		return nil, err
	}

	value, _ := r.cachedPayload.Decode()

	r.cachedParsed = nil
	if err := json.Unmarshal([]byte(value), &r.cachedParsed); err != nil {
		r.cachedParsed = nil
	}

	if key == "" {
		return r.cachedParsed, nil
	}

	fields, _ := r.cachedParsed.(map[string]any)
	v, ok := fields[key]
	if !ok || v == nil {
		if r.logger != nil {
			r.logger.WarnContext(ctx, "secret key does not exist",
				"secret_name", name,
				"secret_key", key)
		}
		return nil, newMissingKeyError(name, key)
	}

	return v, nil
}

// DecodeValue returns the string form of the cached payload without touching
// the backend. The boolean is false when nothing is cached.
func (r *Reader) DecodeValue() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.cachedPayload.Decode()
}

// CachedName returns the name of the secret currently held in the cache, or
// the empty string if nothing has been fetched yet.
func (r *Reader) CachedName() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.cachedName
}

// fetch makes sure the cache holds name, calling the backend if needed.
// The caller must hold r.mu.
func (r *Reader) fetch(ctx context.Context, name string) error {
	if r.api == nil {
		if err := r.makeClient(ctx); err != nil {
			return err
		}
	}

	if name == r.cachedName && !r.forceRefresh {
		r.metrics.cacheHits.Inc()
		if r.logger != nil {
			r.logger.DebugContext(ctx, "secret served from cache",
				"secret_name", name)
		}
		return nil
	}

	r.forceRefresh = false

	ctx, span := r.tracer.Start(ctx, "secretsmanager.GetSecretValue",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("secret.name", name)))
	defer span.End()

	if r.logger != nil {
		r.logger.InfoContext(ctx, "retrieving secret",
			"secret_name", name)
	}

	output, err := r.api.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(name),
	})
	if err != nil {
		e := classify(name, err)

		r.metrics.requests.WithLabelValues(outcomeError).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, e.Code.String())

		if r.logger != nil {
			r.logger.ErrorContext(ctx, "failed to retrieve secret",
				"secret_name", name,
				"error_code", e.Code,
				"error", err)
		}
		return e
	}

	r.metrics.requests.WithLabelValues(outcomeSuccess).Inc()

	r.cachedPayload = payloadFrom(output)
	r.cachedName = name
	r.cachedParsed = nil

	if r.logger != nil {
		r.logger.InfoContext(ctx, "secret retrieved successfully",
			"secret_name", name)
	}

	return nil
}

func validate(ctx context.Context, name string) error {
	if ctx == nil {
		return &Error{Code: srerrors.CodeInvalidParameter, Err: errors.New("context cannot be nil")}
	}
	if name == "" {
		return &Error{Code: srerrors.CodeInvalidParameter, Err: errors.New("secret name cannot be empty")}
	}
	return nil
}
