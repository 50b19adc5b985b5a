package snapshot

import (
	"context"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/declarative/internal/config"
	"github.com/vango-dev/declarative/internal/errors"
)

// API is the subset of the S3 client the publisher uses. *s3.Client
// satisfies it.
type API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	s3.ListObjectsV2APIClient
}

// Snapshot describes a published page.
type Snapshot struct {
	Name         string
	Key          string
	Size         int64
	LastModified time.Time
}

// Publisher uploads rendered pages to S3.
//
// Example usage:
//
//	client, err := snapshot.NewS3Client(ctx, cfg.Snapshot)
//	pub := snapshot.New(client, cfg.Snapshot.Bucket, cfg.Snapshot.Prefix)
//	key, err := pub.Publish(ctx, "signed-in", html)
type Publisher struct {
	client API
	bucket string
	prefix string

	logger *slog.Logger
	tracer trace.Tracer
	now    func() time.Time
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Publisher) { p.logger = l }
}

// WithTracerName names the tracer taken from the global provider.
func WithTracerName(name string) Option {
	return func(p *Publisher) { p.tracer = otel.Tracer(name) }
}

// New creates a publisher writing to bucket under prefix.
func New(client API, bucket, prefix string, opts ...Option) *Publisher {
	p := &Publisher{
		client: client,
		bucket: bucket,
		prefix: prefix,
		logger: slog.Default(),
		tracer: otel.Tracer(config.DefaultTracerName),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Key returns the object key used for name.
func (p *Publisher) Key(name string) string {
	return p.prefix + name + ".html"
}

// Publish uploads html as name and returns the object key.
func (p *Publisher) Publish(ctx context.Context, name, html string) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}
	key := p.Key(name)

	ctx, span := p.tracer.Start(ctx, "snapshot.publish",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("snapshot.bucket", p.bucket),
			attribute.String("snapshot.key", key),
			attribute.Int("snapshot.bytes", len(html)),
		),
	)
	defer span.End()

	_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(p.bucket),
		Key:          aws.String(key),
		Body:         strings.NewReader(html),
		ContentType:  aws.String("text/html; charset=utf-8"),
		CacheControl: aws.String("no-cache"),
		Metadata: map[string]string{
			"snapshot-name": name,
			"published-at":  p.now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		p.logger.Error("snapshot upload failed", "bucket", p.bucket, "key", key, "error", err)
		return "", errors.New("E140").
			WithDetail("PutObject s3://" + p.bucket + "/" + key + " failed.").
			Wrap(err)
	}

	span.SetStatus(codes.Ok, "")
	p.logger.Info("snapshot published", "bucket", p.bucket, "key", key, "bytes", len(html))
	return key, nil
}

// List returns every snapshot under the prefix.
func (p *Publisher) List(ctx context.Context) ([]Snapshot, error) {
	ctx, span := p.tracer.Start(ctx, "snapshot.list",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("snapshot.bucket", p.bucket)),
	)
	defer span.End()

	paginator := s3.NewListObjectsV2Paginator(p.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(p.bucket),
		Prefix: aws.String(p.prefix),
	})

	var out []Snapshot
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, errors.New("E140").
				WithDetail("ListObjectsV2 s3://" + p.bucket + "/" + p.prefix + " failed.").
				Wrap(err)
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if !strings.HasSuffix(key, ".html") {
				continue
			}
			out = append(out, Snapshot{
				Name:         strings.TrimSuffix(strings.TrimPrefix(key, p.prefix), ".html"),
				Key:          key,
				Size:         aws.ToInt64(obj.Size),
				LastModified: aws.ToTime(obj.LastModified),
			})
		}
	}
	span.SetAttributes(attribute.Int("snapshot.count", len(out)))
	return out, nil
}

func checkName(name string) error {
	if name == "" || strings.ContainsAny(name, `\`) || path.Clean("/"+name) != "/"+name || strings.HasSuffix(name, "/") {
		return errors.New("E140").
			WithDetail("Snapshot name " + `"` + name + `"` + " is not a clean relative path.").
			WithSuggestion("Use names like \"signed-in\" or \"admin/dashboard\"")
	}
	return nil
}

// NewS3Client builds an S3 client from the snapshot configuration using the
// SDK's default credential chain (environment, shared files, profiles, IMDS).
// Extra load options are applied after the configured region.
func NewS3Client(ctx context.Context, cfg config.SnapshotConfig, optFns ...func(*awsconfig.LoadOptions) error) (*s3.Client, error) {
	opts := make([]func(*awsconfig.LoadOptions) error, 0, len(optFns)+1)
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	opts = append(opts, optFns...)

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.New("E140").
			WithDetail("Loading the AWS configuration failed.").
			WithSuggestion("Check AWS_PROFILE and the shared config files").
			Wrap(err)
	}
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	}), nil
}
