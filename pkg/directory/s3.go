package directory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/dmitrymomot/tenantkit/pkg/tenant"
)

// S3Client is the subset of *s3.Client used by S3.
type S3Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Config describes the bucket holding tenant documents.
type S3Config struct {
	Bucket         string `env:"TENANT_S3_BUCKET"`
	Prefix         string `env:"TENANT_S3_PREFIX" envDefault:"tenants/"`
	Region         string `env:"TENANT_S3_REGION" envDefault:"us-east-1"`
	AccessKeyID    string `env:"TENANT_S3_ACCESS_KEY_ID"`
	SecretKey      string `env:"TENANT_S3_SECRET_KEY"`
	Endpoint       string `env:"TENANT_S3_ENDPOINT"` // S3-compatible services, e.g. MinIO
	ForcePathStyle bool   `env:"TENANT_S3_FORCE_PATH_STYLE" envDefault:"false"`
}

// NewS3Client builds an SDK client from cfg. Static credentials are used
// when both key and secret are set; otherwise the default chain applies.
func NewS3Client(ctx context.Context, cfg S3Config) (*s3.Client, error) {
	if cfg.Bucket == "" || cfg.Region == "" {
		return nil, fmt.Errorf("%w: s3 bucket and region are required", ErrInvalidConfig)
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.ForcePathStyle
	}), nil
}

// S3 reads tenants from JSON objects named "<prefix><canonical name>.json".
type S3 struct {
	client S3Client
	bucket string
	prefix string
}

// NewS3 creates a directory reading from bucket under prefix.
func NewS3(client S3Client, bucket, prefix string) *S3 {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &S3{client: client, bucket: bucket, prefix: prefix}
}

// ObjectKey returns the key of the object holding the named tenant.
func (s *S3) ObjectKey(name string) string {
	return s.prefix + name + ".json"
}

func (s *S3) FindByCanonicalName(ctx context.Context, name string) (*tenant.Tenant, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.ObjectKey(name)),
	})
	if err != nil {
		if isS3NotFound(err) {
			return nil, tenant.ErrTenantNotFound
		}
		return nil, err
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read tenant object: %w", err)
	}
	return decodeRecord(data)
}

func (s *S3) DiagnosticID(t *tenant.Tenant) string {
	return diagnosticID(t)
}

// isS3NotFound matches the typed error as well as the bare API codes some
// S3-compatible services return.
func isS3NotFound(err error) bool {
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}
	return false
}
