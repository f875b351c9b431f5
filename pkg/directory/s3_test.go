package directory_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantkit/pkg/directory"
	"github.com/dmitrymomot/tenantkit/pkg/tenant"
)

type fakeS3 struct {
	objects map[string][]byte
	err     error
	keys    []string
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	key := aws.ToString(in.Key)
	f.keys = append(f.keys, aws.ToString(in.Bucket)+"/"+key)
	if f.err != nil {
		return nil, f.err
	}
	data, ok := f.objects[key]
	if !ok {
		return nil, &types.NoSuchKey{Message: aws.String("The specified key does not exist.")}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func TestS3(t *testing.T) {
	t.Parallel()

	t.Run("contract", func(t *testing.T) {
		t.Parallel()

		acme := newTenant("acme")
		data, err := json.Marshal(acme)
		require.NoError(t, err)

		client := &fakeS3{objects: map[string][]byte{"tenants/acme.json": data}}
		dir := directory.NewS3(client, "config", "tenants")

		assertContract(t, dir, acme)
		assert.Equal(t, []string{"config/tenants/acme.json", "config/tenants/missing.json"}, client.keys)
	})

	t.Run("bare API not found codes", func(t *testing.T) {
		t.Parallel()

		for _, code := range []string{"NoSuchKey", "NotFound"} {
			client := &fakeS3{err: &smithy.GenericAPIError{Code: code}}
			_, err := directory.NewS3(client, "b", "").FindByCanonicalName(context.Background(), "acme")
			assert.ErrorIs(t, err, tenant.ErrTenantNotFound, code)
		}
	})

	t.Run("other errors pass through", func(t *testing.T) {
		t.Parallel()

		denied := &smithy.GenericAPIError{Code: "AccessDenied"}
		_, err := directory.NewS3(&fakeS3{err: denied}, "b", "").FindByCanonicalName(context.Background(), "acme")
		assert.ErrorIs(t, err, denied)

		_, err = directory.NewS3(&fakeS3{err: context.DeadlineExceeded}, "b", "").FindByCanonicalName(context.Background(), "acme")
		assert.True(t, errors.Is(err, context.DeadlineExceeded))
	})

	t.Run("corrupt object", func(t *testing.T) {
		t.Parallel()

		client := &fakeS3{objects: map[string][]byte{"acme.json": []byte(`{"name":"no canonical"}`)}}
		_, err := directory.NewS3(client, "b", "").FindByCanonicalName(context.Background(), "acme")
		assert.ErrorIs(t, err, directory.ErrInvalidRecord)
	})

	t.Run("client config validation", func(t *testing.T) {
		t.Parallel()

		_, err := directory.NewS3Client(context.Background(), directory.S3Config{Region: "eu-west-1"})
		assert.ErrorIs(t, err, directory.ErrInvalidConfig)

		client, err := directory.NewS3Client(context.Background(), directory.S3Config{
			Bucket:         "tenants",
			Region:         "eu-west-1",
			AccessKeyID:    "key",
			SecretKey:      "secret",
			Endpoint:       "http://localhost:9000",
			ForcePathStyle: true,
		})
		require.NoError(t, err)
		assert.NotNil(t, client)
	})
}
