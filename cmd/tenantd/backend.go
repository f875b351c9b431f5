package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/dmitrymomot/tenantkit/pkg/config"
	"github.com/dmitrymomot/tenantkit/pkg/directory"
	"github.com/dmitrymomot/tenantkit/pkg/httpserver"
	"github.com/dmitrymomot/tenantkit/pkg/mongo"
	"github.com/dmitrymomot/tenantkit/pkg/opensearch"
	"github.com/dmitrymomot/tenantkit/pkg/pg"
	"github.com/dmitrymomot/tenantkit/pkg/redis"
	"github.com/dmitrymomot/tenantkit/pkg/tenant"
)

var errUnknownBackend = errors.New("unknown tenant directory backend")

// backend is an opened directory with its readiness checks and a close func.
type backend struct {
	dir    tenant.Directory
	checks []httpserver.Check
	close  func(context.Context)
}

func openBackend(ctx context.Context, cfg appConfig, log *slog.Logger) (*backend, error) {
	name := strings.ToLower(strings.TrimSpace(cfg.Directory))

	switch name {
	case backendMemory:
		return &backend{dir: seedMemory(cfg.Seed), close: func(context.Context) {}}, nil

	case backendPostgres:
		var pgCfg pg.Config
		if err := config.Load(&pgCfg); err != nil {
			return nil, err
		}
		pool, err := pg.Connect(ctx, pgCfg)
		if err != nil {
			return nil, err
		}
		if pgCfg.AutoMigrate {
			if err := directory.MigratePostgres(ctx, pool, pgCfg, log); err != nil {
				pool.Close()
				return nil, err
			}
		}
		return &backend{
			dir:    directory.NewPostgres(pool),
			checks: []httpserver.Check{{Name: name, Fn: pg.Healthcheck(pool)}},
			close:  func(context.Context) { pool.Close() },
		}, nil

	case backendRedis:
		var redisCfg redis.Config
		if err := config.Load(&redisCfg); err != nil {
			return nil, err
		}
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return nil, err
		}
		return &backend{
			dir:    directory.NewRedis(client, redisCfg.KeyPrefix),
			checks: []httpserver.Check{{Name: name, Fn: redis.Healthcheck(client)}},
			close:  func(context.Context) { _ = client.Close() },
		}, nil

	case backendMongo:
		var mongoCfg mongo.Config
		if err := config.Load(&mongoCfg); err != nil {
			return nil, err
		}
		client, coll, err := mongo.Collection(ctx, mongoCfg)
		if err != nil {
			return nil, err
		}
		if err := directory.EnsureMongoIndexes(ctx, coll); err != nil {
			_ = client.Disconnect(context.WithoutCancel(ctx))
			return nil, err
		}
		return &backend{
			dir:    directory.NewMongo(coll),
			checks: []httpserver.Check{{Name: name, Fn: mongo.Healthcheck(client)}},
			close:  func(ctx context.Context) { _ = client.Disconnect(ctx) },
		}, nil

	case backendS3:
		var s3Cfg directory.S3Config
		if err := config.Load(&s3Cfg); err != nil {
			return nil, err
		}
		client, err := directory.NewS3Client(ctx, s3Cfg)
		if err != nil {
			return nil, err
		}
		return &backend{
			dir:    directory.NewS3(client, s3Cfg.Bucket, s3Cfg.Prefix),
			checks: []httpserver.Check{{Name: name, Fn: bucketCheck(client, s3Cfg.Bucket)}},
			close:  func(context.Context) {},
		}, nil

	case backendOpenSearch:
		var osCfg opensearch.Config
		if err := config.Load(&osCfg); err != nil {
			return nil, err
		}
		client, err := opensearch.New(ctx, osCfg)
		if err != nil {
			return nil, err
		}
		return &backend{
			dir:    directory.NewOpenSearch(client, osCfg.Index),
			checks: []httpserver.Check{{Name: name, Fn: opensearch.Healthcheck(client)}},
			close:  func(context.Context) {},
		}, nil

	default:
		return nil, fmt.Errorf("%w: %q", errUnknownBackend, cfg.Directory)
	}
}

// seedMemory creates active tenants for the given names with IDs derived
// from the canonical name, so they stay stable across restarts.
func seedMemory(names []string) *directory.Memory {
	dir := directory.NewMemory()
	for _, name := range names {
		canonical := tenant.Normalize(name)
		if canonical == "" {
			continue
		}
		dir.Add(&tenant.Tenant{
			ID:            uuid.NewSHA1(uuid.NameSpaceDNS, []byte(canonical)),
			CanonicalName: canonical,
			Subdomain:     canonical,
			Name:          strings.TrimSpace(name),
			Active:        true,
		})
	}
	return dir
}

func bucketCheck(client *s3.Client, bucket string) func(context.Context) error {
	return func(ctx context.Context) error {
		_, err := client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(bucket)})
		return err
	}
}
