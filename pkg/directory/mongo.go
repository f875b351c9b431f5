package directory

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/tenantkit/pkg/tenant"
)

// MongoFinder is the subset of *mongo.Collection used by Mongo.
type MongoFinder interface {
	FindOne(ctx context.Context, filter any, opts ...options.Lister[options.FindOneOptions]) *mongo.SingleResult
}

// Mongo looks tenants up by the canonical_name field of a collection.
type Mongo struct {
	coll MongoFinder
}

// NewMongo creates a directory on top of a tenant collection.
func NewMongo(coll MongoFinder) *Mongo {
	return &Mongo{coll: coll}
}

func (m *Mongo) FindByCanonicalName(ctx context.Context, name string) (*tenant.Tenant, error) {
	var t tenant.Tenant
	err := m.coll.FindOne(ctx, bson.D{{Key: "canonical_name", Value: name}}).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, tenant.ErrTenantNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (m *Mongo) DiagnosticID(t *tenant.Tenant) string {
	return diagnosticID(t)
}

// EnsureMongoIndexes creates the unique canonical_name index.
func EnsureMongoIndexes(ctx context.Context, coll *mongo.Collection) error {
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "canonical_name", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("canonical_name_unique"),
	})
	return err
}
