package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/opensearch-project/opensearch-go/v2"
	"github.com/opensearch-project/opensearch-go/v2/opensearchapi"

	"github.com/dmitrymomot/tenantkit/pkg/tenant"
)

// DefaultOpenSearchIndex holds tenant documents keyed by canonical name.
const DefaultOpenSearchIndex = "tenants"

// OpenSearch reads tenant documents whose ID is the canonical name.
type OpenSearch struct {
	client *opensearch.Client
	index  string
}

// NewOpenSearch creates a directory. An empty index uses DefaultOpenSearchIndex.
func NewOpenSearch(client *opensearch.Client, index string) *OpenSearch {
	if index == "" {
		index = DefaultOpenSearchIndex
	}
	return &OpenSearch{client: client, index: index}
}

type getResponse struct {
	Found  bool            `json:"found"`
	Source json.RawMessage `json:"_source"`
}

// FindByCanonicalName fetches the document whose ID is name. The client
// joins the ID into the request path as is, so it is escaped here.
func (o *OpenSearch) FindByCanonicalName(ctx context.Context, name string) (*tenant.Tenant, error) {
	res, err := opensearchapi.GetRequest{
		Index:      o.index,
		DocumentID: url.PathEscape(name),
	}.Do(ctx, o.client)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, tenant.ErrTenantNotFound
	}
	if res.IsError() {
		return nil, fmt.Errorf("opensearch get %s/%s: %s", o.index, name, res.Status())
	}

	var doc getResponse
	if err := json.NewDecoder(res.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	if !doc.Found {
		return nil, tenant.ErrTenantNotFound
	}
	return decodeRecord(doc.Source)
}

func (o *OpenSearch) DiagnosticID(t *tenant.Tenant) string {
	return diagnosticID(t)
}
