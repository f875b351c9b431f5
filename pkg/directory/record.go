package directory

import (
	"encoding/json"
	"fmt"

	"github.com/dmitrymomot/tenantkit/pkg/tenant"
)

// decodeRecord parses a JSON tenant document stored by a key-value backend.
// A document without canonical name is treated as corrupt.
func decodeRecord(data []byte) (*tenant.Tenant, error) {
	var t tenant.Tenant
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	if t.CanonicalName == "" {
		return nil, fmt.Errorf("%w: missing canonical_name", ErrInvalidRecord)
	}
	return &t, nil
}

func encodeRecord(t *tenant.Tenant) ([]byte, error) {
	if t == nil || t.CanonicalName == "" {
		return nil, fmt.Errorf("%w: missing canonical_name", ErrInvalidRecord)
	}
	return json.Marshal(t)
}

// diagnosticID is shared by all backends; tenants are keyed by UUID everywhere.
func diagnosticID(t *tenant.Tenant) string {
	if t == nil {
		return ""
	}
	return t.ID.String()
}
