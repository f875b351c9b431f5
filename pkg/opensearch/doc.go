// Package opensearch creates opensearch-go/v2 clients for the OpenSearch
// tenant directory and exposes a cluster readiness probe.
package opensearch
