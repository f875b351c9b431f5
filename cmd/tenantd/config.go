package main

import (
	"time"

	"github.com/dmitrymomot/tenantkit/pkg/tenant"
)

// Directory backends selectable with TENANT_DIRECTORY.
const (
	backendMemory     = "memory"
	backendPostgres   = "postgres"
	backendRedis      = "redis"
	backendMongo      = "mongo"
	backendS3         = "s3"
	backendOpenSearch = "opensearch"
)

type appConfig struct {
	Env         string `env:"APP_ENV" envDefault:"development"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"tenantd"`
	LogLevel    string `env:"LOG_LEVEL"`

	// TENANT_PARSERS entries are separated by ";" since host and path
	// expressions may contain commas.
	Directory    string              `env:"TENANT_DIRECTORY" envDefault:"memory"`
	Parsers      []tenant.ParserSpec `env:"TENANT_PARSERS" envSeparator:";" envDefault:"header:X-Tenant-ID;query:tenant"`
	PipelineFile string              `env:"TENANT_PIPELINE_FILE"` // wins over TENANT_PARSERS when set
	Seed         []string            `env:"TENANT_SEED" envSeparator:","` // memory backend only

	CacheSize int           `env:"TENANT_CACHE_SIZE" envDefault:"1024"` // zero disables the cache
	CacheTTL  time.Duration `env:"TENANT_CACHE_TTL" envDefault:"1m"`

	RequireActive  bool          `env:"TENANT_REQUIRE_ACTIVE" envDefault:"true"`
	LazyResolution bool          `env:"TENANT_LAZY_RESOLUTION" envDefault:"false"`
	ReadyTimeout   time.Duration `env:"HEALTH_READY_TIMEOUT" envDefault:"3s"`
}

// parserSpecs returns the chain from the pipeline file if configured,
// the environment list otherwise.
func (c appConfig) parserSpecs() ([]tenant.ParserSpec, error) {
	if c.PipelineFile == "" {
		return c.Parsers, nil
	}
	return tenant.LoadPipelineFile(c.PipelineFile)
}
