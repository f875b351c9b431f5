// Package config loads typed configuration from environment variables.
//
// Structs describe their variables with caarlos0/env tags; a .env file in the
// working directory is loaded once through godotenv before the first parse.
// Each configuration type is parsed once and cached, so packages can call
// Load for their own struct without threading values through constructors.
//
//	type Config struct {
//		Directory string              `env:"TENANT_DIRECTORY" envDefault:"memory"`
//		Parsers   []tenant.ParserSpec `env:"TENANT_PARSERS" envSeparator:";"`
//	}
//
//	var cfg Config
//	config.MustLoad(&cfg)
//
// Types implementing encoding.TextUnmarshaler, such as tenant.ParserSpec, are
// decoded by their own UnmarshalText. Use LoadEnv for explicit env files and
// Reload or Reset when the environment changes at runtime, e.g. in tests.
package config
