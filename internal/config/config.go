package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/hanpama/relaypage/internal/schema"
)

// EnvPrefix prefixes environment overrides, e.g. RELAYPAGE_OTEL_ENDPOINT.
const EnvPrefix = "RELAYPAGE"

// Config is the relaypage configuration.
type Config struct {
	Log    *Log
	Otel   *Otel
	Schema *Schema
	Viper  *viper.Viper
}

type Log struct {
	Level string
}

type Otel struct {
	Endpoint string
	Service  string
}

// Schema holds the declared types and the extensions merged into them.
type Schema struct {
	Query      string
	Types      []schema.TypeDef
	Extensions []schema.TypeDef
}

// Load reads the configuration file at path, if any, and applies
// environment overrides. An empty path yields defaults plus environment.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("log.level", EnvPrefix+"_LOG_LEVEL", "LOG_LEVEL"); err != nil {
		return nil, err
	}

	v.SetDefault("log.level", "info")
	v.SetDefault("otel.endpoint", "")
	v.SetDefault("otel.service", "relaypage")
	v.SetDefault("schema.query", "Query")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		Log:   &Log{Level: v.GetString("log.level")},
		Otel:  getOtelConfig(v),
		Viper: v,
	}
	s, err := getSchemaConfig(v)
	if err != nil {
		return nil, err
	}
	cfg.Schema = s
	return cfg, nil
}

func getOtelConfig(v *viper.Viper) *Otel {
	return &Otel{
		Endpoint: v.GetString("otel.endpoint"),
		Service:  v.GetString("otel.service"),
	}
}

func getSchemaConfig(v *viper.Viper) (*Schema, error) {
	s := &Schema{Query: v.GetString("schema.query")}
	if err := v.UnmarshalKey("types", &s.Types); err != nil {
		return nil, fmt.Errorf("failed to decode types: %w", err)
	}
	if err := v.UnmarshalKey("extensions", &s.Extensions); err != nil {
		return nil, fmt.Errorf("failed to decode extensions: %w", err)
	}
	return s, nil
}

// Assemble builds the GraphQL schema declared by s.
func (s *Schema) Assemble() (*schema.Schema, error) {
	return schema.Assemble(s.Query, s.Types, s.Extensions)
}
