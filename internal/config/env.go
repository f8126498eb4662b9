package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment override, e.g. VERB_ACTOR.
const EnvPrefix = "VERB_"

// Env holds the environment overrides. Empty fields are not overrides.
type Env struct {
	Config         string `env:"CONFIG"`
	Actor          string `env:"ACTOR"`
	Admins         string `env:"ADMINS"`
	CaseSensitive  string `env:"CASE_SENSITIVE"`
	CooldownPerSec string `env:"COOLDOWN_PER_SEC"`
	AliasesPath    string `env:"ALIASES_PATH"`
	DBPath         string `env:"DB_PATH"`
	HTTPAddr       string `env:"HTTP_ADDR"`
	HTTPActor      string `env:"HTTP_ACTOR"`
	HTTPTrustActor string `env:"HTTP_TRUST_ACTOR_HEADER"`
	Theme          string `env:"THEME"`
	EnableLog      string `env:"ENABLE_LOG"`
	LogLevel       string `env:"LOG_LEVEL"`
	NoColor        bool   `env:"NO_COLOR"`
}

// LoadEnv loads dotenv files (".env" when none are named; missing files are
// ignored) into the process environment and decodes the VERB_* variables.
func LoadEnv(dotenv ...string) (Env, error) {
	if err := godotenv.Load(dotenv...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Env{}, fmt.Errorf("config: load dotenv: %w", err)
	}
	return parseEnv(nil)
}

// parseEnv decodes from environ, or from the process environment when nil.
func parseEnv(environ map[string]string) (Env, error) {
	var e Env
	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&e, opts); err != nil {
		return Env{}, fmt.Errorf("config: parse environment: %w", err)
	}
	return e, nil
}

// Overrides maps the set fields to their configuration keys.
func (e Env) Overrides() map[string]string {
	out := make(map[string]string)
	add := func(key, value string) {
		if value != "" {
			out[key] = value
		}
	}
	add("actor", e.Actor)
	add("admins", e.Admins)
	add("case_sensitive", e.CaseSensitive)
	add("cooldown_per_sec", e.CooldownPerSec)
	add("aliases_path", e.AliasesPath)
	add("db_path", e.DBPath)
	add("http_addr", e.HTTPAddr)
	add("http_actor", e.HTTPActor)
	add("http_trust_actor_header", e.HTTPTrustActor)
	add("theme", e.Theme)
	add("enable_log", e.EnableLog)
	add("log_level", e.LogLevel)
	return out
}
