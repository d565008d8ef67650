// Package config resolves the h1st command-line configuration from flags,
// the process environment and an optional .env file, in that order of
// precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables read as defaults for the matching flags.
const (
	EnvFile      = "H1ST_ENV_FILE"
	EnvManifest  = "H1ST_MANIFEST"
	EnvLogLevel  = "H1ST_LOG_LEVEL"
	EnvLogFormat = "H1ST_LOG_FORMAT"
	EnvCacheSize = "H1ST_CACHE_SIZE"
)

const (
	defaultEnvFile   = ".env"
	defaultLogLevel  = "info"
	defaultLogFormat = "text"
	defaultCacheSize = 128
)

// Config holds everything the app needs for one run.
type Config struct {
	ManifestPath  string   // build log to replay (.hcl, .yaml, .yml)
	ScriptPath    string   // session script, "-" for stdin
	Track         []string // files to track after loading
	IgnoreMissing bool     // skip tracked files without a producer

	LogLevel  string
	LogFormat string
	CacheSize int // track-result cache entries
}

// Load parses args against the real process environment.
func Load(args []string, outW io.Writer) (*Config, bool, error) {
	return Parse(args, outW, os.LookupEnv)
}

// Parse builds a Config from args. Defaults come from lookupEnv first and
// then from the .env file (H1ST_ENV_FILE, default ".env"); a missing default
// .env file is not an error. The boolean result is true when the caller
// should exit without running (help was requested).
func Parse(args []string, outW io.Writer, lookupEnv func(string) (string, bool)) (*Config, bool, error) {
	env, err := newEnv(lookupEnv)
	if err != nil {
		return nil, false, err
	}

	cacheDefault := defaultCacheSize
	if raw := env.get(EnvCacheSize); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, false, fmt.Errorf("config: %s=%q: %w", EnvCacheSize, raw, err)
		}
		cacheDefault = n
	}

	cfg := &Config{}
	var track string

	fsFlags := flag.NewFlagSet("h1st", flag.ContinueOnError)
	fsFlags.SetOutput(outW)
	fsFlags.StringVar(&cfg.ManifestPath, "manifest", env.get(EnvManifest), "build log to replay (.hcl, .yaml, .yml)")
	fsFlags.StringVar(&cfg.ScriptPath, "script", "", `session script to execute ("-" for stdin)`)
	fsFlags.StringVar(&track, "track", "", "comma-separated files whose provenance is printed")
	fsFlags.BoolVar(&cfg.IgnoreMissing, "ignore-missing", false, "skip tracked files that have no producer")
	fsFlags.StringVar(&cfg.LogLevel, "log-level", firstNonEmpty(env.get(EnvLogLevel), defaultLogLevel), "log level: debug, info, warn, error")
	fsFlags.StringVar(&cfg.LogFormat, "log-format", firstNonEmpty(env.get(EnvLogFormat), defaultLogFormat), "log format: text, json")
	fsFlags.IntVar(&cfg.CacheSize, "cache-size", cacheDefault, "entries kept in the track-result cache")

	if err := fsFlags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, err
	}
	if fsFlags.NArg() > 0 {
		return nil, false, fmt.Errorf("config: unexpected arguments: %s", strings.Join(fsFlags.Args(), " "))
	}

	cfg.Track = splitList(track)
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))

	if err := cfg.Validate(); err != nil {
		return nil, false, err
	}
	return cfg, false, nil
}

// Validate checks field values that flag parsing cannot.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: invalid log level %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("config: invalid log format %q", c.LogFormat)
	}
	if c.CacheSize <= 0 {
		return fmt.Errorf("config: cache size must be positive, got %d", c.CacheSize)
	}
	return nil
}

// env layers the process environment over the values of a .env file.
type env struct {
	lookup func(string) (string, bool)
	file   map[string]string
}

func newEnv(lookup func(string) (string, bool)) (*env, error) {
	if lookup == nil {
		lookup = func(string) (string, bool) { return "", false }
	}
	e := &env{lookup: lookup}

	path, explicit := lookup(EnvFile)
	if !explicit || strings.TrimSpace(path) == "" {
		path = defaultEnvFile
		explicit = false
	}
	vals, err := godotenv.Read(path)
	switch {
	case err == nil:
		e.file = vals
	case !explicit && errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("config: read env file %s: %w", path, err)
	}
	return e, nil
}

func (e *env) get(key string) string {
	if v, ok := e.lookup(key); ok {
		return strings.TrimSpace(v)
	}
	return strings.TrimSpace(e.file[key])
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
