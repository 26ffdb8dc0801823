package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vvka-141/qload/internal/db"
	"github.com/vvka-141/qload/pkg/qload"
)

// Environment variables read during resolution.
const (
	EnvProfile        = "ENV"
	EnvQloadProfile   = "QLOAD_PROFILE"
	EnvDatabaseURL    = "DATABASE_URL"
	EnvQloadDatabase  = "QLOAD_DATABASE_URL"
	EnvRedisURL       = "REDIS_URL"
	EnvQloadRedisURL  = "QLOAD_REDIS_URL"
	EnvQloadBatchSize = "QLOAD_BATCH_SIZE"
)

// Flags holds command line values. Zero values mean "not given".
type Flags struct {
	Profile     string
	DatabaseURL string
	RedisURL    string
	BatchSize   int
	Timeout     *time.Duration
	Stream      bool
	DryRun      bool
	Verbose     bool
}

// SelectProfile picks the profile name: --profile, then QLOAD_PROFILE, then
// ENV, then the file default. A name that matches no known profile falls
// back to the default and fellBack is true.
func SelectProfile(file *FileConfig, flagProfile string, getenv func(string) string) (name string, fellBack bool) {
	requested := firstSet(flagProfile, getenv(EnvQloadProfile), getenv(EnvProfile))
	if requested == "" {
		return defaultProfileName(file), false
	}
	if _, ok := lookupProfile(file, requested); ok {
		return requested, false
	}
	return defaultProfileName(file), true
}

// Resolve builds the LoadConfig for one run.
//
// Precedence per setting: flag > environment > qload.yaml profile > built-in
// profile. file may be nil when no qload.yaml exists.
func Resolve(file *FileConfig, flags Flags, getenv func(string) string, logger qload.Logger) (*qload.LoadConfig, error) {
	name, fellBack := SelectProfile(file, flags.Profile, getenv)
	if fellBack {
		logger.Verbose("Unknown profile %q, using %q (known: %s)",
			firstSet(flags.Profile, getenv(EnvQloadProfile), getenv(EnvProfile)),
			name, strings.Join(ProfileNames(file), ", "))
	}
	profile, _ := lookupProfile(file, name)

	batchSize, err := resolveBatchSize(flags.BatchSize, getenv(EnvQloadBatchSize), profile.BatchSize)
	if err != nil {
		return nil, err
	}

	timeout, err := resolveTimeout(flags.Timeout, file)
	if err != nil {
		return nil, err
	}

	method, err := qload.ParseAuthMethod(profile.AuthMethod)
	if err != nil {
		return nil, fmt.Errorf("profile %q: %w", name, err)
	}

	databaseURL := firstSet(flags.DatabaseURL, getenv(EnvQloadDatabase), getenv(EnvDatabaseURL), profile.DatabaseURL)
	conn, err := db.ResolveConnection(databaseURL, db.CloudAuth{
		Method:         method,
		AWSRegion:      profile.AWSRegion,
		GoogleInstance: profile.GoogleInstance,
		AzureTenantID:  profile.AzureTenantID,
		AzureClientID:  profile.AzureClientID,
	}, db.EnvFrom(getenv))
	if err != nil {
		return nil, fmt.Errorf("profile %q: %w", name, err)
	}
	if conn.AppName == "" {
		conn.AppName = qload.AppName
	}

	cfg := &qload.LoadConfig{
		Profile:   name,
		Database:  conn,
		RedisURL:  firstSet(flags.RedisURL, getenv(EnvQloadRedisURL), getenv(EnvRedisURL), profile.RedisURL),
		BatchSize: batchSize,
		Stream:    flags.Stream,
		DryRun:    flags.DryRun,
		Timeout:   timeout,
		Verbose:   flags.Verbose,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func resolveBatchSize(flag int, env string, profile int) (int, error) {
	if flag != 0 {
		return flag, nil
	}
	if env != "" {
		n, err := strconv.Atoi(strings.TrimSpace(env))
		if err != nil {
			return 0, fmt.Errorf("invalid $%s value %q: must be an integer: %w", EnvQloadBatchSize, env, qload.ErrInvalidConfig)
		}
		return n, nil
	}
	if profile != 0 {
		return profile, nil
	}
	return qload.DefaultBatchSize, nil
}

func resolveTimeout(flag *time.Duration, file *FileConfig) (time.Duration, error) {
	if flag != nil {
		return *flag, nil
	}
	if file != nil && file.Timeout != "" {
		d, err := time.ParseDuration(file.Timeout)
		if err != nil {
			return 0, fmt.Errorf("invalid timeout %q in %s: %w", file.Timeout, ConfigFileName, qload.ErrInvalidConfig)
		}
		return d, nil
	}
	return qload.DefaultTimeout, nil
}

func firstSet(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
