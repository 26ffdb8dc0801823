package config

import (
	"sort"

	"github.com/vvka-141/qload/pkg/qload"
)

// builtinProfiles are used when neither qload.yaml nor the environment
// name the connection endpoints. dev is the default.
var builtinProfiles = map[string]ProfileConfig{
	"local": {
		DatabaseURL: "postgres://localhost:5432/app",
		RedisURL:    "redis://localhost:6379/0",
	},
	"dev": {
		DatabaseURL: "postgres://app@localhost:5432/app",
		RedisURL:    "redis://localhost:6379/0",
	},
	"prod": {
		DatabaseURL: "postgres://localhost:5432/app?sslmode=prefer",
		RedisURL:    "redis://localhost:6379/0",
	},
}

// ProfileNames returns the names known from file and the built-in set, sorted.
func ProfileNames(file *FileConfig) []string {
	seen := make(map[string]bool)
	for name := range builtinProfiles {
		seen[name] = true
	}
	if file != nil {
		for name := range file.Profiles {
			seen[name] = true
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// lookupProfile merges the file profile over the built-in one of the same name.
func lookupProfile(file *FileConfig, name string) (ProfileConfig, bool) {
	builtin, hasBuiltin := builtinProfiles[name]

	var fromFile ProfileConfig
	hasFile := false
	if file != nil {
		fromFile, hasFile = file.Profiles[name]
	}

	if !hasBuiltin && !hasFile {
		return ProfileConfig{}, false
	}
	if !hasFile {
		return builtin, true
	}
	return mergeProfile(builtin, fromFile), true
}

func mergeProfile(base, over ProfileConfig) ProfileConfig {
	out := base
	if over.DatabaseURL != "" {
		out.DatabaseURL = over.DatabaseURL
	}
	if over.RedisURL != "" {
		out.RedisURL = over.RedisURL
	}
	if over.BatchSize != 0 {
		out.BatchSize = over.BatchSize
	}
	if over.AuthMethod != "" {
		out.AuthMethod = over.AuthMethod
	}
	if over.AWSRegion != "" {
		out.AWSRegion = over.AWSRegion
	}
	if over.GoogleInstance != "" {
		out.GoogleInstance = over.GoogleInstance
	}
	if over.AzureTenantID != "" {
		out.AzureTenantID = over.AzureTenantID
	}
	if over.AzureClientID != "" {
		out.AzureClientID = over.AzureClientID
	}
	return out
}

// defaultProfileName is the file's default_profile when it names a known
// profile, else qload.DefaultProfile.
func defaultProfileName(file *FileConfig) string {
	if file != nil && file.DefaultProfile != "" {
		if _, ok := lookupProfile(file, file.DefaultProfile); ok {
			return file.DefaultProfile
		}
	}
	return qload.DefaultProfile
}
