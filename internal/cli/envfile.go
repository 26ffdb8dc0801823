package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/vvka-141/qload/pkg/qload"
)

// defaultEnvFile is loaded from the working directory when present.
const defaultEnvFile = ".env"

// loadEnvFiles loads ./.env (if any) and then every --env-file in order.
// Variables already present in the environment win, so earlier sources
// take precedence over later ones.
func loadEnvFiles(paths []string, logger qload.Logger) error {
	if err := godotenv.Load(defaultEnvFile); err == nil {
		logger.Verbose("Loaded environment from %s", defaultEnvFile)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to parse %s: %w: %w", defaultEnvFile, err, qload.ErrInvalidConfig)
	}

	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("failed to load env file '%s': %w: %w", path, err, qload.ErrInvalidConfig)
		}
		logger.Verbose("Loaded environment from %s", path)
	}
	return nil
}
