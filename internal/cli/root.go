package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/vvka-141/qload/internal/config"
	"github.com/vvka-141/qload/pkg/qload"
)

var rootCmd = &cobra.Command{
	Use:   "qload <queue_name> <sql>",
	Short: "Load a PostgreSQL query result onto a Redis list in batches",
	Long: `qload runs a single-column SQL query and pushes the values onto a Redis
list with LPUSH, one bulk push per batch, printing "Commit: n / total"
after every batch.

Anything other than exactly two arguments does nothing and exits 0.

Profiles:
  The connection profile is chosen by --profile, $QLOAD_PROFILE or $ENV
  (local, dev, prod, or a profile from qload.yaml). Unset or unknown
  names fall back to dev.

Exit Codes:
  0  - Success (or nothing to do)
  1  - General error
  2  - CLI usage error (invalid flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration or profile
  11 - PostgreSQL or Redis connection failed
  13 - SQL query failed
  15 - Queue push failed`,
	Example: `  qload "wdj:app:todo" "SELECT apk FROM android WHERE wdj = 1 LIMIT 100;"
  ENV=prod qload "wdj:search:todo" "SELECT name FROM wdj_app"
  qload --stream --batch-size 5000 todo "SELECT id FROM jobs"`,
	Args:         cobra.ArbitraryArgs,
	RunE:         runLoad,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.Flags()

	flags.StringVar(&loadFlags.profile, "profile", "",
		"Connection profile (overrides $QLOAD_PROFILE and $ENV)")
	flags.StringVar(&loadFlags.configPath, "config", "",
		"Path to the profile file (default: ./"+config.ConfigFileName+" if present)")
	flags.StringVar(&loadFlags.databaseURL, "database-url", "",
		"PostgreSQL connection string (URI or ADO.NET format)\n"+
			"Precedence: --database-url > $QLOAD_DATABASE_URL > $DATABASE_URL > profile")
	flags.StringVar(&loadFlags.redisURL, "redis-url", "",
		"Redis URL, e.g. redis://:password@localhost:6379/0\n"+
			"Precedence: --redis-url > $QLOAD_REDIS_URL > $REDIS_URL > profile")
	flags.IntVar(&loadFlags.batchSize, "batch-size", 0,
		fmt.Sprintf("Values per LPUSH (default %d, or $QLOAD_BATCH_SIZE)", qload.DefaultBatchSize))
	flags.BoolVar(&loadFlags.stream, "stream", false,
		"Push batches while rows are still arriving; total is reported as '?'")
	flags.BoolVar(&loadFlags.dryRun, "dry-run", false,
		"Run the query and report batches without connecting to Redis")
	flags.DurationVar(&loadFlags.timeout, "timeout", qload.DefaultTimeout,
		"Upper bound for the whole run; 0 disables it\n"+
			"Examples: 30s, 5m, 1h30m")
	flags.StringArrayVar(&loadFlags.envFiles, "env-file", nil,
		"Load environment variables from a .env file (can be specified multiple times)\n"+
			"Variables already set in the environment are not overridden")
	flags.BoolP("verbose", "v", false, "Enable verbose output")
	flags.Bool("version", false, "Print version information and exit")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}

// timeoutFlag returns the --timeout value only when it was given explicitly.
func timeoutFlag(cmd *cobra.Command) *time.Duration {
	if !cmd.Flags().Changed("timeout") {
		return nil
	}
	t := loadFlags.timeout
	return &t
}
