package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/vvka-141/qload/internal/config"
	"github.com/vvka-141/qload/internal/db"
	"github.com/vvka-141/qload/internal/loader"
	"github.com/vvka-141/qload/internal/logging"
	"github.com/vvka-141/qload/internal/progress"
	"github.com/vvka-141/qload/internal/queue"
	"github.com/vvka-141/qload/pkg/qload"
)

type loadFlagValues struct {
	profile, configPath   string
	databaseURL, redisURL string
	batchSize             int
	stream, dryRun        bool
	timeout               time.Duration
	envFiles              []string
}

var loadFlags = loadFlagValues{timeout: qload.DefaultTimeout}

// queueWriter is what the command needs from the queue beyond pushing.
type queueWriter interface {
	qload.QueueWriter
	Len(ctx context.Context, queue string) (int64, error)
}

// loadDeps are the outside-world touch points of a run, replaced in tests.
type loadDeps struct {
	openSource func(ctx context.Context, cfg *qload.ConnectionConfig) (qload.RowSource, func(), error)
	openQueue  func(ctx context.Context, cfg queue.RedisConfig) (queueWriter, func(), error)
	getenv     func(string) string
	stdout     io.Writer
	stderr     io.Writer
	detectMode func() progress.Mode
}

var deps = defaultLoadDeps()

func defaultLoadDeps() loadDeps {
	return loadDeps{
		openSource: openPostgresSource,
		openQueue:  openRedisQueue,
		getenv:     os.Getenv,
		stdout:     os.Stdout,
		stderr:     os.Stderr,
		detectMode: func() progress.Mode { return progress.DetectMode(os.Stdout) },
	}
}

func openPostgresSource(ctx context.Context, cfg *qload.ConnectionConfig) (qload.RowSource, func(), error) {
	connector, err := db.NewConnector(cfg)
	if err != nil {
		return nil, nil, err
	}

	pool, err := connector.Connect(ctx)
	if err != nil {
		if closer, ok := connector.(io.Closer); ok {
			_ = closer.Close()
		}
		return nil, nil, err
	}

	cleanup := func() {
		pool.Close()
		if closer, ok := connector.(io.Closer); ok {
			_ = closer.Close()
		}
	}
	return db.NewSource(pool), cleanup, nil
}

func openRedisQueue(ctx context.Context, cfg queue.RedisConfig) (queueWriter, func(), error) {
	q, err := queue.Connect(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return q, func() { _ = q.Close() }, nil
}

// buildLoadConfig resolves the run configuration from flags, env files,
// environment variables and the profile file.
func buildLoadConfig(cmd *cobra.Command, verbose bool, logger qload.Logger) (*qload.LoadConfig, error) {
	if err := loadEnvFiles(loadFlags.envFiles, logger); err != nil {
		return nil, err
	}

	path := loadFlags.configPath
	if path == "" {
		path = config.ConfigFileName
	}
	file, err := config.Load(path)
	switch {
	case errors.Is(err, config.ErrConfigNotFound) && loadFlags.configPath == "":
		file = nil
	case err != nil:
		return nil, fmt.Errorf("failed to load %s: %w: %w", path, err, qload.ErrInvalidConfig)
	default:
		logger.Verbose("Loaded profiles from %s", path)
	}

	return config.Resolve(file, config.Flags{
		Profile:     loadFlags.profile,
		DatabaseURL: loadFlags.databaseURL,
		RedisURL:    loadFlags.redisURL,
		BatchSize:   loadFlags.batchSize,
		Timeout:     timeoutFlag(cmd),
		Stream:      loadFlags.stream,
		DryRun:      loadFlags.dryRun,
		Verbose:     verbose,
	}, deps.getenv, logger)
}

func runLoad(cmd *cobra.Command, args []string) error {
	if showVersion, _ := cmd.Flags().GetBool("version"); showVersion {
		printVersionInfo(deps.stdout, deps.stderr)
		return nil
	}
	if len(args) != 2 {
		return nil
	}
	queueName, sql := args[0], args[1]
	verbose := getVerboseFlag(cmd)

	runID := uuid.NewString()
	logger := logging.NewWriterLogger(deps.stderr, verbose).WithRunID(runID[:8])

	cfg, err := buildLoadConfig(cmd, verbose, logger)
	if err != nil {
		return err
	}
	cfg.Database.AppName = fmt.Sprintf("%s-%s", cfg.Database.AppName, runID[:8])

	fmt.Fprintf(deps.stderr, "[Env:%s] [Chan:%s] [CMD:%s]\n", cfg.Profile, queueName, sql)

	redisCfg := queue.RedisConfig{URL: cfg.RedisURL, MaxRetries: -1}
	logger.Verbose("Database: %s (auth: %s)", db.Redact(cfg.Database), cfg.Database.AuthMethod)
	if !cfg.DryRun {
		logger.Verbose("Queue: %s", redisCfg.Redacted())
	}

	ctx, cancel := runContext(cfg.Timeout)
	defer cancel()

	source, closeSource, err := deps.openSource(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer closeSource()

	var writer queueWriter
	if !cfg.DryRun {
		w, closeQueue, err := deps.openQueue(ctx, redisCfg)
		if err != nil {
			return err
		}
		defer closeQueue()
		writer = w
	}

	// env files are loaded by now, so QLOAD_PLAIN and NO_COLOR from them apply
	reporter := progress.NewLineReporter(deps.stdout, deps.detectMode())
	l := loader.New(source, pushTarget(writer), reporter, logger,
		loader.WithBatchSize(cfg.BatchSize),
		loader.WithStream(cfg.Stream),
		loader.WithDryRun(cfg.DryRun),
		loader.WithRunID(runID),
	)

	result, err := l.Run(ctx, queueName, sql)
	if err != nil {
		if result.Rows > 0 {
			logger.Error("%d rows in %d batches reached %q before the failure", result.Rows, result.Batches, queueName)
		}
		return fmt.Errorf("load into %q failed: %w", queueName, err)
	}

	if writer != nil && verbose {
		if n, err := writer.Len(ctx, queueName); err == nil {
			logger.Verbose("Queue %q now holds %d items", queueName, n)
		}
	}
	return nil
}

// pushTarget avoids handing the loader a typed nil in dry-run mode.
func pushTarget(w queueWriter) qload.QueueWriter {
	if w == nil {
		return nil
	}
	return w
}

// runContext applies the timeout (0 disables it) and cancels on SIGINT/SIGTERM.
func runContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	if timeout > 0 {
		var cancelTimeout context.CancelFunc
		ctx, cancelTimeout = context.WithTimeout(ctx, timeout)
		parent := cancel
		cancel = func() {
			cancelTimeout()
			parent()
		}
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-sigChan:
			fmt.Fprintln(os.Stderr, "\n[INTERRUPT] Received interrupt signal, cancelling load...")
			cancel()
		case <-ctx.Done():
		}
	}()

	stop := cancel
	return ctx, func() {
		signal.Stop(sigChan)
		stop()
	}
}
