package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"predator/internal/app/version"
	"predator/internal/config"
	"predator/internal/ignorelist"
	"predator/internal/output"
	"predator/internal/support"
)

const stdoutTarget = "-"

// newFetcher is replaced in tests to point the built-in source at a local server.
var newFetcher = ignorelist.NewFetcher

type options struct {
	root        string
	configPath  string
	outputPath  string
	redisURL    string
	redisKey    string
	concurrency int
	timeout     time.Duration
	logLevel    string
	offline     bool
	showVersion bool
}

func Run() error {
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found. Falling back to system environment variables.")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return run(ctx, os.Args[1:], os.Stdout)
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("predator-ignore", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.root, "root", "", "Predator installation root (defaults to $PREDATOR_ROOT or the executable's directory)")
	fs.StringVar(&opts.configPath, "config", "", "Path to config.json (defaults to <root>/config.json)")
	fs.StringVar(&opts.outputPath, "output", stdoutTarget, "Where to write the JSON ignore list, - for stdout")
	fs.StringVar(&opts.redisURL, "redis-url", support.GetEnv("redisUrl", ""), "Also publish the ignore list to this Redis server")
	fs.StringVar(&opts.redisKey, "redis-key", output.DefaultRedisKey, "Redis key holding the published ignore list")
	fs.IntVar(&opts.concurrency, "concurrency", support.GetEnvInt("IGNORE_LIST_CONCURRENCY", ignorelist.DefaultConcurrency), "Remote sources queried in parallel")
	fs.DurationVar(&opts.timeout, "timeout", ignorelist.DefaultTimeout, "Timeout for each remote source")
	fs.StringVar(&opts.logLevel, "log-level", support.GetEnv("LOG_LEVEL", "info"), "Log level (debug, info, warn, error)")
	fs.BoolVar(&opts.offline, "offline", support.GetEnvBool("PREDATOR_OFFLINE", false), "Skip every remote source, overriding developer.offline")
	fs.BoolVar(&opts.showVersion, "version", false, "Print build information and exit")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	return opts, nil
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	opts, err := parseFlags(args, os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if opts.showVersion {
		info := version.Get()
		_, err := fmt.Fprintf(stdout, "predator-ignore %s (built %s)\n", info.BuildVersion, info.BuiltAt)
		return err
	}

	level, err := log.ParseLevel(opts.logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", opts.logLevel, err)
	}
	log.SetLevel(level)

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	if opts.offline {
		cfg.Developer.Offline = true
	}

	// Reject a broken output target before spending time on remote hosts.
	writers, closeWriters, err := buildWriters(ctx, opts, stdout)
	if err != nil {
		return err
	}
	defer closeWriters()

	fetcher := newFetcher()
	fetcher.Concurrency = opts.concurrency
	fetcher.Timeout = opts.timeout
	fetcher.Logger = log.Default()

	result := fetcher.Fetch(ctx, ignoreListOptions(cfg))
	logResult(result)

	for _, w := range writers {
		if err := w.Write(ctx, result.Entries); err != nil {
			return err
		}
	}
	return nil
}

func loadConfig(opts options) (config.Config, error) {
	if opts.configPath != "" {
		return config.Load(opts.configPath)
	}

	root := opts.root
	if root == "" {
		var err error
		root, err = config.RootDirectory()
		if err != nil {
			return config.Config{}, fmt.Errorf("determine installation root: %w", err)
		}
	}
	return config.LoadFromRoot(root)
}

func ignoreListOptions(cfg config.Config) ignorelist.Options {
	il := cfg.Developer.IgnoreList
	return ignorelist.Options{
		Enabled:       il.Enabled,
		LocalFile:     il.LocalFile,
		RemoteSources: append([]string(nil), il.RemoteSources...),
		Offline:       cfg.Developer.Offline,
	}
}

func logResult(result ignorelist.Result) {
	summary := result.Summary()
	log.Info("Ignore list built",
		"entries", len(result.Entries),
		"raw_entries", result.RawCount,
		"sources", len(result.Sources),
		"loaded", summary[ignorelist.StatusLoaded],
		"fetch_failed", summary[ignorelist.StatusFetchFailed],
		"malformed", summary[ignorelist.StatusMalformed],
		"invalid_url", summary[ignorelist.StatusInvalidURL],
	)
	for _, src := range result.Sources {
		if src.OK() || src.Status == ignorelist.StatusDisabled {
			continue
		}
		log.Debug("Ignore list source contributed nothing",
			"kind", src.Kind,
			"host", support.HostOf(src.Source),
			"status", src.Status,
			"error", src.Err,
		)
	}
}

func buildWriters(ctx context.Context, opts options, stdout io.Writer) ([]output.Writer, func(), error) {
	var (
		writers []output.Writer
		closers []func()
	)
	closeAll := func() {
		for _, c := range closers {
			c()
		}
	}

	if opts.outputPath == stdoutTarget || opts.outputPath == "" {
		writers = append(writers, output.JSONWriter{W: stdout})
	} else {
		writers = append(writers, output.FileWriter{Path: opts.outputPath})
	}

	if opts.redisURL != "" {
		client, err := support.NewRedisClient(ctx, opts.redisURL)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		closers = append(closers, func() {
			if err := client.Close(); err != nil {
				log.Warn("error closing redis client", "error", err)
			}
		})
		writers = append(writers, output.NewRedisWriter(client, opts.redisKey))
	}

	return writers, closeAll, nil
}
