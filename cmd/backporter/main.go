package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	zaplogfmt "github.com/sykesm/zap-logfmt"
	"github.com/thecodeteam/goodbye"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/simplesurance/backporter/internal/backport"
	"github.com/simplesurance/backporter/internal/cfg"
	"github.com/simplesurance/backporter/internal/githubclt"
	"github.com/simplesurance/backporter/internal/logfields"
)

const appName = "backporter"

var logger *zap.Logger

// Version is set via a ldflag on compilation
var Version = "unknown"

const defBaseBranchRef = "refs/heads/next"

func exitOnErr(msg string, err error) {
	if err == nil {
		return
	}

	fmt.Fprintln(os.Stderr, "ERROR:", msg+", error:", err.Error())
	os.Exit(1)
}

func panicHandler() {
	if r := recover(); r != nil {
		logger.Info(
			"panic caught, terminating gracefully",
			zap.String("panic", fmt.Sprintf("%v", r)),
			zap.StackSkip("stacktrace", 1),
		)

		ctx, cancelFn := context.WithTimeout(context.Background(), time.Minute)
		defer cancelFn()

		goodbye.Exit(ctx, 1)
	}
}

type arguments struct {
	Repo        *string
	BaseBranch  *string
	Commits     *string
	PullRequest *int
	HeadCommit  *string
	Label       *string
	Timeout     *time.Duration
	Verbose     *bool
	ConfigFile  *string
	ShowVersion *bool
}

var args arguments

const defConfigFile = "/etc/backporter/config.toml"

func mustParseCommandlineParams() {
	args = arguments{
		Repo: pflag.String(
			"repo",
			"",
			"github repository to process, format: <owner>/<name>",
		),
		BaseBranch: pflag.String(
			"base-branch",
			defBaseBranchRef,
			"git ref of the promotion branch",
		),
		Commits: pflag.String(
			"commits",
			"",
			"range of promoted commits to scan for pull requests, format: <start>..<end>",
		),
		PullRequest: pflag.Int(
			"pull-request",
			0,
			"number of a single pull request to backport",
		),
		HeadCommit: pflag.String(
			"head-commit",
			"",
			"head of the promotion branch after the pull request was merged, required with --pull-request",
		),
		Label: pflag.String(
			"label",
			"",
			"backport label to process instead of scanning the pull request labels, only valid with --pull-request",
		),
		Timeout: pflag.Duration(
			"timeout",
			0,
			"maximum duration of the whole run, 0 disables the timeout",
		),
		Verbose: pflag.BoolP(
			"verbose",
			"v",
			false,
			"enable verbose logging",
		),
		ConfigFile: pflag.StringP(
			"cfg-file",
			"c",
			defConfigFile,
			"path to the backporter configuration file",
		),
		ShowVersion: pflag.Bool(
			"version",
			false,
			"print the version and exit",
		),
	}

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTION]\nBackport merged pull requests to older release branches.\n", appName)
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		pflag.PrintDefaults()
	}

	pflag.Parse()
}

func mustValidateCommandlineParams() {
	if *args.Repo == "" {
		fmt.Fprintln(os.Stderr, "ERROR: --repo must be specified")
		os.Exit(2)
	}

	if !strings.Contains(*args.Repo, "/") {
		fmt.Fprintf(os.Stderr, "ERROR: invalid --repo value %q, expected format: <owner>/<name>\n", *args.Repo)
		os.Exit(2)
	}

	if *args.PullRequest == 0 && *args.Commits == "" {
		fmt.Fprintln(os.Stderr, "ERROR: either --pull-request or --commits must be specified")
		os.Exit(2)
	}

	if *args.PullRequest != 0 && *args.HeadCommit == "" {
		fmt.Fprintln(os.Stderr, "ERROR: --head-commit must be specified when --pull-request is used")
		os.Exit(2)
	}

	if *args.Label != "" && *args.PullRequest == 0 {
		fmt.Fprintln(os.Stderr, "ERROR: --label is only valid together with --pull-request")
		os.Exit(2)
	}
}

func mustParseCfg() *cfg.Config {
	// we use exitOnErr in this function instead of logger.Fatal() because
	// the logger is not initialized yet

	file, err := os.Open(*args.ConfigFile)
	exitOnErr("could not open configuration file", err)
	defer file.Close()

	config, err := cfg.Load(file)
	if err != nil {
		exitOnErr(fmt.Sprintf("could not load configuration file: %s", *args.ConfigFile), err)
	}

	if config.GithubAPIToken == "" {
		config.GithubAPIToken = os.Getenv("GITHUB_TOKEN")
	}

	if config.GithubAPIToken == "" {
		fmt.Fprintln(os.Stderr, "ERROR: github_api_token must be set in the config file or via the GITHUB_TOKEN environment variable")
		os.Exit(1)
	}

	if config.BotUser == "" {
		fmt.Fprintln(os.Stderr, "ERROR: bot_user must be set in the config file")
		os.Exit(1)
	}

	return config
}

func initLogFmtLogger(config *cfg.Config, logLevel zapcore.Level) *zap.Logger {
	cfg := zapEncoderConfig(config)

	logger := zap.New(zapcore.NewCore(
		zaplogfmt.NewEncoder(cfg),
		os.Stdout,
		logLevel),
	)

	return logger
}

func zapEncoderConfig(config *cfg.Config) zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()

	cfg.LevelKey = "loglevel"
	cfg.TimeKey = config.LogTimeKey
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeDuration = zapcore.StringDurationEncoder

	return cfg
}

func mustInitZapFormatLogger(config *cfg.Config, logLevel zapcore.Level) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.Sampling = nil
	cfg.EncoderConfig = zapEncoderConfig(config)
	cfg.OutputPaths = []string{"stdout"}
	cfg.Encoding = config.LogFormat
	cfg.Level = zap.NewAtomicLevelAt(logLevel)

	logger, err := cfg.Build()
	exitOnErr("could not initialize logger", err)

	return logger
}

func mustInitLogger(config *cfg.Config) {
	var logLevel zapcore.Level
	if *args.Verbose {
		logLevel = zapcore.DebugLevel
	} else {
		if err := (&logLevel).Set(config.LogLevel); err != nil {
			fmt.Fprintf(os.Stderr, "can not set log level to %q: %s\n", config.LogLevel, err)
			os.Exit(2)
		}
	}

	switch config.LogFormat {
	case "logfmt":
		logger = initLogFmtLogger(config, logLevel)
	case "console", "json":
		logger = mustInitZapFormatLogger(config, logLevel)
	default:
		fmt.Fprintf(os.Stderr, "unsupported log-format argument: %q\n", config.LogFormat)
		os.Exit(2)
	}

	logger = logger.Named("main")
	zap.ReplaceGlobals(logger)

	goodbye.Register(func(context.Context, os.Signal) {
		if err := logger.Sync(); err != nil {
			fmt.Fprintf(os.Stderr, "flushing logs failed: %s\n", err)
		}
	})
}

func hide(in string) string {
	if in == "" {
		return in
	}

	return "**hidden**"
}

func cloneURL(user, token, owner, repo string) string {
	return fmt.Sprintf("https://%s:%s@github.com/%s/%s.git", user, token, owner, repo)
}

func main() {
	defer panicHandler()

	defer goodbye.Exit(context.Background(), 1)
	goodbye.Notify(context.Background())

	mustParseCommandlineParams()

	if *args.ShowVersion {
		fmt.Printf("%s %s\n", appName, Version)
		os.Exit(0) // nolint:gocritic // defer functions won't run
	}

	mustValidateCommandlineParams()

	config := mustParseCfg()

	mustInitLogger(config)

	owner, repoName, _ := strings.Cut(*args.Repo, "/")

	logger.Info(
		"loaded cfg file",
		logfields.Event("cfg_loaded"),
		zap.String("cfg_file", *args.ConfigFile),
		logfields.RepositoryOwner(owner),
		logfields.Repository(repoName),
		zap.String("bot_user", config.BotUser),
		zap.String("github_api_token", hide(config.GithubAPIToken)),
		zap.String("promoted_label", config.PromotedLabel),
		zap.String("filter_query", config.FilterQuery),
		zap.String("log_format", config.LogFormat),
		zap.String("log_time_key", config.LogTimeKey),
		zap.String("log_level", config.LogLevel),
	)

	goodbye.Register(func(_ context.Context, sig os.Signal) {
		logger.Info(fmt.Sprintf("terminating, received signal %s", sig.String()))
	})

	ctx := context.Background()
	if *args.Timeout > 0 {
		var cancelFn context.CancelFunc
		ctx, cancelFn = context.WithTimeout(ctx, *args.Timeout)
		defer cancelFn()
	}

	githubClient := githubclt.New(config.GithubAPIToken)

	var filter *backport.PRFilter
	if config.FilterQuery != "" {
		var err error
		filter, err = backport.NewPRFilter(config.FilterQuery)
		exitOnErr("could not parse filter_query from configuration file", err)
	}

	forkPushURL := config.ForkCloneURL
	if forkPushURL == "" {
		forkPushURL = cloneURL(config.BotUser, config.GithubAPIToken, config.BotUser, repoName)
	}

	replayer := backport.NewReplayEngine(
		cloneURL(config.BotUser, config.GithubAPIToken, owner, repoName),
		forkPushURL,
		config.BotUser,
		config.BotUser+"@users.noreply.github.com",
	)

	coordinator := backport.NewCoordinator(&backport.CoordinatorParams{
		GithubClient:    githubClient,
		Resolver:        backport.NewResolver(githubClient, nil),
		Planner:         backport.NewPlanner(),
		ReplayEngine:    replayer,
		Publisher:       backport.NewPublisher(githubClient, backport.NewRetryer(), config.BotUser),
		Filter:          filter,
		RepositoryOwner: owner,
		Repository:      repoName,
		PromotedLabel:   config.PromotedLabel,
	})

	err := coordinator.Run(ctx, &backport.Request{
		BaseBranchRef: *args.BaseBranch,
		CommitRange:   *args.Commits,
		PRNumber:      *args.PullRequest,
		HeadCommit:    *args.HeadCommit,
		LabelOverride: *args.Label,
	})

	backport.PushMetrics(config.MetricsPushgatewayURL)

	if err != nil {
		logger.Error("run failed", logfields.Event("run_failed"), zap.Error(err))
		goodbye.Exit(ctx, 1)
		return
	}

	logger.Info("run finished", logfields.Event("run_finished"))
	goodbye.Exit(ctx, 0)
}
