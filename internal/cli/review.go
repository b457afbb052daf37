package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aliGhadyani/loupe/internal/cache"
	"github.com/aliGhadyani/loupe/internal/config"
	"github.com/aliGhadyani/loupe/internal/discover"
	"github.com/aliGhadyani/loupe/internal/ignore"
	"github.com/aliGhadyani/loupe/internal/language"
	"github.com/aliGhadyani/loupe/internal/notify"
	"github.com/aliGhadyani/loupe/internal/output"
	"github.com/aliGhadyani/loupe/internal/providers"
	"github.com/aliGhadyani/loupe/internal/review"
	"github.com/aliGhadyani/loupe/internal/toolexec"
	"github.com/spf13/cobra"
)

// Review flags
var (
	flagConfig      string
	flagIgnoreFile  string
	flagPatterns    []string
	flagProvider    string
	flagModel       string
	flagMode        string
	flagRules       string
	flagFormat      string
	flagOut         string
	flagWorkers     int
	flagFileTimeout int
	flagMaxBytes    int
	flagWebhook     string
	flagStrict      bool
	flagNoCache     bool
	flagNoRedact    bool
	flagQuiet       bool
)

func addReviewFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Config file path (default: ./loupe.yaml)")
	cmd.Flags().StringVar(&flagIgnoreFile, "ignore-file", "", "Ignore file name relative to the root (default: .gitignore)")
	cmd.Flags().StringSliceVar(&flagPatterns, "pattern", nil, "Additional ignore patterns (repeatable)")
	cmd.Flags().StringVar(&flagProvider, "provider", "", "Generation provider (ollama, lmstudio, anthropic)")
	cmd.Flags().StringVar(&flagModel, "model", "", "Model name")
	cmd.Flags().StringVar(&flagMode, "mode", "", "Review mode (generative, static)")
	cmd.Flags().StringVar(&flagRules, "rules", "", "Rules file path")
	cmd.Flags().StringVar(&flagFormat, "format", "", "Output format (markdown, text, json)")
	cmd.Flags().StringVar(&flagOut, "out", "", "Output file path (default: stdout)")
	cmd.Flags().IntVar(&flagWorkers, "workers", 0, "Concurrent file reviews (default: 1)")
	cmd.Flags().IntVar(&flagFileTimeout, "file-timeout", 0, "Per-file review timeout in seconds")
	cmd.Flags().IntVar(&flagMaxBytes, "max-file-bytes", 0, "Maximum file size in bytes")
	cmd.Flags().StringVar(&flagWebhook, "webhook", "", "Webhook URL for the completion notification")
	cmd.Flags().BoolVar(&flagStrict, "strict", false, "Exit non-zero when any file review failed")
	cmd.Flags().BoolVar(&flagNoCache, "no-cache", false, "Disable the review cache")
	cmd.Flags().BoolVar(&flagNoRedact, "no-redact", false, "Disable secret redaction (use with caution)")
	cmd.Flags().BoolVar(&flagQuiet, "quiet", false, "Suppress per-file progress on stderr")
}

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagProvider != "" {
		m["provider"] = flagProvider
	}
	if flagModel != "" {
		m["model"] = flagModel
	}
	if flagMode != "" {
		m["mode"] = flagMode
	}
	if flagRules != "" {
		m["rulesFile"] = flagRules
	}
	if flagFormat != "" {
		m["format"] = flagFormat
	}
	if flagIgnoreFile != "" {
		m["ignoreFile"] = flagIgnoreFile
	}
	if flagWebhook != "" {
		m["webhookURL"] = flagWebhook
	}
	if flagWorkers > 0 {
		m["workers"] = fmt.Sprintf("%d", flagWorkers)
	}
	if flagFileTimeout > 0 {
		m["fileTimeoutSeconds"] = fmt.Sprintf("%d", flagFileTimeout)
	}
	if flagMaxBytes > 0 {
		m["maxFileBytes"] = fmt.Sprintf("%d", flagMaxBytes)
	}
	if flagNoCache {
		m["noCache"] = "true"
	}
	if flagNoRedact {
		m["noRedact"] = "true"
	}
	return m
}

var reviewCmd = &cobra.Command{
	Use:   "review [path]",
	Short: "Review every file under a directory tree",
	Long:  "Walk the tree rooted at path (default: current directory), skip ignored and hidden entries, and review each remaining file with the reviewer registered for its language.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig, buildOverrides())
		if err != nil {
			return err
		}
		root := "."
		if len(args) == 1 {
			root = args[0]
		}
		runReview(root, cfg)
		return nil
	},
}

func init() {
	addReviewFlags(reviewCmd)
}

func runReview(root string, cfg config.Config) {
	if flagNoRedact {
		fmt.Fprintln(os.Stderr, "WARNING: secret redaction is disabled")
	}

	ctx := context.Background()

	patterns, err := ignore.ReadPatterns(filepath.Join(root, cfg.IgnoreFile))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading ignore file: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}
	patterns = append(patterns, cfg.Patterns...)
	patterns = append(patterns, flagPatterns...)
	walker := discover.New(root, ignore.Compile(patterns))

	registry, err := buildRegistry(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if providers.IsAuthError(err) {
			exitCode = ExitAuthError
		} else {
			exitCode = ExitRuntimeError
		}
		return
	}

	c, err := cache.New(cfg.Cache.Enabled, cfg.Cache.Dir, cfg.Cache.TTLSeconds)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening cache: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}

	opts := review.Options{
		Workers:       cfg.Workers,
		FileTimeout:   time.Duration(cfg.FileTimeoutSeconds) * time.Second,
		MaxFileBytes:  cfg.MaxFileBytes,
		RedactSecrets: cfg.Privacy.RedactSecrets,
		RedactPaths:   cfg.Privacy.RedactPaths,
		Model:         cfg.Model,
	}
	if !flagQuiet {
		opts.Progress = func(rel string) {
			fmt.Fprintf(os.Stderr, "reviewing %s\n", rel)
		}
	}

	report, err := review.NewEngine(registry, c, opts).Run(ctx, walker)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}

	if err := output.WriteReport(report, cfg.Format, flagOut); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}

	if flagStrict {
		if _, failed := report.Summary(); failed > 0 {
			exitCode = ExitFailures
		}
	}

	// The report is already written; a failed delivery only changes the
	// exit code when nothing worse happened.
	if err := notify.New(cfg.WebhookURL).Deliver(ctx, output.Summary(report)); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: notification delivery failed: %v\n", err)
		if exitCode == ExitSuccess {
			exitCode = ExitNotifyError
		}
	}
}

// buildRegistry maps every known language tag to a reviewer per the
// configured mode. Tags without a reviewer resolve to the fallback.
func buildRegistry(cfg config.Config) (*review.Registry, error) {
	registry := review.NewRegistry()

	switch cfg.Mode {
	case "static":
		runner := toolexec.Exec{}
		for _, tag := range language.Known() {
			if tool, args, ok := cfg.ToolFor(string(tag)); ok {
				registry.Register(tag, review.NewStatic(runner, tool, args))
			}
		}
	default:
		pack, err := review.LoadPack(cfg.RulesFile)
		if err != nil {
			return nil, fmt.Errorf("loading rules: %w", err)
		}
		gen, err := providers.New(cfg.Provider, cfg.Model)
		if err != nil {
			return nil, err
		}
		for _, tag := range language.Known() {
			registry.Register(tag, review.NewGenerative(gen, string(tag), pack.For(tag)))
		}
	}

	return registry, nil
}
