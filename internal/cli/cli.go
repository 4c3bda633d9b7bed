package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/LJTian/eztax/internal/collector"
	"github.com/LJTian/eztax/internal/config"
	"github.com/LJTian/eztax/internal/logger"
	"github.com/LJTian/eztax/internal/news"
	"github.com/LJTian/eztax/internal/storage"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// ErrSourceUnavailable 抓取失败时返回，进程以 ExitError 退出
var ErrSourceUnavailable = errors.New("news source unavailable")

type options struct {
	format  string
	source  string
	origin  string
	noCache bool
	verbose bool
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Fetch and print the current IRS news releases",
		Long: `Fetch the IRS "news releases for current month" page once, extract the
announcements and print them. Useful to check whether the page markup still
matches after an IRS site update.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", "text", "Output format: text or json")
	cmd.Flags().StringVar(&opts.source, "source", "", "Override the news page URL (default from NEWS_SOURCE_URL)")
	cmd.Flags().StringVar(&opts.origin, "origin", "", "Override the origin used for relative links (default from NEWS_SOURCE_ORIGIN)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "Skip the page cache and always hit the source")
	cmd.Flags().BoolVar(&opts.verbose, "verbose", false, "Enable verbose logging")

	return cmd
}

func run(cmd *cobra.Command, opts *options) error {
	format := OutputFormat(strings.ToLower(opts.format))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", opts.format)
	}

	cfg := config.Load()
	level := cfg.LogLevel
	if opts.verbose {
		level = "debug"
	}
	logger.SetDefault(logger.New(os.Stderr, level))

	if opts.source != "" {
		cfg.NewsSourceURL = opts.source
	}
	if opts.origin != "" {
		cfg.NewsSourceOrigin = opts.origin
	}

	extractor, err := news.NewExtractor(cfg.NewsSourceOrigin)
	if err != nil {
		return fmt.Errorf("initializing extractor: %w", err)
	}
	fetcher := news.NewCachedFetcher(
		collector.NewPageFetcher(cfg.NewsSourceURL, cfg.NewsFetchTimeout),
		storage.Open(cfg.RedisAddr),
		cfg.NewsRevalidate,
	)
	svc := news.NewService(fetcher, extractor, cfg.NewsSourceURL)

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.NewsFetchTimeout+5*time.Second)
	defer cancel()

	var feed news.Feed
	if opts.noCache {
		// 错误已体现在 feed.Unavailable 上，这里只补一条日志
		if feed, err = svc.Refresh(ctx); err != nil {
			logger.L().Warn("refresh failed", "err", err)
		}
	} else {
		feed = svc.Latest(ctx)
	}

	if err := WriteOutput(cmd.OutOrStdout(), feed, format); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	if feed.Unavailable {
		return fmt.Errorf("%w: %s", ErrSourceUnavailable, feed.SourceURL)
	}
	return nil
}
