package main

import (
	"fmt"
	"log/slog"
	"os"

	"retodfa/internal/cache"
	"retodfa/internal/config"
	"retodfa/internal/logging"
	"retodfa/internal/metrics"
	"retodfa/internal/service"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "retodfa",
	Short: "Convert regular expressions into deterministic finite automata",
	Long: `retodfa compiles a regular expression over a finite alphabet into a DFA
using Thompson's construction followed by subset construction.

Operators: '+' union, '.' concatenation (may be left implicit), postfix '*'
Kleene closure, parentheses for grouping.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "retodfa.yaml", "Path to the configuration file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error); overrides the config file")
}

// env is what every subcommand builds from flags and config.
type env struct {
	cfg     config.Config
	logger  *slog.Logger
	metrics *metrics.Metrics
	conv    *service.Converter
	closers []func() error
}

func (e *env) Close() {
	for _, c := range e.closers {
		if err := c(); err != nil {
			e.logger.Warn("close failed", "error", err)
		}
	}
}

func setup(cmd *cobra.Command) (*env, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.LogLevel = lvl
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	e := &env{cfg: cfg, logger: logging.New(level)}
	if cfg.Metrics.Enabled {
		e.metrics = metrics.New()
	}

	var c cache.Cache = cache.Nop{}
	switch cfg.Cache.Backend {
	case config.CacheMemory:
		c = cache.NewMemory(cfg.Cache.TTL, cfg.Cache.MaxEntries)
	case config.CacheRedis:
		r := cache.NewRedis(cfg.Cache.Redis.Addr, cfg.Cache.Redis.Password, cfg.Cache.Redis.DB,
			cache.WithPrefix(cfg.Cache.Redis.Prefix),
			cache.WithTTL(cfg.Cache.TTL),
		)
		if err := r.Ping(cmd.Context()); err != nil {
			e.logger.Warn("redis unavailable, caching disabled", "addr", cfg.Cache.Redis.Addr, "error", err)
			_ = r.Close()
		} else {
			c = r
			e.closers = append(e.closers, r.Close)
		}
	}

	e.conv = service.New(
		service.WithCache(c),
		service.WithMetrics(e.metrics),
		service.WithLogger(e.logger),
		service.WithMaxExpressionLength(cfg.Limits.MaxExpressionLength),
		service.WithMaxDFAStates(cfg.Limits.MaxDFAStates),
	)
	return e, nil
}
