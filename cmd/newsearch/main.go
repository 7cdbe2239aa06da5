// Command newsearch is an interactive terminal frontend for the search
// engine: a query box with debounced input, live ranked results,
// autocomplete suggestions, section filter cycling, and on-demand corpus
// refresh. It is presentation glue only; all search behaviour lives in
// the engine packages.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pressfeed/newsearch/internal/article"
	"github.com/pressfeed/newsearch/internal/corpus"
	"github.com/pressfeed/newsearch/internal/engine"
	"github.com/pressfeed/newsearch/pkg/config"
	"github.com/pressfeed/newsearch/pkg/metrics"
	"github.com/pressfeed/newsearch/pkg/postgres"
	pkgredis "github.com/pressfeed/newsearch/pkg/redis"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	dataPath := flag.String("data", "", "JSON corpus file for static mode")
	watch := flag.Bool("watch", false, "follow kafka article-update events and refresh automatically")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	setupLogging(cfg.Logging)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(nil)
		shutdown := metrics.StartServer(cfg.Metrics.Port)
		defer shutdown(context.Background())
	}

	source, cleanup, err := buildSource(cfg, *dataPath, m)
	if err != nil {
		slog.Error("failed to build corpus source", "mode", cfg.Corpus.Mode, "error", err)
		os.Exit(1)
	}
	defer cleanup()

	opts := []engine.Option{}
	if m != nil {
		opts = append(opts, engine.WithMetrics(m))
	}
	eng := engine.New(source, cfg.Search, opts...)
	if err := eng.Refresh(ctx); err != nil {
		slog.Error("initial index build failed", "error", err)
		os.Exit(1)
	}
	stats := eng.Stats()
	slog.Info("index ready",
		"articles", stats.TotalArticles,
		"tokens", stats.IndexSize,
		"sections", stats.Sections,
	)

	program := tea.NewProgram(newModel(ctx, eng, cfg.Search), tea.WithAltScreen())

	if *watch {
		watcher := corpus.NewWatcher(cfg.Kafka, func(ctx context.Context, event corpus.UpdateEvent) error {
			if err := eng.Refresh(ctx); err != nil {
				return err
			}
			program.Send(corpusUpdatedMsg{event: event})
			return nil
		})
		defer watcher.Close()
		go func() {
			if err := watcher.Start(ctx); err != nil {
				slog.Error("corpus watcher stopped", "error", err)
			}
		}()
	}

	if _, err := program.Run(); err != nil {
		slog.Error("terminal UI error", "error", err)
		os.Exit(1)
	}
}

// buildSource assembles the corpus source chain selected by config:
// static file, HTTP endpoint, or postgres table, optionally wrapped with
// the redis corpus cache.
func buildSource(cfg *config.Config, dataPath string, m *metrics.Metrics) (corpus.Source, func(), error) {
	cleanup := func() {}
	var source corpus.Source

	switch cfg.Corpus.Mode {
	case "static", "":
		sections, err := loadStaticCorpus(dataPath)
		if err != nil {
			return nil, cleanup, err
		}
		// The static source never benefits from a remote cache.
		return corpus.NewStaticSource(sections), cleanup, nil
	case "http":
		if cfg.Corpus.URL == "" {
			return nil, cleanup, fmt.Errorf("corpus mode %q requires corpus.url", cfg.Corpus.Mode)
		}
		source = corpus.NewHTTPSource(cfg.Corpus)
	case "postgres":
		client, err := postgres.New(cfg.Postgres)
		if err != nil {
			return nil, cleanup, err
		}
		cleanup = func() { client.Close() }
		source = corpus.NewPostgresSource(client)
	default:
		return nil, cleanup, fmt.Errorf("unknown corpus mode %q", cfg.Corpus.Mode)
	}

	redisClient, err := pkgredis.NewClient(cfg.Redis)
	if err != nil {
		slog.Warn("redis unavailable, corpus caching disabled", "error", err)
		return source, cleanup, nil
	}
	prev := cleanup
	cleanup = func() {
		redisClient.Close()
		prev()
	}
	slog.Info("corpus cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Corpus.CacheTTL)
	return corpus.NewCachedSource(source, redisClient, cfg.Corpus.CacheTTL, m), cleanup, nil
}

// loadStaticCorpus reads a section-key → articles JSON document, falling
// back to a small built-in sample when no path is given.
func loadStaticCorpus(path string) (map[string][]article.Record, error) {
	if path == "" {
		return sampleCorpus(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading corpus file %s: %w", path, err)
	}
	var sections map[string][]article.Record
	if err := json.Unmarshal(data, &sections); err != nil {
		return nil, fmt.Errorf("parsing corpus file %s: %w", path, err)
	}
	return sections, nil
}

func setupLogging(cfg config.LoggingConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	// The TUI owns stdout; logs go to stderr.
	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}
