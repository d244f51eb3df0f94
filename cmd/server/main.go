// Command server exposes the rhyme analyser as a JSON REST API.
//
// Endpoints:
//
//	POST /api/analyse            body: {"lines":["...","..."]}
//	POST /api/batch              body: {"groups":[["...","..."],...]}
//	POST /api/scheme             body: {"lines":[...]}
//	POST /api/poem               body: {"lines":[...]}
//	GET  /api/pronounce?word=<word>
//	GET  /api/decompose?line=<text>
//	GET  /metrics
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/versewright/rhyme"
	"github.com/versewright/rhyme/internal/config"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "path to YAML config file")
	dataDir := flag.String("data", "", "path to lexicon data directory (overrides config)")
	addr := flag.String("addr", "", "listen address (overrides config)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}
	if *dataDir != "" {
		cfg.Lexicon.DataDir = *dataDir
	}
	if *addr != "" {
		cfg.Server.ListenAddr = *addr
	}

	slog.SetDefault(newLogger(cfg.Server.LogLevel))

	slog.Info("loading lexicon", "data_dir", cfg.Lexicon.DataDir)
	lx, err := loadLexicon(cfg)
	if err != nil {
		slog.Error("failed to load lexicon", "err", err)
		return 1
	}
	slog.Info("lexicon loaded", "words", lx.Len())

	an := rhyme.New(lx,
		rhyme.WithMaxSyllables(cfg.Analysis.MaxSyllables),
		rhyme.WithConcurrency(cfg.Analysis.Concurrency),
	)

	srv := &http.Server{
		Addr:              cfg.Server.ListenAddr,
		Handler:           newHandler(cfg, lx, an),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", cfg.Server.ListenAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "err", err)
			return 1
		}
	case <-ctx.Done():
		slog.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "err", err)
		return 1
	}
	return 0
}

// loadLexicon loads the lexicon described by cfg.
func loadLexicon(cfg *config.Config) (*rhyme.Lexicon, error) {
	return rhyme.LoadLexicon(cfg.Lexicon.DataDir,
		rhyme.WithDictionaryFile(cfg.Lexicon.Dictionary),
		rhyme.WithRulesFile(cfg.Lexicon.Inflections),
		rhyme.WithIrregularsFile(cfg.Lexicon.Irregulars),
		rhyme.WithCotCaughtMerger(cfg.Lexicon.MergerEnabled()),
	)
}

// newHandler builds the routed, instrumented and CORS-wrapped API handler.
func newHandler(cfg *config.Config, lx *rhyme.Lexicon, an *rhyme.Analyser) http.Handler {
	maxLines := cfg.Server.MaxLines

	mux := http.NewServeMux()
	route := func(pattern string, h http.Handler) {
		mux.Handle(pattern, instrument(pattern, h))
	}
	route("/api/analyse", handleAnalyse(an, maxLines))
	route("/api/batch", handleBatch(an, maxLines))
	route("/api/scheme", handleScheme(an, maxLines))
	route("/api/poem", handlePoem(an, maxLines))
	route("/api/pronounce", handlePronounce(lx))
	route("/api/decompose", handleDecompose(lx))
	mux.Handle("/metrics", promhttp.Handler())

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.Server.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
	})
	return withRequestID(c.Handler(mux))
}

func newLogger(level config.LogLevel) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level.SlogLevel()}))
}
