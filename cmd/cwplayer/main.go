package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/morsekit/cwplayer/internal/audio"
	"github.com/morsekit/cwplayer/internal/config"
	"github.com/morsekit/cwplayer/internal/observability"
	"github.com/morsekit/cwplayer/internal/player"
	"github.com/morsekit/cwplayer/internal/server"
	"github.com/morsekit/cwplayer/internal/sink"
)

func main() {
	flagWPM := pflag.Float64P("wpm", "w", 0, "overall rate in words per minute")
	flagChar := pflag.Float64P("char-wpm", "c", 0, "character rate in words per minute")
	flagFreq := pflag.Float64P("freq", "f", 0, "tone frequency in Hz")
	flagOutput := pflag.StringP("output", "o", "", "output backend: pulse, portaudio or raw")
	flagFile := pflag.String("file", "", "destination for the raw backend (- for stdout)")
	flagListen := pflag.String("listen", "", "serve remote keying on this address instead of reading stdin")
	flagDiag := pflag.BoolP("diag", "D", false, "run timing diagnostics and exit")
	pflag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		// Use fmt for fatal errors before logger is initialized
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Flags override the environment.
	if pflag.CommandLine.Changed("wpm") {
		cfg.OverallWPM = *flagWPM
	}
	if pflag.CommandLine.Changed("char-wpm") {
		cfg.CharWPM = *flagChar
	}
	if pflag.CommandLine.Changed("freq") {
		cfg.ToneFreq = *flagFreq
	}
	if pflag.CommandLine.Changed("output") {
		cfg.Output = *flagOutput
	}
	if pflag.CommandLine.Changed("file") {
		cfg.OutputFile = *flagFile
	}
	if pflag.CommandLine.Changed("listen") {
		cfg.Listen = *flagListen
	}

	// Initialize structured logger
	observability.InitLogger(cfg.LogLevel, cfg.LogPretty)
	logger := observability.GetLogger()

	if err := cfg.ResolveRates(); err != nil {
		logger.Fatal().Err(err).Msg("invalid rate configuration")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}
	if cfg.Listen != "" && cfg.Output == "raw" {
		logger.Fatal().Msg("the raw backend is not available in remote keying mode")
	}

	params := audio.Params{
		SampleRate: cfg.SampleRate,
		ToneFreq:   cfg.ToneFreq,
		OverallWPM: cfg.OverallWPM,
		CharWPM:    cfg.CharWPM,
		Channels:   cfg.Channels,
		Precision:  cfg.Precision,
		BlockSize:  cfg.BlockSize,
	}
	if cfg.Output != "raw" {
		// The callback backends take float samples; the audio server applies
		// the device format.
		params.Precision = 0
	}

	if *flagDiag {
		runDiag(params, logger)
		return
	}

	if cfg.Listen != "" {
		runServer(cfg, params, logger)
		return
	}

	runLocal(cfg, params, logger)
}

// runLocal plays standard input to the configured sink and exits.
func runLocal(cfg *config.Config, params audio.Params, logger zerolog.Logger) {
	logger.Info().
		Float64("overall_wpm", params.OverallWPM).
		Float64("char_wpm", params.CharWPM).
		Float64("freq", params.ToneFreq).
		Str("output", cfg.Output).
		Msg("starting playback")

	pl, err := player.New(params, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build player")
	}

	if cfg.Output == "raw" {
		dst, err := openRawDestination(cfg.OutputFile)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to open raw destination")
		}
		out := sink.NewWriter(dst)
		if err := pl.Run(os.Stdin, out); err != nil {
			logger.Fatal().Err(err).Msg("playback failed")
		}
		if dst != os.Stdout {
			out.Close()
		}
	} else {
		out, err := openPullSink(cfg.Output, params)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to open audio sink")
		}
		if err := pl.PlayPull(os.Stdin, out); err != nil {
			out.Close()
			logger.Fatal().Err(err).Msg("playback failed")
		}
		out.Close()
	}

	logger.Info().Msg("playback finished")
}

func openPullSink(backend string, params audio.Params) (sink.Pull, error) {
	if backend == "portaudio" {
		return sink.NewPortAudio(params)
	}
	return sink.NewPulse(params)
}

func openRawDestination(path string) (*os.File, error) {
	if path == "" || path == "-" {
		return os.Stdout, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, nil
}

// runServer exposes the remote keying endpoint until interrupted.
func runServer(cfg *config.Config, params audio.Params, logger zerolog.Logger) {
	srv := server.New(params, func() (sink.Pull, error) {
		return openPullSink(cfg.Output, params)
	})

	mux := http.NewServeMux()
	mux.HandleFunc("/key", srv.HandleKey)
	mux.HandleFunc("/health", observability.HealthCheckHandler(srv.Busy))
	if cfg.MetricsEnabled {
		mux.Handle("/metrics", promhttp.Handler())
		logger.Info().Msg("Prometheus metrics enabled at /metrics")
	}

	// Keying sessions hold the connection open as long as the operator
	// sends; only the header read is bounded.
	httpServer := &http.Server{
		Addr:              cfg.Listen,
		Handler:           mux,
		ReadHeaderTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info().
			Str("addr", cfg.Listen).
			Str("endpoint", fmt.Sprintf("ws://%s/key", cfg.Listen)).
			Msg("keying server listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("forced shutdown")
	}

	logger.Info().Msg("server exited")
}
