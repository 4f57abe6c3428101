package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"linetranslate/config"
	"linetranslate/controllers"
	"linetranslate/router"
	"linetranslate/tools"
	"linetranslate/workers"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// =====================
// Expected environment
// =====================
//
// LINE
// - CHANNEL_ACCESS_TOKEN
// - CHANNEL_SECRET
// - LINE_API_ENDPOINT        (default https://api.line.me)
//
// Azure Translator
// - API_KEY
// - ENDPOINT                 (default https://api.cognitive.microsofttranslator.com)
// - REGION
//
// Server
// - PORT                     (default 8080)
// - LOG_LEVEL / LOG_PATH
// - WORKER_COUNT / WORKER_QUEUE_SIZE / TASK_TIMEOUT_SECONDS / HTTP_TIMEOUT_SECONDS
// - CONFIG_PATH              (optional JSON file, env wins)
//
// =====================

func main() {
	cfg, err := config.Get(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logFile, err := setupLogging(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up logging")
	}
	if logFile != nil {
		defer logFile.Close()
	}

	translator := tools.NewAzureTranslator(cfg.Translator.Endpoint, cfg.Translator.APIKey, cfg.Translator.Region, cfg.HTTPTimeout())
	sender := tools.NewLineReplySender(cfg.Line.ChannelAccessToken, cfg.Line.APIEndpoint, cfg.HTTPTimeout())
	processor := workers.NewPostbackProcessor(translator, sender, cfg.Workers.Size, cfg.Workers.QueueSize, cfg.TaskTimeout())
	dispatcher := controllers.NewDispatcher(sender, processor)

	r := gin.New()
	router.Initialize(r, cfg, controllers.NewWebhookController(dispatcher))

	srv := &http.Server{
		Addr:              ":" + cfg.ApiPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("port", cfg.ApiPort).Int("workers", cfg.Workers.Size).Msg("linetranslate listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		err := srv.Shutdown(shutdownCtx)
		// webhook handlers are done; let queued translations reply before exit
		processor.StopWait()
		return err
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		return
	}
	log.Info().Msg("server stopped")
}

// setupLogging points the global zerolog logger at stdout and, when LogPath
// is set, also at that file. The returned file is nil without LogPath.
func setupLogging(cfg config.Configuration) (io.Closer, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.LogLevel)))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	writers := []io.Writer{os.Stdout}
	var file *os.File
	if path := strings.TrimSpace(cfg.LogPath); path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
		file, err = os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, err
		}
		writers = append(writers, file)
	}

	log.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp().Logger()
	if file == nil {
		return nil, nil
	}
	return file, nil
}
