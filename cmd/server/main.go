package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/globalacademy/platform/internal/assessment"
	"github.com/globalacademy/platform/internal/config"
	"github.com/globalacademy/platform/internal/content"
	"github.com/globalacademy/platform/internal/httpapi"
	"github.com/globalacademy/platform/internal/llm"
	"github.com/globalacademy/platform/internal/log"
	"github.com/globalacademy/platform/internal/store"
	"github.com/globalacademy/platform/internal/translation"
)

type cronEngine interface {
	Start()
	Stop() context.Context
}

type httpServer interface {
	ListenAndServe(addr string) error
	Shutdown(ctx context.Context) error
}

func main() {
	log.Configure(log.Config{Service: "globalacademy"})
	logger := log.WithComponent("main")

	cfg, err := config.NewFromEnv()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	st, closeStore, err := openStore(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open store")
	}
	defer closeStore()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Store.Seed {
		if err := seedIfEmpty(ctx, st); err != nil {
			logger.Fatal().Err(err).Msg("failed to seed store")
		}
	}

	client, err := llm.NewClient(&llm.Config{
		APIKey:      cfg.LLM.APIKey,
		APIURL:      cfg.LLM.APIURL,
		Model:       cfg.LLM.Model,
		MaxTokens:   cfg.LLM.MaxTokens,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
		SiteURL:     cfg.LLM.SiteURL,
		AppName:     cfg.LLM.AppName,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build llm client")
	}

	cache := translation.NewCache(
		time.Duration(cfg.Translate.CacheTTLDays)*24*time.Hour,
		cfg.Translate.CacheMax,
		cfg.Translate.CacheTrimTo,
	)
	var backend translation.Backend
	if cfg.Translate.Backend == config.TranslateBackendStatic {
		backend = translation.NewStaticBackend()
	} else {
		backend = translation.NewLLMBackend(client)
	}
	translator := translation.NewService(cache, backend)
	generator := assessment.NewGenerator(client)
	contentSvc := content.NewService(st, translator, generator)
	server := httpapi.NewServer(st, contentSvc, generator)

	jobs := cron.New()
	if err := scheduleJobs(jobs, cfg, translator, st); err != nil {
		logger.Fatal().Err(err).Msg("failed to schedule maintenance jobs")
	}

	logger.Info().
		Str("addr", cfg.HTTP.Addr).
		Str("store", cfg.Store.Driver).
		Str("translate_backend", cfg.Translate.Backend).
		Msg("starting")

	if err := runWithComponents(ctx, cfg, jobs, server); err != nil {
		logger.Fatal().Err(err).Msg("server error")
	}
	logger.Info().Msg("shut down cleanly")
}

func openStore(cfg *config.Config) (store.Storage, func(), error) {
	if cfg.Store.Driver == config.StoreDriverSQLite {
		s, err := store.NewSQLiteStore(cfg.Store.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	}
	return store.NewMemStore(), func() {}, nil
}

// seedIfEmpty loads the demo catalog unless the store already has courses.
func seedIfEmpty(ctx context.Context, st store.Storage) error {
	courses, err := st.Courses(ctx)
	if err != nil {
		return err
	}
	if len(courses) > 0 {
		return nil
	}
	return store.Seed(ctx, st)
}

func scheduleJobs(jobs *cron.Cron, cfg *config.Config, translator *translation.Service, st store.Storage) error {
	logger := log.WithComponent("maintenance")

	if _, err := jobs.AddFunc(cfg.Maint.CacheSweepCron, func() {
		translator.EvictExpired()
		logger.Debug().Msg("translation cache sweep complete")
	}); err != nil {
		return fmt.Errorf("cache sweep schedule: %w", err)
	}

	if _, err := jobs.AddFunc(cfg.Maint.WeeklyResetCron, func() {
		if err := st.ResetWeeklyHours(context.Background()); err != nil {
			logger.Error().Err(err).Msg("weekly hours reset failed")
			return
		}
		logger.Info().Msg("weekly hours reset")
	}); err != nil {
		return fmt.Errorf("weekly reset schedule: %w", err)
	}

	return nil
}

func runWithComponents(ctx context.Context, cfg *config.Config, jobs cronEngine, server httpServer) error {
	jobs.Start()
	defer jobs.Stop()

	errCh := make(chan error, 1)
	go func() {
		err := server.ListenAndServe(cfg.HTTP.Addr)
		if err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-errCh
	case err := <-errCh:
		return err
	}
}
