package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"brand-insights-go/internal/catalog"
	"brand-insights-go/internal/config"
	"brand-insights-go/internal/logger"
	"brand-insights-go/internal/nlp"
	"brand-insights-go/internal/nlp/keyword"
	"brand-insights-go/internal/nlp/llm"
	"brand-insights-go/internal/pipeline"
	"brand-insights-go/internal/server"
	"brand-insights-go/internal/store"
)

func main() {
	_ = godotenv.Load() // loads .env

	log := logger.New()
	log.WithField("service", "brand-insights-go").Info("starting service")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	cat := catalog.Empty()
	if cfg.CatalogPath != "" {
		loaded, err := catalog.Load(cfg.CatalogPath)
		if err != nil {
			log.WithError(err).Fatal("failed to load brand catalog")
		}
		cat = loaded
		log.WithField("brands", len(cat.Names())).Info("brand catalog loaded")
	}

	extractor, scorer := buildNLP(cfg, cat, log)

	engine := pipeline.New(pipeline.Config{
		ScoreWorkers:   cfg.ScoreWorkers,
		ExtractTimeout: cfg.ExtractTimeout,
		ScoreTimeout:   cfg.ScoreTimeout,
		ScaleMin:       cfg.ScaleMin,
		ScaleMax:       cfg.ScaleMax,
		Thresholds:     cfg.Classifier,
	}, extractor, scorer, cat, log.WithComponent("pipeline"))

	results, err := store.New(cfg.DataDir)
	if err != nil {
		log.WithError(err).Fatal("failed to open result store")
	}

	srv := server.NewServer(cfg.Addr, engine, results, log)

	go func() {
		log.WithField("addr", cfg.Addr).Info("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server terminated")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("shutdown incomplete")
	}
}

// buildNLP wires the LLM gateway implementations when a gateway is
// configured, the deterministic keyword implementations otherwise.
func buildNLP(cfg config.Config, cat *catalog.Catalog, log *logger.Logger) (nlp.BrandExtractor, nlp.SentimentScorer) {
	if cfg.LLMGatewayURL == "" {
		log.Info("no LLM gateway configured, using keyword analysis")
		return keyword.NewExtractor(cat.Names(), cat.Aliases()), keyword.NewScorer()
	}
	client := llm.NewClient(llm.Config{
		GatewayURL:     cfg.LLMGatewayURL,
		APIKey:         cfg.LLMAPIKey,
		Model:          cfg.LLMModel,
		RequestTimeout: cfg.ScoreTimeout,
	})
	log.WithField("model", cfg.LLMModel).Info("using LLM gateway for analysis")
	return client, client
}
