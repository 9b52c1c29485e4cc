package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"brand-insights-go/internal/catalog"
	"brand-insights-go/internal/config"
	"brand-insights-go/internal/logger"
	"brand-insights-go/internal/nlp"
	"brand-insights-go/internal/nlp/keyword"
	"brand-insights-go/internal/nlp/llm"
	"brand-insights-go/internal/pipeline"
	"brand-insights-go/internal/store"
	"brand-insights-go/internal/types"
)

func run(cmd *cobra.Command, input string) error {
	brands, _ := cmd.Flags().GetStringSlice("brands")
	catalogPath, _ := cmd.Flags().GetString("catalog")
	outPath, _ := cmd.Flags().GetString("out")
	save, _ := cmd.Flags().GetBool("save")
	dataDir, _ := cmd.Flags().GetString("data-dir")

	text, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read transcript: %w", err)
	}

	cfg := config.Load()
	if catalogPath == "" {
		catalogPath = cfg.CatalogPath
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log := logger.New()
	cat := catalog.Empty()
	if catalogPath != "" {
		if cat, err = catalog.Load(catalogPath); err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
	}

	var extractor nlp.BrandExtractor
	var scorer nlp.SentimentScorer
	if cfg.LLMGatewayURL != "" {
		client := llm.NewClient(llm.Config{
			GatewayURL:     cfg.LLMGatewayURL,
			APIKey:         cfg.LLMAPIKey,
			Model:          cfg.LLMModel,
			RequestTimeout: cfg.ScoreTimeout,
		})
		extractor, scorer = client, client
	} else {
		extractor, scorer = keyword.NewExtractor(cat.Names(), cat.Aliases()), keyword.NewScorer()
	}

	engine := pipeline.New(pipeline.Config{
		ScoreWorkers:   cfg.ScoreWorkers,
		ExtractTimeout: cfg.ExtractTimeout,
		ScoreTimeout:   cfg.ScoreTimeout,
		ScaleMin:       cfg.ScaleMin,
		ScaleMax:       cfg.ScaleMax,
		Thresholds:     cfg.Classifier,
	}, extractor, scorer, cat, log.WithComponent("pipeline"))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	transcript := types.Transcript{
		ID:   strings.TrimSuffix(filepath.Base(input), filepath.Ext(input)),
		Text: string(text),
	}
	result, err := engine.Run(ctx, transcript, brands)
	if err != nil {
		return fmt.Errorf("analysis: %w", err)
	}

	if save {
		s, err := store.New(dataDir)
		if err != nil {
			return err
		}
		runID, err := s.Save(result)
		if err != nil {
			return fmt.Errorf("save result: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "saved run %s to %s\n", runID, dataDir)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	if outPath != "" {
		return os.WriteFile(outPath, append(data, '\n'), 0o644)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
