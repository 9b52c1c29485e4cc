// Package config loads process configuration from the environment once at
// startup. Components never read env mid-run; everything they need is handed
// to them explicitly from here.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"brand-insights-go/internal/classifier"
)

type Config struct {
	Environment string
	Addr        string
	DataDir     string
	CatalogPath string

	// LLM gateway; when GatewayURL is empty the deterministic keyword
	// implementations are used instead.
	LLMGatewayURL string
	LLMAPIKey     string
	LLMModel      string

	// Pipeline tuning.
	ScoreWorkers   int
	ExtractTimeout time.Duration
	ScoreTimeout   time.Duration
	ScaleMin       float64
	ScaleMax       float64
	Classifier     classifier.Thresholds
}

func Load() Config {
	t := classifier.DefaultThresholds()
	t.PriceBudgetMax = envFloat("PRICE_BUDGET_MAX", t.PriceBudgetMax)
	t.PriceMidRangeMax = envFloat("PRICE_MIDRANGE_MAX", t.PriceMidRangeMax)
	t.QualityBasicMax = envFloat("QUALITY_BASIC_MAX", t.QualityBasicMax)
	t.QualityStandardMax = envFloat("QUALITY_STANDARD_MAX", t.QualityStandardMax)

	return Config{
		Environment: envOr("ENVIRONMENT", "local"),
		Addr:        ":" + envOr("PORT", "8080"),
		DataDir:     envOr("DATA_DIR", "data"),
		CatalogPath: os.Getenv("CATALOG_PATH"),

		LLMGatewayURL: os.Getenv("LLM_GATEWAY_URL"),
		LLMAPIKey:     os.Getenv("LLM_API_KEY"),
		LLMModel:      envOr("LLM_MODEL", "gpt-4o-mini"),

		ScoreWorkers:   envInt("SCORE_WORKERS", 4),
		ExtractTimeout: envDuration("EXTRACT_TIMEOUT", 30*time.Second),
		ScoreTimeout:   envDuration("SCORE_TIMEOUT", 12*time.Second),
		ScaleMin:       envFloat("RATING_SCALE_MIN", 1.0),
		ScaleMax:       envFloat("RATING_SCALE_MAX", 5.0),
		Classifier:     t,
	}
}

func (c Config) Validate() error {
	if c.ScaleMin >= c.ScaleMax {
		return fmt.Errorf("rating scale min %v must be below max %v", c.ScaleMin, c.ScaleMax)
	}
	if c.ScoreWorkers <= 0 {
		return fmt.Errorf("score workers must be > 0")
	}
	if c.ExtractTimeout <= 0 || c.ScoreTimeout <= 0 {
		return fmt.Errorf("timeouts must be > 0")
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
