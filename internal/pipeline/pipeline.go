// Package pipeline orchestrates one analysis run: brand extraction,
// statement segmentation, concurrent sentiment scoring, aggregation,
// classification, comparison, and final assembly.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"brand-insights-go/internal/aggregator"
	"brand-insights-go/internal/catalog"
	"brand-insights-go/internal/classifier"
	"brand-insights-go/internal/comparative"
	"brand-insights-go/internal/insight"
	"brand-insights-go/internal/nlp"
	"brand-insights-go/internal/segmenter"
	"brand-insights-go/internal/splitter"
	"brand-insights-go/internal/types"
)

// Run-level failures. Per-statement scoring failures are recovered locally
// and never surface as errors.
var (
	ErrEmptyTranscript = errors.New("transcript is empty")
	ErrExtraction      = errors.New("brand extraction failed")
)

// Config tunes one engine instance. Loaded once per process and passed in;
// nothing here is read from ambient state mid-run.
type Config struct {
	ScoreWorkers   int
	ExtractTimeout time.Duration
	ScoreTimeout   time.Duration
	ScaleMin       float64
	ScaleMax       float64
	Thresholds     classifier.Thresholds
}

func (c Config) withDefaults() Config {
	if c.ScoreWorkers <= 0 {
		c.ScoreWorkers = 4
	}
	if c.ExtractTimeout <= 0 {
		c.ExtractTimeout = 30 * time.Second
	}
	if c.ScoreTimeout <= 0 {
		c.ScoreTimeout = 12 * time.Second
	}
	if c.ScaleMin == 0 && c.ScaleMax == 0 {
		c.ScaleMin, c.ScaleMax = 1, 5
	}
	return c
}

// Engine runs the analysis pipeline. Each invocation owns its working set
// exclusively; an Engine is safe for concurrent use.
type Engine struct {
	cfg        Config
	extractor  nlp.BrandExtractor
	scorer     nlp.SentimentScorer
	catalog    *catalog.Catalog
	segmenter  segmenter.Segmenter
	aggregator aggregator.Aggregator
	classifier classifier.Classifier
	log        *logrus.Entry

	// injectable for reproducible runs in tests
	now      func() time.Time
	newRunID func() string
}

func New(cfg Config, ext nlp.BrandExtractor, scorer nlp.SentimentScorer, cat *catalog.Catalog, log *logrus.Entry) *Engine {
	cfg = cfg.withDefaults()
	if cat == nil {
		cat = catalog.Empty()
	}
	return &Engine{
		cfg:        cfg,
		extractor:  ext,
		scorer:     scorer,
		catalog:    cat,
		segmenter:  segmenter.New(cat.Aliases()),
		aggregator: aggregator.New(cfg.ScaleMin, cfg.ScaleMax),
		classifier: classifier.New(cfg.Thresholds),
		log:        log,
	}
}

// WithClock overrides the engine's time and run-ID sources. Tests use it to
// make two identical runs produce byte-identical results.
func (e *Engine) WithClock(now func() time.Time, newRunID func() string) *Engine {
	e.now = now
	e.newRunID = newRunID
	return e
}

// Run executes the full pipeline for one transcript. Run-level failures
// return a structured failure result alongside the error; degraded cases
// (insufficient data for a brand) are flags inside a successful result.
func (e *Engine) Run(ctx context.Context, tr types.Transcript, knownBrands []string) (types.AnalysisResult, error) {
	meta := e.runMetadata(tr)
	log := e.log.WithField("run_id", meta.RunID)

	if strings.TrimSpace(tr.Text) == "" {
		return insight.Failure(meta, ErrEmptyTranscript.Error()), ErrEmptyTranscript
	}

	brands, err := e.extractBrands(ctx, tr.Text, knownBrands)
	if err != nil {
		wrapped := fmt.Errorf("%w: %v", ErrExtraction, err)
		return insight.Failure(meta, wrapped.Error()), wrapped
	}
	log.WithField("brands", len(brands)).Info("brands extracted")

	statements := splitter.Split(tr.Text)
	byBrand := e.segmenter.Segment(statements, brands)

	scores, err := e.scoreStatements(ctx, byBrand)
	if err != nil {
		// cancellation: discard everything, never return a partial result
		return insight.Failure(meta, err.Error()), err
	}

	profiles := make([]types.BrandProfile, 0, len(brands))
	for _, brand := range brands {
		profiles = append(profiles, e.buildProfile(brand, byBrand[brand], scores[brand], log))
	}
	sort.Slice(profiles, func(i, j int) bool { return profiles[i].Brand < profiles[j].Brand })

	report := comparative.Compare(profiles, e.catalog.Metadata())
	result, err := insight.Compose(profiles, report, meta)
	if err != nil {
		log.WithField("error", err.Error()).Error("result assembly failed")
		return insight.Failure(meta, err.Error()), err
	}
	log.WithField("profiles", len(result.BrandProfiles)).Info("analysis complete")
	return result, nil
}

// RunSingleBrand analyzes one brand in isolation: the full pipeline filtered
// to that brand. A brand with no mentions yields an insufficient-data
// profile, not an error.
func (e *Engine) RunSingleBrand(ctx context.Context, brand string, tr types.Transcript) (types.BrandProfile, error) {
	if strings.TrimSpace(brand) == "" {
		return types.BrandProfile{}, fmt.Errorf("brand name is empty")
	}
	result, err := e.Run(ctx, tr, []string{brand})
	if err != nil {
		return types.BrandProfile{}, err
	}
	key := types.NormalizeBrand(brand)
	for _, p := range result.BrandProfiles {
		if types.NormalizeBrand(p.Brand) == key {
			return p, nil
		}
	}
	// brand never mentioned in the transcript
	p := types.BrandProfile{
		Brand:            brand,
		Statements:       []types.Statement{},
		Sentiments:       []types.SentimentResult{},
		InsufficientData: true,
		Segment: types.Segment{
			PriceCategory:   types.PriceUnknown,
			QualityCategory: types.QualityUnknown,
		},
	}
	p.Insight = insight.Generate(p, e.catalog.Lookup(brand))
	return p, nil
}

// RunComparison compares a fixed brand set against one transcript.
func (e *Engine) RunComparison(ctx context.Context, brands []string, tr types.Transcript) (types.ComparativeReport, error) {
	result, err := e.Run(ctx, tr, brands)
	if err != nil {
		return types.ComparativeReport{}, err
	}
	return result.Comparative, nil
}

func (e *Engine) runMetadata(tr types.Transcript) types.RunMetadata {
	now := time.Now
	if e.now != nil {
		now = e.now
	}
	newID := uuid.NewString
	if e.newRunID != nil {
		newID = e.newRunID
	}
	return types.RunMetadata{
		RunID:        newID(),
		TranscriptID: tr.ID,
		Timestamp:    now().UTC(),
	}
}

// extractBrands calls the extractor under its timeout and enforces the
// uniqueness invariant: no duplicates under normalized comparison, sorted
// for deterministic downstream order.
func (e *Engine) extractBrands(ctx context.Context, text string, knownBrands []string) ([]string, error) {
	extractCtx, cancel := context.WithTimeout(ctx, e.cfg.ExtractTimeout)
	defer cancel()

	raw, err := e.extractor.Extract(extractCtx, text, knownBrands)
	if err != nil {
		return nil, err
	}
	seen := map[string]struct{}{}
	brands := make([]string, 0, len(raw))
	for _, b := range raw {
		b = strings.TrimSpace(b)
		key := types.NormalizeBrand(b)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		brands = append(brands, b)
	}
	sort.Strings(brands)
	return brands, nil
}

type scoreTask struct {
	brand     string
	statement types.Statement
}

// scoreStatements dispatches every (brand, statement) pair to a bounded
// worker pool. A failed or timed-out score drops that one pair; only caller
// cancellation aborts the run. Results come back sorted by statement index
// so stored output is stable regardless of arrival order.
func (e *Engine) scoreStatements(ctx context.Context, byBrand map[string][]types.Statement) (map[string][]types.SentimentResult, error) {
	var tasks []scoreTask
	for brand, statements := range byBrand {
		for _, st := range statements {
			tasks = append(tasks, scoreTask{brand: brand, statement: st})
		}
	}

	var (
		mu      sync.Mutex
		scores  = make(map[string][]types.SentimentResult, len(byBrand))
		skipped int
	)
	taskCh := make(chan scoreTask)
	var wg sync.WaitGroup

	workers := e.cfg.ScoreWorkers
	if workers > len(tasks) && len(tasks) > 0 {
		workers = len(tasks)
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range taskCh {
				scoreCtx, cancel := context.WithTimeout(ctx, e.cfg.ScoreTimeout)
				res, err := e.scorer.Score(scoreCtx, task.statement, task.brand)
				cancel()
				if err != nil {
					if ctx.Err() != nil {
						return
					}
					e.log.WithFields(logrus.Fields{
						"brand":           task.brand,
						"statement_index": task.statement.Index,
						"error":           err.Error(),
					}).Warn("statement scoring failed, excluding from aggregation")
					mu.Lock()
					skipped++
					mu.Unlock()
					continue
				}
				mu.Lock()
				scores[task.brand] = append(scores[task.brand], res)
				mu.Unlock()
			}
		}()
	}

dispatch:
	for _, task := range tasks {
		select {
		case taskCh <- task:
		case <-ctx.Done():
			break dispatch
		}
	}
	close(taskCh)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("run cancelled: %w", err)
	}
	if skipped > 0 {
		e.log.WithField("skipped", skipped).Warn("some statements excluded from aggregation")
	}
	for brand := range scores {
		sort.Slice(scores[brand], func(i, j int) bool {
			return scores[brand][i].StatementIndex < scores[brand][j].StatementIndex
		})
	}
	return scores, nil
}

func (e *Engine) buildProfile(brand string, statements []types.Statement, results []types.SentimentResult, log *logrus.Entry) types.BrandProfile {
	if statements == nil {
		statements = []types.Statement{}
	}
	if results == nil {
		results = []types.SentimentResult{}
	}
	p := types.BrandProfile{
		Brand:      brand,
		Statements: statements,
		Sentiments: results,
	}

	agg := e.aggregator.Reduce(results)
	if !agg.Sufficient {
		p.InsufficientData = true
		log.WithField("brand", brand).Warn("no usable sentiment results, flagging insufficient data")
	} else {
		p.Rating = agg.Rating
		p.Confidence = agg.Confidence
		p.PositiveCount = agg.Positive
		p.NegativeCount = agg.Negative
		p.NeutralCount = agg.Neutral
	}

	meta := e.catalog.Lookup(brand)
	p.Segment = e.classifier.Classify(p, meta)
	p.Insight = insight.Generate(p, meta)
	return p
}
