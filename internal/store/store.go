// Package store persists analysis results as JSON documents on disk, one
// file per run. Good enough for a single-node deployment; swapping in a
// database means reimplementing this interface, not the pipeline.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"brand-insights-go/internal/types"
)

const filePrefix = "analysis_"

type Store struct {
	dir string
}

// New opens (creating if needed) the result directory.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create result dir %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Save writes one result and returns its run ID. Results missing a run ID
// (e.g. assembled outside the pipeline) get one here so every stored file
// is addressable.
func (s *Store) Save(res types.AnalysisResult) (string, error) {
	runID := res.Metadata.RunID
	if runID == "" {
		runID = uuid.NewString()
		res.Metadata.RunID = runID
	}
	if err := validateRunID(runID); err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode result %s: %w", runID, err)
	}

	// write-then-rename so readers never see a half-written file
	path := s.path(runID)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("write result %s: %w", runID, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", fmt.Errorf("publish result %s: %w", runID, err)
	}
	return runID, nil
}

// Load reads one stored result by run ID.
func (s *Store) Load(runID string) (types.AnalysisResult, error) {
	var res types.AnalysisResult
	if err := validateRunID(runID); err != nil {
		return res, err
	}
	data, err := os.ReadFile(s.path(runID))
	if err != nil {
		if os.IsNotExist(err) {
			return res, fmt.Errorf("result %s: %w", runID, ErrNotFound)
		}
		return res, fmt.Errorf("read result %s: %w", runID, err)
	}
	if err := json.Unmarshal(data, &res); err != nil {
		return res, fmt.Errorf("decode result %s: %w", runID, err)
	}
	return res, nil
}

// List returns metadata for every stored run, newest first. Unreadable
// files are skipped rather than failing the whole listing.
func (s *Store) List() ([]types.RunMetadata, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	metas := make([]types.RunMetadata, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, ".json") {
			continue
		}
		runID := strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), ".json")
		res, err := s.Load(runID)
		if err != nil {
			continue
		}
		metas = append(metas, res.Metadata)
	}
	sort.Slice(metas, func(i, j int) bool {
		if !metas[i].Timestamp.Equal(metas[j].Timestamp) {
			return metas[i].Timestamp.After(metas[j].Timestamp)
		}
		return metas[i].RunID < metas[j].RunID
	})
	return metas, nil
}

// Stats summarizes the stored corpus.
type Stats struct {
	TotalRuns      int     `json:"total_runs"`
	SuccessfulRuns int     `json:"successful_runs"`
	BrandsAnalyzed int     `json:"brands_analyzed"`
	RatedBrands    int     `json:"rated_brands"`
	MeanRating     float64 `json:"mean_rating"`
}

func (s *Store) Stats() (Stats, error) {
	metas, err := s.List()
	if err != nil {
		return Stats{}, err
	}
	var st Stats
	var ratingSum float64
	for _, m := range metas {
		res, err := s.Load(m.RunID)
		if err != nil {
			continue
		}
		st.TotalRuns++
		if res.Success {
			st.SuccessfulRuns++
		}
		for _, p := range res.BrandProfiles {
			st.BrandsAnalyzed++
			if !p.InsufficientData {
				st.RatedBrands++
				ratingSum += p.Rating
			}
		}
	}
	if st.RatedBrands > 0 {
		st.MeanRating = ratingSum / float64(st.RatedBrands)
	}
	return st, nil
}

var ErrNotFound = fmt.Errorf("not found")

func (s *Store) path(runID string) string {
	return filepath.Join(s.dir, filePrefix+runID+".json")
}

// validateRunID keeps run IDs usable as file name components.
func validateRunID(runID string) error {
	if runID == "" {
		return fmt.Errorf("run id is empty")
	}
	for _, r := range runID {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return fmt.Errorf("run id %q contains invalid character %q", runID, r)
		}
	}
	return nil
}
