package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"brand-insights-go/internal/logger"
	"brand-insights-go/internal/pipeline"
	"brand-insights-go/internal/store"
	"brand-insights-go/internal/types"
)

type handler struct {
	engine  *pipeline.Engine
	results *store.Store
	log     *logger.Logger
}

func newHandler(engine *pipeline.Engine, results *store.Store, log *logger.Logger) *handler {
	return &handler{engine: engine, results: results, log: log}
}

type analyzeRequest struct {
	TranscriptID string   `json:"transcript_id"`
	Text         string   `json:"text"`
	KnownBrands  []string `json:"known_brands,omitempty"`
}

type brandRequest struct {
	Brand string `json:"brand"`
	Text  string `json:"text"`
}

type compareRequest struct {
	Brands []string `json:"brands"`
	Text   string   `json:"text"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// analyze runs the full pipeline on one transcript and persists the result.
func (h *handler) analyze(w http.ResponseWriter, r *http.Request) {
	log := h.log.WithRequest(r).WithField("handler", "analyze")

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	tr := types.Transcript{ID: req.TranscriptID, Text: req.Text}
	result, err := h.engine.Run(r.Context(), tr, req.KnownBrands)
	if err != nil {
		log.WithField("error", err.Error()).Warn("analysis failed")
		writeJSON(w, analysisStatus(err), result)
		return
	}

	if _, err := h.results.Save(result); err != nil {
		// persistence is best-effort; the caller still gets the result
		log.WithField("error", err.Error()).Error("failed to persist result")
	}
	log.WithField("run_id", result.Metadata.RunID).Info("analysis complete")
	writeJSON(w, http.StatusOK, result)
}

func (h *handler) analyzeBrand(w http.ResponseWriter, r *http.Request) {
	log := h.log.WithRequest(r).WithField("handler", "brand")

	var req brandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Brand) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "brand is required"})
		return
	}

	profile, err := h.engine.RunSingleBrand(r.Context(), req.Brand, types.Transcript{Text: req.Text})
	if err != nil {
		log.WithField("error", err.Error()).Warn("brand analysis failed")
		writeJSON(w, analysisStatus(err), errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *handler) compare(w http.ResponseWriter, r *http.Request) {
	log := h.log.WithRequest(r).WithField("handler", "compare")

	var req compareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if len(req.Brands) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "brands are required"})
		return
	}

	report, err := h.engine.RunComparison(r.Context(), req.Brands, types.Transcript{Text: req.Text})
	if err != nil {
		log.WithField("error", err.Error()).Warn("comparison failed")
		writeJSON(w, analysisStatus(err), errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *handler) listResults(w http.ResponseWriter, r *http.Request) {
	metas, err := h.results.List()
	if err != nil {
		h.log.WithRequest(r).WithField("error", err.Error()).Error("list failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to list results"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": metas, "count": len(metas)})
}

func (h *handler) getResult(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "runID")
	result, err := h.results.Load(runID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "result not found"})
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *handler) stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.results.Stats()
	if err != nil {
		h.log.WithRequest(r).WithField("error", err.Error()).Error("stats failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to compute stats"})
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// analysisStatus maps run-level failures to HTTP codes: bad input is the
// caller's fault, everything else is ours.
func analysisStatus(err error) int {
	if errors.Is(err, pipeline.ErrEmptyTranscript) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
