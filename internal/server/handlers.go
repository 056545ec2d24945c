package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/thunderstroke325/mage-ai/internal/analysis"
	"github.com/thunderstroke325/mage-ai/internal/store"
	"github.com/thunderstroke325/mage-ai/pkg/cleaner"
	"github.com/thunderstroke325/mage-ai/pkg/transformer"
)

// featureSetSummary is the list form of a feature set, without data.
type featureSetSummary struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Metadata map[string]any `json:"metadata"`
}

// featureSetResponse is the detailed form, including the attached
// pipeline when one exists.
type featureSetResponse struct {
	*store.FeatureSet
	Pipeline *store.PipelineRecord `json:"pipeline,omitempty"`
}

type processRequest struct {
	ID    string `json:"id"`
	Clean *bool  `json:"clean"`
}

// handleProcess analyzes or cleans a stored feature set and persists the
// result.
func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	var req processRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, fmt.Errorf("decode request: %w", err))
		return
	}
	if req.ID == "" {
		s.respondJSON(w, http.StatusBadRequest, errorEnvelope{Error: errorBody{
			Code: http.StatusBadRequest, Type: "bad_request", Message: "id is required",
		}})
		return
	}

	fs, err := s.store.GetFeatureSet(req.ID)
	if err != nil {
		s.respondError(w, err)
		return
	}

	clean := req.Clean == nil || *req.Clean
	var result *analysis.Result
	if clean {
		result, err = analysis.Clean(fs.Data, nil)
	} else {
		result, err = analysis.Analyze(fs.Data, nil)
	}
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.applyResult(fs, result)
	if err := s.store.UpdateFeatureSet(fs); err != nil {
		s.respondError(w, err)
		return
	}
	s.respondFeatureSet(w, fs)
}

func (s *Server) handleFeatureSetList(w http.ResponseWriter, r *http.Request) {
	featureSets, err := s.store.ListFeatureSets()
	if err != nil {
		s.respondError(w, err)
		return
	}
	summaries := make([]featureSetSummary, 0, len(featureSets))
	for _, fs := range featureSets {
		summaries = append(summaries, featureSetSummary{ID: fs.ID, Name: fs.Name, Metadata: fs.Metadata})
	}
	s.respondJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleFeatureSetGet(w http.ResponseWriter, r *http.Request) {
	fs, err := s.store.GetFeatureSet(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondFeatureSet(w, fs)
}

type featureSetPutRequest struct {
	Metadata    map[string]any       `json:"metadata"`
	Statistics  map[string]any       `json:"statistics"`
	Suggestions []cleaner.Suggestion `json:"suggestions"`
}

func (s *Server) handleFeatureSetPut(w http.ResponseWriter, r *http.Request) {
	fs, err := s.store.GetFeatureSet(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	var req featureSetPutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, fmt.Errorf("decode request: %w", err))
		return
	}
	if req.Metadata != nil {
		fs.Metadata = req.Metadata
	}
	if req.Statistics != nil {
		fs.Statistics = req.Statistics
	}
	if req.Suggestions != nil {
		fs.Suggestions = req.Suggestions
	}
	if err := s.store.UpdateFeatureSet(fs); err != nil {
		s.respondError(w, err)
		return
	}
	s.respondFeatureSet(w, fs)
}

func (s *Server) handleFeatureSetDownload(w http.ResponseWriter, r *http.Request) {
	fs, err := s.store.GetFeatureSet(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	name := strings.ReplaceAll(fs.Name, " ", "_")
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".csv"))
	if err := fs.Data.WriteCSV(w); err != nil {
		s.logger.Error("write csv download", "feature_set", fs.ID, "error", err)
	}
}

func (s *Server) handleFeatureSetVersionGet(w http.ResponseWriter, r *http.Request) {
	version, err := strconv.Atoi(chi.URLParam(r, "version"))
	if err != nil {
		s.respondJSON(w, http.StatusBadRequest, errorEnvelope{Error: errorBody{
			Code: http.StatusBadRequest, Type: "bad_request", Message: "version must be an integer",
		}})
		return
	}
	snapshot, err := s.store.GetFeatureSetVersion(chi.URLParam(r, "id"), version)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, snapshot)
}

func (s *Server) handlePipelineList(w http.ResponseWriter, r *http.Request) {
	pipelines, err := s.store.ListPipelines()
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, pipelines)
}

func (s *Server) handlePipelineGet(w http.ResponseWriter, r *http.Request) {
	record, err := s.store.GetPipeline(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, record)
}

type pipelinePutRequest struct {
	Actions []transformer.Action `json:"actions"`
}

// handlePipelinePut replaces a pipeline's action list: fill titles, replay
// the new list against the feature set's original data, re-analyze, then
// persist everything with the previous version recorded. Remote sync runs
// afterwards, fire-and-forget.
func (s *Server) handlePipelinePut(w http.ResponseWriter, r *http.Request) {
	record, err := s.store.GetPipeline(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	var req pipelinePutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, fmt.Errorf("decode request: %w", err))
		return
	}
	actions := transformer.FillTitles(req.Actions)

	var fs *store.FeatureSet
	if record.FeatureSetID != "" {
		fs, err = s.store.GetFeatureSet(record.FeatureSetID)
		if err != nil {
			s.respondError(w, err)
			return
		}
		transformed, err := transformer.Transform(fs.DataOrig, actions, false)
		if err != nil {
			s.respondError(w, err)
			return
		}
		result, err := analysis.Analyze(transformed, nil)
		if err != nil {
			s.respondError(w, err)
			return
		}
		s.applyResult(fs, result)
	}

	prevVersion, err := s.store.ReplaceActions(record.ID, actions)
	if err != nil {
		s.respondError(w, err)
		return
	}
	if fs != nil {
		if err := s.store.SaveFeatureSetVersion(fs, prevVersion); err != nil {
			s.respondError(w, err)
			return
		}
		if err := s.store.UpdateFeatureSet(fs); err != nil {
			s.respondError(w, err)
			return
		}
	}

	if s.apiKey != "" && s.sync != nil {
		s.sync.SyncPipelineAsync(s.apiKey, record.ID, actions)
	}

	record.Actions = actions
	record.Version = len(actions)
	s.respondJSON(w, http.StatusOK, record)
}

// applyResult copies an analysis result into a feature set's stored state.
func (s *Server) applyResult(fs *store.FeatureSet, result *analysis.Result) {
	if fs.Metadata == nil {
		fs.Metadata = map[string]any{}
	}
	fs.Metadata["column_types"] = result.ColumnTypes
	fs.Statistics = result.Statistics
	fs.Suggestions = result.Suggestions
	fs.Data = result.Frame
}

func (s *Server) respondFeatureSet(w http.ResponseWriter, fs *store.FeatureSet) {
	resp := featureSetResponse{FeatureSet: fs}
	if record, err := s.store.GetPipelineForFeatureSet(fs.ID); err == nil {
		resp.Pipeline = record
	}
	s.respondJSON(w, http.StatusOK, resp)
}
