package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/texrig/texrig/pkg/errors"
	"github.com/texrig/texrig/pkg/model"
	"github.com/texrig/texrig/pkg/pipeline"
)

const maxUploadBytes = 256 << 20 // 256MiB, generous for a multi-atlas ingest

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Code: string(errors.GetCode(err)), Message: errors.UserMessage(err)})
}

// handleIngest accepts a multipart form of named file parts and merges
// them into the server's session.
func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, errors.Wrap(errors.ErrCodeMalformedInput, err, "parse multipart form"))
		return
	}

	var assets []pipeline.FileAsset
	for _, headers := range r.MultipartForm.File {
		for _, fh := range headers {
			f, err := fh.Open()
			if err != nil {
				writeError(w, http.StatusBadRequest, err)
				return
			}
			data, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				writeError(w, http.StatusBadRequest, err)
				return
			}
			assets = append(assets, pipeline.FileAsset{Path: fh.Filename, Data: data})
		}
	}

	result, err := s.Runner.Ingest(r.Context(), assets)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleClear resets the server's session.
func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	s.Runner.Clear()
	w.WriteHeader(http.StatusNoContent)
}

// handleAnalyze runs the analyzer/aggregator over the current session.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	report, err := s.Runner.Analyze(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

type planRequest struct {
	BufferPct float64 `json:"bufferPct"`
}

// handlePlan runs the optimization planner at the given safety-buffer
// percentage.
func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, errors.Wrap(errors.ErrCodeMalformedInput, err, "decode plan request"))
			return
		}
	}

	tasks, err := s.Runner.Plan(r.Context(), req.BufferPct)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

type resampleRequest struct {
	Tasks []model.OptimizationTask `json:"tasks"`
}

type resampleResponseItem struct {
	ImageKey string `json:"imageKey"`
	Data     []byte `json:"data"`
	Error    string `json:"error,omitempty"`
}

// handleResample runs the resampler over a batch of tasks and returns
// each result's PNG bytes inline.
func (s *Server) handleResample(w http.ResponseWriter, r *http.Request) {
	var req resampleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.Wrap(errors.ErrCodeMalformedInput, err, "decode resample request"))
		return
	}

	results, err := s.Runner.ResampleBatch(r.Context(), req.Tasks)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	items := make([]resampleResponseItem, len(results))
	for i, res := range results {
		item := resampleResponseItem{ImageKey: res.ImageKey, Data: res.Data}
		if res.Err != nil {
			item.Error = errors.UserMessage(res.Err)
		}
		items[i] = item
	}
	writeJSON(w, http.StatusOK, items)
}

type packRequest struct {
	Tasks    []model.OptimizationTask `json:"tasks"`
	PageSize int                      `json:"pageSize"`
	Padding  int                      `json:"padding"`
}

// handlePack runs the atlas packer over a batch of tasks at the given
// page size and padding.
func (s *Server) handlePack(w http.ResponseWriter, r *http.Request) {
	var req packRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.Wrap(errors.ErrCodeMalformedInput, err, "decode pack request"))
		return
	}
	if req.PageSize <= 0 {
		req.PageSize = 2048
	}

	result, err := s.Runner.Pack(r.Context(), req.Tasks, pipeline.PackOptions{PageSize: req.PageSize, Padding: req.Padding})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
