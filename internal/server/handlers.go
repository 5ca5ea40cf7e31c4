package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	apperror "github.com/LearnWithSuryaa/analyzer-app/foundation/core/error"
	"github.com/LearnWithSuryaa/analyzer-app/internal/service"
	"github.com/LearnWithSuryaa/analyzer-app/internal/store"
	"github.com/LearnWithSuryaa/analyzer-app/pkg/core/logging"
)

const (
	defaultHistoryLimit = 50
	defaultSearchLimit  = 20
)

// BatchItemResponse is one entry of the batch response
type BatchItemResponse struct {
	Index  int             `json:"index"`
	Input  string          `json:"input"`
	Record *service.Record `json:"record,omitempty"`
	Error  *ErrorResponse  `json:"error,omitempty"`
}

// BatchResponse is the body returned by POST /api/v1/analyze/batch
type BatchResponse struct {
	Items []BatchItemResponse `json:"items"`
}

type handler struct {
	service *service.Service
	logger  *logging.Logger
}

func (h *handler) analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	record, err := h.service.Analyze(r.Context(), req.Text)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (h *handler) analyzeBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	items, err := h.service.AnalyzeBatch(r.Context(), req.Texts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, batchResponse(items))
}

func batchResponse(items []service.BatchItem) BatchResponse {
	resp := BatchResponse{Items: make([]BatchItemResponse, len(items))}
	for i, item := range items {
		resp.Items[i] = BatchItemResponse{Index: item.Index, Input: item.Input, Record: item.Record}
		if item.Error != nil {
			e := errorResponse(item.Error)
			resp.Items[i].Error = &e
		}
	}
	return resp
}

func (h *handler) tokenize(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"input":  req.Text,
		"tokens": h.service.Tokenize(req.Text),
	})
}

func (h *handler) listHistory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := HistoryQuery{
		Valid:  q.Get("valid"),
		Errors: q.Get("errors"),
		Since:  q.Get("since"),
	}
	var err error
	if query.Limit, err = intParam(q.Get("limit"), defaultHistoryLimit); err != nil {
		writeError(w, err)
		return
	}
	if query.Offset, err = intParam(q.Get("offset"), 0); err != nil {
		writeError(w, err)
		return
	}
	if err := validateRequest(query); err != nil {
		writeError(w, err)
		return
	}

	filter := store.Filter{
		SyntaxErrors: query.Errors == "true",
		Limit:        query.Limit,
		Offset:       query.Offset,
	}
	if query.Valid != "" {
		valid := query.Valid == "true"
		filter.Valid = &valid
	}
	if query.Since != "" {
		// Already checked by the datetime tag
		filter.Since, _ = time.Parse(time.RFC3339, query.Since)
	}

	entries, err := h.service.History(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"entries": entries,
		"count":   len(entries),
	})
}

func (h *handler) getHistory(w http.ResponseWriter, r *http.Request) {
	entry, err := h.service.Record(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (h *handler) historyStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *handler) searchLexicon(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := SearchQuery{Query: q.Get("q")}
	var err error
	if query.Limit, err = intParam(q.Get("limit"), defaultSearchLimit); err != nil {
		writeError(w, err)
		return
	}
	if err := validateRequest(query); err != nil {
		writeError(w, err)
		return
	}

	results := h.service.SearchLexicon(query.Query, query.Limit)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"query":   query.Query,
		"results": results,
	})
}

func (h *handler) lexiconStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Lexicon().Stats())
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	report := h.service.Health().Check(ctx)
	status := http.StatusOK
	if !report.Healthy() {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, report)
}

func intParam(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperror.Newf("invalid number %q", raw).WithCode(apperror.CodeInvalidInput)
	}
	return n, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, httpStatus(err), errorResponse(err))
}

func httpStatus(err error) int {
	switch {
	case errors.Is(err, context.Canceled):
		return 499
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return apperror.GetCode(err).HTTPStatus()
}

func errorResponse(err error) ErrorResponse {
	resp := ErrorResponse{Error: err.Error()}
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		resp.Code = appErr.Code().String()
		if details := appErr.Details(); len(details) > 0 {
			resp.Details = details
		}
	}
	return resp
}
