package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/ad/go-progress-bar/internal/config"
	"github.com/ad/go-progress-bar/internal/db"
	"github.com/ad/go-progress-bar/internal/idgen"
	"github.com/ad/go-progress-bar/internal/workflow"
)

type createRequest struct {
	Name      string `json:"name"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type APIHandler struct {
	bars *db.BarRepository
	cfg  *config.Config
}

func NewAPIHandler(bars *db.BarRepository, cfg *config.Config) *APIHandler {
	return &APIHandler{bars: bars, cfg: cfg}
}

// CreateBar handles POST /api/custom-progress/create.
func (h *APIHandler) CreateBar(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	wf := workflow.NewCreationWorkflow(h.bars, h.cfg)
	result, err := wf.Create(workflow.Input{
		Name:           req.Name,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		UseCurrentTime: strings.TrimSpace(req.StartTime) == "",
		ClientIP:       clientIP(r),
	})
	if err != nil {
		var verr *workflow.ValidationError
		if errors.As(err, &verr) {
			writeError(w, http.StatusBadRequest, verr.Message)
			return
		}
		log.Printf("[API] create failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to create progress bar")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"id":      result.ID,
		"url":     result.URL,
	})
}

// GetBar handles GET /api/custom-progress/{id}.
func (h *APIHandler) GetBar(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/custom-progress/")
	if !idgen.Valid(id) {
		writeError(w, http.StatusBadRequest, "invalid progress bar id")
		return
	}

	bar, err := h.bars.Get(id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, http.StatusNotFound, "progress bar not found")
			return
		}
		log.Printf("[API] get %s failed: %v", id, err)
		writeError(w, http.StatusInternalServerError, "failed to load progress bar")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data": map[string]any{
			"id":         bar.ID,
			"name":       bar.Name,
			"start_time": bar.StartTime.UTC().Format(time.RFC3339),
			"end_time":   bar.EndTime.UTC().Format(time.RFC3339),
		},
	})
}

// clientIP returns the forwarded-address list as received; the store layer
// keeps the leftmost entry when truncating.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	return r.RemoteAddr
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("[API] write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{
		"success": false,
		"error":   message,
	})
}
