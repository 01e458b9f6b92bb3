package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/ad/go-progress-bar/internal/db"
	"github.com/ad/go-progress-bar/internal/idgen"
	"github.com/ad/go-progress-bar/internal/session"
	"github.com/ad/go-progress-bar/internal/timemath"
)

type PageHandler struct {
	bars *db.BarRepository
}

func NewPageHandler(bars *db.BarRepository) *PageHandler {
	return &PageHandler{bars: bars}
}

type pageData struct {
	Title          string
	Name           string
	Percent        int
	EndRFC3339     string
	TotalSeconds   int64
	CloseThreshold int64
	IsYearPage     bool
}

// Serve renders the year page at / and a bar page at /{id}. The snapshot is
// computed once here; the embedded script advances it locally against the
// absolute end instant without re-fetching.
func (h *PageHandler) Serve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	path := strings.Trim(r.URL.Path, "/")
	if path == "" {
		h.yearPage(w)
		return
	}
	h.barPage(w, path)
}

func (h *PageHandler) yearPage(w http.ResponseWriter) {
	now := time.Now()
	end := timemath.YearEnd(now)
	yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())

	sess := session.NewSession(session.Snapshot{
		TotalSeconds:     int64(end.Sub(yearStart) / time.Second),
		RemainingSeconds: timemath.YearTimeLeft(now),
		End:              end,
	})
	sess.SetCloseThreshold(session.YearCloseThreshold)
	frame := sess.Tick()

	h.render(w, http.StatusOK, pageData{
		Title:          fmt.Sprintf("Year Progress %d", now.Year()),
		Name:           fmt.Sprintf("Year Progress %d", now.Year()),
		Percent:        frame.Percent,
		EndRFC3339:     end.UTC().Format(time.RFC3339),
		TotalSeconds:   int64(end.Sub(yearStart) / time.Second),
		CloseThreshold: session.YearCloseThreshold,
		IsYearPage:     true,
	})
}

func (h *PageHandler) barPage(w http.ResponseWriter, id string) {
	if !idgen.Valid(id) {
		h.notFound(w, "That link does not look like a progress bar id.")
		return
	}

	bar, err := h.bars.Get(id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			h.notFound(w, "The progress bar you are looking for does not exist.")
			return
		}
		log.Printf("[PAGE] load %s failed: %v", id, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	now := time.Now()
	sess := session.NewSession(session.Snapshot{
		TotalSeconds:     bar.TotalSeconds(),
		RemainingSeconds: bar.RemainingSeconds(now),
		End:              bar.EndTime,
	})
	frame := sess.Tick()

	h.render(w, http.StatusOK, pageData{
		Title:          bar.Name + " - progress",
		Name:           bar.Name,
		Percent:        frame.Percent,
		EndRFC3339:     bar.EndTime.UTC().Format(time.RFC3339),
		TotalSeconds:   bar.TotalSeconds(),
		CloseThreshold: session.DefaultCloseThreshold,
	})
}

func (h *PageHandler) notFound(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	if err := notFoundTemplate.Execute(w, map[string]string{"Message": message}); err != nil {
		log.Printf("[PAGE] render not-found: %v", err)
	}
}

func (h *PageHandler) render(w http.ResponseWriter, status int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := progressTemplate.Execute(w, data); err != nil {
		log.Printf("[PAGE] render: %v", err)
	}
}
