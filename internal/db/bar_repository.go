package db

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/ad/go-progress-bar/internal/idgen"
	"github.com/ad/go-progress-bar/internal/models"
)

const (
	// maxIDAttempts bounds id regeneration on collision. Unbounded retry
	// would spin forever if the store keeps failing for another reason.
	maxIDAttempts = 5

	maxIPLength = 140
)

type BarRepository struct {
	queue *DBQueue

	// generateID is swappable so tests can force collisions.
	generateID func() string
}

func NewBarRepository(queue *DBQueue) *BarRepository {
	return &BarRepository{queue: queue, generateID: idgen.Generate}
}

// Create inserts a new bar row under a freshly generated id and returns that
// id. A primary-key collision regenerates the id and retries, up to
// maxIDAttempts; exhaustion surfaces as a PersistenceError. Existing rows are
// never overwritten.
func (r *BarRepository) Create(name string, startTime, endTime time.Time, ip string) (string, error) {
	storedIP := normalizeIP(ip)
	createdAt := time.Now().UTC()

	result, err := r.queue.Execute(func(db *sql.DB) (any, error) {
		for attempt := 1; attempt <= maxIDAttempts; attempt++ {
			id := r.generateID()
			_, err := db.Exec(`
				INSERT INTO custom_progress_bars (id, name, start_time, end_time, created_at, created_by_ip)
				VALUES (?, ?, ?, ?, ?, ?)
			`, id, name, startTime.UTC(), endTime.UTC(), createdAt, nullableString(storedIP))
			if err == nil {
				return id, nil
			}
			if !isConstraintViolation(err) {
				return nil, err
			}
			log.Printf("[STORE] id collision on %q, regenerating (attempt %d/%d)", id, attempt, maxIDAttempts)
		}
		return nil, fmt.Errorf("no free id after %d attempts", maxIDAttempts)
	})
	if err != nil {
		return "", &PersistenceError{Op: "create", Err: err}
	}
	return result.(string), nil
}

// Get fetches a bar by primary key. Returns ErrNotFound when the id is
// absent. Records are immutable after creation, so no caching layer sits in
// front of this lookup.
func (r *BarRepository) Get(id string) (*models.ProgressBar, error) {
	result, err := r.queue.Execute(func(db *sql.DB) (any, error) {
		row := db.QueryRow(`
			SELECT id, name, start_time, end_time, created_at, created_by_ip
			FROM custom_progress_bars WHERE id = ?
		`, id)

		var bar models.ProgressBar
		var createdByIP sql.NullString
		err := row.Scan(&bar.ID, &bar.Name, &bar.StartTime, &bar.EndTime, &bar.CreatedAt, &createdByIP)
		if err != nil {
			return nil, err
		}
		if createdByIP.Valid {
			bar.CreatedByIP = createdByIP.String
		}
		return &bar, nil
	})
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, &PersistenceError{Op: "get", Err: err}
	}
	return result.(*models.ProgressBar), nil
}

// normalizeIP keeps the leftmost entry of a forwarded-address list (the
// original client per X-Forwarded-For convention) and caps the stored value
// at maxIPLength.
func normalizeIP(ip string) string {
	if len(ip) > maxIPLength {
		ip = strings.TrimSpace(strings.SplitN(ip, ",", 2)[0])
	}
	if len(ip) > maxIPLength {
		ip = ip[:maxIPLength]
	}
	return ip
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
