package db

import (
	"database/sql"
	"errors"
	"time"
)

// DBQueue serializes all access to the sqlite handle through one worker
// goroutine. Each task gets the handle only inside its closure, so checkout
// and release are structural and hold across every exit path. Transient
// failures (locked database) are retried with a linear backoff; constraint
// violations are returned to the caller untouched, since only the caller
// knows how to resolve them (e.g. regenerate an id).
type DBQueue struct {
	tasks      chan dbTask
	db         *sql.DB
	maxRetry   int
	retryDelay time.Duration
}

type dbTask struct {
	exec func(*sql.DB) (any, error)
	resp chan dbResult
}

type dbResult struct {
	data any
	err  error
}

func NewDBQueue(db *sql.DB) *DBQueue {
	return newDBQueue(db, 100*time.Millisecond)
}

// NewDBQueueForTest shortens the retry backoff so failure paths stay fast.
func NewDBQueueForTest(db *sql.DB) *DBQueue {
	return newDBQueue(db, time.Millisecond)
}

func newDBQueue(db *sql.DB, retryDelay time.Duration) *DBQueue {
	q := &DBQueue{
		tasks:      make(chan dbTask, 100),
		db:         db,
		maxRetry:   3,
		retryDelay: retryDelay,
	}
	go q.worker()
	return q
}

// Execute runs task on the queue worker and blocks until it finishes.
func (q *DBQueue) Execute(task func(*sql.DB) (any, error)) (any, error) {
	resp := make(chan dbResult, 1)
	q.tasks <- dbTask{exec: task, resp: resp}
	result := <-resp
	return result.data, result.err
}

func (q *DBQueue) worker() {
	for task := range q.tasks {
		task.resp <- q.runWithRetry(task)
	}
}

func (q *DBQueue) runWithRetry(task dbTask) dbResult {
	var lastErr error
	for attempt := 0; attempt < q.maxRetry; attempt++ {
		data, err := task.exec(q.db)
		if err == nil {
			return dbResult{data: data}
		}
		if isConstraintViolation(err) || errors.Is(err, sql.ErrNoRows) {
			return dbResult{err: err}
		}
		lastErr = err
		if attempt < q.maxRetry-1 {
			time.Sleep(time.Duration(attempt+1) * q.retryDelay)
		}
	}
	return dbResult{err: lastErr}
}

func (q *DBQueue) Close() {
	close(q.tasks)
}

func (q *DBQueue) DB() *sql.DB {
	return q.db
}
