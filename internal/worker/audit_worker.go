package worker

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const auditQueueSize = 256

// Event describes a single directory mutation.
type Event struct {
	Action    string    `json:"action"` // "create", "update" or "delete"
	StudentID int       `json:"student_id"`
	At        time.Time `json:"at"`
}

// Stats are the running mutation counters kept by the audit worker.
type Stats struct {
	Creates int `json:"creates"`
	Updates int `json:"updates"`
	Deletes int `json:"deletes"`
}

// AuditWorker consumes directory mutation events in the background, writes
// an audit log line for each and keeps running counters for the admin
// stats endpoint.
type AuditWorker struct {
	events chan Event
	log    zerolog.Logger

	mu    sync.Mutex
	stats Stats
}

// NewAuditWorker creates an AuditWorker with a bounded event queue.
func NewAuditWorker(log zerolog.Logger) *AuditWorker {
	return &AuditWorker{
		events: make(chan Event, auditQueueSize),
		log:    log.With().Str("component", "audit_worker").Logger(),
	}
}

// Publish enqueues a mutation event. If the queue is full the event is
// logged inline and dropped from the queue so handlers never block.
func (w *AuditWorker) Publish(action string, studentID int) {
	ev := Event{Action: action, StudentID: studentID, At: time.Now().UTC()}
	select {
	case w.events <- ev:
	default:
		w.log.Warn().Str("action", action).Int("student_id", studentID).
			Msg("Audit queue full, recording inline")
		w.record(ev)
	}
}

// Start runs the consume loop until ctx is cancelled, then drains whatever
// is left in the queue.
func (w *AuditWorker) Start(ctx context.Context) {
	w.log.Info().Msg("AuditWorker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Shutdown requested. Draining audit queue...")
			w.drain()
			return

		case ev := <-w.events:
			w.record(ev)
		}
	}
}

// Snapshot returns a copy of the current mutation counters.
func (w *AuditWorker) Snapshot() Stats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}

func (w *AuditWorker) record(ev Event) {
	w.mu.Lock()
	switch ev.Action {
	case "create":
		w.stats.Creates++
	case "update":
		w.stats.Updates++
	case "delete":
		w.stats.Deletes++
	}
	w.mu.Unlock()

	w.log.Info().
		Str("action", ev.Action).
		Int("student_id", ev.StudentID).
		Time("at", ev.At).
		Msg("Directory mutation")
}

func (w *AuditWorker) drain() {
	for {
		select {
		case ev := <-w.events:
			w.record(ev)
		default:
			return
		}
	}
}
