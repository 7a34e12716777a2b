package main

import (
	"log"
	"sync"
	"time"
)

// Event kinds recorded by the flight recorder
const (
	EvtJoin          = "join"
	EvtRespawn       = "respawn"
	EvtGameOver      = "game_over"
	EvtRockDestroyed = "rock_destroyed" // value = pellets dropped
	EvtSpice         = "spice"          // value = spice gained
	EvtFuel          = "fuel"           // value = energy gained
)

const (
	analyticsBuffer     = 1024
	analyticsBatchSize  = 64
	analyticsFlushEvery = 2 * time.Second
)

// AnalyticsEvent represents a single trackable event
type AnalyticsEvent struct {
	Kind      string
	ShipID    int
	Value     int
	Timestamp time.Time
}

// Analytics persists gameplay events with batched background writes.
// It implements Recorder.
type Analytics struct {
	db     *DB
	runID  string
	events chan AnalyticsEvent
	stop   chan struct{}
	wg     sync.WaitGroup
	once   sync.Once
}

// NewAnalytics creates and starts the analytics background writer
func NewAnalytics(db *DB, runID string) *Analytics {
	a := &Analytics{
		db:     db,
		runID:  runID,
		events: make(chan AnalyticsEvent, analyticsBuffer),
		stop:   make(chan struct{}),
	}
	a.wg.Add(1)
	go a.writer()
	return a
}

// Record enqueues an event for async persistence (non-blocking)
func (a *Analytics) Record(kind string, shipID int, value int) {
	select {
	case a.events <- AnalyticsEvent{
		Kind:      kind,
		ShipID:    shipID,
		Value:     value,
		Timestamp: time.Now().UTC(),
	}:
	default:
		// Channel full: drop the event, never block the game loop
	}
}

// Stop flushes pending events and shuts down the writer
func (a *Analytics) Stop() {
	a.once.Do(func() { close(a.stop) })
	a.wg.Wait()
}

// writer is the background goroutine that batches and writes events to DB
func (a *Analytics) writer() {
	defer a.wg.Done()

	batch := make([]AnalyticsEvent, 0, analyticsBatchSize)
	ticker := time.NewTicker(analyticsFlushEvery)
	defer ticker.Stop()

	for {
		select {
		case evt := <-a.events:
			batch = append(batch, evt)
			if len(batch) >= analyticsBatchSize {
				a.flush(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				a.flush(batch)
				batch = batch[:0]
			}
		case <-a.stop:
			// Drain whatever is already queued
			for {
				select {
				case evt := <-a.events:
					batch = append(batch, evt)
				default:
					a.flush(batch)
					return
				}
			}
		}
	}
}

// flush writes a batch of events to the database
func (a *Analytics) flush(events []AnalyticsEvent) {
	if a.db == nil || len(events) == 0 {
		return
	}
	tx, err := a.db.conn.Begin()
	if err != nil {
		log.Printf("analytics: begin tx error: %v", err)
		return
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO events (run_id, kind, ship_id, value, created_at) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		log.Printf("analytics: prepare error: %v", err)
		return
	}
	defer stmt.Close()

	for _, evt := range events {
		if _, err := stmt.Exec(a.runID, evt.Kind, evt.ShipID, evt.Value, evt.Timestamp); err != nil {
			log.Printf("analytics: insert error: %v", err)
		}
	}
	if err := tx.Commit(); err != nil {
		log.Printf("analytics: commit error: %v", err)
	}
}
