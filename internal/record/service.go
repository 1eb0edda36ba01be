package record

import (
	"context"
	"log"

	"signsheet/internal/confirm"
	"signsheet/internal/metrics"
	"signsheet/internal/queue"
)

// Disposition is the outcome of a delete request routed through the gate.
type Disposition int

const (
	// Armed means the gate is now pending; nothing was deleted. The caller
	// should warn the user to repeat the request within the window.
	Armed Disposition = iota
	// Deleted means the request confirmed a pending target and the
	// destructive call succeeded.
	Deleted
)

// Service wraps the repository with submission validation, the deletion
// confirmation gate, and the audit queue.
type Service struct {
	repo *Repository
	gate *confirm.Gate
	q    queue.Queue // nil disables audit publishing
}

// NewService wires the service. q may be nil.
func NewService(repo *Repository, gate *confirm.Gate, q queue.Queue) *Service {
	if gate == nil {
		gate = confirm.New(0)
	}
	return &Service{repo: repo, gate: gate, q: q}
}

// Gate exposes the confirmation gate, mainly so handlers can reset it on
// non-destructive interactions.
func (s *Service) Gate() *confirm.Gate {
	return s.gate
}

// Submit validates and persists a new record. A submission is a
// non-destructive interaction, so any pending delete confirmation is
// dropped first. The stored record, with assigned id and timestamp, is
// returned and its id is published to the audit queue.
func (s *Service) Submit(ctx context.Context, rec Record) (Record, error) {
	s.gate.Reset()

	if err := rec.Validate(); err != nil {
		metrics.SubmissionsRejected.Inc()
		return Record{}, err
	}
	rec.ID = 0

	saved, err := s.repo.Insert(ctx, rec)
	if err != nil {
		return Record{}, err
	}
	metrics.SubmissionsTotal.Inc()

	if s.q != nil {
		msg := queue.Message{Kind: queue.KindSubmission, RecordID: saved.ID}
		if err := s.q.Publish(ctx, msg); err != nil {
			log.Printf("audit publish for record %d failed: %v", saved.ID, err)
		}
	}
	return saved, nil
}

// List returns all records newest-first.
func (s *Service) List(ctx context.Context) ([]Record, error) {
	return s.repo.ListAll(ctx)
}

// RequestDelete routes a single-record deletion through the gate. The
// first call for an id arms the gate; the second within the window deletes
// the record (idempotently) and reports Deleted.
func (s *Service) RequestDelete(ctx context.Context, id int64) (Disposition, error) {
	if !s.gate.Request(confirm.TargetRecord(id)) {
		metrics.ConfirmationsArmed.Inc()
		return Armed, nil
	}
	if err := s.repo.DeleteOne(ctx, id); err != nil {
		return Deleted, err
	}
	metrics.DeletionsTotal.WithLabelValues("record").Inc()
	return Deleted, nil
}

// RequestClear routes a clear-all through the gate, same two-step shape as
// RequestDelete.
func (s *Service) RequestClear(ctx context.Context) (Disposition, error) {
	if !s.gate.Request(confirm.TargetAll) {
		metrics.ConfirmationsArmed.Inc()
		return Armed, nil
	}
	if err := s.repo.DeleteAll(ctx); err != nil {
		return Deleted, err
	}
	metrics.DeletionsTotal.WithLabelValues("all").Inc()
	return Deleted, nil
}
