package notes

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/2beens/stickynotes/internal/telemetry/metrics"
	"github.com/2beens/stickynotes/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Storage is the persistence port of the store. Load is called once at
// startup, Save after every mutation with the whole collection.
type Storage interface {
	Load(ctx context.Context) ([]Note, error)
	Save(ctx context.Context, notes []Note) error
}

// Store owns the ordered collection of notes. Every mutation is applied to
// the in-memory list and then written through to the storage.
type Store struct {
	mu       sync.RWMutex
	notes    []Note
	revision uint64

	storage Storage
	metrics *metrics.Manager
}

// NewStore loads the collection from storage. Missing or corrupt data yields
// an empty collection. Any other load failure (backend unreachable, read
// permission) is returned, so a store never overwrites an entry it could not read.
func NewStore(ctx context.Context, storage Storage, metricsManager *metrics.Manager) (*Store, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "notesStore.load")
	defer span.End()

	s := &Store{
		storage: storage,
		metrics: metricsManager,
	}

	loaded, err := storage.Load(ctx)
	if err != nil {
		span.RecordError(err)
		if s.metrics != nil {
			s.metrics.CounterStorageErrors.Inc()
		}
		if !errors.Is(err, ErrCorruptData) {
			span.SetStatus(codes.Error, err.Error())
			return nil, fmt.Errorf("load notes: %w", err)
		}
		log.Warnf("notes data corrupt, starting with an empty collection: %s", err)
		loaded = nil
	}

	s.notes = make([]Note, 0, len(loaded))
	for _, n := range loaded {
		n.ApplyDefaults()
		s.notes = append(s.notes, n)
	}
	s.updateGauges()

	span.SetAttributes(attribute.Int("notes.count", len(s.notes)))
	log.Debugf("notes store loaded: %d notes", len(s.notes))

	return s, nil
}

func (s *Store) Create(ctx context.Context, note Note) error {
	ctx, span := tracing.GlobalTracer.Start(ctx, "notesStore.create")
	defer span.End()

	if note.ID == "" {
		span.SetStatus(codes.Error, "empty id")
		return ErrEmptyID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(note.ID) >= 0 {
		span.SetStatus(codes.Error, "duplicate id")
		return fmt.Errorf("create note %s: %w", note.ID, ErrDuplicateID)
	}

	note.ApplyDefaults()
	s.notes = append(s.notes, note)

	if s.metrics != nil {
		s.metrics.CounterNotes.Inc()
	}

	return s.commit(ctx, "create")
}

// Update replaces the note with the same id in place, keeping its position
// and original creation time. A note that does not exist yet is appended.
func (s *Store) Update(ctx context.Context, note Note) error {
	ctx, span := tracing.GlobalTracer.Start(ctx, "notesStore.update")
	defer span.End()

	if note.ID == "" {
		span.SetStatus(codes.Error, "empty id")
		return ErrEmptyID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	note.ApplyDefaults()
	if i := s.indexOf(note.ID); i >= 0 {
		if !s.notes[i].CreatedAt.IsZero() {
			note.CreatedAt = s.notes[i].CreatedAt
		}
		s.notes[i] = note
	} else {
		log.Debugf("update: note %s not found, appending", note.ID)
		span.SetAttributes(attribute.Bool("notes.implicit_create", true))
		s.notes = append(s.notes, note)
	}

	return s.commit(ctx, "update")
}

// Delete removes the note with the given id. Missing id is a no-op.
func (s *Store) Delete(ctx context.Context, id string) error {
	ctx, span := tracing.GlobalTracer.Start(ctx, "notesStore.delete")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(id); i >= 0 {
		s.notes = append(s.notes[:i], s.notes[i+1:]...)
	}

	return s.commit(ctx, "delete")
}

// ToggleCompleted flips the completed flag of the note. Missing id is a no-op.
func (s *Store) ToggleCompleted(ctx context.Context, id string) error {
	ctx, span := tracing.GlobalTracer.Start(ctx, "notesStore.toggleCompleted")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(id); i >= 0 {
		s.notes[i].Completed = !s.notes[i].Completed
	}

	return s.commit(ctx, "toggle")
}

// DeleteCompleted removes every completed note and returns how many were removed.
func (s *Store) DeleteCompleted(ctx context.Context) (int, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "notesStore.deleteCompleted")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]Note, 0, len(s.notes))
	for _, n := range s.notes {
		if !n.Completed {
			kept = append(kept, n)
		}
	}
	removed := len(s.notes) - len(kept)
	s.notes = kept

	span.SetAttributes(attribute.Int("notes.removed", removed))
	return removed, s.commit(ctx, "delete_completed")
}

// List returns a copy of the collection in insertion order.
func (s *Store) List() []Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot()
}

func (s *Store) Get(id string) (Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.notes[i], true
	}
	return Note{}, false
}

// Revision is incremented on every mutation.
func (s *Store) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

func (s *Store) indexOf(id string) int {
	for i := range s.notes {
		if s.notes[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) snapshot() []Note {
	out := make([]Note, len(s.notes))
	copy(out, s.notes)
	return out
}

// commit must be called with the write lock held.
func (s *Store) commit(ctx context.Context, op string) error {
	s.revision++
	if s.metrics != nil {
		s.metrics.CounterNoteMutations.WithLabelValues(op).Inc()
	}
	s.updateGauges()

	begin := time.Now()
	err := s.storage.Save(ctx, s.snapshot())
	if s.metrics != nil {
		s.metrics.HistogramStorageSave.Observe(time.Since(begin).Seconds())
	}
	if err != nil {
		log.Errorf("notes store [%s]: save failed: %s", op, err)
		if s.metrics != nil {
			s.metrics.CounterStorageErrors.Inc()
		}
		return fmt.Errorf("%w after %s: %w", ErrPersist, op, err)
	}

	return nil
}

func (s *Store) updateGauges() {
	if s.metrics == nil {
		return
	}
	counts := Count(s.notes)
	s.metrics.GaugeNotes.WithLabelValues("completed").Set(float64(counts.Completed))
	s.metrics.GaugeNotes.WithLabelValues("pending").Set(float64(counts.Pending))
}
