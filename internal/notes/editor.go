package notes

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/2beens/stickynotes/internal/telemetry/metrics"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Draft holds the editable fields of a note while it is being edited.
// An empty ID means the draft is a new note.
type Draft struct {
	ID        string     `json:"id,omitempty"`
	Content   string     `json:"content"`
	Color     string     `json:"color,omitempty"`
	TextColor string     `json:"textColor,omitempty"`
	Font      string     `json:"font,omitempty"`
	Style     string     `json:"style,omitempty"`
	Image     string     `json:"image,omitempty"`
	Priority  string     `json:"priority,omitempty"`
	DueDate   *time.Time `json:"dueDate,omitempty"`

	// carried over from the edited note, not editable
	createdAt time.Time
	completed bool
}

func NewDraft() Draft {
	return Draft{
		Color:     DefaultColor,
		TextColor: DefaultTextColor,
		Font:      DefaultFont,
		Style:     string(DefaultStyle),
		Priority:  string(DefaultPriority),
	}
}

func DraftFromNote(note Note) Draft {
	return Draft{
		ID:        note.ID,
		Content:   note.Content,
		Color:     note.Color,
		TextColor: note.TextColor,
		Font:      note.Font,
		Style:     string(note.Style),
		Image:     note.Image,
		Priority:  string(note.Priority),
		DueDate:   note.DueDate,
		createdAt: note.CreatedAt,
		completed: note.Completed,
	}
}

type noteWriter interface {
	Create(ctx context.Context, note Note) error
	Update(ctx context.Context, note Note) error
	Get(id string) (Note, bool)
}

type Editor struct {
	store   noteWriter
	metrics *metrics.Manager
	now     func() time.Time
	newID   func() string
}

func NewEditor(store noteWriter, metricsManager *metrics.Manager) *Editor {
	return &Editor{
		store:   store,
		metrics: metricsManager,
		now:     time.Now,
		newID: func() string {
			return uuid.New().String()
		},
	}
}

// Save validates the draft and hands the resulting note to the store.
// A draft without an id is created; one with an id is updated (which
// appends it if the store does not know it).
func (e *Editor) Save(ctx context.Context, draft Draft) (*Note, error) {
	note, err := e.build(draft)
	if err != nil {
		if e.metrics != nil {
			e.metrics.CounterValidationFailures.Inc()
		}
		return nil, err
	}

	if draft.ID == "" {
		note.ID = e.newID()
		if err := e.store.Create(ctx, note); err != nil {
			return nil, err
		}
		log.Debugf("editor: new note created: %s", note.ID)
	} else {
		if existing, ok := e.store.Get(draft.ID); ok {
			if note.CreatedAt.IsZero() {
				note.CreatedAt = existing.CreatedAt
			}
			if draft.createdAt.IsZero() {
				note.Completed = existing.Completed
			}
		}
		if note.CreatedAt.IsZero() {
			note.CreatedAt = e.now()
		}
		if err := e.store.Update(ctx, note); err != nil {
			return nil, err
		}
		log.Debugf("editor: note updated: %s", note.ID)
	}

	saved, ok := e.store.Get(note.ID)
	if !ok {
		return &note, nil
	}
	return &saved, nil
}

// Cancel discards the draft. The store is never touched.
func (e *Editor) Cancel(draft *Draft) {
	if draft == nil {
		return
	}
	log.Tracef("editor: draft for [%s] discarded", draft.ID)
	*draft = Draft{}
}

func (e *Editor) build(draft Draft) (Note, error) {
	if strings.TrimSpace(draft.Content) == "" {
		return Note{}, ErrEmptyContent
	}

	priority, err := ParsePriority(draft.Priority)
	if err != nil {
		return Note{}, &ValidationError{Field: "priority", Reason: err.Error()}
	}
	style, err := ParseStyle(draft.Style)
	if err != nil {
		return Note{}, &ValidationError{Field: "style", Reason: err.Error()}
	}
	if draft.Image != "" && !strings.HasPrefix(draft.Image, "data:image/") {
		return Note{}, &ValidationError{Field: "image", Reason: fmt.Sprintf("not an image data uri: %.32s", draft.Image)}
	}

	note := Note{
		ID:        draft.ID,
		Content:   draft.Content,
		Color:     draft.Color,
		TextColor: draft.TextColor,
		Font:      draft.Font,
		Style:     style,
		Image:     draft.Image,
		Priority:  priority,
		DueDate:   draft.DueDate,
		CreatedAt: draft.createdAt,
		Completed: draft.completed,
	}
	if note.ID == "" {
		note.CreatedAt = e.now()
	}
	note.ApplyDefaults()

	return note, nil
}
