package notes

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

type Priority string

const (
	PriorityHigh   Priority = "alta"
	PriorityMedium Priority = "media"
	PriorityLow    Priority = "baja"

	DefaultPriority = PriorityMedium
)

type Style string

const (
	StyleCommon     Style = "common"
	StyleChalkboard Style = "chalkboard"
	StyleGrid       Style = "grid"
	StyleStripes    Style = "stripes"
	StyleFolded     Style = "folded"

	DefaultStyle = StyleCommon
)

// editor defaults, also used when back-filling legacy records
const (
	DefaultColor     = "#ffffff"
	DefaultTextColor = "#000000"
	DefaultFont      = "Arial"
)

var (
	priorities = map[Priority]bool{
		PriorityHigh:   true,
		PriorityMedium: true,
		PriorityLow:    true,
	}
	styles = map[Style]bool{
		StyleCommon:     true,
		StyleChalkboard: true,
		StyleGrid:       true,
		StyleStripes:    true,
		StyleFolded:     true,
	}
)

// Note is a single sticky note, as persisted in the durable notes entry.
// JSON field names match the layout written by the browser client.
type Note struct {
	ID        string     `json:"id"`
	Content   string     `json:"content"`
	Color     string     `json:"color"`
	TextColor string     `json:"textColor"`
	Font      string     `json:"font"`
	Style     Style      `json:"style"`
	Image     string     `json:"image,omitempty"`
	Priority  Priority   `json:"priority"`
	CreatedAt time.Time  `json:"createdAt"`
	DueDate   *time.Time `json:"dueDate"`
	Completed bool       `json:"completed"`
}

func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if p == "" {
		return DefaultPriority, nil
	}
	if !priorities[p] {
		return "", fmt.Errorf("unknown priority: %s", s)
	}
	return p, nil
}

func ParseStyle(s string) (Style, error) {
	st := Style(strings.ToLower(strings.TrimSpace(s)))
	if st == "" {
		return DefaultStyle, nil
	}
	if !styles[st] {
		return "", fmt.Errorf("unknown style: %s", s)
	}
	return st, nil
}

func (p Priority) Valid() bool {
	return priorities[p]
}

func (s Style) Valid() bool {
	return styles[s]
}

// ApplyDefaults back-fills every field a legacy record may be missing.
// Unknown priority and style values are normalized to the defaults.
func (n *Note) ApplyDefaults() {
	if !n.Priority.Valid() {
		n.Priority = DefaultPriority
	}
	if !n.Style.Valid() {
		n.Style = DefaultStyle
	}
	if n.Color == "" {
		n.Color = DefaultColor
	}
	if n.TextColor == "" {
		n.TextColor = DefaultTextColor
	}
	if n.Font == "" {
		n.Font = DefaultFont
	}
	if n.DueDate != nil && n.DueDate.IsZero() {
		n.DueDate = nil
	}
}

// IsExpired reports whether the due date is set and already passed.
// Used for display only.
func (n Note) IsExpired(now time.Time) bool {
	return n.DueDate != nil && n.DueDate.Before(now)
}

// MarshalNotes encodes the whole collection into the durable entry format.
func MarshalNotes(notes []Note) ([]byte, error) {
	if notes == nil {
		notes = []Note{}
	}
	return json.Marshal(notes)
}

// storedNote is the decode shape of a persisted record. The browser client
// wrote createdAt and dueDate as free form values (ISO strings, date only
// strings, epoch millis, empty strings), so both are decoded leniently.
type storedNote struct {
	Note
	CreatedAt json.RawMessage `json:"createdAt"`
	DueDate   json.RawMessage `json:"dueDate"`
}

var storedTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseStoredTime returns nil for absent, empty and unreadable values.
func parseStoredTime(raw json.RawMessage) *time.Time {
	value := strings.TrimSpace(string(raw))
	if value == "" || value == "null" {
		return nil
	}

	if value[0] != '"' {
		var millis int64
		if err := json.Unmarshal(raw, &millis); err != nil {
			log.Debugf("stored note time [%s] ignored: %s", value, err)
			return nil
		}
		t := time.UnixMilli(millis)
		return &t
	}

	var str string
	if err := json.Unmarshal(raw, &str); err != nil {
		log.Debugf("stored note time [%s] ignored: %s", value, err)
		return nil
	}
	str = strings.TrimSpace(str)
	if str == "" {
		return nil
	}
	for _, layout := range storedTimeLayouts {
		if t, err := time.ParseInLocation(layout, str, time.Local); err == nil {
			return &t
		}
	}

	log.Debugf("stored note time [%s] has unknown format, ignored", str)
	return nil
}

// UnmarshalNotes decodes the durable entry. This is the load boundary:
// defaults are applied to every record here, and nowhere else. Only a
// malformed document fails (with ErrCorruptData), a single odd field never
// drops the collection.
func UnmarshalNotes(data []byte) ([]Note, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return []Note{}, nil
	}

	var stored []storedNote
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptData, err)
	}

	notes := make([]Note, 0, len(stored))
	for _, sn := range stored {
		n := sn.Note
		if createdAt := parseStoredTime(sn.CreatedAt); createdAt != nil {
			n.CreatedAt = *createdAt
		}
		n.DueDate = parseStoredTime(sn.DueDate)
		n.ApplyDefaults()
		notes = append(notes, n)
	}

	return notes, nil
}
