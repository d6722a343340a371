package notes

import (
	"fmt"
	"strings"
	"time"
)

type FilterMode string

const (
	FilterAll       FilterMode = "all"
	FilterCompleted FilterMode = "completed"
	FilterPending   FilterMode = "pending"
)

var emptyMessages = map[FilterMode]string{
	FilterAll:       "You have no notes yet!",
	FilterCompleted: "You have no completed notes!",
	FilterPending:   "You have no pending notes!",
}

func ParseFilterMode(s string) (FilterMode, error) {
	switch FilterMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", FilterAll:
		return FilterAll, nil
	case FilterCompleted:
		return FilterCompleted, nil
	case FilterPending:
		return FilterPending, nil
	default:
		return "", fmt.Errorf("unknown filter mode: %s", s)
	}
}

func (m FilterMode) keep(n Note) bool {
	switch m {
	case FilterCompleted:
		return n.Completed
	case FilterPending:
		return !n.Completed
	default:
		return true
	}
}

// Filter returns the notes visible in the given mode, in their original order.
func Filter(notes []Note, mode FilterMode) []Note {
	filtered := make([]Note, 0, len(notes))
	for _, n := range notes {
		if mode.keep(n) {
			filtered = append(filtered, n)
		}
	}
	return filtered
}

type Counts struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
}

// Count aggregates over the unfiltered collection.
func Count(notes []Note) Counts {
	c := Counts{Total: len(notes)}
	for _, n := range notes {
		if n.Completed {
			c.Completed++
		}
	}
	c.Pending = c.Total - c.Completed
	return c
}

func EmptyMessage(mode FilterMode) string {
	if msg, ok := emptyMessages[mode]; ok {
		return msg
	}
	return emptyMessages[FilterAll]
}

type ListView struct {
	Filter FilterMode `json:"filter"`
	Notes  []CardView `json:"notes"`
	Counts Counts     `json:"counts"`
	// Empty is set only when no note passes the filter.
	Empty string `json:"empty,omitempty"`
}

func BuildListView(notes []Note, mode FilterMode, now time.Time) ListView {
	filtered := Filter(notes, mode)

	view := ListView{
		Filter: mode,
		Notes:  make([]CardView, 0, len(filtered)),
		Counts: Count(notes),
	}
	for _, n := range filtered {
		view.Notes = append(view.Notes, NewCardView(n, now))
	}
	if len(view.Notes) == 0 {
		view.Empty = EmptyMessage(mode)
	}

	return view
}
