package notes

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter(t *testing.T) {
	all := []Note{
		{ID: "1", Completed: true},
		{ID: "2"},
		{ID: "3", Completed: true},
		{ID: "4"},
		{ID: "5"},
	}

	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, ids(Filter(all, FilterAll)))
	assert.Equal(t, []string{"1", "3"}, ids(Filter(all, FilterCompleted)))
	assert.Equal(t, []string{"2", "4", "5"}, ids(Filter(all, FilterPending)))

	assert.Equal(t, Counts{Total: 5, Completed: 2, Pending: 3}, Count(all))
	assert.Empty(t, Filter(nil, FilterPending))
}

func TestParseFilterMode(t *testing.T) {
	m, err := ParseFilterMode("")
	require.NoError(t, err)
	assert.Equal(t, FilterAll, m)

	m, err = ParseFilterMode("Pending")
	require.NoError(t, err)
	assert.Equal(t, FilterPending, m)

	_, err = ParseFilterMode("archived")
	require.Error(t, err)
}

func TestEmptyMessage(t *testing.T) {
	assert.Equal(t, "You have no notes yet!", EmptyMessage(FilterAll))
	assert.Equal(t, "You have no completed notes!", EmptyMessage(FilterCompleted))
	assert.Equal(t, "You have no pending notes!", EmptyMessage(FilterPending))
	assert.Equal(t, "You have no notes yet!", EmptyMessage("bogus"))
}

func TestBuildListView(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	overdue := now.Add(-72 * time.Hour)
	all := []Note{
		{ID: "1", Content: "done", Completed: true},
		{ID: "2", Content: "late", DueDate: &overdue},
	}

	view := BuildListView(all, FilterPending, now)
	assert.Equal(t, FilterPending, view.Filter)
	require.Len(t, view.Notes, 1)
	assert.True(t, view.Notes[0].Expired)
	assert.Equal(t, 3, view.Notes[0].OverdueDays)
	assert.Equal(t, Counts{Total: 2, Completed: 1, Pending: 1}, view.Counts)
	assert.Empty(t, view.Empty)

	view = BuildListView(all[1:], FilterCompleted, now)
	assert.Empty(t, view.Notes)
	assert.Equal(t, "You have no completed notes!", view.Empty)
}
