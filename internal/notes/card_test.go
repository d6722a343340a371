package notes

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewCardView(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	due := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	card := NewCardView(Note{
		ID:        "1",
		CreatedAt: time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC),
		DueDate:   &due,
	}, now)
	assert.False(t, card.Expired)
	assert.Equal(t, 0, card.OverdueDays)
	assert.Equal(t, "2024-05-01", card.CreatedLabel)
	assert.Equal(t, "2024-06-01", card.DueLabel)

	card = NewCardView(Note{ID: "2"}, now)
	assert.Empty(t, card.CreatedLabel)
	assert.Empty(t, card.DueLabel)
}

func TestDeleteGuard(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	guard := NewDeleteGuard(10 * time.Second)
	guard.now = func() time.Time { return now }

	assert.False(t, guard.Activate("a"))
	assert.True(t, guard.Activate("a"))
	// confirmed delete disarms
	assert.False(t, guard.Activate("a"))

	// switching note re-arms for the new one
	assert.False(t, guard.Activate("b"))
	assert.False(t, guard.Activate("a"))
	assert.True(t, guard.Activate("a"))

	// timeout
	assert.False(t, guard.Activate("c"))
	now = now.Add(11 * time.Second)
	assert.False(t, guard.Activate("c"))
	assert.True(t, guard.Activate("c"))

	assert.False(t, guard.Activate("d"))
	guard.Disarm()
	assert.False(t, guard.Activate("d"))
}

func TestDeleteGuard_NoWindow(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	guard := NewDeleteGuard(0)
	guard.now = func() time.Time { return now }

	assert.False(t, guard.Activate("a"))
	now = now.Add(24 * time.Hour)
	assert.True(t, guard.Activate("a"))
}

func TestDeleteGuard_PerClient(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	guard := NewDeleteGuard(10 * time.Second)
	guard.now = func() time.Time { return now }

	// one intent each from two clients never confirms
	assert.False(t, guard.ActivateFor("10.0.0.1", "a"))
	assert.False(t, guard.ActivateFor("10.0.0.2", "a"))

	// another client's intent does not cancel a pending confirmation
	assert.False(t, guard.ActivateFor("10.0.0.3", "b"))
	assert.True(t, guard.ActivateFor("10.0.0.1", "a"))

	guard.DisarmFor("10.0.0.2")
	assert.False(t, guard.ActivateFor("10.0.0.2", "a"))
	assert.True(t, guard.ActivateFor("10.0.0.3", "b"))

	// expired intents are dropped
	now = now.Add(11 * time.Second)
	assert.False(t, guard.ActivateFor("10.0.0.2", "a"))
	guard.mu.Lock()
	assert.Len(t, guard.armed, 1)
	guard.mu.Unlock()
}
