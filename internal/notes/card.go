package notes

import (
	"sync"
	"time"
)

const cardDateLayout = "2006-01-02"

// CardView is the presentation of a single note.
type CardView struct {
	Note
	Expired      bool   `json:"expired"`
	OverdueDays  int    `json:"overdueDays,omitempty"`
	CreatedLabel string `json:"createdLabel"`
	DueLabel     string `json:"dueLabel,omitempty"`
}

func NewCardView(note Note, now time.Time) CardView {
	card := CardView{
		Note:    note,
		Expired: note.IsExpired(now),
	}
	if !note.CreatedAt.IsZero() {
		card.CreatedLabel = note.CreatedAt.Format(cardDateLayout)
	}
	if note.DueDate != nil {
		card.DueLabel = note.DueDate.Format(cardDateLayout)
		if card.Expired {
			card.OverdueDays = int(now.Sub(*note.DueDate).Hours() / 24)
		}
	}
	return card
}

// DeleteGuard implements the card's two step delete: the first activation
// for a note arms the guard, and only a second consecutive activation for the
// same note (within the window) confirms it. Activating a different note
// re-arms the guard for that note. Each client has its own armed note, so
// intents from different clients never confirm each other.
type DeleteGuard struct {
	mu     sync.Mutex
	window time.Duration
	armed  map[string]armedDelete
	now    func() time.Time
}

type armedDelete struct {
	id string
	at time.Time
}

func NewDeleteGuard(window time.Duration) *DeleteGuard {
	return &DeleteGuard{
		window: window,
		armed:  make(map[string]armedDelete),
		now:    time.Now,
	}
}

// Activate is ActivateFor with a single anonymous client.
func (g *DeleteGuard) Activate(id string) bool {
	return g.ActivateFor("", id)
}

// ActivateFor returns true when the delete of the note id is confirmed by
// the given client.
func (g *DeleteGuard) ActivateFor(client, id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	g.dropExpired(now)

	if prev, ok := g.armed[client]; ok && prev.id == id {
		delete(g.armed, client)
		return true
	}

	g.armed[client] = armedDelete{id: id, at: now}
	return false
}

// Disarm drops the pending confirmation of the anonymous client.
func (g *DeleteGuard) Disarm() {
	g.DisarmFor("")
}

// DisarmFor drops the pending confirmation of the client.
func (g *DeleteGuard) DisarmFor(client string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.armed, client)
}

func (g *DeleteGuard) dropExpired(now time.Time) {
	if g.window <= 0 {
		return
	}
	for client, a := range g.armed {
		if now.Sub(a.at) > g.window {
			delete(g.armed, client)
		}
	}
}
