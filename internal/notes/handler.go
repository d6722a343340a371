package notes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/2beens/stickynotes/internal/middleware"
	"github.com/2beens/stickynotes/internal/telemetry/metrics"
	"github.com/2beens/stickynotes/internal/telemetry/tracing"
	"github.com/2beens/stickynotes/pkg"

	"github.com/coocood/freecache"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=notes_test

type notesStore interface {
	List() []Note
	Get(id string) (Note, bool)
	Revision() uint64
	Delete(ctx context.Context, id string) error
	ToggleCompleted(ctx context.Context, id string) error
	DeleteCompleted(ctx context.Context) (int, error)
}

type noteSaver interface {
	Save(ctx context.Context, draft Draft) (*Note, error)
}

// list views are recomputed at least once a minute so expired flags stay fresh
const listCacheTTLSeconds = 60

type DeleteResponse struct {
	DeletedID string `json:"deletedId"`
}

type DeleteCompletedResponse struct {
	Deleted int `json:"deleted"`
}

type DeleteIntentResponse struct {
	ID        string `json:"id"`
	Confirmed bool   `json:"confirmed"`
	Deleted   bool   `json:"deleted"`
}

type Handler struct {
	store       notesStore
	editor      noteSaver
	metrics     *metrics.Manager
	listCache   *freecache.Cache
	deleteGuard *DeleteGuard
	now         func() time.Time
}

func NewHandler(
	store notesStore,
	editor noteSaver,
	metricsManager *metrics.Manager,
	cacheSizeMB int,
	deleteConfirmWindow time.Duration,
) *Handler {
	if cacheSizeMB <= 0 {
		cacheSizeMB = 1
	}
	return &Handler{
		store:       store,
		editor:      editor,
		metrics:     metricsManager,
		listCache:   freecache.NewCache(cacheSizeMB * 1024 * 1024),
		deleteGuard: NewDeleteGuard(deleteConfirmWindow),
		now:         time.Now,
	}
}

// SetupRoutes registers the notes routes. When rateLimiter is not nil, note
// creation is limited to allowedPerMin requests per client IP.
func (handler *Handler) SetupRoutes(
	router *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	allowedPerMin int,
) {
	var addHandler http.Handler = http.HandlerFunc(handler.HandleAdd)
	if rateLimiter != nil && allowedPerMin > 0 {
		addHandler = middleware.RateLimit(rateLimiter, "new-note", allowedPerMin, handler.metrics)(addHandler)
	}

	router.HandleFunc("/notes", handler.HandleList).Methods("GET", "OPTIONS").Name("list-notes")
	router.Handle("/notes", addHandler).Methods("POST").Name("new-note")
	router.HandleFunc("/notes/completed", handler.HandleDeleteCompleted).Methods("DELETE", "OPTIONS").Name("delete-completed-notes")
	router.HandleFunc("/notes/{id}", handler.HandleGet).Methods("GET").Name("get-note")
	router.HandleFunc("/notes/{id}", handler.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-note")
	router.HandleFunc("/notes/{id}", handler.HandleDelete).Methods("DELETE").Name("remove-note")
	router.HandleFunc("/notes/{id}/toggle", handler.HandleToggle).Methods("POST", "OPTIONS").Name("toggle-note")
	router.HandleFunc("/notes/{id}/delete-intent", handler.HandleDeleteIntent).Methods("POST", "OPTIONS").Name("delete-intent-note")
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "GET, POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	_, span := tracing.GlobalTracer.Start(r.Context(), "notesHandler.list")
	defer span.End()

	mode, err := ParseFilterMode(r.URL.Query().Get("filter"))
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		pkg.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	span.SetAttributes(attribute.String("filter", string(mode)))

	now := handler.now()
	cacheKey := []byte(fmt.Sprintf("%s:%d:%d", mode, handler.store.Revision(), now.Unix()/listCacheTTLSeconds))

	var view ListView
	if index, ok := handler.cachedListIndex(cacheKey); ok {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		if handler.metrics != nil {
			handler.metrics.CounterListCacheHits.Inc()
		}
		view = handler.listViewFromIndex(mode, index, now)
	} else {
		view = BuildListView(handler.store.List(), mode, now)
		handler.cacheListIndex(cacheKey, view)
	}

	viewJson, err := json.Marshal(view)
	if err != nil {
		log.Errorf("marshal notes list view: %s", err)
		span.SetStatus(codes.Error, err.Error())
		pkg.WriteJSONError(w, "failed to get notes", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, viewJson, http.StatusOK)
}

// listIndex is what the list cache keeps: the ids passing the filter and the
// counts, never the cards themselves (images alone can exceed a cache entry).
type listIndex struct {
	IDs    []string `json:"ids"`
	Counts Counts   `json:"counts"`
}

func (handler *Handler) cachedListIndex(key []byte) (listIndex, bool) {
	cached, err := handler.listCache.Get(key)
	if err != nil {
		return listIndex{}, false
	}

	var index listIndex
	if err := json.Unmarshal(cached, &index); err != nil {
		log.Errorf("unmarshal cached notes list index [%s]: %s", key, err)
		return listIndex{}, false
	}
	return index, true
}

func (handler *Handler) cacheListIndex(key []byte, view ListView) {
	index := listIndex{
		IDs:    make([]string, 0, len(view.Notes)),
		Counts: view.Counts,
	}
	for _, card := range view.Notes {
		index.IDs = append(index.IDs, card.ID)
	}

	indexJson, err := json.Marshal(index)
	if err != nil {
		log.Errorf("marshal notes list index: %s", err)
		return
	}

	if err := handler.listCache.Set(key, indexJson, listCacheTTLSeconds); err != nil {
		if errors.Is(err, freecache.ErrLargeEntry) {
			log.Tracef("notes list index [%s] too large to cache (%d bytes)", key, len(indexJson))
			return
		}
		log.Warnf("cache notes list index [%s]: %s", key, err)
	}
}

// listViewFromIndex rebuilds the view of a cached index. The index belongs to
// the current revision, so every id is still in the store.
func (handler *Handler) listViewFromIndex(mode FilterMode, index listIndex, now time.Time) ListView {
	view := ListView{
		Filter: mode,
		Notes:  make([]CardView, 0, len(index.IDs)),
		Counts: index.Counts,
	}
	for _, id := range index.IDs {
		if note, ok := handler.store.Get(id); ok {
			view.Notes = append(view.Notes, NewCardView(note, now))
		}
	}
	if len(view.Notes) == 0 {
		view.Empty = EmptyMessage(mode)
	}
	return view
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "notesHandler.get")
	defer span.End()

	id := mux.Vars(r)["id"]
	span.SetAttributes(attribute.String("id", id))

	note, ok := handler.store.Get(id)
	if !ok {
		span.SetStatus(codes.Error, "not found")
		pkg.WriteJSONError(w, ErrNoteNotFound.Error(), http.StatusNotFound)
		return
	}

	pkg.WriteJSON(w, NewCardView(note, handler.now()), http.StatusOK)
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "notesHandler.add")
	defer span.End()

	var draft Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		log.Tracef("new note, unmarshal json draft: %s", err)
		span.SetStatus(codes.Error, err.Error())
		pkg.WriteJSONError(w, "invalid note json", http.StatusBadRequest)
		return
	}
	// a new note never carries an id, the editor assigns one
	draft.ID = ""

	saved, err := handler.editor.Save(ctx, draft)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		handler.writeSaveError(w, "add", err)
		return
	}

	span.SetAttributes(attribute.String("id", saved.ID))
	log.Debugf("new note added: %s", saved.ID)
	pkg.WriteJSON(w, NewCardView(*saved, handler.now()), http.StatusCreated)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "GET, PUT, DELETE, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	ctx, span := tracing.GlobalTracer.Start(r.Context(), "notesHandler.update")
	defer span.End()

	id := mux.Vars(r)["id"]
	span.SetAttributes(attribute.String("id", id))

	var draft Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		log.Tracef("update note %s, unmarshal json draft: %s", id, err)
		span.SetStatus(codes.Error, err.Error())
		pkg.WriteJSONError(w, "invalid note json", http.StatusBadRequest)
		return
	}
	draft.ID = id

	saved, err := handler.editor.Save(ctx, draft)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		handler.writeSaveError(w, "update", err)
		return
	}

	log.Debugf("note updated: %s", saved.ID)
	pkg.WriteJSON(w, NewCardView(*saved, handler.now()), http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "notesHandler.delete")
	defer span.End()

	id := mux.Vars(r)["id"]
	span.SetAttributes(attribute.String("id", id))

	if err := handler.store.Delete(ctx, id); err != nil {
		log.Errorf("delete note %s: %s", id, err)
		span.SetStatus(codes.Error, err.Error())
		pkg.WriteJSONError(w, "note deleted, but failed to persist", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, DeleteResponse{DeletedID: id}, http.StatusOK)
}

func (handler *Handler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	ctx, span := tracing.GlobalTracer.Start(r.Context(), "notesHandler.toggle")
	defer span.End()

	id := mux.Vars(r)["id"]
	span.SetAttributes(attribute.String("id", id))

	if err := handler.store.ToggleCompleted(ctx, id); err != nil {
		log.Errorf("toggle note %s: %s", id, err)
		span.SetStatus(codes.Error, err.Error())
		pkg.WriteJSONError(w, "note toggled, but failed to persist", http.StatusInternalServerError)
		return
	}

	note, ok := handler.store.Get(id)
	if !ok {
		pkg.WriteJSONError(w, ErrNoteNotFound.Error(), http.StatusNotFound)
		return
	}

	pkg.WriteJSON(w, NewCardView(note, handler.now()), http.StatusOK)
}

func (handler *Handler) HandleDeleteCompleted(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "DELETE, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	ctx, span := tracing.GlobalTracer.Start(r.Context(), "notesHandler.deleteCompleted")
	defer span.End()

	deleted, err := handler.store.DeleteCompleted(ctx)
	if err != nil {
		log.Errorf("delete completed notes: %s", err)
		span.SetStatus(codes.Error, err.Error())
		pkg.WriteJSONError(w, "completed notes deleted, but failed to persist", http.StatusInternalServerError)
		return
	}

	span.SetAttributes(attribute.Int("deleted", deleted))
	pkg.WriteJSON(w, DeleteCompletedResponse{Deleted: deleted}, http.StatusOK)
}

// HandleDeleteIntent deletes the note only on the second consecutive intent
// for the same id.
func (handler *Handler) HandleDeleteIntent(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	ctx, span := tracing.GlobalTracer.Start(r.Context(), "notesHandler.deleteIntent")
	defer span.End()

	id := mux.Vars(r)["id"]
	span.SetAttributes(attribute.String("id", id))

	client, err := pkg.ReadUserIP(r)
	if err != nil {
		client = r.RemoteAddr
	}

	if _, ok := handler.store.Get(id); !ok {
		handler.deleteGuard.DisarmFor(client)
		pkg.WriteJSONError(w, ErrNoteNotFound.Error(), http.StatusNotFound)
		return
	}

	resp := DeleteIntentResponse{ID: id}
	if !handler.deleteGuard.ActivateFor(client, id) {
		pkg.WriteJSON(w, resp, http.StatusAccepted)
		return
	}

	resp.Confirmed = true
	if err := handler.store.Delete(ctx, id); err != nil {
		log.Errorf("delete intent, delete note %s: %s", id, err)
		span.SetStatus(codes.Error, err.Error())
		pkg.WriteJSONError(w, "note deleted, but failed to persist", http.StatusInternalServerError)
		return
	}
	resp.Deleted = true

	pkg.WriteJSON(w, resp, http.StatusOK)
}

func (handler *Handler) writeSaveError(w http.ResponseWriter, op string, err error) {
	var validationErr *ValidationError
	switch {
	case errors.As(err, &validationErr):
		pkg.WriteJSONError(w, validationErr.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrDuplicateID), errors.Is(err, ErrEmptyID):
		pkg.WriteJSONError(w, err.Error(), http.StatusBadRequest)
	default:
		log.Errorf("%s note: %s", op, err)
		pkg.WriteJSONError(w, "failed to save note", http.StatusInternalServerError)
	}
}
