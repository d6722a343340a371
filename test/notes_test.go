//go:build integration_test || all_tests

package test

import (
	"context"
	"net/http"

	"github.com/2beens/stickynotes/internal/misc"
	"github.com/2beens/stickynotes/internal/notes"
	"github.com/2beens/stickynotes/internal/notes/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestNotesFlow() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := s.T()
	clientIP := map[string]string{"X-Real-Ip": "10.0.0.1"}

	resp, err := doRequest(ctx, s.httpClient, "GET", "/notes", "", nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.status)
	var listView notes.ListView
	require.NoError(t, resp.decode(&listView))
	assert.Empty(t, listView.Notes)
	assert.Equal(t, "You have no notes yet!", listView.Empty)

	resp, err = doRequest(ctx, s.httpClient, "POST", "/notes", `{"content":"Buy milk","priority":"baja","style":"folded"}`, clientIP)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.status, string(resp.body))
	assert.Equal(t, testOrigin, resp.header.Get("Access-Control-Allow-Origin"))
	var milk notes.CardView
	require.NoError(t, resp.decode(&milk))
	require.NotEmpty(t, milk.ID)
	assert.Equal(t, notes.PriorityLow, milk.Priority)
	assert.Equal(t, notes.StyleFolded, milk.Style)
	assert.Equal(t, notes.DefaultColor, milk.Color)

	resp, err = doRequest(ctx, s.httpClient, "POST", "/notes", `{"content":"Call Sam","dueDate":"2001-01-01T00:00:00Z"}`, clientIP)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.status, string(resp.body))
	var sam notes.CardView
	require.NoError(t, resp.decode(&sam))
	assert.True(t, sam.Expired)

	resp, err = doRequest(ctx, s.httpClient, "POST", "/notes/"+milk.ID+"/toggle", "", nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.status, string(resp.body))

	resp, err = doRequest(ctx, s.httpClient, "GET", "/notes?filter=pending", "", nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.status)
	require.NoError(t, resp.decode(&listView))
	require.Len(t, listView.Notes, 1)
	assert.Equal(t, sam.ID, listView.Notes[0].ID)
	assert.Equal(t, notes.Counts{Total: 2, Completed: 1, Pending: 1}, listView.Counts)

	// the collection is persisted as one entry under the configured key
	persisted := s.loadPersisted(ctx)
	require.Len(t, persisted, 2)
	assert.Equal(t, milk.ID, persisted[0].ID)
	assert.True(t, persisted[0].Completed)

	resp, err = doRequest(ctx, s.httpClient, "PUT", "/notes/"+sam.ID, `{"content":"Call Sam back","priority":"alta"}`, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.status, string(resp.body))
	var updated notes.CardView
	require.NoError(t, resp.decode(&updated))
	assert.Equal(t, sam.ID, updated.ID)
	assert.Equal(t, "Call Sam back", updated.Content)
	assert.Equal(t, notes.PriorityHigh, updated.Priority)
	assert.True(t, sam.CreatedAt.Equal(updated.CreatedAt))

	resp, err = doRequest(ctx, s.httpClient, "DELETE", "/notes/completed", "", nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.status)
	var deletedCompleted notes.DeleteCompletedResponse
	require.NoError(t, resp.decode(&deletedCompleted))
	assert.Equal(t, 1, deletedCompleted.Deleted)

	resp, err = doRequest(ctx, s.httpClient, "POST", "/notes/"+sam.ID+"/delete-intent", "", nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusAccepted, resp.status)

	resp, err = doRequest(ctx, s.httpClient, "POST", "/notes/"+sam.ID+"/delete-intent", "", nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.status, string(resp.body))
	var intent notes.DeleteIntentResponse
	require.NoError(t, resp.decode(&intent))
	assert.True(t, intent.Confirmed)
	assert.True(t, intent.Deleted)

	resp, err = doRequest(ctx, s.httpClient, "GET", "/notes/"+sam.ID, "", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.status)

	assert.Empty(t, s.loadPersisted(ctx))
}

func (s *IntegrationTestSuite) TestNotesCreateRateLimited() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := s.T()
	clientIP := map[string]string{"X-Real-Ip": "10.0.0.2"}

	var ids []string
	for i := 0; i < testCreatePerMin; i++ {
		resp, err := doRequest(ctx, s.httpClient, "POST", "/notes", `{"content":"rate limited"}`, clientIP)
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.status, string(resp.body))
		var card notes.CardView
		require.NoError(t, resp.decode(&card))
		ids = append(ids, card.ID)
	}

	resp, err := doRequest(ctx, s.httpClient, "POST", "/notes", `{"content":"one too many"}`, clientIP)
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.status)
	assert.NotEmpty(t, resp.header.Get("Retry-After"))

	// other operations are not limited
	for _, id := range ids {
		resp, err := doRequest(ctx, s.httpClient, "DELETE", "/notes/"+id, "", nil)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.status, string(resp.body))
	}
}

func (s *IntegrationTestSuite) TestCorsAndStatus() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := s.T()

	resp, err := doRequest(ctx, s.httpClient, "GET", "/notes", "", map[string]string{"Origin": "http://evil.example"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.status)

	resp, err = doRequest(ctx, s.httpClient, "GET", "/status", "", nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.status)
	var status misc.StatusResponse
	require.NoError(t, resp.decode(&status))
	assert.Equal(t, "test-version-info", status.Version)
	assert.Equal(t, string(storage.BackendPostgres), status.StorageBackend)
}

func (s *IntegrationTestSuite) loadPersisted(ctx context.Context) []notes.Note {
	persisted, err := storage.NewPsql(s.dbPool, testStorageKey).Load(ctx)
	require.NoError(s.T(), err)
	return persisted
}
