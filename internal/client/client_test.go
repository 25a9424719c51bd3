package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *SessionStore) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store, err := NewSessionStore(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)
	return New(srv.URL, store), store
}

func TestClient_LoginStoresSession(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "jane@example.com", payload["email"])
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"token": "tok-xyz",
			"user":  map[string]any{"id": 7, "email": "jane@example.com"},
		})
	})
	c, store := newTestClient(t, mux)

	session, err := c.Login(context.Background(), "jane@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "tok-xyz", session.Token)
	assert.Equal(t, uint(7), session.User.ID)

	// The session survives a fresh store pointed at the same file.
	assert.Equal(t, "tok-xyz", store.Token())
}

func TestClient_SendsBearerToken(t *testing.T) {
	t.Parallel()

	var gotAuth string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/pets", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pets":[{"id":1,"name":"Rex","species":"dog"}]}`))
	})
	c, store := newTestClient(t, mux)
	require.NoError(t, store.Save(&Session{Token: "tok-abc"}))

	pets, err := c.ListPets(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-abc", gotAuth)
	require.Len(t, pets, 1)
	assert.Equal(t, "Rex", pets[0].Name)
}

func TestClient_ErrorEnvelopeBecomesAPIError(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/pets/42", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"Pet with ID 42 not found","code":"NOT_FOUND"}`))
	})
	c, _ := newTestClient(t, mux)

	_, err := c.GetPet(context.Background(), 42)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "NOT_FOUND", apiErr.Code)
	assert.Equal(t, "Pet with ID 42 not found", apiErr.Message)
}

func TestClient_NonJSONErrorFallsBackToStatusText(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/pets", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	})
	c, _ := newTestClient(t, mux)

	_, err := c.ListPets(context.Background())
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, http.StatusText(http.StatusBadGateway), apiErr.Message)
}

func TestClient_ListOptionsBuildQuery(t *testing.T) {
	t.Parallel()

	var gotQuery string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/pets/1/diet-logs", func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"diet_logs":[]}`))
	})
	c, _ := newTestClient(t, mux)

	_, err := c.ListDietLogs(context.Background(), 1, ListOptions{
		StartDate: "2026-08-01",
		MealType:  "dinner",
		Limit:     5,
	})
	require.NoError(t, err)
	assert.Contains(t, gotQuery, "start_date=2026-08-01")
	assert.Contains(t, gotQuery, "meal_type=dinner")
	assert.Contains(t, gotQuery, "limit=5")
	assert.NotContains(t, gotQuery, "end_date")
}

func TestClient_LogoutClearsLocalSessionOnServerFailure(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"boom","code":"INTERNAL_ERROR"}`))
	})
	c, store := newTestClient(t, mux)
	require.NoError(t, store.Save(&Session{Token: "tok"}))

	err := c.Logout(context.Background())
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Empty(t, store.Token())
}

func TestClient_MarkReminderSentUsesPatch(t *testing.T) {
	t.Parallel()

	var gotMethod string
	mux := http.NewServeMux()
	mux.HandleFunc("/api/reminders/9/mark-sent", func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"reminder":{"id":9,"is_sent":true}}`))
	})
	c, _ := newTestClient(t, mux)

	reminder, err := c.MarkReminderSent(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.True(t, reminder.Sent)
}
