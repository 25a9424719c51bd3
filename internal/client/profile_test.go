package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// profileServer serves a minimal pet plus its three log collections, with an
// optional per-pet delay so tests can hold one load in flight.
type profileServer struct {
	mu     sync.Mutex
	delays map[uint]time.Duration
	failed map[string]bool // path suffix -> serve a 500
}

func (s *profileServer) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/pets/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		s.mu.Lock()
		var petID uint
		_, _ = fmt.Sscanf(id, "%d", &petID)
		delay := s.delays[petID]
		s.mu.Unlock()
		time.Sleep(delay)

		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprintf(w, `{"pet":{"id":%s,"name":"pet-%s","species":"dog"}}`, id, id)
	})
	serveLogs := func(key, field string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			s.mu.Lock()
			failed := s.failed[key]
			s.mu.Unlock()
			if failed {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = fmt.Fprintf(w, `{"error":"%s unavailable","code":"INTERNAL_ERROR"}`, key)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = fmt.Fprintf(w, `{"%s":[{"id":1,"pet_id":1}]}`, field)
		}
	}
	mux.HandleFunc("GET /api/pets/{id}/weight-logs", serveLogs("weight", "weight_logs"))
	mux.HandleFunc("GET /api/pets/{id}/diet-logs", serveLogs("diet", "diet_logs"))
	mux.HandleFunc("GET /api/pets/{id}/vaccine-logs", serveLogs("vaccine", "vaccine_logs"))
	return mux
}

func newProfileLoader(t *testing.T, s *profileServer) *ProfileLoader {
	t.Helper()
	srv := httptest.NewServer(s.handler())
	t.Cleanup(srv.Close)
	store, err := NewSessionStore(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)
	require.NoError(t, store.Save(&Session{Token: "tok"}))
	return NewProfileLoader(New(srv.URL, store))
}

func TestProfileLoader_LoadMergesSections(t *testing.T) {
	t.Parallel()

	loader := newProfileLoader(t, &profileServer{})
	profile, err := loader.Load(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "pet-1", profile.Pet.Name)
	assert.Len(t, profile.WeightLogs, 1)
	assert.Len(t, profile.DietLogs, 1)
	assert.Len(t, profile.VaccineLogs, 1)
	assert.NoError(t, profile.WeightErr)
}

func TestProfileLoader_SectionFailureDegrades(t *testing.T) {
	t.Parallel()

	loader := newProfileLoader(t, &profileServer{failed: map[string]bool{"diet": true}})
	profile, err := loader.Load(context.Background(), 1)
	require.NoError(t, err)

	var apiErr *APIError
	require.True(t, errors.As(profile.DietErr, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Empty(t, profile.DietLogs)

	// The other sections still loaded.
	assert.NoError(t, profile.WeightErr)
	assert.Len(t, profile.WeightLogs, 1)
}

func TestProfileLoader_SupersededLoadReturnsStale(t *testing.T) {
	t.Parallel()

	// Pet 1 responds slowly so the load for pet 2 starts and finishes while
	// pet 1 is still in flight.
	srv := &profileServer{delays: map[uint]time.Duration{1: 300 * time.Millisecond}}
	loader := newProfileLoader(t, srv)

	type result struct {
		profile *PetProfile
		err     error
	}
	slow := make(chan result, 1)
	go func() {
		p, err := loader.Load(context.Background(), 1)
		slow <- result{p, err}
	}()

	time.Sleep(50 * time.Millisecond)
	fresh, err := loader.Load(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "pet-2", fresh.Pet.Name)

	got := <-slow
	assert.Nil(t, got.profile)
	assert.ErrorIs(t, got.err, ErrStale)
}
