package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// boardStub fakes the two endpoints the apply workflow touches. Each issued
// token is "token-N"; validUntil controls which generations still pass.
type boardStub struct {
	srv        *httptest.Server
	authCalls  atomic.Int64
	applyCalls atomic.Int64
	validFrom  atomic.Int64 // tokens older than this generation get a 401
	applied    func(w http.ResponseWriter)
}

func newBoardStub(t *testing.T) *boardStub {
	t.Helper()
	s := &boardStub{}
	s.validFrom.Store(1)
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/jobs/auth", func(w http.ResponseWriter, r *http.Request) {
		n := s.authCalls.Add(1)
		var body struct {
			UserID string `json:"userId"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.NotEmpty(t, body.UserID)
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "token": tokenName(n)})
	})
	mux.HandleFunc("POST /api/jobs/apply/", func(w http.ResponseWriter, r *http.Request) {
		s.applyCalls.Add(1)
		if !s.tokenValid(r) {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "unauthorized", "message": "Invalid token"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"message": "Job applied successfully"})
	})
	mux.HandleFunc("GET /api/jobs/applied", func(w http.ResponseWriter, r *http.Request) {
		if !s.tokenValid(r) {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "unauthorized", "message": "Invalid token"})
			return
		}
		if s.applied != nil {
			s.applied(w)
			return
		}
		writeJSON(w, http.StatusOK, []any{})
	})
	s.srv = httptest.NewServer(mux)
	t.Cleanup(s.srv.Close)
	return s
}

func (s *boardStub) tokenValid(r *http.Request) bool {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	for n := s.validFrom.Load(); n <= s.authCalls.Load(); n++ {
		if token == tokenName(n) {
			return true
		}
	}
	return false
}

// expireAll invalidates every token issued so far; the next exchange issues a
// valid one again.
func (s *boardStub) expireAll() {
	s.validFrom.Store(s.authCalls.Load() + 1)
}

func tokenName(n int64) string {
	return "token-" + string(rune('0'+n))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func testIdentity() Identity {
	return Identity{UserID: "user_1", Name: "Uma", Email: "uma@example.com"}
}

func TestApplyExchangesIdentityOnce(t *testing.T) {
	stub := newBoardStub(t)
	c := New(stub.srv.URL, WithIdentity(testIdentity()))

	result, err := c.Apply(context.Background(), "job-1", strings.NewReader("%PDF"), "r.pdf")
	require.NoError(t, err)
	assert.False(t, result.AlreadyApplied)
	assert.Equal(t, "Job applied successfully", result.Message)
	assert.Equal(t, int64(1), stub.authCalls.Load())
	assert.Equal(t, int64(1), stub.applyCalls.Load())

	// second call reuses the cached token
	_, err = c.Apply(context.Background(), "job-2", strings.NewReader("%PDF"), "r.pdf")
	require.NoError(t, err)
	assert.Equal(t, int64(1), stub.authCalls.Load())
}

func TestApplyRefreshesExpiredTokenOnce(t *testing.T) {
	stub := newBoardStub(t)
	c := New(stub.srv.URL, WithIdentity(testIdentity()))

	_, err := c.Apply(context.Background(), "job-1", strings.NewReader("%PDF"), "r.pdf")
	require.NoError(t, err)

	stub.expireAll()

	result, err := c.Apply(context.Background(), "job-2", strings.NewReader("%PDF"), "r.pdf")
	require.NoError(t, err)
	assert.Equal(t, "Job applied successfully", result.Message)
	assert.Equal(t, int64(2), stub.authCalls.Load(), "exactly one re-exchange")
	assert.Equal(t, int64(3), stub.applyCalls.Load(), "first call, 401, retry")
}

func TestApplyGivesUpAfterSecondRejection(t *testing.T) {
	stub := newBoardStub(t)
	c := New(stub.srv.URL, WithIdentity(testIdentity()))

	// every token the server hands out is dead on arrival
	stub.validFrom.Store(1 << 30)

	_, err := c.Apply(context.Background(), "job-1", strings.NewReader("%PDF"), "r.pdf")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, int64(2), stub.applyCalls.Load(), "one attempt plus one retry, never more")
	assert.Equal(t, int64(2), stub.authCalls.Load())
}

func TestApplyWithoutIdentity(t *testing.T) {
	stub := newBoardStub(t)
	c := New(stub.srv.URL)

	_, err := c.Apply(context.Background(), "job-1", strings.NewReader("%PDF"), "r.pdf")
	assert.ErrorIs(t, err, ErrLoginRequired)
	assert.Equal(t, int64(0), stub.authCalls.Load())
	assert.Equal(t, int64(0), stub.applyCalls.Load())
}

func TestApplyDuplicateResolvesAsAlreadyApplied(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/jobs/auth", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "token": "t"})
	})
	mux.HandleFunc("POST /api/jobs/apply/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "conflict", "message": "Already applied to this job"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(srv.URL, WithIdentity(testIdentity()))
	result, err := c.Apply(context.Background(), "job-1", nil, "")
	require.NoError(t, err)
	assert.True(t, result.AlreadyApplied)
	assert.Equal(t, "Already applied to this job", result.Message)
}

func TestApplySurfacesServerMessage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/jobs/auth", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "token": "t"})
	})
	mux.HandleFunc("POST /api/jobs/apply/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "not_found", "message": "Job not found"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(srv.URL, WithIdentity(testIdentity()))
	_, err := c.Apply(context.Background(), "gone", nil, "")
	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "not_found", apiErr.Code)
	assert.Equal(t, "Job not found", apiErr.Message)
}

// HasApplied is only advisory: a listing that has not caught up says false,
// and the subsequent Apply is what actually settles the duplicate.
func TestHasAppliedIsAdvisory(t *testing.T) {
	stub := newBoardStub(t)
	stub.applied = func(w http.ResponseWriter) {
		writeJSON(w, http.StatusOK, []any{})
	}
	c := New(stub.srv.URL, WithIdentity(testIdentity()))

	applied, err := c.HasApplied(context.Background(), "job-1")
	require.NoError(t, err)
	assert.False(t, applied)

	stub.applied = func(w http.ResponseWriter) {
		writeJSON(w, http.StatusOK, []map[string]any{{"_id": "job-1", "title": "Frontend Developer", "status": "Pending"}})
	}
	applied, err = c.HasApplied(context.Background(), "job-1")
	require.NoError(t, err)
	assert.True(t, applied)
}

func TestFileCachePersistsAcrossClients(t *testing.T) {
	stub := newBoardStub(t)
	path := filepath.Join(t.TempDir(), "token")

	first := New(stub.srv.URL, WithIdentity(testIdentity()), WithTokenCache(NewFileCache(path)))
	_, err := first.Apply(context.Background(), "job-1", strings.NewReader("%PDF"), "r.pdf")
	require.NoError(t, err)
	require.Equal(t, int64(1), stub.authCalls.Load())

	// a new client over the same cache file never re-exchanges
	second := New(stub.srv.URL, WithTokenCache(NewFileCache(path)))
	_, err = second.AppliedJobs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), stub.authCalls.Load())
}
