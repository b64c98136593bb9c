package server_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stamp-build/stamp/internal/server"
	"github.com/stamp-build/stamp/pkg/build"
)

type mockStore struct {
	builds []server.Build
}

func (m *mockStore) Save(_ context.Context, b *server.Build) error {
	b.ID = uint64(len(m.builds) + 1)
	m.builds = append(m.builds, *b)
	return nil
}

func (m *mockStore) List(_ context.Context, limit int) ([]server.Build, error) {
	if limit < 1 || limit > len(m.builds) {
		limit = len(m.builds)
	}
	out := make([]server.Build, limit)
	copy(out, m.builds)
	return out, nil
}

func (m *mockStore) Ping(_ context.Context) error { return nil }

type mockRunner struct {
	result *build.Result
	err    error
}

func (m *mockRunner) Run(_ context.Context) (*build.Result, error) {
	return m.result, m.err
}

func newTestServer(t *testing.T, store server.BuildStore, runner server.BuildRunner) *server.Server {
	t.Helper()
	s, err := server.NewServer(store, runner, t.TempDir())
	if err != nil {
		t.Fatalf("error creating server: %v", err)
	}
	return s
}

func TestPing(t *testing.T) {
	s := newTestServer(t, &mockStore{}, &mockRunner{})

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest("GET", "/ping", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if rec.Body.String() != "PONG" {
		t.Fatalf("unexpected body: %q", rec.Body.String())
	}
}

func TestTriggerBuild(t *testing.T) {
	store := &mockStore{}
	runner := &mockRunner{result: &build.Result{OutDir: "/out", FileCount: 3}}
	s := newTestServer(t, store, runner)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest("POST", "/builds", nil))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rec.Code)
	}

	var b server.Build
	if err := json.NewDecoder(rec.Body).Decode(&b); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if b.Status != server.StatusSucceeded {
		t.Fatalf("expected status %q, got %q", server.StatusSucceeded, b.Status)
	}
	if b.FileCount != 3 {
		t.Fatalf("expected file count 3, got %d", b.FileCount)
	}
	if len(store.builds) != 1 {
		t.Fatalf("expected 1 stored record, got %d", len(store.builds))
	}
}

func TestTriggerBuild_CompilerFailure(t *testing.T) {
	store := &mockStore{}
	runner := &mockRunner{err: &build.ExitError{Code: 2}}
	s := newTestServer(t, store, runner)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest("POST", "/builds", nil))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", rec.Code)
	}

	var b server.Build
	if err := json.NewDecoder(rec.Body).Decode(&b); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if b.Status != server.StatusFailed {
		t.Fatalf("expected status %q, got %q", server.StatusFailed, b.Status)
	}
	if b.ExitCode != 2 {
		t.Fatalf("expected exit code 2, got %d", b.ExitCode)
	}
	if len(store.builds) != 1 {
		t.Fatalf("expected the failed build to be recorded, got %d records", len(store.builds))
	}
}

func TestListBuilds(t *testing.T) {
	store := &mockStore{builds: []server.Build{
		{ID: 1, Status: server.StatusSucceeded},
		{ID: 2, Status: server.StatusFailed},
	}}
	s := newTestServer(t, store, &mockRunner{err: errors.New("unused")})

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest("GET", "/builds", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var builds []server.Build
	if err := json.NewDecoder(rec.Body).Decode(&builds); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if len(builds) != 2 {
		t.Fatalf("expected 2 builds, got %d", len(builds))
	}
}
