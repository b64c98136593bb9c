package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/stamp-build/stamp/pkg/build"
	"github.com/stamp-build/stamp/pkg/log"
)

// BuildRunner is the slice of the build runner the server needs.
type BuildRunner interface {
	Run(ctx context.Context) (*build.Result, error)
}

type Server struct {
	router *mux.Router
	store  BuildStore
	runner BuildRunner

	// artifactDir is the resolved output directory served under
	// /artifacts/.
	artifactDir string
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func NewServer(store BuildStore, runner BuildRunner, artifactDir string) (*Server, error) {
	if store == nil {
		return nil, errors.New("store is required")
	}
	if runner == nil {
		return nil, errors.New("runner is required")
	}
	if artifactDir == "" {
		return nil, errors.New("artifact dir is required")
	}

	// Ping store to ensure connection
	if err := store.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("error while pinging build store: %w", err)
	}

	s := &Server{
		store:       store,
		runner:      runner,
		artifactDir: artifactDir,
	}
	s.routes()

	return s, nil
}

func (s *Server) respond(w http.ResponseWriter, payload interface{}, code int) {
	w.WriteHeader(code)
	if payload == nil {
		return
	}
	switch p := payload.(type) {
	case string:
		w.Write([]byte(p))
	case []byte:
		w.Write(p)
	default:
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			log.Error(context.Background(), "error encoding response", err)
		}
	}
}
