package server

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (s *Server) routes() {
	// Create and set up http router
	s.router = mux.NewRouter()
	s.router.HandleFunc("/ping", s.handlePing()).Methods("GET")
	s.router.HandleFunc("/builds", s.handleListBuilds()).Methods("GET")
	s.router.HandleFunc("/builds", s.handleTriggerBuild()).Methods("POST")
	s.router.PathPrefix("/artifacts/").Handler(
		http.StripPrefix("/artifacts/", http.FileServer(http.Dir(s.artifactDir))),
	).Methods("GET")
}
