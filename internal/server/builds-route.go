package server

import (
	"net/http"
	"strconv"

	"github.com/stamp-build/stamp/pkg/log"
)

func (s *Server) handleListBuilds() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

		builds, err := s.store.List(ctx, limit)
		if err != nil {
			log.Error(ctx, "error listing build records", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		s.respond(w, builds, http.StatusOK)
	}
}
