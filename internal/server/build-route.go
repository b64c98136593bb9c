package server

import (
	"net/http"
	"time"

	"github.com/stamp-build/stamp/pkg/build"
	"github.com/stamp-build/stamp/pkg/log"
)

// handleTriggerBuild runs one build synchronously and records the
// outcome, success or failure.
func (s *Server) handleTriggerBuild() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		record := Build{
			StartedAt: time.Now(),
		}

		result, err := s.runner.Run(ctx)
		if err != nil {
			record.Status = StatusFailed
			record.ExitCode = build.ExitCode(err)
			record.Error = err.Error()
		} else {
			record.Status = StatusSucceeded
			record.FileCount = result.FileCount
			record.OutDir = result.OutDir
			record.Duration = int64(result.Duration)
		}

		if serr := s.store.Save(ctx, &record); serr != nil {
			log.Error(ctx, "error saving build record", serr)
			http.Error(w, serr.Error(), http.StatusInternalServerError)
			return
		}

		if err != nil {
			log.Error(ctx, "build failed", err)
			s.respond(w, &record, http.StatusUnprocessableEntity)
			return
		}

		s.respond(w, &record, http.StatusCreated)
	}
}
