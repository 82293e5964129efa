package api

import (
	"encoding/json"
	"net/http"
)

func (s *Server) handleValidatorStats(w http.ResponseWriter, r *http.Request) {
	if s.stats == nil {
		jsonError(w, "validator stats unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"validators":  s.orchestrator.Runner().Validators(),
		"queue_depth": s.orchestrator.QueueDepth(),
		"stats":       s.stats.Snapshot(),
	})
}
