package api

import (
	"encoding/json"
	"net/http"
)

func (s *Server) handleRecognitionStats(w http.ResponseWriter, r *http.Request) {
	if s.stats == nil {
		jsonError(w, "recognition client is not configured", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.stats.Snapshot())
}
