package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// handleHealth reports live room and connection counts.
func handleHealth(rm *RoomManager, gw *Gateway) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		err := json.NewEncoder(w).Encode(map[string]int{
			"rooms":       rm.RoomCount(),
			"connections": gw.ConnCount(),
		})
		if err != nil {
			slog.Error("Failed to write health response", "error", err)
		}
	}
}
