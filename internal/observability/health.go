package observability

import (
	"encoding/json"
	"net/http"
	"time"
)

// HealthStatus represents the health status of the service
type HealthStatus struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
	Busy      bool   `json:"busy"`
}

// BusyFunc reports whether a keying session is currently playing.
type BusyFunc func() bool

// HealthCheckHandler handles health check requests for the remote keying
// service. The player has no external dependencies to probe; the handler
// reports liveness plus whether a session currently holds the audio sink.
func HealthCheckHandler(busy BusyFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := HealthStatus{
			Status:    "healthy",
			Service:   "cwplayer",
			Version:   "1.0.0",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		}
		if busy != nil {
			status.Busy = busy()
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(status)
	}
}
