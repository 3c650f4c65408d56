package server

import (
	"net/http"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/bamreyes/Project-Green/internal/server/httpx"
	"github.com/bamreyes/Project-Green/internal/store"
	"github.com/bamreyes/Project-Green/internal/version"
)

type serverInfoResponse struct {
	Name       string `json:"name"`
	APIVersion int    `json:"api_version"`
	Version    string `json:"version"`
	Release    bool   `json:"release"`
	Hostname   string `json:"hostname"`
	StartedUTC string `json:"started_utc,omitempty"`
	Projects   int    `json:"projects"`
}

func (s *stateStore) healthzHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(r.Context()); err != nil {
		s.logger.Error("health check failed", zap.Error(err))
		httpx.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *stateStore) serverInfoHandler(w http.ResponseWriter, r *http.Request) {
	host, _ := os.Hostname()
	started, _, err := s.db.GetAppState(r.Context(), store.StateServerStarted)
	if err != nil {
		s.logger.Warn("read server start time", zap.Error(err))
	}
	httpx.WriteJSON(w, http.StatusOK, serverInfoResponse{
		Name:       "green",
		APIVersion: 1,
		Version:    version.Current(),
		Release:    version.IsRelease(),
		Hostname:   strings.TrimSpace(host),
		StartedUTC: started,
		Projects:   s.catalog.Len(),
	})
}
