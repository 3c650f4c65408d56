package server

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/bamreyes/Project-Green/internal/server/httpx"
)

type sidebarResponse struct {
	Collapsed bool `json:"collapsed"`
}

// toggleSidebarHandler flips the session's collapse flag. Any JSON body is
// read and ignored.
func (s *stateStore) toggleSidebarHandler(w http.ResponseWriter, r *http.Request) {
	var ignored map[string]any
	if err := httpx.DecodeOptionalJSON(r, &ignored); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	sess, err := s.session(w, r)
	if err != nil {
		s.sessionError(w, err)
		return
	}
	collapsed, err := s.db.ToggleSidebar(r.Context(), sess.ID)
	if err != nil {
		s.logger.Error("toggle sidebar failed", zap.String("session", sess.ID), zap.Error(err))
		http.Error(w, "could not toggle sidebar", http.StatusInternalServerError)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, sidebarResponse{Collapsed: collapsed})
}
