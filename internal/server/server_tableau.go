package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/bamreyes/Project-Green/internal/export"
	"github.com/bamreyes/Project-Green/internal/view"
)

func (s *stateStore) exportIterationHandler(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(w, r)
	if err != nil {
		s.sessionError(w, err)
		return
	}
	raw := chi.URLParam(r, "iteration")
	page := iterationsPage(sess.Iterations)
	st := view.New(page)
	if err := st.SelectIteration(raw, page); err != nil || st.Iteration == view.AllIterations {
		http.Error(w, "unknown iteration "+strconv.Quote(raw), http.StatusNotFound)
		return
	}
	n, _ := strconv.Atoi(st.Iteration)
	var section export.Section
	for _, it := range sess.Iterations {
		if it.Number == n {
			section = export.FromIteration(it)
			break
		}
	}

	data, err := export.Bytes(section)
	if errors.Is(err, export.ErrEmptySection) {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	if err != nil {
		s.logger.Error("export iteration failed", zap.Int("iteration", n), zap.Error(err))
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+section.FileName()+`"`)
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(data)
}
