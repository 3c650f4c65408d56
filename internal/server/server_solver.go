package server

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/bamreyes/Project-Green/internal/server/httpx"
	"github.com/bamreyes/Project-Green/internal/solver"
	"github.com/bamreyes/Project-Green/internal/store"
)

type solveResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func (s *stateStore) solveHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, solveResponse{Error: "invalid form: " + err.Error()})
		return
	}
	selected := r.PostForm["projects"]
	for _, name := range selected {
		if _, ok := s.catalog.Lookup(name); !ok {
			httpx.WriteJSON(w, http.StatusBadRequest, solveResponse{Error: "unknown project " + name})
			return
		}
	}

	sess, err := s.session(w, r)
	if err != nil {
		s.sessionError(w, err)
		return
	}

	out := store.SolveOutcome{Selected: selected}
	res, err := solver.Solve(s.catalog, selected, s.solverOpts)
	var infeasible *solver.InfeasibleError
	switch {
	case errors.As(err, &infeasible):
		out.Iterations = infeasible.Iterations
		out.Error = infeasible.Error()
	case err != nil:
		s.logger.Error("solve failed", zap.Strings("projects", selected), zap.Error(err))
		httpx.WriteJSON(w, http.StatusInternalServerError, solveResponse{Error: err.Error()})
		return
	default:
		out.Result = &res
		out.Iterations = res.Iterations
	}

	if err := s.db.SaveSolve(r.Context(), sess.ID, out); err != nil {
		s.logger.Error("save solve failed", zap.String("session", sess.ID), zap.Error(err))
		httpx.WriteJSON(w, http.StatusInternalServerError, solveResponse{Error: "could not save the result"})
		return
	}
	if out.Result == nil {
		s.logger.Info("solve infeasible", zap.Int("projects", len(selected)), zap.Int("iterations", len(out.Iterations)))
		httpx.WriteJSON(w, http.StatusOK, solveResponse{Error: out.Error})
		return
	}
	s.logger.Info("solve finished",
		zap.Int("projects", len(selected)),
		zap.Int("iterations", len(out.Iterations)),
		zap.String("cost", res.OptimizedCost),
	)
	httpx.WriteJSON(w, http.StatusOK, solveResponse{Success: true})
}
