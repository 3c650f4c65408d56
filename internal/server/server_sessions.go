package server

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/bamreyes/Project-Green/internal/store"
)

// session returns the caller's session, creating one and setting the
// cookie when the request carries none or an expired one.
func (s *stateStore) session(w http.ResponseWriter, r *http.Request) (store.Session, error) {
	if c, err := r.Cookie(s.cookieName); err == nil && c.Value != "" {
		sess, err := s.db.GetSession(r.Context(), c.Value)
		switch {
		case err == nil && s.expired(sess):
			s.logger.Debug("session expired", zap.String("session", sess.ID))
		case err == nil:
			now := s.now()
			err := s.db.TouchSession(r.Context(), sess.ID, now)
			if err == nil {
				sess.UpdatedUTC = now
				return sess, nil
			}
			if !errors.Is(err, store.ErrSessionNotFound) {
				return store.Session{}, err
			}
		case !errors.Is(err, store.ErrSessionNotFound):
			return store.Session{}, err
		}
	}
	sess, err := s.db.CreateSession(r.Context())
	if err != nil {
		return store.Session{}, err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	s.logger.Debug("session created", zap.String("session", sess.ID))
	return sess, nil
}

// expired reports whether sess has been idle longer than the session TTL.
// The janitor deletes such rows on its next tick.
func (s *stateStore) expired(sess store.Session) bool {
	return s.sessionTTL > 0 && s.now().Sub(sess.UpdatedUTC) > s.sessionTTL
}

func (s *stateStore) sessionError(w http.ResponseWriter, err error) {
	s.logger.Error("session lookup failed", zap.Error(err))
	http.Error(w, "session unavailable", http.StatusInternalServerError)
}
