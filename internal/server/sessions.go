package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/rental-compare/internal/portfolio"
	"github.com/iwvelando/rental-compare/pkg/constants"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// session owns the portfolio of one browser session. The mutex serializes
// requests of the same session; sessions never share state.
type session struct {
	mu        sync.Mutex
	portfolio *portfolio.Portfolio
}

// sessionStore keeps sessions in memory until they have been idle for ttl.
type sessionStore struct {
	items *cache.Cache
	ttl   time.Duration
}

func newSessionStore(logger *zap.Logger, ttl time.Duration) *sessionStore {
	items := cache.New(ttl, ttl/2)
	items.OnEvicted(func(id string, value interface{}) {
		count := 0
		if s, ok := value.(*session); ok {
			s.mu.Lock()
			count = s.portfolio.Len()
			s.mu.Unlock()
		}
		logger.Debug("session expired",
			zap.String("op", "server.sessionStore"),
			zap.String("session", id),
			zap.Int("properties", count),
		)
	})
	return &sessionStore{items: items, ttl: ttl}
}

// lookup returns the session for id and extends its lifetime.
func (st *sessionStore) lookup(id string) (*session, bool) {
	value, ok := st.items.Get(id)
	if !ok {
		return nil, false
	}
	s := value.(*session)
	st.items.Set(id, s, cache.DefaultExpiration)
	return s, true
}

func (st *sessionStore) create() (string, *session) {
	id := uuid.New().String()
	s := &session{portfolio: portfolio.New()}
	st.items.Set(id, s, cache.DefaultExpiration)
	return id, s
}

func (st *sessionStore) count() int {
	return st.items.ItemCount()
}

// sessionFor returns the caller's session, starting a new one when the request
// carries no cookie or an expired one. The cookie is re-issued on every call
// so the browser keeps it as long as the server keeps the session.
func (h *handler) sessionFor(w http.ResponseWriter, r *http.Request) *session {
	if cookie, err := r.Cookie(constants.SessionCookieName); err == nil {
		if s, ok := h.sessions.lookup(cookie.Value); ok {
			h.setSessionCookie(w, cookie.Value)
			return s
		}
	}

	id, s := h.sessions.create()
	h.setSessionCookie(w, id)
	h.logger.Debug("session started",
		zap.String("op", "server.sessionFor"),
		zap.String("session", id),
	)
	return s
}

func (h *handler) setSessionCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(h.sessions.ttl.Seconds()),
	})
}
