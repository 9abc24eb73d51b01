// Package auth gates the API behind the host's access tokens. Authentication
// itself is delegated: the host hands out opaque bearer tokens and assigns
// them a role; this package only resolves tokens to sessions and enforces the
// two permission levels plus the anti-forgery check on mutating requests.
package auth

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/project-board/pkg/respond"
)

const (
	RoleViewer = "viewer"
	RoleEditor = "editor"

	// HeaderCSRF несет одноразовый для сессии анти-CSRF токен
	HeaderCSRF = "X-CSRF-Token"
)

// Session is what a resolved bearer token grants: a role and the
// per-session anti-forgery token every mutating request must echo back.
type Session struct {
	UserID    int64  `json:"user_id"`
	Role      string `json:"role"`
	CSRFToken string `json:"csrf_token"`
}

type ctxKey struct{}

type Store struct {
	mu       sync.Mutex
	roles    map[string]string // bearer token -> role
	sessions map[string]Session
	nextUser int64
	logger   *zap.Logger
}

func NewStore(viewerTokens, editorTokens []string, logger *zap.Logger) *Store {
	roles := make(map[string]string, len(viewerTokens)+len(editorTokens))
	for _, t := range viewerTokens {
		roles[t] = RoleViewer
	}
	// Редактор перекрывает зрителя при совпадении токена
	for _, t := range editorTokens {
		roles[t] = RoleEditor
	}
	return &Store{
		roles:    roles,
		sessions: make(map[string]Session),
		logger:   logger,
	}
}

// Resolve maps a bearer token to its session, issuing the anti-forgery
// token on first use.
func (s *Store) Resolve(token string) (Session, bool) {
	role, ok := s.roles[token]
	if !ok {
		return Session{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[token]
	if !ok {
		s.nextUser++
		sess = Session{UserID: s.nextUser, Role: role, CSRFToken: uuid.NewString()}
		s.sessions[token] = sess
	}
	return sess, true
}

// RequireRead admits any authenticated session. Fails closed: no token, no
// access, before any repository call.
func (s *Store) RequireRead(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := s.Resolve(bearerToken(r))
		if !ok {
			respond.Error(w, r, http.StatusForbidden, "permission denied")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, sess)))
	})
}

// RequireWrite additionally demands the editor role and a matching
// anti-forgery token header.
func (s *Store) RequireWrite(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := s.Resolve(bearerToken(r))
		if !ok || sess.Role != RoleEditor {
			respond.Error(w, r, http.StatusForbidden, "permission denied")
			return
		}
		if r.Header.Get(HeaderCSRF) != sess.CSRFToken {
			s.logger.Warn("anti-forgery token mismatch", zap.String("path", r.URL.Path))
			respond.Error(w, r, http.StatusForbidden, "permission denied")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, sess)))
	})
}

// FromContext returns the session placed by the middleware.
func FromContext(ctx context.Context) (Session, bool) {
	sess, ok := ctx.Value(ctxKey{}).(Session)
	return sess, ok
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(h, prefix) {
		return ""
	}
	return strings.TrimPrefix(h, prefix)
}
