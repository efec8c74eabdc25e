// Package session resolves who a visitor is for the duration of one request.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/01moynul/taptosell-storefront/internal/apiclient"
	"github.com/01moynul/taptosell-storefront/internal/models"
	"github.com/01moynul/taptosell-storefront/internal/storage"
)

// Session is passed explicitly to everything that depends on login state.
type Session struct {
	VisitorID   string
	User        *models.User
	Credentials apiclient.Credentials

	// Local outlives the browser session; Scoped expires with it.
	Local  *storage.Bucket
	Scoped *storage.Bucket
}

func (s *Session) IsAuthenticated() bool { return s != nil && s.User != nil }

func (s *Session) IsAdmin() bool { return s != nil && s.User.IsAdmin() }

// UserRefresh is how long a resolved user is trusted before /auth/me is
// asked again, however busy the visitor is.
const UserRefresh = 5 * time.Minute

// cachedUser is the sessionUser value.
type cachedUser struct {
	User      models.User `json:"user"`
	FetchedAt time.Time   `json:"fetchedAt"`
}

// Manager builds sessions from the visitor's stored credentials.
type Manager struct {
	api      *apiclient.Client
	local    storage.Store
	sessions storage.Store
	refresh  time.Duration
	now      func() time.Time
}

func NewManager(api *apiclient.Client, local, sessions storage.Store) *Manager {
	return &Manager{api: api, local: local, sessions: sessions, refresh: UserRefresh, now: time.Now}
}

// Client returns an API client that authenticates as the session's visitor.
func (m *Manager) Client(sess *Session) *apiclient.Client {
	if sess == nil {
		return m.api
	}
	return m.api.WithCredentials(sess.Credentials)
}

// Load resolves the visitor's user, asking the API when the cached copy is
// missing or older than UserRefresh. Any failure yields an anonymous session.
func (m *Manager) Load(ctx context.Context, visitorID string) *Session {
	sess := Anonymous(visitorID, m.local, m.sessions)

	// 1. No credentials means a guest.
	var creds apiclient.Credentials
	if err := sess.Local.GetJSON(ctx, storage.CredentialsKey, &creds); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("session: read credentials for %s: %v", visitorID, err)
		}
		return sess
	}
	if creds.Empty() {
		return sess
	}
	sess.Credentials = creds

	// 2. Reuse a recently resolved user.
	var cached cachedUser
	if err := sess.Scoped.GetJSON(ctx, storage.SessionUserKey, &cached); err == nil {
		if m.now().Sub(cached.FetchedAt) < m.refresh {
			sess.User = &cached.User
			return sess
		}
	}

	// 3. Otherwise ask the API.
	if err := m.Refetch(ctx, sess); err != nil {
		log.Printf("session: resolve user for %s: %v", visitorID, err)
		if apiclient.IsUnauthorized(err) {
			m.forget(ctx, sess)
		}
	}
	return sess
}

// Refetch reloads the current user and refreshes the cached copy.
func (m *Manager) Refetch(ctx context.Context, sess *Session) error {
	user, err := m.Client(sess).Me(ctx)
	if err != nil {
		sess.User = nil
		return fmt.Errorf("fetch current user: %w", err)
	}
	sess.User = user
	if err := sess.Scoped.SetJSON(ctx, storage.SessionUserKey, cachedUser{User: *user, FetchedAt: m.now()}); err != nil {
		log.Printf("session: cache user for %s: %v", sess.VisitorID, err)
	}
	return nil
}

// Login authenticates upstream, persists the credentials and resolves the user.
func (m *Manager) Login(ctx context.Context, sess *Session, email, password string) error {
	creds, err := m.api.Login(ctx, email, password)
	if err != nil {
		return err
	}

	if err := sess.Local.SetJSON(ctx, storage.CredentialsKey, creds); err != nil {
		return fmt.Errorf("store credentials: %w", err)
	}
	sess.Credentials = creds

	if err := m.Refetch(ctx, sess); err != nil {
		m.forget(ctx, sess)
		return err
	}
	return nil
}

// Logout ends the upstream session and forgets everything the visitor was
// logged in as. The local teardown happens even if the API call fails.
func (m *Manager) Logout(ctx context.Context, sess *Session) {
	if !sess.Credentials.Empty() {
		if err := m.Client(sess).Logout(ctx); err != nil {
			log.Printf("session: upstream logout for %s: %v", sess.VisitorID, err)
		}
	}
	m.forget(ctx, sess)
}

// Expire logs the visitor out locally when err shows the API no longer
// accepts their credentials. It reports whether the session was dropped.
func (m *Manager) Expire(ctx context.Context, sess *Session, err error) bool {
	if sess == nil || sess.Credentials.Empty() || apiclient.StatusCode(err) != http.StatusUnauthorized {
		return false
	}
	log.Printf("session: upstream rejected credentials for %s, logging out", sess.VisitorID)
	m.forget(ctx, sess)
	return true
}

func (m *Manager) forget(ctx context.Context, sess *Session) {
	if err := sess.Local.Remove(ctx, storage.CredentialsKey); err != nil {
		log.Printf("session: drop credentials for %s: %v", sess.VisitorID, err)
	}
	if err := sess.Scoped.Remove(ctx, storage.SessionUserKey); err != nil {
		log.Printf("session: drop cached user for %s: %v", sess.VisitorID, err)
	}
	sess.User = nil
	sess.Credentials = apiclient.Credentials{}
}

// Anonymous builds a guest session on the given stores.
func Anonymous(visitorID string, local, sessions storage.Store) *Session {
	return &Session{
		VisitorID: visitorID,
		Local:     storage.NewBucket(local, visitorID),
		Scoped:    storage.NewBucket(sessions, visitorID),
	}
}
