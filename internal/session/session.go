package session

import (
	"net/http"
	"sync"
)

// Header names the bank uses to rotate session credentials.
const (
	CookieHeader    = "Set-Cookie"
	AuthTokenHeader = "X-Auth-Token"
)

// State holds the mutable credentials of one authenticated bank session: the
// session cookie, the auth token, and a lazily obtained token for the bank's
// secondary (insurance) service. Cookie and auth token are overwritten from
// every response that carries the matching header; flows sharing a State are
// serialized through its mutex.
type State struct {
	mu           sync.Mutex
	cookie       string
	authToken    string
	serviceToken string
}

// New returns an empty session state.
func New() *State {
	return &State{}
}

// Apply overwrites the cookie and auth token from response headers when
// present. Absent headers leave the current values untouched. The service
// token is never derived from headers.
func (s *State) Apply(headers http.Header) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v := headers.Get(CookieHeader); v != "" {
		s.cookie = v
	}
	if v := headers.Get(AuthTokenHeader); v != "" {
		s.authToken = v
	}
}

// Decorate stamps the current credentials onto an outgoing request.
func (s *State) Decorate(req *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cookie != "" {
		req.Header.Set("Cookie", s.cookie)
	}
	if s.authToken != "" {
		req.Header.Set(AuthTokenHeader, s.authToken)
	}
}

// Cookie returns the current session cookie.
func (s *State) Cookie() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cookie
}

// AuthToken returns the current auth token.
func (s *State) AuthToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authToken
}

// ServiceToken returns the cached secondary-service token, if one was set.
func (s *State) ServiceToken() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.serviceToken, s.serviceToken != ""
}

// SetServiceToken caches the secondary-service token for the session. Only
// the explicit token-generation step calls this.
func (s *State) SetServiceToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.serviceToken = token
}

// ClearServiceToken drops the cached secondary-service token so the next
// access re-derives it.
func (s *State) ClearServiceToken() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.serviceToken = ""
}
