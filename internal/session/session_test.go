package session

import (
	"net/http"
	"testing"
)

func TestApplyOverwritesCredentials(t *testing.T) {
	s := New()

	headers := http.Header{}
	headers.Set(CookieHeader, "SESSION=abc")
	headers.Set(AuthTokenHeader, "token-1")
	s.Apply(headers)

	if s.Cookie() != "SESSION=abc" {
		t.Fatalf("cookie = %q", s.Cookie())
	}
	if s.AuthToken() != "token-1" {
		t.Fatalf("auth token = %q", s.AuthToken())
	}

	rotated := http.Header{}
	rotated.Set(AuthTokenHeader, "token-2")
	s.Apply(rotated)

	if s.AuthToken() != "token-2" {
		t.Fatalf("auth token after rotation = %q", s.AuthToken())
	}
	if s.Cookie() != "SESSION=abc" {
		t.Fatalf("absent header must not clear cookie, got %q", s.Cookie())
	}
}

func TestApplyIgnoresEmptyHeaders(t *testing.T) {
	s := New()
	headers := http.Header{}
	headers.Set(CookieHeader, "SESSION=abc")
	s.Apply(headers)

	s.Apply(http.Header{})
	if s.Cookie() != "SESSION=abc" {
		t.Fatalf("cookie lost on empty apply")
	}
}

func TestDecorateStampsRequest(t *testing.T) {
	s := New()
	headers := http.Header{}
	headers.Set(CookieHeader, "SESSION=abc")
	headers.Set(AuthTokenHeader, "token-1")
	s.Apply(headers)

	req, err := http.NewRequest(http.MethodGet, "http://bank.test/session", nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	s.Decorate(req)

	if got := req.Header.Get("Cookie"); got != "SESSION=abc" {
		t.Fatalf("request cookie = %q", got)
	}
	if got := req.Header.Get(AuthTokenHeader); got != "token-1" {
		t.Fatalf("request auth token = %q", got)
	}
}

func TestDecorateSkipsAbsentCredentials(t *testing.T) {
	s := New()
	req, err := http.NewRequest(http.MethodGet, "http://bank.test/login/cif", nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	s.Decorate(req)

	if _, ok := req.Header["Cookie"]; ok {
		t.Fatalf("empty session must not set Cookie header")
	}
}

func TestServiceTokenLifecycle(t *testing.T) {
	s := New()

	if _, ok := s.ServiceToken(); ok {
		t.Fatalf("fresh session must have no service token")
	}

	s.SetServiceToken("svc-1")
	token, ok := s.ServiceToken()
	if !ok || token != "svc-1" {
		t.Fatalf("service token = %q, %v", token, ok)
	}

	// Apply never touches the service token.
	headers := http.Header{}
	headers.Set(AuthTokenHeader, "token-9")
	s.Apply(headers)
	if token, _ := s.ServiceToken(); token != "svc-1" {
		t.Fatalf("apply mutated service token to %q", token)
	}

	s.ClearServiceToken()
	if _, ok := s.ServiceToken(); ok {
		t.Fatalf("service token survived clear")
	}
}
