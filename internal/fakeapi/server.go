// Package fakeapi serves canned Freesound APIv2 responses for tests. Routes
// use the same path templates as the real API, under /apiv2.
package fakeapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Credentials accepted by the fake API.
const (
	APIKey       = "test-api-key"
	ClientID     = "test-client-id"
	AuthCode     = "test-auth-code"
	AccessToken  = "test-access-token"
	RefreshToken = "test-refresh-token"

	// RefreshedAccessToken is issued in exchange for RefreshToken.
	RefreshedAccessToken = "test-refreshed-access-token"
)

// Sound ids with special behavior.
const (
	// SoundCount is the number of sounds; ids run from 1 to SoundCount.
	SoundCount = 5

	// BrokenDownloadID answers downloads with an HTML error page.
	BrokenDownloadID = 410
)

// Request is a request received by the server.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// Form parses a urlencoded request body.
func (r Request) Form() url.Values {
	v, _ := url.ParseQuery(string(r.Body))
	return v
}

// Server is a fake Freesound API.
type Server struct {
	*httptest.Server

	mu          sync.Mutex
	requests    []Request
	failures    int
	failStatus  int
	tokenIssues int
	validTokens map[string]bool
	tokenHold   chan struct{}
}

// New starts a fake API server. Call Close when done.
func New() *Server {
	s := &Server{validTokens: map[string]bool{AccessToken: true}}
	s.Server = httptest.NewServer(s.routes())
	return s
}

// BaseURL returns the API root to configure clients with.
func (s *Server) BaseURL() string {
	return s.URL + "/apiv2"
}

// FailNext makes the next n requests fail with status before reaching their
// handler.
func (s *Server) FailNext(n, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = n
	s.failStatus = status
}

// Requests returns the requests received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// LastRequest returns the latest request received.
func (s *Server) LastRequest() Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return Request{}
	}
	return s.requests[len(s.requests)-1]
}

// TokenIssues returns how many tokens the token endpoint has issued.
func (s *Server) TokenIssues() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokenIssues
}

// HoldTokenRequests makes the token endpoint wait until the returned func is
// called. Requests are still recorded on arrival.
func (s *Server) HoldTokenRequests() (release func()) {
	hold := make(chan struct{})
	s.mu.Lock()
	s.tokenHold = hold
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			s.tokenHold = nil
			s.mu.Unlock()
			close(hold)
		})
	}
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestIDMiddleware)
	r.Use(s.recordMiddleware)
	r.Use(s.failureMiddleware)

	r.Route("/apiv2", func(r chi.Router) {
		r.Post("/oauth2/access_token/", s.handleAccessToken)

		r.Group(func(r chi.Router) {
			r.Use(s.tokenAuth)
			r.Get("/search/text/", s.handleSearch)
			r.Get("/descriptors/", s.handleDescriptors)
			r.Get("/sounds/{sound_id}/", s.handleSound)
		})

		r.Group(func(r chi.Router) {
			r.Use(s.bearerAuth)
			r.Get("/me/", s.handleMe)
			r.Get("/sounds/{sound_id}/download/", s.handleDownload)
			r.Post("/sounds/upload/", s.handleUpload)
			r.Post("/sounds/{sound_id}/rate/", s.handleRate)
		})
	})
	return r
}

func (s *Server) recordMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Header: r.Header.Clone(),
			Body:   body,
		})
		s.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

func (s *Server) failureMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		fail := s.failures > 0
		status := s.failStatus
		if fail {
			s.failures--
		}
		s.mu.Unlock()

		if fail {
			w.Header().Set("Retry-After", "0")
			respondDetail(w, status, http.StatusText(status))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) tokenAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if auth == "Token "+APIKey || s.validBearer(auth) {
			next.ServeHTTP(w, r)
			return
		}
		respondDetail(w, http.StatusUnauthorized, "Authentication credentials were not provided.")
	})
}

func (s *Server) bearerAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.validBearer(r.Header.Get("Authorization")) {
			next.ServeHTTP(w, r)
			return
		}
		respondDetail(w, http.StatusUnauthorized, "Authentication credentials were not provided.")
	})
}

func (s *Server) validBearer(auth string) bool {
	const prefix = "Bearer "
	if len(auth) <= len(prefix) || auth[:len(prefix)] != prefix {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.validTokens[auth[len(prefix):]]
}

// requestIDMiddleware echoes the client's request id.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := r.Header.Get("X-Request-ID"); id != "" {
			w.Header().Set("X-Request-ID", id)
		}
		next.ServeHTTP(w, r)
	})
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondDetail(w http.ResponseWriter, status int, detail string) {
	respondJSON(w, status, map[string]any{"detail": detail})
}

func soundID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "sound_id"))
	return id, err == nil && id >= 1 && id <= SoundCount
}

func fakeSound(baseURL string, id int) map[string]any {
	return map[string]any{
		"id":       id,
		"url":      fmt.Sprintf("https://freesound.org/people/someone/sounds/%d/", id),
		"name":     fmt.Sprintf("sound %d", id),
		"tags":     []string{"fake", "test"},
		"created":  "2014-04-16T20:07:11.145",
		"license":  "http://creativecommons.org/publicdomain/zero/1.0/",
		"username": "someone",
		"duration": 1.5,
		"download": fmt.Sprintf("%s/sounds/%d/download/", baseURL, id),
	}
}
