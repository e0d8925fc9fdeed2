package test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
)

// Server is an in-memory stand-in for the key/message server. Like the real
// one, a GET for an unknown email answers 200 with an empty body.
type Server struct {
	lock     sync.RWMutex
	keys     map[string][]byte
	messages map[string][]byte
	requests atomic.Int64

	mux *http.ServeMux
}

func NewServer() *Server {
	s := &Server{
		keys:     make(map[string][]byte),
		messages: make(map[string][]byte),
		mux:      http.NewServeMux(),
	}
	s.mux.HandleFunc("PUT /Key/{email}", s.put(s.keys))
	s.mux.HandleFunc("GET /Key/{email}", s.get(s.keys))
	s.mux.HandleFunc("PUT /Message/{email}", s.put(s.messages))
	s.mux.HandleFunc("GET /Message/{email}", s.get(s.messages))
	return s
}

// Start serves s on a local listener until the returned server is closed.
func (s *Server) Start() *httptest.Server {
	return httptest.NewServer(s)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.requests.Add(1)
	s.mux.ServeHTTP(w, r)
}

// Requests returns the number of requests served so far.
func (s *Server) Requests() int64 {
	return s.requests.Load()
}

// Key returns the raw JSON document stored for email.
func (s *Server) Key(email string) ([]byte, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	b, ok := s.keys[email]
	return b, ok
}

// Message returns the raw JSON document stored for email.
func (s *Server) Message(email string) ([]byte, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	b, ok := s.messages[email]
	return b, ok
}

func (s *Server) put(store map[string][]byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil || !json.Valid(body) {
			http.Error(w, "invalid body", http.StatusBadRequest)
			return
		}
		s.lock.Lock()
		store[r.PathValue("email")] = body
		s.lock.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) get(store map[string][]byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.lock.RLock()
		body, ok := store[r.PathValue("email")]
		s.lock.RUnlock()
		w.Header().Set("Content-Type", "application/json")
		if ok {
			_, _ = w.Write(body)
		}
	}
}
