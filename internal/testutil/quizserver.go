package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"quizedit/internal/quiz"
)

// Request is one call observed by a QuizServer.
type Request struct {
	Method    string
	Name      string
	RequestID string
	Auth      string
	Body      []byte
}

// QuizServer is an in-memory stand-in for the quiz persistence API.
type QuizServer struct {
	URL string

	mu       sync.Mutex
	quizzes  map[string]quiz.Wire
	requests []Request
	failWith *failure
	delay    time.Duration
}

type failure struct {
	status int
	reason string
}

// StartQuizServer launches a fake quiz API that is shut down with the test.
func StartQuizServer(t testing.TB) *QuizServer {
	t.Helper()
	s := &QuizServer{quizzes: map[string]quiz.Wire{}}
	router := chi.NewRouter()
	router.Route("/api/quizzes", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Get("/{quizName}", s.handleGet)
		r.Put("/{quizName}", s.handleUpdate)
	})
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	s.URL = server.URL
	return s
}

// Put stores a quiz under name.
func (s *QuizServer) Put(name string, doc quiz.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quizzes[name] = quiz.ToWire(doc)
}

// Get returns the stored quiz payload.
func (s *QuizServer) Get(name string) (quiz.Wire, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	wire, ok := s.quizzes[name]
	return wire, ok
}

// FailWith makes every following request answer with status. An empty reason
// sends no JSON error body.
func (s *QuizServer) FailWith(status int, reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWith = &failure{status: status, reason: reason}
}

// Delay holds every following response for d.
func (s *QuizServer) Delay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay = d
}

// Requests returns the calls seen so far.
func (s *QuizServer) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

func (s *QuizServer) record(r *http.Request) (*failure, []byte) {
	body, _ := io.ReadAll(r.Body)
	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Method:    r.Method,
		Name:      quizName(r),
		RequestID: r.Header.Get("X-Request-ID"),
		Auth:      r.Header.Get("Authorization"),
		Body:      body,
	})
	fail, delay := s.failWith, s.delay
	s.mu.Unlock()
	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
		}
	}
	return fail, body
}

func (s *QuizServer) handleGet(w http.ResponseWriter, r *http.Request) {
	fail, _ := s.record(r)
	if fail != nil {
		writeFailure(w, fail)
		return
	}
	wire, ok := s.Get(quizName(r))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Quiz not found"})
		return
	}
	writeJSON(w, http.StatusOK, wire)
}

func (s *QuizServer) handleCreate(w http.ResponseWriter, r *http.Request) {
	fail, body := s.record(r)
	if fail != nil {
		writeFailure(w, fail)
		return
	}
	var wire quiz.Wire
	if err := json.Unmarshal(body, &wire); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid quiz payload"})
		return
	}
	name := wire.QuizInfo.Title
	if _, exists := s.Get(name); exists {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "Quiz already exists"})
		return
	}
	s.mu.Lock()
	s.quizzes[name] = wire
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, map[string]string{"message": "Quiz created"})
}

func (s *QuizServer) handleUpdate(w http.ResponseWriter, r *http.Request) {
	fail, body := s.record(r)
	if fail != nil {
		writeFailure(w, fail)
		return
	}
	name := quizName(r)
	if _, exists := s.Get(name); !exists {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Quiz not found"})
		return
	}
	var wire quiz.Wire
	if err := json.Unmarshal(body, &wire); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid quiz payload"})
		return
	}
	s.mu.Lock()
	s.quizzes[name] = wire
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{"message": "Quiz updated"})
}

// quizName returns the decoded {quizName} parameter. chi hands back the raw
// segment when the name contains escaped slashes.
func quizName(r *http.Request) string {
	raw := chi.URLParam(r, "quizName")
	if name, err := url.PathUnescape(raw); err == nil {
		return name
	}
	return raw
}

func writeFailure(w http.ResponseWriter, fail *failure) {
	if fail.reason == "" {
		w.WriteHeader(fail.status)
		return
	}
	writeJSON(w, fail.status, map[string]string{"error": fail.reason})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
