package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"quizedit/internal/quiz"
	"quizedit/pkg/quizapi"
)

// DefaultTimeout bounds a single load or save round trip.
const DefaultTimeout = 10 * time.Second

// Navigator receives the route to show after a successful save.
type Navigator interface {
	Navigate(route string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(route string)

// Navigate calls f.
func (f NavigatorFunc) Navigate(route string) {
	f(route)
}

// Outcome is the result of a save attempt.
type Outcome struct {
	Navigate string
	Message  string
}

// Option configures a Session.
type Option func(*Session)

// WithTimeout bounds each load and save.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Session) {
		if timeout > 0 {
			s.timeout = timeout
		}
	}
}

// WithLogger sets the logger for state transitions.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithNavigator sets the collaborator told about successful saves.
func WithNavigator(nav Navigator) Option {
	return func(s *Session) {
		s.navigator = nav
	}
}

// WithDocument seeds the session with an initial document.
func WithDocument(doc quiz.Document) Option {
	return func(s *Session) {
		s.doc = doc.Clone()
	}
}

// Session owns one quiz document and coordinates its load and save.
type Session struct {
	api       quizapi.API
	mode      Mode
	timeout   time.Duration
	logger    *slog.Logger
	navigator Navigator

	mu      sync.Mutex
	doc     quiz.Document
	phase   Phase
	message string
	loaded  bool
}

// New builds a session. An empty key creates a new quiz; otherwise the quiz stored
// under key is edited.
func New(api quizapi.API, key string, opts ...Option) *Session {
	s := &Session{
		api:     api,
		mode:    Editing(key),
		timeout: DefaultTimeout,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		doc:     quiz.NewDocument(),
		phase:   PhaseIdle,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Mode returns the session mode.
func (s *Session) Mode() Mode {
	return s.mode
}

// Document returns a copy of the current document.
func (s *Session) Document() quiz.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

// Phase returns the current phase and the last user facing message.
func (s *Session) Phase() (Phase, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase, s.message
}

// Apply runs a document mutation. A rejected mutation leaves the document as it was.
// Mutations are refused with ErrLoadInProgress until the fetch finishes.
func (s *Session) Apply(fn func(quiz.Document) (quiz.Document, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == PhaseLoading {
		return ErrLoadInProgress
	}
	next, err := fn(s.doc.Clone())
	if err != nil {
		s.logger.Debug("mutation rejected", "error", err)
		return err
	}
	s.doc = next
	return nil
}

// Load fetches the quiz being edited. It does nothing when creating and may only
// run once. On failure the empty document is kept and editing continues.
func (s *Session) Load(ctx context.Context) error {
	if !s.mode.IsEditing() {
		return nil
	}
	s.mu.Lock()
	if s.loaded {
		s.mu.Unlock()
		return ErrAlreadyLoaded
	}
	s.loaded = true
	s.setPhaseLocked(PhaseLoading, "")
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	doc, err := s.api.Fetch(ctx, s.mode.Key())

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.logger.Error("load quiz failed", "quiz", s.mode.Key(), "error", err)
		s.setPhaseLocked(PhaseFailed, MsgLoadFailed)
		return &Failure{Kind: KindTransport, Message: MsgLoadFailed, Err: err}
	}
	s.doc = doc
	s.setPhaseLocked(PhaseIdle, "")
	s.logger.Info("quiz loaded", "quiz", s.mode.Key(), "questions", doc.Len())
	return nil
}

// Save validates the document and persists it. Validation failures never reach the
// network. A second Save while one is in flight returns ErrSaveInProgress, and a
// Save during the initial fetch returns ErrLoadInProgress.
func (s *Session) Save(ctx context.Context) (Outcome, error) {
	s.mu.Lock()
	if s.phase == PhaseLoading {
		s.mu.Unlock()
		return Outcome{}, ErrLoadInProgress
	}
	if s.phase == PhaseSubmitting {
		s.mu.Unlock()
		return Outcome{}, ErrSaveInProgress
	}
	doc := s.doc.Clone()
	if err := quiz.Validate(doc); err != nil {
		s.setPhaseLocked(PhaseFailed, err.Error())
		s.mu.Unlock()
		s.logger.Info("save blocked by validation", "error", err)
		return Outcome{}, &Failure{Kind: KindValidation, Message: err.Error(), Err: err}
	}
	s.setPhaseLocked(PhaseSubmitting, "")
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	var err error
	success := MsgCreated
	if s.mode.IsEditing() {
		err = s.api.Update(ctx, s.mode.Key(), doc)
		success = MsgUpdated
	} else {
		err = s.api.Create(ctx, doc)
	}

	s.mu.Lock()
	if err != nil {
		message := saveFailureMessage(err)
		s.setPhaseLocked(PhaseFailed, message)
		s.mu.Unlock()
		s.logger.Error("save quiz failed", "mode", s.mode.String(), "error", err)
		return Outcome{}, &Failure{Kind: KindTransport, Message: message, Err: err}
	}
	s.setPhaseLocked(PhaseSucceeded, success)
	s.mu.Unlock()

	s.logger.Info("quiz saved", "mode", s.mode.String(), "title", doc.Metadata.Title)
	if s.navigator != nil {
		s.navigator.Navigate(quizapi.ListingRoute)
	}
	return Outcome{Navigate: quizapi.ListingRoute, Message: success}, nil
}

func (s *Session) setPhaseLocked(phase Phase, message string) {
	if s.phase != phase {
		s.logger.Debug("session phase", "from", s.phase.String(), "to", phase.String())
	}
	s.phase = phase
	s.message = message
}

func saveFailureMessage(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return MsgSaveFailed
	}
	if reason := quizapi.ServerReason(err); reason != "" {
		return fmt.Sprintf(MsgSaveRejected, reason)
	}
	return MsgSaveFailed
}
