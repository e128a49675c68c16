package study

import (
	"errors"
	"sync"
)

// SessionState tracks where a review session is in its lifecycle.
type SessionState string

const (
	StateShowingFront SessionState = "showing_front"
	StateShowingBack  SessionState = "showing_back"
	StateFinished     SessionState = "finished"
)

var (
	ErrNoCards     = errors.New("review session needs at least one card")
	ErrNotFinished = errors.New("session is not finished")
	ErrFinished    = errors.New("session is already finished")
)

// CompletionFunc is invoked exactly once when a session finishes, with the
// final tallies. Used to record the run into study history and activity.
type CompletionFunc func(correct, incorrect, total int)

// ReviewSession walks a fixed card deck front-to-back. All methods are safe
// for concurrent use; position always stays inside the deck.
//
// Go Pattern: the zero value is not usable here, so construction goes
// through NewReviewSession, which enforces the non-empty-deck invariant
// every other method relies on.
type ReviewSession struct {
	mu         sync.Mutex
	cards      []Flashcard
	index      int
	revealed   bool
	correct    int
	incorrect  int
	state      SessionState
	onComplete CompletionFunc
}

// CardView is the client-facing snapshot of a session. The back of the
// current card is included only after the session revealed it.
type CardView struct {
	Index     int          `json:"index"`
	Total     int          `json:"total"`
	Front     string       `json:"front"`
	Back      string       `json:"back,omitempty"`
	Revealed  bool         `json:"revealed"`
	State     SessionState `json:"state"`
	Correct   int          `json:"correct"`
	Incorrect int          `json:"incorrect"`
	Accuracy  float64      `json:"accuracy"`
}

// NewReviewSession starts a session over cards. onComplete may be nil.
func NewReviewSession(cards []Flashcard, onComplete CompletionFunc) (*ReviewSession, error) {
	if len(cards) == 0 {
		return nil, ErrNoCards
	}
	return &ReviewSession{
		cards:      cards,
		state:      StateShowingFront,
		onComplete: onComplete,
	}, nil
}

// RevealAnswer flips the current card. Revealing twice is a no-op.
func (s *ReviewSession) RevealAnswer() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateFinished {
		return ErrFinished
	}
	s.revealed = true
	s.state = StateShowingBack
	return nil
}

// SelfAssess records the learner's own verdict on the current card and
// advances. Assessing the last card finishes the session and fires the
// completion callback.
func (s *ReviewSession) SelfAssess(correct bool) error {
	s.mu.Lock()
	if s.state == StateFinished {
		s.mu.Unlock()
		return ErrFinished
	}

	if correct {
		s.correct++
	} else {
		s.incorrect++
	}

	if s.index < len(s.cards)-1 {
		s.index++
		s.revealed = false
		s.state = StateShowingFront
		s.mu.Unlock()
		return nil
	}

	s.state = StateFinished
	s.revealed = false
	done := s.onComplete
	c, ic, total := s.correct, s.incorrect, len(s.cards)
	s.mu.Unlock()

	// Callback runs outside the lock so it may call back into the session.
	if done != nil {
		done(c, ic, total)
	}
	return nil
}

// Next moves forward one card without assessing. At the last card it is a
// no-op that still hides the answer.
func (s *ReviewSession) Next() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateFinished {
		return ErrFinished
	}
	if s.index < len(s.cards)-1 {
		s.index++
	}
	s.revealed = false
	s.state = StateShowingFront
	return nil
}

// Previous moves back one card. At the first card it is a no-op that still
// hides the answer.
func (s *ReviewSession) Previous() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateFinished {
		return ErrFinished
	}
	if s.index > 0 {
		s.index--
	}
	s.revealed = false
	s.state = StateShowingFront
	return nil
}

// Reset hides the answer and returns to the front of the current card.
// Position and tallies are untouched. No-op on a finished session.
func (s *ReviewSession) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateFinished {
		return
	}
	s.revealed = false
	s.state = StateShowingFront
}

// Restart begins a fresh run over the same deck with zeroed tallies. Only a
// finished session can restart.
func (s *ReviewSession) Restart() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateFinished {
		return ErrNotFinished
	}
	s.rewind()
	return nil
}

func (s *ReviewSession) rewind() {
	s.index = 0
	s.revealed = false
	s.correct = 0
	s.incorrect = 0
	s.state = StateShowingFront
}

// Accuracy returns the percentage of correct self-assessments so far,
// or 0 when nothing has been assessed.
func (s *ReviewSession) Accuracy() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return accuracy(s.correct, s.incorrect)
}

func accuracy(correct, incorrect int) float64 {
	total := correct + incorrect
	if total == 0 {
		return 0
	}
	return float64(correct) / float64(total) * 100
}

// View snapshots the session for the client.
func (s *ReviewSession) View() CardView {
	s.mu.Lock()
	defer s.mu.Unlock()

	card := s.cards[s.index]
	view := CardView{
		Index:     s.index,
		Total:     len(s.cards),
		Front:     card.Front,
		Revealed:  s.revealed,
		State:     s.state,
		Correct:   s.correct,
		Incorrect: s.incorrect,
		Accuracy:  accuracy(s.correct, s.incorrect),
	}
	if s.revealed || s.state == StateFinished {
		view.Back = card.Back
	}
	return view
}

// Cards returns a copy of the deck.
func (s *ReviewSession) Cards() []Flashcard {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Flashcard, len(s.cards))
	copy(out, s.cards)
	return out
}

// Sessions is a per-user registry of active review sessions. Starting a new
// session for a user replaces the old one.
type Sessions struct {
	mu     sync.RWMutex
	byUser map[string]*ReviewSession
}

func NewSessions() *Sessions {
	return &Sessions{byUser: make(map[string]*ReviewSession)}
}

// Put installs the session for username, replacing any existing one.
func (r *Sessions) Put(username string, s *ReviewSession) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byUser[username] = s
}

// Get returns the user's active session, if any.
func (r *Sessions) Get(username string) (*ReviewSession, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byUser[username]
	return s, ok
}

// Delete drops the user's session.
func (r *Sessions) Delete(username string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byUser, username)
}
