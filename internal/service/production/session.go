package production

import (
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/precast-backend/internal/domain"
)

// SessionState is the state of an EditSession.
type SessionState int

const (
	StateViewing SessionState = iota
	StateEditing
)

func (s SessionState) String() string {
	if s == StateEditing {
		return "editing"
	}
	return "viewing"
}

// EditSession is the in-memory edit buffer over one day's record.
//
// A session starts in Viewing. BeginEdit copies the saved items into a
// buffer; mutations apply to the buffer only, and Commit or Cancel return
// to Viewing. Every mutation outside Editing fails with domain.ErrConflict.
type EditSession struct {
	mu     sync.Mutex
	id     uuid.UUID
	date   domain.Date
	state  SessionState
	saved  []domain.LineItem
	buffer []domain.LineItem
}

// NewEditSession opens a session in Viewing over the saved items of date.
func NewEditSession(date domain.Date, saved []domain.LineItem) *EditSession {
	return &EditSession{
		id:    uuid.New(),
		date:  date,
		state: StateViewing,
		saved: slices.Clone(saved),
	}
}

func (s *EditSession) ID() uuid.UUID     { return s.id }
func (s *EditSession) Date() domain.Date { return s.date }

func (s *EditSession) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Items returns a copy of the buffer while editing and of the saved items
// otherwise.
func (s *EditSession) Items() []domain.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateEditing {
		return slices.Clone(s.buffer)
	}
	return slices.Clone(s.saved)
}

// BeginEdit moves the session from Viewing to Editing.
func (s *EditSession) BeginEdit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateViewing {
		return fmt.Errorf("session %s is already editing: %w", s.id, domain.ErrConflict)
	}
	s.buffer = slices.Clone(s.saved)
	s.state = StateEditing
	return nil
}

// Cancel discards the buffer and returns to Viewing.
func (s *EditSession) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireEditing(); err != nil {
		return err
	}
	s.buffer = nil
	s.state = StateViewing
	return nil
}

// Append adds it to the end of the buffer.
func (s *EditSession) Append(it domain.LineItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireEditing(); err != nil {
		return err
	}
	s.buffer = append(s.buffer, it)
	return nil
}

// Remove deletes the item with id from the buffer.
func (s *EditSession) Remove(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireEditing(); err != nil {
		return err
	}
	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("item %s: %w", id, domain.ErrNotFound)
	}
	s.buffer = slices.Delete(s.buffer, i, i+1)
	return nil
}

// UpdateQuantity replaces the quantity of one item, rescaling its total
// with the item's own per-unit ratio.
func (s *EditSession) UpdateQuantity(id uuid.UUID, quantity int) (domain.LineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireEditing(); err != nil {
		return domain.LineItem{}, err
	}
	i := s.indexOf(id)
	if i < 0 {
		return domain.LineItem{}, fmt.Errorf("item %s: %w", id, domain.ErrNotFound)
	}
	s.buffer[i] = s.buffer[i].WithQuantity(quantity)
	return s.buffer[i], nil
}

// Commit hands the buffer to persist and, when persist succeeds, makes it
// the saved state and returns to Viewing. The session stays locked while
// persist runs. On failure the session keeps editing.
func (s *EditSession) Commit(persist func(items []domain.LineItem) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireEditing(); err != nil {
		return err
	}
	items := slices.Clone(s.buffer)
	if err := persist(items); err != nil {
		return err
	}
	s.saved = items
	s.buffer = nil
	s.state = StateViewing
	return nil
}

func (s *EditSession) requireEditing() error {
	if s.state != StateEditing {
		return fmt.Errorf("session %s is not editing: %w", s.id, domain.ErrConflict)
	}
	return nil
}

func (s *EditSession) indexOf(id uuid.UUID) int {
	return slices.IndexFunc(s.buffer, func(it domain.LineItem) bool { return it.ID == id })
}
