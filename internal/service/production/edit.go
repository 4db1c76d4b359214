package production

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/heartmarshall/precast-backend/internal/domain"
)

// SessionView is a snapshot of an edit session with the report text its
// current items would produce.
type SessionView struct {
	ID         uuid.UUID
	Date       domain.Date
	State      SessionState
	Items      []domain.LineItem
	ReportText string
}

// OpenSession opens an edit session over the record of date and starts
// editing it. A date without a record opens over an empty item list.
func (s *Service) OpenSession(ctx context.Context, date domain.Date) (*SessionView, error) {
	return s.open(ctx, date, true)
}

// ViewSession opens a session in the viewing state. Mutations fail with
// ErrConflict until BeginEdit.
func (s *Service) ViewSession(ctx context.Context, date domain.Date) (*SessionView, error) {
	return s.open(ctx, date, false)
}

func (s *Service) open(ctx context.Context, date domain.Date, edit bool) (*SessionView, error) {
	if date.IsZero() {
		return nil, domain.NewValidationError("date", "required")
	}

	var saved []domain.LineItem
	rec, err := s.records.Get(ctx, date)
	switch {
	case err == nil:
		saved = rec.Items
	case errors.Is(err, domain.ErrNotFound):
	default:
		return nil, fmt.Errorf("load production %s: %w", date, err)
	}

	sess := NewEditSession(date, saved)
	if edit {
		if err := sess.BeginEdit(); err != nil {
			return nil, err
		}
	}
	s.sessions.Add(sess)

	s.log.InfoContext(ctx, "edit session opened",
		slog.String("session_id", sess.ID().String()),
		slog.String("date", date.String()),
		slog.String("state", sess.State().String()),
		slog.Int("items", len(saved)),
	)

	return s.view(ctx, sess)
}

// GetSession returns the current state of an open session.
func (s *Service) GetSession(ctx context.Context, id uuid.UUID) (*SessionView, error) {
	sess, err := s.sessions.Get(id)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, sess)
}

// BeginEdit re-enters editing on a session that was committed.
func (s *Service) BeginEdit(ctx context.Context, id uuid.UUID) (*SessionView, error) {
	sess, err := s.sessions.Get(id)
	if err != nil {
		return nil, err
	}
	if err := sess.BeginEdit(); err != nil {
		return nil, err
	}
	return s.view(ctx, sess)
}

// AddItem validates in, enforces the configuration gate, resolves the
// total, adds the product to the catalog when missing and appends the
// item to the session buffer. On any failure the buffer is unchanged.
func (s *Service) AddItem(ctx context.Context, id uuid.UUID, in ItemInput) (*domain.LineItem, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	sess, err := s.sessions.Get(id)
	if err != nil {
		return nil, err
	}
	if sess.State() != StateEditing {
		return nil, fmt.Errorf("session %s is not editing: %w", id, domain.ErrConflict)
	}

	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	it, err := s.buildItem(ctx, in, categories)
	if err != nil {
		return nil, err
	}

	if _, err := s.products.Insert(ctx, it.Product); err != nil {
		return nil, fmt.Errorf("insert product %s: %w", it.Product, err)
	}

	if err := sess.Append(it); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "item added",
		slog.String("session_id", id.String()),
		slog.String("item_id", it.ID.String()),
		slog.String("product", it.Product.String()),
		slog.Int("quantity", it.Quantity),
		slog.String("measurement_type", it.MeasurementType.String()),
	)

	return &it, nil
}

// RemoveItem drops one item from the session buffer.
func (s *Service) RemoveItem(ctx context.Context, id, itemID uuid.UUID) error {
	sess, err := s.sessions.Get(id)
	if err != nil {
		return err
	}
	if err := sess.Remove(itemID); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "item removed",
		slog.String("session_id", id.String()),
		slog.String("item_id", itemID.String()),
	)
	return nil
}

// UpdateQuantity changes one buffered item's quantity, keeping the
// per-unit ratio the item was recorded with.
func (s *Service) UpdateQuantity(ctx context.Context, id, itemID uuid.UUID, quantity int) (*domain.LineItem, error) {
	if quantity <= 0 {
		return nil, domain.NewValidationError("quantity", "must be positive")
	}

	sess, err := s.sessions.Get(id)
	if err != nil {
		return nil, err
	}

	it, err := sess.UpdateQuantity(itemID, quantity)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// CommitEdit regenerates the report text and persists the buffer, replacing
// the day's items, in one transaction. The session returns to Viewing.
func (s *Service) CommitEdit(ctx context.Context, id uuid.UUID) (*domain.ProductionRecord, error) {
	sess, err := s.sessions.Get(id)
	if err != nil {
		return nil, err
	}

	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	var rec *domain.ProductionRecord
	err = sess.Commit(func(items []domain.LineItem) error {
		if len(items) == 0 {
			return domain.NewValidationError("items", "at least one item is required")
		}
		stored, err := s.persist(ctx, sess.Date(), items, categories)
		if err != nil {
			return err
		}
		rec = stored
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "production committed",
		slog.String("session_id", id.String()),
		slog.String("date", rec.Date.String()),
		slog.Int("items", len(rec.Items)),
	)

	return rec, nil
}

// CloseSession discards any uncommitted edits and forgets the session.
func (s *Service) CloseSession(ctx context.Context, id uuid.UUID) error {
	sess, err := s.sessions.Get(id)
	if err != nil {
		return err
	}

	discarded := sess.State() == StateEditing
	if discarded {
		if err := sess.Cancel(); err != nil && !errors.Is(err, domain.ErrConflict) {
			return err
		}
	}
	s.sessions.Remove(id)

	s.log.InfoContext(ctx, "edit session closed",
		slog.String("session_id", id.String()),
		slog.Bool("discarded", discarded),
	)

	return nil
}

func (s *Service) view(ctx context.Context, sess *EditSession) (*SessionView, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	items := sess.Items()
	return &SessionView{
		ID:         sess.ID(),
		Date:       sess.Date(),
		State:      sess.State(),
		Items:      items,
		ReportText: GenerateReportText(sess.Date(), items, categories),
	}, nil
}
